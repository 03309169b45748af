package domain

import "time"

// Book is one catalog entry. Categories holds category identifiers; the
// console does not enforce referential integrity beyond carrying the list.
type Book struct {
	BookID      string     `json:"bookId"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Description string     `json:"description"`
	ImageURL    *string    `json:"imageUrl"`
	IsActive    bool       `json:"isActive"`
	Categories  []string   `json:"categories"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

// Chapter is one reading unit inside a book.
type Chapter struct {
	ChapterID string     `json:"chapterId"`
	BookID    string     `json:"bookId,omitempty"`
	PageIndex int        `json:"pageIndex"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// Category is a catalog classification tag.
type Category struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
}
