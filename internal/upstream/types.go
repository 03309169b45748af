package upstream

import (
	"fmt"
	"strings"
	"time"

	"github.com/chooy/admin-console/internal/core/domain"
)

// apiTime tolerates the timestamp flavors the platform API emits: RFC 3339
// with or without fractional seconds, and .NET local timestamps without a
// zone offset (treated as UTC).
type apiTime struct {
	time.Time
}

var apiTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *apiTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range apiTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("%w: unrecognized timestamp %q", ErrMalformedResponse, s)
}

// userDoc is the wire shape of one directory account.
type userDoc struct {
	UserID       string   `json:"userId"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	IsVerified   bool     `json:"isVerified"`
	IsActive     bool     `json:"isActive"`
	AvatarURL    *string  `json:"avatarUrl"`
	IsPremium    *bool    `json:"isPremium"`
	ProviderName *string  `json:"providerName"`
	CreatedAt    apiTime  `json:"createdAt"`
	UpdatedAt    *apiTime `json:"updatedAt"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		UserID:       d.UserID,
		Name:         d.Name,
		Email:        d.Email,
		Role:         d.Role,
		IsVerified:   d.IsVerified,
		IsActive:     d.IsActive,
		AvatarURL:    d.AvatarURL,
		IsPremium:    d.IsPremium,
		ProviderName: d.ProviderName,
		CreatedAt:    d.CreatedAt.Time,
		UpdatedAt:    optionalTime(d.UpdatedAt),
	}
}

// bookDoc is the wire shape of one catalog book.
type bookDoc struct {
	BookID      string   `json:"bookId"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
	IsActive    bool     `json:"isActive"`
	Categories  []string `json:"categories"`
	CreatedAt   apiTime  `json:"createdAt"`
	UpdatedAt   *apiTime `json:"updatedAt"`
}

func (d bookDoc) toDomain() domain.Book {
	return domain.Book{
		BookID:      d.BookID,
		Title:       d.Title,
		Author:      d.Author,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		IsActive:    d.IsActive,
		Categories:  d.Categories,
		CreatedAt:   d.CreatedAt.Time,
		UpdatedAt:   optionalTime(d.UpdatedAt),
	}
}

// chapterDoc is the wire shape of one chapter.
type chapterDoc struct {
	ChapterID string   `json:"chapterId"`
	BookID    string   `json:"bookId"`
	PageIndex int      `json:"pageIndex"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	CreatedAt apiTime  `json:"createdAt"`
	UpdatedAt *apiTime `json:"updatedAt"`
}

func (d chapterDoc) toDomain() domain.Chapter {
	return domain.Chapter{
		ChapterID: d.ChapterID,
		BookID:    d.BookID,
		PageIndex: d.PageIndex,
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt.Time,
		UpdatedAt: optionalTime(d.UpdatedAt),
	}
}

func optionalTime(t *apiTime) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	out := t.Time
	return &out
}

func usersToDomain(docs []userDoc) []domain.User {
	out := make([]domain.User, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out
}

func booksToDomain(docs []bookDoc) []domain.Book {
	out := make([]domain.Book, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out
}

func chaptersToDomain(docs []chapterDoc) []domain.Chapter {
	out := make([]domain.Chapter, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out
}
