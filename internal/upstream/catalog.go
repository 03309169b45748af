package upstream

import (
	"context"

	"github.com/chooy/admin-console/internal/core/domain"
	"github.com/chooy/admin-console/internal/core/ports"
)

// Catalog joins the book and chapter clients into the single catalog surface
// the services consume. Both clients talk to the same upstream controller;
// the split here just keeps the wire code per resource.
type Catalog struct {
	books    *BooksClient
	chapters *ChaptersClient
}

func NewCatalog(books *BooksClient, chapters *ChaptersClient) *Catalog {
	return &Catalog{books: books, chapters: chapters}
}

func (c *Catalog) ListBooks(ctx context.Context, filter ports.ListBooksFilter) ([]domain.Book, error) {
	return c.books.List(ctx, filter)
}

func (c *Catalog) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	return c.books.Get(ctx, bookID)
}

func (c *Catalog) CreateBook(ctx context.Context, input ports.BookInput) (*domain.Book, error) {
	return c.books.Create(ctx, input)
}

func (c *Catalog) UpdateBook(ctx context.Context, bookID string, input ports.BookUpdate) (*domain.Book, error) {
	return c.books.Update(ctx, bookID, input)
}

func (c *Catalog) DeleteBook(ctx context.Context, bookID string) error {
	return c.books.Delete(ctx, bookID)
}

func (c *Catalog) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return c.books.Categories(ctx)
}

func (c *Catalog) ListChapters(ctx context.Context, bookID string) ([]domain.Chapter, error) {
	return c.chapters.ListByBook(ctx, bookID)
}

func (c *Catalog) GetChapter(ctx context.Context, bookID, chapterID string) (*domain.Chapter, error) {
	return c.chapters.Get(ctx, bookID, chapterID)
}

func (c *Catalog) CreateChapter(ctx context.Context, bookID string, input ports.ChapterInput) (*domain.Chapter, error) {
	return c.chapters.Create(ctx, bookID, input)
}

func (c *Catalog) UpdateChapter(ctx context.Context, bookID, chapterID string, input ports.ChapterInput) (*domain.Chapter, error) {
	return c.chapters.Update(ctx, bookID, chapterID, input)
}

func (c *Catalog) DeleteChapter(ctx context.Context, bookID, chapterID string) error {
	return c.chapters.Delete(ctx, bookID, chapterID)
}
