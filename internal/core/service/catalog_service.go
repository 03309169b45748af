package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/chooy/admin-console/internal/core/domain"
	"github.com/chooy/admin-console/internal/core/ports"
)

// CatalogService manages the book catalog through the upstream API,
// auditing every mutation.
type CatalogService struct {
	catalog ports.BookCatalog
	audit   auditor
	log     zerolog.Logger
}

func NewCatalogService(catalog ports.BookCatalog, audit ports.AuditRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		catalog: catalog,
		audit:   auditor{repo: audit, log: log},
		log:     log,
	}
}

func (s *CatalogService) ListBooks(ctx context.Context, filter ports.ListBooksFilter) ([]domain.Book, error) {
	return s.catalog.ListBooks(ctx, filter)
}

func (s *CatalogService) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	return s.catalog.GetBook(ctx, bookID)
}

func (s *CatalogService) CreateBook(ctx context.Context, actor domain.SessionUser, input ports.BookInput) (*domain.Book, error) {
	book, err := s.catalog.CreateBook(ctx, input)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, "book.create", "book", book.BookID)
	s.log.Info().Str("book_id", book.BookID).Str("title", input.Title).Str("actor_id", actor.UserID).Msg("book created")
	return book, nil
}

func (s *CatalogService) UpdateBook(ctx context.Context, actor domain.SessionUser, bookID string, input ports.BookUpdate) (*domain.Book, error) {
	book, err := s.catalog.UpdateBook(ctx, bookID, input)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, "book.update", "book", bookID)
	return book, nil
}

func (s *CatalogService) DeleteBook(ctx context.Context, actor domain.SessionUser, bookID string) error {
	if err := s.catalog.DeleteBook(ctx, bookID); err != nil {
		return err
	}
	s.audit.record(ctx, actor, "book.delete", "book", bookID)
	s.log.Info().Str("book_id", bookID).Str("actor_id", actor.UserID).Msg("book deleted")
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.catalog.ListCategories(ctx)
}

func (s *CatalogService) ListChapters(ctx context.Context, bookID string) ([]domain.Chapter, error) {
	return s.catalog.ListChapters(ctx, bookID)
}

func (s *CatalogService) GetChapter(ctx context.Context, bookID, chapterID string) (*domain.Chapter, error) {
	return s.catalog.GetChapter(ctx, bookID, chapterID)
}

func (s *CatalogService) CreateChapter(ctx context.Context, actor domain.SessionUser, bookID string, input ports.ChapterInput) (*domain.Chapter, error) {
	chapter, err := s.catalog.CreateChapter(ctx, bookID, input)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, "chapter.create", "chapter", chapter.ChapterID)
	return chapter, nil
}

func (s *CatalogService) UpdateChapter(ctx context.Context, actor domain.SessionUser, bookID, chapterID string, input ports.ChapterInput) (*domain.Chapter, error) {
	chapter, err := s.catalog.UpdateChapter(ctx, bookID, chapterID, input)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, "chapter.update", "chapter", chapterID)
	return chapter, nil
}

func (s *CatalogService) DeleteChapter(ctx context.Context, actor domain.SessionUser, bookID, chapterID string) error {
	if err := s.catalog.DeleteChapter(ctx, bookID, chapterID); err != nil {
		return err
	}
	s.audit.record(ctx, actor, "chapter.delete", "chapter", chapterID)
	return nil
}
