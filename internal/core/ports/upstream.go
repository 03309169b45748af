package ports

import (
	"context"

	"github.com/chooy/admin-console/internal/core/domain"
)

// IdentityProvider authenticates operators against the platform API.
type IdentityProvider interface {
	// Login exchanges credentials for an upstream session (token pair,
	// expiry, identity with role set).
	Login(ctx context.Context, email, password string) (*domain.Session, error)
}

// UserDirectory exposes the platform's account listing and the two account
// mutations the console performs.
type UserDirectory interface {
	// List fetches one page of accounts.
	List(ctx context.Context, pageNumber, pageSize int) ([]domain.User, error)
	// ListAll fetches every account by requesting fixed-size pages until a
	// short page, subject to a hard page cap.
	ListAll(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, userID string, role domain.Role) error
	SetActivation(ctx context.Context, userID string, active bool) error
}

// FileUpload is an optional attachment for catalog mutations.
type FileUpload struct {
	Filename string
	Content  []byte
}

// ListBooksFilter narrows the book listing server-side where supported.
type ListBooksFilter struct {
	OnlyActive   bool
	CategoryID   string
	CategoryName string
}

// BookInput carries the fields of a book create request.
type BookInput struct {
	Title       string
	Author      string
	Description string
	Categories  []string
	Image       *FileUpload
}

// BookUpdate carries the fields of a book update request.
type BookUpdate struct {
	BookInput
	IsActive   bool
	ClearImage bool
}

// ChapterInput carries the fields of a chapter create/update request.
type ChapterInput struct {
	PageIndex int
	Title     string
	Content   string
}

// BookCatalog exposes book, chapter, and category operations.
type BookCatalog interface {
	ListBooks(ctx context.Context, filter ListBooksFilter) ([]domain.Book, error)
	GetBook(ctx context.Context, bookID string) (*domain.Book, error)
	CreateBook(ctx context.Context, input BookInput) (*domain.Book, error)
	UpdateBook(ctx context.Context, bookID string, input BookUpdate) (*domain.Book, error)
	DeleteBook(ctx context.Context, bookID string) error
	ListCategories(ctx context.Context) ([]domain.Category, error)

	ListChapters(ctx context.Context, bookID string) ([]domain.Chapter, error)
	GetChapter(ctx context.Context, bookID, chapterID string) (*domain.Chapter, error)
	CreateChapter(ctx context.Context, bookID string, input ChapterInput) (*domain.Chapter, error)
	UpdateChapter(ctx context.Context, bookID, chapterID string, input ChapterInput) (*domain.Chapter, error)
	DeleteChapter(ctx context.Context, bookID, chapterID string) error
}

// PlanInput carries the fields of a subscription plan create/update request.
type PlanInput struct {
	Name          string
	Type          string
	Status        string
	OriginalPrice float64
	Discount      float64
}

// PlanCatalog exposes subscription plan CRUD.
type PlanCatalog interface {
	ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error)
	GetPlan(ctx context.Context, subscriptionID string) (*domain.SubscriptionPlan, error)
	CreatePlan(ctx context.Context, input PlanInput) (*domain.SubscriptionPlan, error)
	UpdatePlan(ctx context.Context, subscriptionID string, input PlanInput) (*domain.SubscriptionPlan, error)
	DeletePlan(ctx context.Context, subscriptionID string) error
}
