package ports

import (
	"context"
	"time"

	"github.com/chooy/admin-console/internal/core/domain"
)

// LoginOutput is what a successful console login returns to the client.
type LoginOutput struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
	User      domain.SessionUser `json:"user"`
}

// AuthService owns the session lifecycle: login, resolution, logout.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginOutput, error)
	// Resolve maps a console bearer token to its stored session. A missing,
	// invalid, or expired session yields domain.ErrSessionNotFound.
	Resolve(ctx context.Context, token string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
}

// Directory sort fields. Anything else leaves the upstream order untouched.
const (
	SortByActivity  = "isActive"
	SortByVerified  = "isVerified"
	SortByCreatedAt = "createdAt"
)

// DirectoryQuery captures the list controls of the user/staff dashboards.
type DirectoryQuery struct {
	Search    string
	SortField string
	SortDesc  bool
	Page      int
	PageSize  int
}

// DirectoryStats summarizes the full (unpaginated) result set.
type DirectoryStats struct {
	Total           int `json:"total"`
	Active          int `json:"active"`
	Inactive        int `json:"inactive"`
	Verified        int `json:"verified"`
	Unverified      int `json:"unverified"`
	ActivePercent   int `json:"activePercent"`
	VerifiedPercent int `json:"verifiedPercent"`
}

// DirectoryPage is one page of a filtered, sorted directory listing.
type DirectoryPage struct {
	Users    []domain.User  `json:"users"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Stats    DirectoryStats `json:"stats"`
}

// DirectoryService aggregates the account directory and performs the two
// account mutations, auditing each one.
type DirectoryService interface {
	ListMembers(ctx context.Context, q DirectoryQuery) (*DirectoryPage, error)
	ListStaff(ctx context.Context, q DirectoryQuery) (*DirectoryPage, error)
	ChangeRole(ctx context.Context, actor domain.SessionUser, userID string, role domain.Role) error
	SetActivation(ctx context.Context, actor domain.SessionUser, userID string, active bool) error
}

// CatalogService manages books, chapters, and categories, auditing mutations.
type CatalogService interface {
	ListBooks(ctx context.Context, filter ListBooksFilter) ([]domain.Book, error)
	GetBook(ctx context.Context, bookID string) (*domain.Book, error)
	CreateBook(ctx context.Context, actor domain.SessionUser, input BookInput) (*domain.Book, error)
	UpdateBook(ctx context.Context, actor domain.SessionUser, bookID string, input BookUpdate) (*domain.Book, error)
	DeleteBook(ctx context.Context, actor domain.SessionUser, bookID string) error
	ListCategories(ctx context.Context) ([]domain.Category, error)

	ListChapters(ctx context.Context, bookID string) ([]domain.Chapter, error)
	GetChapter(ctx context.Context, bookID, chapterID string) (*domain.Chapter, error)
	CreateChapter(ctx context.Context, actor domain.SessionUser, bookID string, input ChapterInput) (*domain.Chapter, error)
	UpdateChapter(ctx context.Context, actor domain.SessionUser, bookID, chapterID string, input ChapterInput) (*domain.Chapter, error)
	DeleteChapter(ctx context.Context, actor domain.SessionUser, bookID, chapterID string) error
}

// PlanView is a plan enriched with its computed effective price.
type PlanView struct {
	domain.SubscriptionPlan
	FinalPrice float64 `json:"finalPrice"`
}

// PlanService manages subscription plans, auditing mutations.
type PlanService interface {
	ListPlans(ctx context.Context) ([]PlanView, error)
	GetPlan(ctx context.Context, subscriptionID string) (*PlanView, error)
	CreatePlan(ctx context.Context, actor domain.SessionUser, input PlanInput) (*PlanView, error)
	UpdatePlan(ctx context.Context, actor domain.SessionUser, subscriptionID string, input PlanInput) (*PlanView, error)
	DeletePlan(ctx context.Context, actor domain.SessionUser, subscriptionID string) error
}
