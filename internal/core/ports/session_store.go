package ports

import (
	"context"

	"github.com/chooy/admin-console/internal/core/domain"
)

// SessionStore is the single source of truth for "who is logged in".
type SessionStore interface {
	// Save persists the session under id. Last write wins; no token
	// validation is performed.
	Save(ctx context.Context, id string, session *domain.Session) error

	// Load reads the session stored under id. Absence is normal, not an
	// error: a session with every field empty is returned.
	Load(ctx context.Context, id string) (*domain.Session, error)

	// Clear removes the session. Idempotent.
	Clear(ctx context.Context, id string) error
}

// LoginThrottle limits repeated failed login attempts per account.
type LoginThrottle interface {
	// TooMany reports whether the account has exhausted its attempt budget.
	TooMany(ctx context.Context, email string) (bool, error)
	// Fail records one failed attempt.
	Fail(ctx context.Context, email string) error
	// Reset clears the attempt counter after a successful login.
	Reset(ctx context.Context, email string) error
}
