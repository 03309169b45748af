package domain

import "time"

// SessionUser is the identity attached to an authenticated session.
type SessionUser struct {
	UserID string  `json:"userId"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Roles  RoleSet `json:"roles"`
}

// Session holds the upstream token pair, its expiry, and the identity it was
// issued for. Created on login, destroyed on logout; the session store owns
// the persisted copy.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         *SessionUser
}

// Expired reports whether the session's expiry has passed. A zero ExpiresAt
// means the upstream did not report one; such sessions never expire locally.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Authenticated reports whether the session can authorize requests: both a
// token and an identity must be present, and the expiry must not have passed.
func (s Session) Authenticated(now time.Time) bool {
	return s.AccessToken != "" && s.User != nil && !s.Expired(now)
}
