package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/chooy/admin-console/internal/core/domain"
	"github.com/chooy/admin-console/internal/core/ports"
	"github.com/chooy/admin-console/internal/upstream"
)

type stubIdentity struct {
	session *domain.Session
	err     error
	calls   int
}

func (s *stubIdentity) Login(context.Context, string, string) (*domain.Session, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	clone := *s.session
	return &clone, nil
}

type memStore struct {
	sessions map[string]*domain.Session
	saveErr  error
	loadErr  error
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*domain.Session)}
}

func (m *memStore) Save(_ context.Context, id string, s *domain.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	clone := *s
	m.sessions[id] = &clone
	return nil
}

func (m *memStore) Load(_ context.Context, id string) (*domain.Session, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if s, ok := m.sessions[id]; ok {
		clone := *s
		return &clone, nil
	}
	return &domain.Session{}, nil
}

func (m *memStore) Clear(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

type memThrottle struct {
	failures map[string]int
	limit    int
}

func newMemThrottle(limit int) *memThrottle {
	return &memThrottle{failures: make(map[string]int), limit: limit}
}

func (m *memThrottle) TooMany(_ context.Context, email string) (bool, error) {
	return m.failures[email] >= m.limit, nil
}

func (m *memThrottle) Fail(_ context.Context, email string) error {
	m.failures[email]++
	return nil
}

func (m *memThrottle) Reset(_ context.Context, email string) error {
	delete(m.failures, email)
	return nil
}

func upstreamSession() *domain.Session {
	return &domain.Session{
		AccessToken:  "upstream-access",
		RefreshToken: "upstream-refresh",
		ExpiresAt:    time.Now().Add(2 * time.Hour),
		User: &domain.SessionUser{
			UserID: "u1",
			Name:   "Alice",
			Email:  "alice@example.com",
			Roles:  domain.RoleSet{domain.RoleAdmin},
		},
	}
}

func newTestAuthService(identity *stubIdentity, store *memStore, throttle ports.LoginThrottle) *AuthService {
	return NewAuthService(identity, store, throttle, BootstrapAccount{}, "test-secret", time.Hour, zerolog.Nop())
}

func TestAuthService_LoginResolveLogout(t *testing.T) {
	store := newMemStore()
	svc := newTestAuthService(&stubIdentity{session: upstreamSession()}, store, newMemThrottle(3))
	ctx := context.Background()

	out, err := svc.Login(ctx, "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if out.Token == "" {
		t.Fatalf("expected a console token")
	}
	if out.User.UserID != "u1" {
		t.Fatalf("unexpected identity: %+v", out.User)
	}
	if len(store.sessions) != 1 {
		t.Fatalf("expected one stored session, got %d", len(store.sessions))
	}

	session, err := svc.Resolve(ctx, out.Token)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if session.AccessToken != "upstream-access" {
		t.Fatalf("resolved session missing upstream token: %+v", session)
	}

	if err := svc.Logout(ctx, out.Token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, err := svc.Resolve(ctx, out.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after logout, got %v", err)
	}
}

func TestAuthService_Resolve_GarbageToken(t *testing.T) {
	svc := newTestAuthService(&stubIdentity{session: upstreamSession()}, newMemStore(), nil)

	if _, err := svc.Resolve(context.Background(), "not-a-jwt"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAuthService_Resolve_ExpiredSession(t *testing.T) {
	store := newMemStore()
	identity := &stubIdentity{session: upstreamSession()}
	svc := newTestAuthService(identity, store, nil)
	ctx := context.Background()

	out, err := svc.Login(ctx, "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	// Age the stored session past its expiry.
	for id, s := range store.sessions {
		s.ExpiresAt = time.Now().Add(-time.Minute)
		store.sessions[id] = s
	}

	if _, err := svc.Resolve(ctx, out.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expired session must resolve to ErrSessionNotFound, got %v", err)
	}
}

func TestAuthService_Resolve_StoreFailureIsNotNotFound(t *testing.T) {
	store := newMemStore()
	svc := newTestAuthService(&stubIdentity{session: upstreamSession()}, store, nil)
	ctx := context.Background()

	out, err := svc.Login(ctx, "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	store.loadErr = errors.New("connection refused")
	_, err = svc.Resolve(ctx, out.Token)
	if err == nil || errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("store failure must not look like a missing session, got %v", err)
	}
}

func TestAuthService_Login_InvalidCredentialFaults(t *testing.T) {
	for _, code := range []string{"401", "404"} {
		identity := &stubIdentity{err: &upstream.Fault{Code: code, Description: "rejected"}}
		svc := newTestAuthService(identity, newMemStore(), newMemThrottle(10))

		_, err := svc.Login(context.Background(), "alice@example.com", "wrong")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("fault %s: expected ErrInvalidCredentials, got %v", code, err)
		}
	}

	// Other upstream faults pass through untranslated.
	identity := &stubIdentity{err: &upstream.Fault{Code: "500", Description: "boom"}}
	svc := newTestAuthService(identity, newMemStore(), newMemThrottle(10))
	_, err := svc.Login(context.Background(), "alice@example.com", "pw")
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("server fault must not read as bad credentials")
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	identity := &stubIdentity{err: &upstream.Fault{Code: "401", Description: "rejected"}}
	throttle := newMemThrottle(2)
	svc := newTestAuthService(identity, newMemStore(), throttle)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Login(ctx, "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}

	identityCalls := identity.calls
	if _, err := svc.Login(ctx, "alice@example.com", "wrong"); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if identity.calls != identityCalls {
		t.Fatalf("throttled login must not reach the upstream")
	}
}

func TestAuthService_Login_BootstrapAccount(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("break-glass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	identity := &stubIdentity{err: errors.New("upstream down")}
	store := newMemStore()
	svc := NewAuthService(identity, store, nil, BootstrapAccount{
		Email:        "ops@example.com",
		PasswordHash: string(hash),
	}, "test-secret", time.Hour, zerolog.Nop())
	ctx := context.Background()

	out, err := svc.Login(ctx, "OPS@example.com", "break-glass")
	if err != nil {
		t.Fatalf("bootstrap login failed: %v", err)
	}
	if !out.User.Roles.Has(domain.RoleAdmin) {
		t.Fatalf("bootstrap operator must be an admin")
	}
	if identity.calls != 0 {
		t.Fatalf("bootstrap login must not reach the upstream")
	}

	if _, err := svc.Login(ctx, "ops@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad bootstrap password, got %v", err)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newTestAuthService(&stubIdentity{session: upstreamSession()}, newMemStore(), nil)

	if _, err := svc.Login(context.Background(), "", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@b.c", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_DefaultExpiry(t *testing.T) {
	session := upstreamSession()
	session.ExpiresAt = time.Time{}
	store := newMemStore()
	svc := newTestAuthService(&stubIdentity{session: session}, store, nil)

	out, err := svc.Login(context.Background(), "alice@example.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if out.ExpiresAt.IsZero() {
		t.Fatalf("login must assign a default expiry when the upstream omits one")
	}
	if remaining := time.Until(out.ExpiresAt); remaining <= 0 || remaining > time.Hour {
		t.Fatalf("default expiry outside the session TTL: %v", remaining)
	}
}
