package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chooy/admin-console/internal/core/domain"
)

const sessionKeyPrefix = "console:session:"

// Hash fields of one persisted session. Four string values, written together:
// a single HSET keeps the store free of the partial-write states a four-key
// layout would allow.
const (
	fieldToken     = "token"
	fieldRefresh   = "refresh_token"
	fieldUser      = "user"
	fieldExpiresAt = "expires_at"
)

// SessionStore persists operator sessions in Redis. It owns the durable copy;
// everything else sees sessions only through Load.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore wraps the given client. ttl bounds how long a session
// without an upstream expiry stays alive.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Save writes the session under id. Last write wins; the token is stored as
// received, without validation.
func (s *SessionStore) Save(ctx context.Context, id string, session *domain.Session) error {
	userJSON, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("serialize session user: %w", err)
	}

	var expiresAt string
	if !session.ExpiresAt.IsZero() {
		expiresAt = session.ExpiresAt.UTC().Format(time.RFC3339)
	}

	key := sessionKeyPrefix + id
	if err := s.client.HSet(ctx, key,
		fieldToken, session.AccessToken,
		fieldRefresh, session.RefreshToken,
		fieldUser, string(userJSON),
		fieldExpiresAt, expiresAt,
	).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	ttl := s.ttl
	if !session.ExpiresAt.IsZero() {
		if until := time.Until(session.ExpiresAt); until > 0 && until < ttl {
			ttl = until
		}
	}
	if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("expire session: %w", err)
	}
	return nil
}

// Load reads the session stored under id. A missing session (or missing
// fields) is normal and yields a session with the corresponding zero fields;
// only transport problems and a corrupt user payload are errors.
func (s *SessionStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	session := &domain.Session{
		AccessToken:  fields[fieldToken],
		RefreshToken: fields[fieldRefresh],
	}
	if raw := fields[fieldUser]; raw != "" {
		var user domain.SessionUser
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, fmt.Errorf("deserialize session user: %w", err)
		}
		session.User = &user
	}
	if raw := fields[fieldExpiresAt]; raw != "" {
		expiresAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("parse session expiry: %w", err)
		}
		session.ExpiresAt = expiresAt
	}
	return session, nil
}

// Clear removes the session. Deleting a missing session is a no-op.
func (s *SessionStore) Clear(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
