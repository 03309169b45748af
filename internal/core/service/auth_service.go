package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/chooy/admin-console/internal/api/metrics"
	"github.com/chooy/admin-console/internal/core/domain"
	"github.com/chooy/admin-console/internal/core/ports"
	"github.com/chooy/admin-console/internal/upstream"
)

// ErrTooManyAttempts is returned when an account exhausted its login budget.
var ErrTooManyAttempts = errors.New("too many login attempts")

// BootstrapAccount is the optional break-glass operator identity, verified
// locally with bcrypt when the upstream cannot be consulted.
type BootstrapAccount struct {
	Email        string
	PasswordHash string
}

func (b BootstrapAccount) enabled() bool {
	return b.Email != "" && b.PasswordHash != ""
}

// AuthService implements login, session resolution, and logout. It is the
// only writer of the session store; everything else reads sessions through
// the auth gate.
type AuthService struct {
	identity   ports.IdentityProvider
	store      ports.SessionStore
	throttle   ports.LoginThrottle
	bootstrap  BootstrapAccount
	jwtSecret  string
	sessionTTL time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

func NewAuthService(identity ports.IdentityProvider, store ports.SessionStore, throttle ports.LoginThrottle, bootstrap BootstrapAccount, jwtSecret string, sessionTTL time.Duration, log zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		identity:   identity,
		store:      store,
		throttle:   throttle,
		bootstrap:  bootstrap,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		log:        log,
		now:        time.Now,
	}
}

// Login authenticates the operator, persists the resulting session, and
// mints the console bearer token whose subject is the session id.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginOutput, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooMany(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle unavailable, allowing attempt")
		} else if blocked {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return nil, ErrTooManyAttempts
		}
	}

	session, result, err := s.authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) && s.throttle != nil {
			if terr := s.throttle.Fail(ctx, email); terr != nil {
				s.log.Warn().Err(terr).Msg("login throttle update failed")
			}
		}
		metrics.LoginsTotal.WithLabelValues(result).Inc()
		return nil, err
	}

	if session.ExpiresAt.IsZero() {
		session.ExpiresAt = s.now().Add(s.sessionTTL)
	}

	sid, err := newSessionID()
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sid, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	token, err := s.mintToken(sid, session)
	if err != nil {
		return nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	metrics.LoginsTotal.WithLabelValues(result).Inc()
	s.log.Info().Str("user_id", session.User.UserID).Strs("roles", session.User.Roles.Strings()).Msg("operator logged in")

	return &ports.LoginOutput{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      *session.User,
	}, nil
}

// authenticate resolves credentials to a session, via the bootstrap account
// when it matches, otherwise against the upstream identity endpoint. The
// second return value is the metrics result label.
func (s *AuthService) authenticate(ctx context.Context, email, password string) (*domain.Session, string, error) {
	if s.bootstrap.enabled() && strings.EqualFold(email, s.bootstrap.Email) {
		if bcrypt.CompareHashAndPassword([]byte(s.bootstrap.PasswordHash), []byte(password)) != nil {
			return nil, "invalid", domain.ErrInvalidCredentials
		}
		token, err := newSessionID()
		if err != nil {
			return nil, "upstream_error", err
		}
		return &domain.Session{
			AccessToken: "local:" + token,
			User: &domain.SessionUser{
				UserID: "bootstrap",
				Name:   "Bootstrap Operator",
				Email:  s.bootstrap.Email,
				Roles:  domain.RoleSet{domain.RoleAdmin},
			},
		}, "bootstrap", nil
	}

	session, err := s.identity.Login(ctx, email, password)
	if err != nil {
		var fault *upstream.Fault
		if errors.As(err, &fault) && (fault.Code == "401" || fault.Code == "404") {
			return nil, "invalid", domain.ErrInvalidCredentials
		}
		return nil, "upstream_error", err
	}
	if session.User == nil || session.AccessToken == "" {
		return nil, "upstream_error", fmt.Errorf("%w: login reply missing token or identity", upstream.ErrMalformedResponse)
	}
	return session, "success", nil
}

// Resolve maps a console bearer token to its stored session. Missing,
// invalid, and expired sessions all collapse into ErrSessionNotFound: an
// expired session authorizes nothing.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	sid, err := s.parseToken(token)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	session, err := s.store.Load(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !session.Authenticated(s.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Logout destroys the stored session. Unknown tokens are a no-op: the goal
// state (no session) already holds.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sid, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	return s.store.Clear(ctx, sid)
}

func (s *AuthService) mintToken(sid string, session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"sub": session.User.UserID,
		"exp": session.ExpiresAt.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) parseToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrSessionNotFound
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrSessionNotFound
	}
	return sid, nil
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
