package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/chooy/admin-console/internal/core/domain"
)

// AuthClient wraps the platform's identity endpoint.
type AuthClient struct {
	c *Client
}

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginValue struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	ExpiresAt    apiTime `json:"expiresAt"`
	User         struct {
		UserID string   `json:"userId"`
		Name   string   `json:"name"`
		Email  string   `json:"email"`
		Roles  []string `json:"roles"`
	} `json:"user"`
}

// Login exchanges credentials for an upstream session. Role tags the console
// does not recognize are dropped with a warning rather than failing the login.
func (a *AuthClient) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	body, err := json.Marshal(loginPayload{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	env, err := a.c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/User/login",
		body:        bytes.NewReader(body),
		contentType: "application/json",
		resource:    "auth",
	}, "login failed")
	if err != nil {
		return nil, err
	}
	if !env.IsSuccess {
		return nil, env.Failure("login failed")
	}

	var value loginValue
	if err := decodeValue(env.Value, &value); err != nil {
		return nil, err
	}

	roles, err := domain.ParseRoles(value.User.Roles)
	if err != nil {
		a.c.log.Warn().Err(err).Str("email", email).Msg("dropping unrecognized role tags")
	}

	return &domain.Session{
		AccessToken:  value.AccessToken,
		RefreshToken: value.RefreshToken,
		ExpiresAt:    value.ExpiresAt.Time,
		User: &domain.SessionUser{
			UserID: value.User.UserID,
			Name:   value.User.Name,
			Email:  value.User.Email,
			Roles:  roles,
		},
	}, nil
}
