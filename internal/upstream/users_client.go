package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/chooy/admin-console/internal/api/metrics"
	"github.com/chooy/admin-console/internal/core/domain"
)

const (
	// listPageSize is the fixed page size of the fetch-all completeness loop.
	listPageSize = 100
	// maxListPages bounds the loop; 5000 accounts is far beyond what the
	// in-memory dashboards can usefully present anyway.
	maxListPages = 50
)

// UsersClient wraps the platform's account endpoints.
type UsersClient struct {
	c *Client
}

func NewUsersClient(c *Client) *UsersClient {
	return &UsersClient{c: c}
}

// List fetches one page of accounts.
func (u *UsersClient) List(ctx context.Context, pageNumber, pageSize int) ([]domain.User, error) {
	q := url.Values{}
	q.Set("pageNumber", strconv.Itoa(pageNumber))
	q.Set("pageSize", strconv.Itoa(pageSize))

	env, err := u.c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/User/read",
		query:    q,
		resource: "users",
	}, "could not load the user list")
	if err != nil {
		return nil, err
	}
	if !env.IsSuccess {
		return nil, env.Failure("could not load the user list")
	}
	docs, err := decodeList[userDoc](env.Value, "users")
	if err != nil {
		return nil, err
	}
	return usersToDomain(docs), nil
}

// ListAll concatenates fixed-size pages until a page comes back shorter than
// requested. The loop is sequential by construction: each request depends on
// the previous page's length.
func (u *UsersClient) ListAll(ctx context.Context) ([]domain.User, error) {
	var all []domain.User
	for page := 1; ; page++ {
		if page > maxListPages {
			return nil, ErrTooManyPages
		}
		batch, err := u.List(ctx, page, listPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < listPageSize {
			metrics.AggregationPages.Observe(float64(page))
			return all, nil
		}
	}
}

// UpdateRole assigns a role to an account. The upstream takes both values as
// query parameters with an empty body.
func (u *UsersClient) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("roleName", string(role))

	env, err := u.c.do(ctx, request{
		method:   http.MethodPut,
		path:     "/User/role",
		query:    q,
		resource: "users",
	}, "could not update the user role")
	if err != nil {
		return err
	}
	if !env.IsSuccess {
		return env.Failure("could not update the user role")
	}
	return nil
}

// SetActivation enables or disables an account.
func (u *UsersClient) SetActivation(ctx context.Context, userID string, active bool) error {
	q := url.Values{}
	q.Set("isActive", strconv.FormatBool(active))

	env, err := u.c.do(ctx, request{
		method:   http.MethodPut,
		path:     "/User/" + url.PathEscape(userID) + "/activation",
		query:    q,
		resource: "users",
	}, "could not update the activation status")
	if err != nil {
		return err
	}
	if !env.IsSuccess {
		return env.Failure("could not update the activation status")
	}
	return nil
}
