package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chooy/admin-console/internal/api/metrics"
	"github.com/chooy/admin-console/internal/core/domain"
)

// defaultTimeout is the connection-level ceiling shared by every upstream
// request. Catalog uploads can be slow, hence the generous value.
const defaultTimeout = 120 * time.Second

var (
	// ErrUnreachable marks transport failures: no response reached us at all.
	// Callers must handle it separately from a Fault, which the upstream
	// actually produced.
	ErrUnreachable = errors.New("upstream unreachable")

	// ErrMalformedResponse marks a 2xx body whose shape could not be
	// recognized. Surfaced loudly instead of being masked as an empty result.
	ErrMalformedResponse = errors.New("malformed upstream response")

	// ErrTooManyPages aborts a fetch-all aggregation that exceeded the page
	// cap, instead of growing without bound.
	ErrTooManyPages = errors.New("upstream aggregation exceeded page cap")
)

// TokenSource supplies the bearer token for one request. An empty token sends
// the request unauthenticated; the upstream rejects it with 401 if it cares.
type TokenSource interface {
	Token(ctx context.Context) string
}

// SessionTokenSource reads the access token of the session the auth gate
// attached to the request context.
type SessionTokenSource struct{}

func (SessionTokenSource) Token(ctx context.Context) string {
	if s, ok := domain.SessionFromContext(ctx); ok {
		return s.AccessToken
	}
	return ""
}

// Client is the shared HTTP layer under every resource client: base URL
// joining, bearer injection, the transport failure taxonomy, and response
// normalization.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	resource    string // metrics label
}

// do executes one request and returns the normalized envelope. Only transport
// failures and malformed bodies come back as Go errors; every reply the
// upstream actually produced becomes an Envelope.
func (c *Client) do(ctx context.Context, req request, fallback string) (*Envelope, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, req.body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	if token := c.tokens.Token(ctx); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(req.resource, "unreachable").Inc()
		c.log.Warn().Err(err).Str("method", req.method).Str("path", req.path).Msg("upstream request failed")
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(req.resource, "unreachable").Inc()
		return nil, fmt.Errorf("%w: read body: %v", ErrUnreachable, err)
	}
	metrics.UpstreamRequestDuration.WithLabelValues(req.resource).Observe(time.Since(start).Seconds())

	env, err := Normalize(resp.StatusCode, body, fallback)
	switch {
	case err != nil:
		metrics.UpstreamRequestsTotal.WithLabelValues(req.resource, "malformed").Inc()
		c.log.Error().Err(err).Str("path", req.path).Int("status", resp.StatusCode).Msg("unrecognized upstream response shape")
		return nil, err
	case !env.IsSuccess:
		metrics.UpstreamRequestsTotal.WithLabelValues(req.resource, "fault").Inc()
	default:
		metrics.UpstreamRequestsTotal.WithLabelValues(req.resource, "success").Inc()
	}
	return env, nil
}
