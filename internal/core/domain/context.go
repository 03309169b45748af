package domain

import "context"

type sessionContextKey struct{}

// SessionToContext attaches the resolved session to a request context so
// downstream callers (notably the upstream bearer injection) can read it.
func SessionToContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFromContext returns the session attached by the auth gate, if any.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*Session)
	return s, ok
}
