package api

import "context"

// TokenSource supplies the bearer token attached to every outbound request.
// It is consulted once per request. An empty token means "not logged in" and
// results in a request without an Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token(context.Context) (string, error) {
	return string(s), nil
}
