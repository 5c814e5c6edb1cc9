// Package tokenstore holds the operator's session: the bearer token and the
// profile last returned for it by the identity endpoint. The CLI creates one
// Store at start-up; the web console keeps one per operator through
// Sessions. Nothing in this package is global. A Store never judges a token
// by itself and never expires anything.
package tokenstore

import (
	"context"

	"github.com/krancour/yuadmin/sdk/api"
)

// Store holds one session's token and cached User. Implementations are safe
// for concurrent use. Store satisfies
// api.TokenSource, so it can be handed straight to api.NewClient.
type Store interface {
	// SetToken persists token, overwriting any prior value. Storing "" is the
	// same as storing no token.
	SetToken(ctx context.Context, token string) error
	// Token returns the persisted token, or "" when there is none.
	Token(ctx context.Context) (string, error)
	// SetUser persists the last-known identity.
	SetUser(ctx context.Context, user api.User) error
	// User returns the last-known identity, or nil when there is none. It is
	// only trustworthy right after a successful identity fetch.
	User(ctx context.Context) (*api.User, error)
	// Clear removes both the token and the cached User. It is idempotent.
	Clear(ctx context.Context) error
}

// session is the persisted shape shared by the file backend and the tests.
type session struct {
	Token string    `json:"token,omitempty"`
	User  *api.User `json:"user,omitempty"`
}
