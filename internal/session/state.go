// Package session implements the authentication bootstrap shared by the
// console and the CLI.
//
// A pass starts in StateChecking and always ends in exactly one of
// StateAuthenticated, StateInternalLoginRequired or
// StateExternalLoginRequired. The identity endpoint is the only judge of a
// token: whenever it rejects one, the token store is cleared.
package session

import (
	"strings"

	"github.com/pkg/errors"
)

// State is the state of a bootstrap pass.
type State int

const (
	// StateChecking means the pass has not resolved yet. Nothing protected is
	// rendered in this state.
	StateChecking State = iota
	// StateAuthenticated means the identity endpoint accepted the token.
	StateAuthenticated
	// StateInternalLoginRequired means the operator must go to the console's
	// own login screen.
	StateInternalLoginRequired
	// StateExternalLoginRequired means the operator must go to the external
	// login service.
	StateExternalLoginRequired
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "Checking"
	case StateAuthenticated:
		return "Authenticated"
	case StateInternalLoginRequired:
		return "InternalLoginRequired"
	case StateExternalLoginRequired:
		return "ExternalLoginRequired"
	}
	return "Unknown"
}

// LoginRequired reports whether s is one of the two login outcomes.
func (s State) LoginRequired() bool {
	return s == StateInternalLoginRequired || s == StateExternalLoginRequired
}

// LoginTarget selects where unauthenticated operators are sent.
type LoginTarget string

const (
	// LoginTargetInternal sends operators to the console's own login route.
	LoginTargetInternal LoginTarget = "internal"
	// LoginTargetExternal sends operators to an external login service that
	// comes back with ?token=.
	LoginTargetExternal LoginTarget = "external"
)

// ParseLoginTarget parses "internal" or "external" (case insensitive).
func ParseLoginTarget(s string) (LoginTarget, error) {
	switch LoginTarget(strings.ToLower(strings.TrimSpace(s))) {
	case "", LoginTargetInternal:
		return LoginTargetInternal, nil
	case LoginTargetExternal:
		return LoginTargetExternal, nil
	}
	return "", errors.Errorf("unknown login target %q", s)
}
