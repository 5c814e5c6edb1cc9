package session

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/krancour/yuadmin/internal/tokenstore"
	"github.com/krancour/yuadmin/sdk/api"
)

// TokenParam is the URL query parameter through which an external login
// service hands a freshly issued token to the console.
const TokenParam = "token"

// IdentityFetcher retrieves the User that owns the current bearer token. A
// rejection means the token is not (or no longer) valid. api.UsersClient
// satisfies this interface.
type IdentityFetcher interface {
	Me(context.Context) (api.User, error)
}

// Result is the resolution of one bootstrap pass.
type Result struct {
	// State is the terminal state the pass resolved to. It is never
	// StateChecking.
	State State
	// User is the identity returned by the identity endpoint during this pass.
	// It is nil unless State is StateAuthenticated.
	User *api.User
	// CleanURL is the URL the pass was run for, minus the token parameter. It
	// is nil when that URL carried no token. Callers should replace the
	// visible URL with it rather than navigate to it.
	CleanURL *url.URL
	// Redirect is where to navigate next. Empty means stay where you are.
	Redirect string
}

// Bootstrapper reconciles "token in the URL", "token in storage" and "no
// token at all" into exactly one navigation outcome.
type Bootstrapper interface {
	// Bootstrap runs one pass for the given URL.
	Bootstrap(ctx context.Context, current *url.URL) Result
	// BootstrapToken runs one pass as if the given token had arrived in the
	// URL. An empty token means "nothing in the URL" and falls back to the
	// stored token.
	BootstrapToken(ctx context.Context, token string) Result
	// LoginURL returns where unauthenticated navigation should go.
	LoginURL() string
	// State returns the state of the most recent pass. It is StateChecking
	// before the first pass resolves and while a pass is in flight.
	State() State
}

type bootstrapper struct {
	store    tokenstore.Store
	identity IdentityFetcher
	config   Config
	stateMu  sync.RWMutex
	state    State
}

// NewBootstrapper returns a Bootstrapper that keeps the session in store and
// validates tokens with identity. The store must be the same one the
// identity fetcher's client reads its bearer token from.
func NewBootstrapper(
	store tokenstore.Store,
	identity IdentityFetcher,
	config Config,
) Bootstrapper {
	return &bootstrapper{
		store:    store,
		identity: identity,
		config:   config.withDefaults(),
	}
}

func (b *bootstrapper) LoginURL() string {
	if b.config.LoginTarget == LoginTargetExternal {
		return b.config.ExternalLoginURL
	}
	return b.config.InternalLoginPath
}

func (b *bootstrapper) Bootstrap(ctx context.Context, current *url.URL) Result {
	urlToken := ""
	var cleanURL *url.URL
	if current != nil {
		query := current.Query()
		if _, ok := query[TokenParam]; ok {
			urlToken = query.Get(TokenParam)
			query.Del(TokenParam)
			u := *current
			u.RawQuery = query.Encode()
			cleanURL = &u
		}
	}
	res := b.BootstrapToken(ctx, urlToken)
	res.CleanURL = cleanURL
	return res
}

func (b *bootstrapper) State() State {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()
	return b.state
}

func (b *bootstrapper) setState(state State) {
	b.stateMu.Lock()
	defer b.stateMu.Unlock()
	b.state = state
}

func (b *bootstrapper) BootstrapToken(ctx context.Context, token string) Result {
	b.setState(StateChecking)
	var res Result
	if token != "" {
		res = b.fromURLToken(ctx, token)
	} else {
		res = b.fromStoredToken(ctx)
	}
	b.setState(res.State)
	return res
}

func (b *bootstrapper) fromURLToken(ctx context.Context, token string) Result {
	// The token has to be in the store before the identity call goes out so
	// that the call carries it.
	if err := b.store.SetToken(ctx, token); err != nil {
		glog.Errorf("error storing token from URL: %s", err)
		return b.loginRequired(ctx)
	}
	user, err := b.fetchIdentity(ctx)
	if err != nil {
		glog.Warningf("token from URL was rejected: %s", err)
		return b.loginRequired(ctx)
	}
	res := b.authenticated(ctx, user)
	if res.State == StateAuthenticated {
		res.Redirect = b.config.HomePath
	}
	return res
}

func (b *bootstrapper) fromStoredToken(ctx context.Context) Result {
	token, err := b.store.Token(ctx)
	if err != nil {
		glog.Errorf("error reading stored token: %s", err)
		return b.loginRequired(ctx)
	}
	if token == "" {
		return b.loginOutcome()
	}
	user, err := b.fetchIdentity(ctx)
	if err != nil {
		glog.Warningf("stored token was rejected: %s", err)
		return b.loginRequired(ctx)
	}
	return b.authenticated(ctx, user)
}

func (b *bootstrapper) fetchIdentity(ctx context.Context) (api.User, error) {
	if b.config.IdentityTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.config.IdentityTimeout)
		defer cancel()
	}
	return b.identity.Me(ctx)
}

func (b *bootstrapper) authenticated(ctx context.Context, user api.User) Result {
	if err := b.store.SetUser(ctx, user); err != nil {
		glog.Errorf("error caching user %q: %s", user.ID, err)
		return b.loginRequired(ctx)
	}
	return Result{
		State: StateAuthenticated,
		User:  &user,
	}
}

// loginRequired clears the session before resolving to the login outcome.
func (b *bootstrapper) loginRequired(ctx context.Context) Result {
	if err := b.store.Clear(ctx); err != nil {
		glog.Errorf("error clearing session: %s", err)
	}
	return b.loginOutcome()
}

func (b *bootstrapper) loginOutcome() Result {
	state := StateInternalLoginRequired
	if b.config.LoginTarget == LoginTargetExternal {
		state = StateExternalLoginRequired
	}
	return Result{
		State:    state,
		Redirect: b.LoginURL(),
	}
}

// Config is the configuration of a Bootstrapper.
type Config struct {
	// LoginTarget selects where unauthenticated operators are sent.
	LoginTarget LoginTarget
	// InternalLoginPath is the console's own login route. Defaults to /login.
	InternalLoginPath string
	// ExternalLoginURL is the login service used with LoginTargetExternal.
	ExternalLoginURL string
	// HomePath is where a successful URL-token login lands. Defaults to /.
	HomePath string
	// IdentityTimeout bounds the identity call. Zero means no bound. Running
	// out of time counts as a rejected token.
	IdentityTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.LoginTarget == "" {
		c.LoginTarget = LoginTargetInternal
	}
	if c.InternalLoginPath == "" {
		c.InternalLoginPath = "/login"
	}
	if c.HomePath == "" {
		c.HomePath = "/"
	}
	return c
}
