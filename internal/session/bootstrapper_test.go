package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/krancour/yuadmin/internal/tokenstore"
	"github.com/krancour/yuadmin/sdk/api"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// fakeIdentity answers Me() from a function and counts calls. It also
// records which token was in the store when it was called.
type fakeIdentity struct {
	store  tokenstore.Store
	calls  int
	tokens []string
	me     func(context.Context) (api.User, error)
}

func (f *fakeIdentity) Me(ctx context.Context) (api.User, error) {
	f.calls++
	if f.store != nil {
		token, _ := f.store.Token(ctx)
		f.tokens = append(f.tokens, token)
	}
	return f.me(ctx)
}

func accept(user api.User) func(context.Context) (api.User, error) {
	return func(context.Context) (api.User, error) {
		return user, nil
	}
}

func reject(context.Context) (api.User, error) {
	return api.User{}, &api.ErrAuthentication{Msg: "Token inválido"}
}

// brokenStore fails every operation except Clear.
type brokenStore struct {
	tokenstore.Store
	cleared bool
}

func (b *brokenStore) SetToken(context.Context, string) error {
	return errors.New("disk full")
}

func (b *brokenStore) Token(context.Context) (string, error) {
	return "", errors.New("disk on fire")
}

func (b *brokenStore) SetUser(context.Context, api.User) error {
	return errors.New("disk full")
}

func (b *brokenStore) Clear(context.Context) error {
	b.cleared = true
	return nil
}

func mustParseURL(t *testing.T, s string) *url.URL {
	u, err := url.Parse(s)
	require.NoError(t, err)
	return u
}

func TestBootstrapWithURLToken(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.SetToken(ctx, "stale"))
	identity := &fakeIdentity{
		store: store,
		me:    accept(api.User{ID: "1", Name: "Ana"}),
	}
	b := NewBootstrapper(store, identity, Config{})

	res := b.Bootstrap(ctx, mustParseURL(t, "http://console/users?token=abc123"))

	require.Equal(t, StateAuthenticated, res.State)
	require.Equal(t, &api.User{ID: "1", Name: "Ana"}, res.User)
	require.Equal(t, "/", res.Redirect)
	require.NotNil(t, res.CleanURL)
	require.Equal(t, "http://console/users", res.CleanURL.String())
	// The URL token won over the stored one and went out with the identity
	// call.
	require.Equal(t, []string{"abc123"}, identity.tokens)
	token, err := store.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc123", token)
	user, err := store.User(ctx)
	require.NoError(t, err)
	require.Equal(t, &api.User{ID: "1", Name: "Ana"}, user)
}

func TestBootstrapStripsOnlyTheTokenParameter(t *testing.T) {
	b := NewBootstrapper(
		tokenstore.NewMemoryStore(),
		&fakeIdentity{me: accept(api.User{ID: "1"})},
		Config{},
	)
	res := b.Bootstrap(
		context.Background(),
		mustParseURL(t, "/accessories?type=Chapeu&token=abc123"),
	)
	require.Equal(t, "/accessories?type=Chapeu", res.CleanURL.String())
}

func TestBootstrapWithRejectedURLToken(t *testing.T) {
	testCases := []struct {
		name          string
		config        Config
		expectedState State
		expectedURL   string
	}{
		{
			name:          "internal login",
			config:        Config{},
			expectedState: StateInternalLoginRequired,
			expectedURL:   "/login",
		},
		{
			name: "external login",
			config: Config{
				LoginTarget:      LoginTargetExternal,
				ExternalLoginURL: "https://login.yu.example/",
			},
			expectedState: StateExternalLoginRequired,
			expectedURL:   "https://login.yu.example/",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ctx := context.Background()
			store := tokenstore.NewMemoryStore()
			require.NoError(t, store.SetUser(ctx, api.User{ID: "old"}))
			b := NewBootstrapper(store, &fakeIdentity{me: reject}, testCase.config)

			res := b.Bootstrap(ctx, mustParseURL(t, "/?token=expired"))

			require.Equal(t, testCase.expectedState, res.State)
			require.Equal(t, testCase.expectedURL, res.Redirect)
			require.Nil(t, res.User)
			require.Equal(t, "/", res.CleanURL.String())
			token, err := store.Token(ctx)
			require.NoError(t, err)
			require.Empty(t, token)
			user, err := store.User(ctx)
			require.NoError(t, err)
			require.Nil(t, user)
		})
	}
}

func TestBootstrapWithoutAnyToken(t *testing.T) {
	for _, stored := range []string{"", "not set"} {
		t.Run(fmt.Sprintf("stored=%q", stored), func(t *testing.T) {
			ctx := context.Background()
			store := tokenstore.NewMemoryStore()
			if stored == "" {
				require.NoError(t, store.SetToken(ctx, ""))
			}
			identity := &fakeIdentity{me: accept(api.User{ID: "1"})}
			b := NewBootstrapper(store, identity, Config{})

			res := b.Bootstrap(ctx, mustParseURL(t, "/tasks"))

			require.Equal(t, StateInternalLoginRequired, res.State)
			require.Equal(t, "/login", res.Redirect)
			require.Nil(t, res.CleanURL)
			require.Zero(t, identity.calls)
		})
	}
}

func TestBootstrapWithStoredToken(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.SetToken(ctx, "abc123"))
	identity := &fakeIdentity{store: store, me: accept(api.User{ID: "1"})}
	b := NewBootstrapper(store, identity, Config{})

	require.Equal(t, StateChecking, b.State())

	res := b.Bootstrap(ctx, mustParseURL(t, "/tasks"))

	require.Equal(t, StateAuthenticated, res.State)
	require.Equal(t, StateAuthenticated, b.State())
	// No forced navigation; stay on the current route
	require.Empty(t, res.Redirect)
	require.Nil(t, res.CleanURL)
	require.Equal(t, []string{"abc123"}, identity.tokens)
	user, err := store.User(ctx)
	require.NoError(t, err)
	require.Equal(t, "1", user.ID)
}

func TestBootstrapWithRejectedStoredToken(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.SetToken(ctx, "expired"))
	b := NewBootstrapper(
		store,
		&fakeIdentity{me: reject},
		Config{
			LoginTarget:      LoginTargetExternal,
			ExternalLoginURL: "https://login.yu.example/",
		},
	)

	res := b.Bootstrap(ctx, mustParseURL(t, "/"))

	require.Equal(t, StateExternalLoginRequired, res.State)
	require.Equal(t, "https://login.yu.example/", res.Redirect)
	token, err := store.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestBootstrapIdentityTimeout(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.SetToken(ctx, "abc123"))
	var b Bootstrapper
	identity := &fakeIdentity{
		me: func(ctx context.Context) (api.User, error) {
			require.Equal(t, StateChecking, b.State())
			<-ctx.Done()
			return api.User{}, ctx.Err()
		},
	}
	b = NewBootstrapper(
		store,
		identity,
		Config{IdentityTimeout: 10 * time.Millisecond},
	)

	res := b.Bootstrap(ctx, mustParseURL(t, "/"))

	require.Equal(t, StateInternalLoginRequired, res.State)
	token, err := store.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestBootstrapWithBrokenStore(t *testing.T) {
	t.Run("cannot store URL token", func(t *testing.T) {
		store := &brokenStore{}
		identity := &fakeIdentity{me: accept(api.User{ID: "1"})}
		b := NewBootstrapper(store, identity, Config{})
		res := b.Bootstrap(context.Background(), mustParseURL(t, "/?token=abc"))
		require.Equal(t, StateInternalLoginRequired, res.State)
		require.Zero(t, identity.calls)
		require.True(t, store.cleared)
		require.Equal(t, "/", res.CleanURL.String())
	})

	t.Run("cannot read stored token", func(t *testing.T) {
		store := &brokenStore{}
		identity := &fakeIdentity{me: accept(api.User{ID: "1"})}
		b := NewBootstrapper(store, identity, Config{})
		res := b.Bootstrap(context.Background(), mustParseURL(t, "/"))
		require.Equal(t, StateInternalLoginRequired, res.State)
		require.Zero(t, identity.calls)
	})
}

func TestBootstrapToken(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	b := NewBootstrapper(
		store,
		&fakeIdentity{me: accept(api.User{ID: "1"})},
		Config{HomePath: "/dashboard"},
	)
	res := b.BootstrapToken(ctx, "abc123")
	require.Equal(t, StateAuthenticated, res.State)
	require.Equal(t, "/dashboard", res.Redirect)
	require.Nil(t, res.CleanURL)
	token, err := store.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc123", token)
}

func TestLoginURL(t *testing.T) {
	require.Equal(
		t,
		"/login",
		NewBootstrapper(nil, nil, Config{}).LoginURL(),
	)
	require.Equal(
		t,
		"/entrar",
		NewBootstrapper(nil, nil, Config{InternalLoginPath: "/entrar"}).LoginURL(),
	)
	require.Equal(
		t,
		"https://login.yu.example/",
		NewBootstrapper(
			nil,
			nil,
			Config{
				LoginTarget:      LoginTargetExternal,
				ExternalLoginURL: "https://login.yu.example/",
			},
		).LoginURL(),
	)
}

// TestBootstrapAgainstBackend wires a real API client to the same store the
// bootstrapper writes to and checks what actually goes over the wire.
func TestBootstrapAgainstBackend(t *testing.T) {
	var authHeaders []string
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/users/me", r.URL.Path)
				authHeaders = append(authHeaders, r.Header.Get("Authorization"))
				if r.Header.Get("Authorization") != "Bearer abc123" {
					w.WriteHeader(http.StatusUnauthorized)
					fmt.Fprintln(w, `{"msg":"Token inválido"}`)
					return
				}
				fmt.Fprintln(w, `{"_id":"1","name":"Ana"}`)
			},
		),
	)
	defer server.Close()
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	client := api.NewClient(server.URL, store, false)
	b := NewBootstrapper(store, client.Users(), Config{})

	res := b.Bootstrap(ctx, mustParseURL(t, "/?token=abc123"))
	require.Equal(t, StateAuthenticated, res.State)
	require.Equal(t, "Ana", res.User.Name)
	require.Empty(t, res.CleanURL.RawQuery)

	// A reload validates the stored token again
	res = b.Bootstrap(ctx, mustParseURL(t, "/"))
	require.Equal(t, StateAuthenticated, res.State)

	res = b.Bootstrap(ctx, mustParseURL(t, "/?token=expired"))
	require.Equal(t, StateInternalLoginRequired, res.State)

	// Nothing left in the store, so no identity call at all
	res = b.Bootstrap(ctx, mustParseURL(t, "/"))
	require.Equal(t, StateInternalLoginRequired, res.State)

	require.Equal(
		t,
		[]string{"Bearer abc123", "Bearer abc123", "Bearer expired"},
		authHeaders,
	)
}

func TestParseLoginTarget(t *testing.T) {
	target, err := ParseLoginTarget("")
	require.NoError(t, err)
	require.Equal(t, LoginTargetInternal, target)
	target, err = ParseLoginTarget(" External ")
	require.NoError(t, err)
	require.Equal(t, LoginTargetExternal, target)
	_, err = ParseLoginTarget("sideways")
	require.Error(t, err)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "Checking", StateChecking.String())
	require.Equal(t, "Authenticated", StateAuthenticated.String())
	require.True(t, StateExternalLoginRequired.LoginRequired())
	require.False(t, StateAuthenticated.LoginRequired())
}
