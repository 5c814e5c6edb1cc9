package console

import (
	"context"
	"net/http"

	"github.com/golang/glog"
	"github.com/krancour/yuadmin/internal/session"
	"github.com/krancour/yuadmin/internal/tokenstore"
	"github.com/krancour/yuadmin/sdk/api"
	uuid "github.com/satori/go.uuid"
)

const (
	requestIDHeader   = "X-Request-Id"
	sessionCookieName = "yuadmin_session"
)

type requestIDContextKey struct{}

type userContextKey struct{}

type storeContextKey struct{}

// withRequestID tags every request with an ID that is echoed back to the
// caller and included in log lines.
func withRequestID(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewV4().String()
		}
		w.Header().Set(requestIDHeader, requestID)
		handler.ServeHTTP(
			w,
			r.WithContext(
				context.WithValue(r.Context(), requestIDContextKey{}, requestID),
			),
		)
	})
}

func requestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey{}).(string)
	return requestID
}

func userFromContext(ctx context.Context) *api.User {
	user, _ := ctx.Value(userContextKey{}).(*api.User)
	return user
}

// sessionTokens is the api.TokenSource of the console's client. It reads the
// bearer token from the session store of the request being served, so each
// operator's calls carry that operator's token and nobody else's.
type sessionTokens struct{}

func (sessionTokens) Token(ctx context.Context) (string, error) {
	store, ok := ctx.Value(storeContextKey{}).(tokenstore.Store)
	if !ok {
		return "", nil
	}
	return store.Token(ctx)
}

// routeGuard runs a bootstrap pass for every request it decorates and only
// lets authenticated requests through. Each client is told apart by a session
// cookie holding a random ID.
type routeGuard struct {
	sessions      tokenstore.Sessions
	identity      session.IdentityFetcher
	config        session.Config
	secureCookies bool
}

// Decorate decorates one http.HandlerFunc with another
func (g *routeGuard) Decorate(handle http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r, res := g.bootstrap(w, r)
		switch {
		case res.State == session.StateAuthenticated && res.Redirect != "":
			glog.Infof(
				"[%s] operator %q logged in with a token from the URL",
				requestIDFromContext(r.Context()),
				res.User.ID,
			)
			http.Redirect(w, r, res.Redirect, http.StatusSeeOther)
		case res.State == session.StateAuthenticated:
			handle(
				w,
				r.WithContext(
					context.WithValue(r.Context(), userContextKey{}, res.User),
				),
			)
		default:
			glog.V(2).Infof(
				"[%s] %s %s requires login (%s)",
				requestIDFromContext(r.Context()),
				r.Method,
				r.URL.Path,
				res.State,
			)
			http.Redirect(w, r, res.Redirect, http.StatusFound)
		}
	}
}

// bootstrap runs one pass for the client that sent r. A token in the URL
// always starts a new session, replacing the client's previous one.
// Otherwise the session named by the client's cookie is used, and a client
// without one resolves to the login outcome without calling the backend. The
// returned request carries the session's store for the API client to read.
func (g *routeGuard) bootstrap(
	w http.ResponseWriter,
	r *http.Request,
) (*http.Request, session.Result) {
	sessionID, hadCookie := g.sessionID(r)
	_, urlToken := r.URL.Query()[session.TokenParam]
	if urlToken {
		if sessionID != "" {
			if err := g.sessions.Session(sessionID).Clear(r.Context()); err != nil {
				glog.Errorf(
					"[%s] error clearing replaced session: %s",
					requestIDFromContext(r.Context()),
					err,
				)
			}
		}
		sessionID = uuid.NewV4().String()
	}

	var store tokenstore.Store
	if sessionID == "" {
		store = tokenstore.NewMemoryStore()
	} else {
		store = g.sessions.Session(sessionID)
	}
	r = r.WithContext(context.WithValue(r.Context(), storeContextKey{}, store))

	res := session.NewBootstrapper(store, g.identity, g.config).
		Bootstrap(r.Context(), r.URL)
	if res.State == session.StateAuthenticated && urlToken {
		g.setSessionCookie(w, sessionID)
	}
	if res.State.LoginRequired() {
		// Also drops sessions that never held a token
		if sessionID != "" {
			if err := store.Clear(r.Context()); err != nil {
				glog.Errorf(
					"[%s] error clearing session: %s",
					requestIDFromContext(r.Context()),
					err,
				)
			}
		}
		if hadCookie {
			g.expireSessionCookie(w)
		}
	}
	return r, res
}

// sessionID returns the client's session ID, if it sent a well-formed one,
// and whether it sent a session cookie at all.
func (g *routeGuard) sessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", false
	}
	id, err := uuid.FromString(cookie.Value)
	if err != nil {
		return "", true
	}
	return id.String(), true
}

// store returns the store of the client's session, or nil when the client
// has none.
func (g *routeGuard) store(r *http.Request) tokenstore.Store {
	sessionID, _ := g.sessionID(r)
	if sessionID == "" {
		return nil
	}
	return g.sessions.Session(sessionID)
}

func (g *routeGuard) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   g.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (g *routeGuard) expireSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   g.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
