package console

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/krancour/yuadmin/internal/file"
	"github.com/krancour/yuadmin/internal/session"
	"github.com/krancour/yuadmin/internal/tokenstore"
	"github.com/krancour/yuadmin/sdk/api"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const (
	homePath  = "/"
	loginPath = "/login"
)

// Server is an interface for the component that serves the web console.
type Server interface {
	// ListenAndServe causes the console to start serving HTTP requests. It
	// blocks until the context is canceled or an error occurs.
	ListenAndServe(context.Context) error
}

type server struct {
	config  Config
	client  api.Client
	guard   *routeGuard
	handler http.Handler
}

// NewServer returns a web console that keeps each operator's session in
// sessions and talks to the backend on their behalf.
func NewServer(config Config, sessions tokenstore.Sessions) (Server, error) {
	sessionConfig, err := config.SessionConfig()
	if err != nil {
		return nil, err
	}
	return newServer(
		config,
		sessionConfig,
		api.NewClient(
			config.APIAddress,
			sessionTokens{},
			config.APIIgnoreCertWarnings,
		),
		sessions,
	), nil
}

// newServer wires the console. client must read its bearer token through
// sessionTokens.
func newServer(
	config Config,
	sessionConfig session.Config,
	client api.Client,
	sessions tokenstore.Sessions,
) *server {
	s := &server{
		config: config,
		client: client,
		guard: &routeGuard{
			sessions:      sessions,
			identity:      client.Users(),
			config:        sessionConfig,
			secureCookies: config.TLSEnabled,
		},
	}

	router := mux.NewRouter()
	router.StrictSlash(true)

	// Health check
	router.HandleFunc(
		"/healthz",
		s.checkHealth, // No filters applied to this request
	).Methods(http.MethodGet)

	router.HandleFunc(loginPath, s.login).Methods(http.MethodGet)
	router.HandleFunc("/logout", s.logout).Methods(http.MethodPost)

	s.registerPages(router)

	// Unknown routes are guarded too, so an anonymous visitor always lands on
	// the login screen.
	router.NotFoundHandler = s.guard.Decorate(s.notFound)

	corsOptions := cors.Options{
		AllowedMethods: []string{"DELETE", "GET", "POST", "PUT"},
	}
	if len(config.AllowedOrigins) > 0 {
		corsOptions.AllowedOrigins = config.AllowedOrigins
		corsOptions.AllowCredentials = true
	}
	s.handler = withRequestID(cors.New(corsOptions).Handler(router))
	return s
}

func (s *server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", s.config.Port),
	}
	errCh := make(chan error, 1)
	if s.config.TLSEnabled &&
		file.Exists(s.config.TLSCertPath) &&
		file.Exists(s.config.TLSKeyPath) {
		glog.Infof(
			"Console is listening with TLS enabled on 0.0.0.0:%d",
			s.config.Port,
		)
		srv.Handler = s.handler
		go func() {
			errCh <- srv.ListenAndServeTLS(
				s.config.TLSCertPath,
				s.config.TLSKeyPath,
			)
		}()
	} else {
		glog.Infof(
			"Console is listening without TLS on 0.0.0.0:%d",
			s.config.Port,
		)
		srv.Handler = h2c.NewHandler(s.handler, &http2.Server{})
		go func() {
			errCh <- srv.ListenAndServe()
		}()
	}
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			10*time.Second,
		)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

func (s *server) checkHealth(w http.ResponseWriter, r *http.Request) {
	s.serveRequest(
		inboundRequest{
			w: w,
			r: r,
			endpointLogic: func() (interface{}, error) {
				return struct{}{}, nil
			},
			successCode: http.StatusOK,
		},
	)
}
