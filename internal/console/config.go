package console

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/krancour/yuadmin/internal/session"
	"github.com/pkg/errors"
)

const envconfigPrefix = "YUADMIN"

// Config is the configuration of the web console.
type Config struct {
	// Port is the port the console listens on.
	Port int `envconfig:"PORT" default:"8080"`
	// TLSEnabled serves over TLS when the certificate and key both exist.
	TLSEnabled  bool   `envconfig:"TLS_ENABLED"`
	TLSCertPath string `envconfig:"TLS_CERT_PATH" default:"/app/certs/tls.crt"`
	TLSKeyPath  string `envconfig:"TLS_KEY_PATH" default:"/app/certs/tls.key"`
	// APIAddress is the address of the YU backend.
	APIAddress string `envconfig:"API_ADDRESS"`
	// APIIgnoreCertWarnings skips verification of the backend's certificate.
	APIIgnoreCertWarnings bool `envconfig:"API_IGNORE_CERT_WARNINGS"`
	// LoginTarget is "internal" or "external".
	LoginTarget      string        `envconfig:"LOGIN_TARGET" default:"internal"`
	ExternalLoginURL string        `envconfig:"EXTERNAL_LOGIN_URL"`
	IdentityTimeout  time.Duration `envconfig:"IDENTITY_TIMEOUT" default:"30s"`
	// AllowedOrigins lists the origins allowed to call the console across
	// origins. Empty means any origin.
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`
}

// GetConfig reads the console's configuration from the environment.
func GetConfig() (Config, error) {
	config := Config{}
	if err := envconfig.Process(envconfigPrefix, &config); err != nil {
		return config, errors.Wrap(
			err,
			"error getting console configuration from environment",
		)
	}
	if _, err := config.SessionConfig(); err != nil {
		return config, err
	}
	return config, nil
}

// SessionConfig returns the bootstrap configuration the console runs with.
func (c Config) SessionConfig() (session.Config, error) {
	loginTarget, err := session.ParseLoginTarget(c.LoginTarget)
	if err != nil {
		return session.Config{}, err
	}
	if loginTarget == session.LoginTargetExternal && c.ExternalLoginURL == "" {
		return session.Config{}, errors.New(
			"an external login URL is required when the login target is external",
		)
	}
	return session.Config{
		LoginTarget:       loginTarget,
		InternalLoginPath: loginPath,
		ExternalLoginURL:  c.ExternalLoginURL,
		HomePath:          homePath,
		IdentityTimeout:   c.IdentityTimeout,
	}, nil
}
