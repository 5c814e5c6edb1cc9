package tokenstore

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envconfigPrefix = "YUADMIN"

const (
	// BackendFile keeps the session in a JSON file in the operator's home
	// directory.
	BackendFile = "file"
	// BackendRedis keeps the session in Redis.
	BackendRedis = "redis"
	// BackendMemory keeps the session in process memory only.
	BackendMemory = "memory"
)

type config struct {
	Backend     string `envconfig:"TOKEN_STORE" default:"file"`
	SessionFile string `envconfig:"SESSION_FILE"`
	SessionsDir string `envconfig:"SESSIONS_DIR"`
}

func getConfig() (config, error) {
	c := config{}
	err := envconfig.Process(envconfigPrefix, &c)
	return c, errors.Wrap(
		err,
		"error getting token store configuration from environment",
	)
}

// NewStoreFromEnvironment returns the Store selected by YUADMIN_TOKEN_STORE.
func NewStoreFromEnvironment() (Store, error) {
	c, err := getConfig()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(c.Backend) {
	case BackendFile:
		sessionFile := c.SessionFile
		if sessionFile == "" {
			if sessionFile, err = DefaultSessionFile(); err != nil {
				return nil, err
			}
		}
		return NewFileStore(sessionFile), nil
	case BackendRedis:
		redisClient, prefix, err := RedisClient()
		if err != nil {
			return nil, err
		}
		return NewRedisStore(redisClient, prefix), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, errors.Errorf("unknown token store backend %q", c.Backend)
	}
}

// NewSessionsFromEnvironment returns the per-operator Sessions selected by
// YUADMIN_TOKEN_STORE.
func NewSessionsFromEnvironment() (Sessions, error) {
	c, err := getConfig()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(c.Backend) {
	case BackendFile:
		sessionsDir := c.SessionsDir
		if sessionsDir == "" {
			if sessionsDir, err = DefaultSessionsDir(); err != nil {
				return nil, err
			}
		}
		return NewFileSessions(sessionsDir), nil
	case BackendRedis:
		redisClient, prefix, err := RedisClient()
		if err != nil {
			return nil, err
		}
		return NewRedisSessions(redisClient, prefix), nil
	case BackendMemory:
		return NewMemorySessions(), nil
	default:
		return nil, errors.Errorf("unknown token store backend %q", c.Backend)
	}
}
