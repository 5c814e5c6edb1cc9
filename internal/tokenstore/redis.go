package tokenstore

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis"
	"github.com/kelseyhightower/envconfig"
	"github.com/krancour/yuadmin/sdk/api"
	"github.com/pkg/errors"
)

const redisEnvconfigPrefix = "REDIS"

// redisConfig represents common configuration options for a Redis connection
type redisConfig struct {
	Host      string `envconfig:"HOST" required:"true"`
	Port      int    `envconfig:"PORT" default:"6379"`
	Password  string `envconfig:"PASSWORD"`
	DB        int    `envconfig:"DB"`
	EnableTLS bool   `envconfig:"ENABLE_TLS"`
	Prefix    string `envconfig:"PREFIX" default:"yuadmin:"`
}

// RedisClient returns a connection to a Redis database specified by
// environment variables, along with the key prefix to use.
func RedisClient() (*redis.Client, string, error) {
	c := redisConfig{}
	if err := envconfig.Process(redisEnvconfigPrefix, &c); err != nil {
		return nil, "", errors.Wrap(
			err,
			"error getting redis configuration from environment",
		)
	}
	redisOpts := &redis.Options{
		Addr:       fmt.Sprintf("%s:%d", c.Host, c.Port),
		Password:   c.Password,
		DB:         c.DB,
		MaxRetries: 5,
	}
	if c.EnableTLS {
		redisOpts.TLSConfig = &tls.Config{
			ServerName: c.Host,
		}
	}
	return redis.NewClient(redisOpts), c.Prefix, nil
}

type redisStore struct {
	redisClient *redis.Client
	tokenKey    string
	userKey     string
}

// NewRedisStore returns a Store kept in Redis. Several console replicas can
// share one session this way.
func NewRedisStore(redisClient *redis.Client, prefix string) Store {
	return &redisStore{
		redisClient: redisClient,
		tokenKey:    fmt.Sprintf("%stoken", prefix),
		userKey:     fmt.Sprintf("%suser", prefix),
	}
}

func (r *redisStore) SetToken(ctx context.Context, token string) error {
	if err := r.redisClient.WithContext(ctx).Set(
		r.tokenKey,
		token,
		0,
	).Err(); err != nil {
		return errors.Wrap(err, "error storing token in redis")
	}
	return nil
}

func (r *redisStore) Token(ctx context.Context) (string, error) {
	token, err := r.redisClient.WithContext(ctx).Get(r.tokenKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "error reading token from redis")
	}
	return token, nil
}

func (r *redisStore) SetUser(ctx context.Context, user api.User) error {
	userBytes, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "error marshaling user")
	}
	if err := r.redisClient.WithContext(ctx).Set(
		r.userKey,
		userBytes,
		0,
	).Err(); err != nil {
		return errors.Wrap(err, "error storing user in redis")
	}
	return nil
}

func (r *redisStore) User(ctx context.Context) (*api.User, error) {
	userBytes, err := r.redisClient.WithContext(ctx).Get(r.userKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error reading user from redis")
	}
	user := &api.User{}
	if err := json.Unmarshal(userBytes, user); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling user")
	}
	return user, nil
}

func (r *redisStore) Clear(ctx context.Context) error {
	if err := r.redisClient.WithContext(ctx).Del(
		r.tokenKey,
		r.userKey,
	).Err(); err != nil {
		return errors.Wrap(err, "error clearing session from redis")
	}
	return nil
}
