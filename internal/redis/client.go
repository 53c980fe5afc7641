// Package redis wraps the go-redis client so repositories depend on an
// interface that tests can swap out.
package redis

import (
	"crypto/tls"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/campus-api/internal/errors"
)

// Config configures the connection. Addr is host:port or a
// redis:// / rediss:// URL; a URL's password and db win over the fields.
type Config struct {
	Addr     string
	Password string
	DB       int

	PoolSize    int
	MaxRetries  int
	DialTimeout time.Duration
}

// Validate ensures the address is usable
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Addr", c.Addr, vb)
	if c.DB < 0 {
		vb.Fieldf("DB", "must not be negative, got %d", c.DB)
	}
	if c.PoolSize < 0 {
		vb.Fieldf("PoolSize", "must not be negative, got %d", c.PoolSize)
	}
	return vb.Build()
}

func (c *Config) options() (*redis.Options, error) {
	opts := &redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	}

	if strings.Contains(c.Addr, "://") {
		parsed, err := redis.ParseURL(c.Addr)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid redis url")
		}
		opts = parsed
		if opts.TLSConfig != nil {
			opts.TLSConfig.MinVersion = tls.VersionTLS12
		}
	}

	if c.PoolSize > 0 {
		opts.PoolSize = c.PoolSize
	}
	if c.MaxRetries != 0 {
		opts.MaxRetries = c.MaxRetries
	}
	if c.DialTimeout > 0 {
		opts.DialTimeout = c.DialTimeout
	}
	return opts, nil
}

// NewClient creates a client for a single redis instance. It does not dial;
// the first command does.
func NewClient(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid redis config")
	}

	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}
