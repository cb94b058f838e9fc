// Package redis stores plans in Redis so several planner processes can share
// search results.
package redis

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config describes a single-node Redis connection and how plans are keyed.
type Config struct {
	Address  string
	Username string
	Password string
	DB       int

	// TLS is set for rediss:// URLs.
	TLS *tls.Config

	MaxRetries   int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// KeyPrefix namespaces every plan key.
	KeyPrefix string

	// DefaultTTL is used for writes that carry no TTL.
	DefaultTTL time.Duration
}

// DefaultConfig points at a local server with short timeouts, since a cache
// that stalls planning is worse than a miss.
func DefaultConfig() Config {
	return Config{
		Address:      "localhost:6379",
		MaxRetries:   3,
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		KeyPrefix:    "goap:",
		DefaultTTL:   time.Hour,
	}
}

// ParseURL reads address, credentials, database and TLS from a redis:// or
// rediss:// URL. Everything else keeps its default.
func ParseURL(rawURL string) (Config, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return Config{}, fmt.Errorf("parse redis url: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Address = opts.Addr
	cfg.Username = opts.Username
	cfg.Password = opts.Password
	cfg.DB = opts.DB
	cfg.TLS = opts.TLSConfig
	return cfg, nil
}

func (c Config) options() *redis.Options {
	return &redis.Options{
		Addr:         c.Address,
		Username:     c.Username,
		Password:     c.Password,
		DB:           c.DB,
		TLSConfig:    c.TLS,
		ClientName:   "goap",
		MaxRetries:   c.MaxRetries,
		PoolSize:     c.PoolSize,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}

// ConfigOption adjusts a Config before NewCache dials.
type ConfigOption func(*Config)

func WithAddress(addr string) ConfigOption {
	return func(c *Config) { c.Address = addr }
}

func WithPassword(password string) ConfigOption {
	return func(c *Config) { c.Password = password }
}

func WithDB(db int) ConfigOption {
	return func(c *Config) { c.DB = db }
}

func WithKeyPrefix(prefix string) ConfigOption {
	return func(c *Config) { c.KeyPrefix = prefix }
}

func WithDefaultTTL(ttl time.Duration) ConfigOption {
	return func(c *Config) { c.DefaultTTL = ttl }
}

// WithTimeouts sets dial, read and write timeouts in that order.
func WithTimeouts(dial, read, write time.Duration) ConfigOption {
	return func(c *Config) {
		c.DialTimeout, c.ReadTimeout, c.WriteTimeout = dial, read, write
	}
}
