package config

import (
	"fmt"
	"time"
)

type sessionStore string

const (
	MemoryStore sessionStore = "memory"
	RedisStore  sessionStore = "redis"
)

type SessionConfig struct {
	CookieName   string        `mapstructure:"cookie_name"`
	TTL          time.Duration `mapstructure:"ttl"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
	Store        sessionStore  `mapstructure:"store"`
	RedisURL     string        `mapstructure:"redis_url"`
}

func (config SessionConfig) validate() error {
	if config.CookieName == "" {
		return fmt.Errorf("missing variable: cookie_name")
	}
	if config.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}

	switch config.Store {
	case MemoryStore:
		return nil
	case RedisStore:
		if config.RedisURL == "" {
			return fmt.Errorf("missing variable: redis_url is required for the redis store")
		}
		return nil
	default:
		return fmt.Errorf("unknown session store %q", config.Store)
	}
}

func (config SessionConfig) bindEnvironmentVariables() error {
	return bindEnvs(map[string]string{
		"session.store":         "SESSION_STORE",
		"session.redis_url":     "REDIS_URL",
		"session.secure_cookie": "SESSION_SECURE_COOKIE",
		"session.ttl":           "SESSION_TTL",
	})
}

type PasswordConfig struct {
	Memory      uint32 `mapstructure:"memory"`
	Iterations  uint32 `mapstructure:"iterations"`
	Parallelism uint8  `mapstructure:"parallelism"`
}

func (config PasswordConfig) validate() error {
	if config.Memory == 0 || config.Iterations == 0 || config.Parallelism == 0 {
		return fmt.Errorf("argon2 parameters must be positive")
	}
	return nil
}

func (config PasswordConfig) bindEnvironmentVariables() error {
	return nil
}
