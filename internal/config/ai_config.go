package config

import (
	"errors"
	"fmt"
	"time"
)

type AIConfig struct {
	Key                  string        `mapstructure:"key"`
	Model                string        `mapstructure:"model"`
	Timeout              time.Duration `mapstructure:"timeout"`
	MaxRequestsPerMinute float32       `mapstructure:"max_requests_per_minute"`
	MaxRequestsPerDay    float32       `mapstructure:"max_requests_per_day"`
}

// Enabled is false when no key is configured; every AI operation then answers with its fallback.
func (config AIConfig) Enabled() bool {
	return config.Key != ""
}

func (config AIConfig) validate() error {
	var errs []error

	if config.Model == "" {
		errs = append(errs, fmt.Errorf("missing variable: model"))
	}
	if config.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive"))
	}
	if config.MaxRequestsPerMinute < 0 || config.MaxRequestsPerDay < 0 {
		errs = append(errs, fmt.Errorf("rate limits must not be negative"))
	}

	return errors.Join(errs...)
}

func (config AIConfig) bindEnvironmentVariables() error {
	return bindEnvs(map[string]string{
		"ai.key":                     "AI_KEY",
		"ai.model":                   "AI_MODEL",
		"ai.timeout":                 "AI_TIMEOUT",
		"ai.max_requests_per_minute": "AI_MAX_REQUESTS_PER_MINUTE",
		"ai.max_requests_per_day":    "AI_MAX_REQUESTS_PER_DAY",
	})
}
