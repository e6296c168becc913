package config

import (
	"errors"
	"fmt"
	"time"
)

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MetricsEnabled  bool          `mapstructure:"metrics_enabled"`
}

func (config ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", config.Port)
}

func (config ServerConfig) validate() error {
	var errs []error

	if config.Port <= 0 || config.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", config.Port))
	}
	if config.ReadTimeout <= 0 || config.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("read and write timeouts must be positive"))
	}

	return errors.Join(errs...)
}

func (config ServerConfig) bindEnvironmentVariables() error {
	return bindEnvs(map[string]string{
		"server.port":            "PORT",
		"server.metrics_enabled": "METRICS_ENABLED",
	})
}
