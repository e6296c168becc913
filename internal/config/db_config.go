package config

import (
	"fmt"
)

type DBConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
	Seed             bool   `mapstructure:"seed"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables() error {
	return bindEnvs(map[string]string{
		"db.connection_string": "DB_CONNECTION_STRING",
		"db.seed":              "DB_SEED",
	})
}
