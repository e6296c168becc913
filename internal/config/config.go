package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Session  SessionConfig  `mapstructure:"session"`
	Password PasswordConfig `mapstructure:"password"`
	DB       DBConfig       `mapstructure:"db"`
	AI       AIConfig       `mapstructure:"ai"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Privacy  PrivacyConfig  `mapstructure:"privacy"`
	Stats    StatsConfig    `mapstructure:"stats"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

type section interface {
	validate() error
	bindEnvironmentVariables() error
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("failed to load .env file: %v", err)
	}

	file := configFile
	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		file = value
	}

	config, err := loadConfig(file)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	viper.SetConfigFile(file)
	viper.AutomaticEnv()
	setDefaults()

	config := Config{}

	if err := bindEnvironmentVariables(config.sections()); err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("server.metrics_enabled", true)
	viper.SetDefault("session.cookie_name", "selectflow_session")
	viper.SetDefault("session.ttl", "24h")
	viper.SetDefault("session.store", string(MemoryStore))
	viper.SetDefault("password.memory", 64*1024)
	viper.SetDefault("password.iterations", 1)
	viper.SetDefault("password.parallelism", 2)
	viper.SetDefault("ai.model", "gemini-1.5-flash")
	viper.SetDefault("ai.timeout", "30s")
	viper.SetDefault("storage.driver", string(LocalStorage))
	viper.SetDefault("storage.local_dir", "./uploads")
	viper.SetDefault("storage.max_upload_bytes", 5<<20)
	viper.SetDefault("stats.cron", "@every 1m")
	viper.SetDefault("logger.log_level", string(LevelInfo))
	viper.SetDefault("logger.app_name", "selectflow")
	viper.SetDefault("logger.output_file", "./logs/selectflow.log")
}

func (config Config) sections() map[string]section {
	return map[string]section{
		"ServerConfig":   config.Server,
		"SessionConfig":  config.Session,
		"PasswordConfig": config.Password,
		"DBConfig":       config.DB,
		"AIConfig":       config.AI,
		"StorageConfig":  config.Storage,
		"PrivacyConfig":  config.Privacy,
		"StatsConfig":    config.Stats,
		"LoggerConfig":   config.Logger,
	}
}

func bindEnvironmentVariables(sections map[string]section) error {
	var errs []error

	for name, s := range sections {
		if err := s.bindEnvironmentVariables(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	for name, s := range config.sections() {
		if err := s.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

// bindEnvs binds viper keys to environment variable names.
func bindEnvs(bindings map[string]string) error {
	var errs []error
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
