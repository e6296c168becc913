package config

import (
	"fmt"
	"strings"
)

type storageDriver string

const (
	LocalStorage storageDriver = "local"
	S3Storage    storageDriver = "s3"
)

type StorageConfig struct {
	Driver         storageDriver `mapstructure:"driver"`
	LocalDir       string        `mapstructure:"local_dir"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	S3             S3Config      `mapstructure:"s3"`
}

type S3Config struct {
	Endpoint     string `mapstructure:"endpoint"`
	Region       string `mapstructure:"region"`
	Bucket       string `mapstructure:"bucket"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	UsePathStyle bool   `mapstructure:"use_path_style"`
}

func (config StorageConfig) validate() error {
	if config.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive")
	}

	switch config.Driver {
	case LocalStorage:
		if config.LocalDir == "" {
			return fmt.Errorf("missing variable: local_dir")
		}
		return nil
	case S3Storage:
		var missingFields []string
		if config.S3.Region == "" {
			missingFields = append(missingFields, "s3.region")
		}
		if config.S3.Bucket == "" {
			missingFields = append(missingFields, "s3.bucket")
		}
		if config.S3.AccessKey == "" {
			missingFields = append(missingFields, "s3.access_key")
		}
		if config.S3.SecretKey == "" {
			missingFields = append(missingFields, "s3.secret_key")
		}
		if len(missingFields) > 0 {
			return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
		}
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", config.Driver)
	}
}

func (config StorageConfig) bindEnvironmentVariables() error {
	return bindEnvs(map[string]string{
		"storage.driver":        "STORAGE_DRIVER",
		"storage.local_dir":     "STORAGE_LOCAL_DIR",
		"storage.s3.endpoint":   "S3_ENDPOINT",
		"storage.s3.region":     "S3_REGION",
		"storage.s3.bucket":     "S3_BUCKET",
		"storage.s3.access_key": "S3_ACCESS_KEY",
		"storage.s3.secret_key": "S3_SECRET_KEY",
	})
}
