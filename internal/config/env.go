package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds overrides read from BIKESHARE_* environment variables.
type EnvConfig struct {
	DataDir  string `envconfig:"DATA_DIR"`
	DBPath   string `envconfig:"DB_PATH"`
	LogLevel string `envconfig:"LOG_LEVEL"`
}

// LoadEnv reads BIKESHARE_DATA_DIR, BIKESHARE_DB_PATH and BIKESHARE_LOG_LEVEL.
func LoadEnv() (EnvConfig, error) {
	var env EnvConfig
	if err := envconfig.Process(appName, &env); err != nil {
		return EnvConfig{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return env, nil
}
