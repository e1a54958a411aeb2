package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/bikeshare/internal/model"
)

const (
	// DefaultPageSize is the number of raw rows shown per page.
	DefaultPageSize = 5
	// DefaultLogLevel keeps diagnostics quiet during interactive use.
	DefaultLogLevel = "warn"
	// DefaultDataDir resolves city files relative to the working directory.
	DefaultDataDir = "."
)

// Resolve merges defaults, the config file and environment overrides.
func Resolve(file FileConfig, env EnvConfig) (model.Settings, error) {
	cities, err := mergeCities(file.Cities)
	if err != nil {
		return model.Settings{}, err
	}
	settings := model.Settings{
		DataDir:  DefaultDataDir,
		DBPath:   DefaultDBPath(),
		PageSize: DefaultPageSize,
		LogLevel: DefaultLogLevel,
		Cities:   cities,
	}
	applyString(&settings.DataDir, file.Data.Dir, env.DataDir)
	applyString(&settings.DBPath, file.Data.DBPath, env.DBPath)
	applyString(&settings.LogLevel, file.Log.Level, env.LogLevel)
	if file.Data.PageSize != nil {
		settings.PageSize = *file.Data.PageSize
	}
	settings.LogLevel = strings.ToLower(settings.LogLevel)
	return settings, nil
}

func applyString(target, fileValue *string, envValue string) {
	if fileValue != nil {
		*target = *fileValue
	}
	if envValue != "" {
		*target = envValue
	}
}

// Validate checks resolved settings and reports every failing field.
func Validate(settings model.Settings) error {
	v := validator.New()
	err := v.Struct(settings)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate settings: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}
