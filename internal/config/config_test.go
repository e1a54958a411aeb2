package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Data.Dir)
	assert.Empty(t, cfg.Cities)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfigAndResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[data]
dir = "/srv/bikeshare"
page-size = 10

[log]
level = "INFO"

[cities."washington"]
file = "dc.csv"

[cities."Chicago"]
demographics = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	settings, err := Resolve(cfg, EnvConfig{})
	require.NoError(t, err)
	assert.Equal(t, "/srv/bikeshare", settings.DataDir)
	assert.Equal(t, 10, settings.PageSize)
	assert.Equal(t, "info", settings.LogLevel)

	table := NewCityTable(settings.Cities)
	dc, ok := table.Lookup("washington")
	require.True(t, ok)
	assert.Equal(t, "dc.csv", dc.File)
	assert.False(t, dc.Demographics)
	chi, ok := table.Lookup("chicago")
	require.True(t, ok)
	assert.Equal(t, "chicago.csv", chi.File)
	assert.False(t, chi.Demographics)
	require.NoError(t, Validate(settings))
}

func TestResolveRejectsUnknownCity(t *testing.T) {
	file := "boston.csv"
	_, err := Resolve(FileConfig{Cities: map[string]CityConfig{"boston": {File: &file}}}, EnvConfig{})
	require.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("BIKESHARE_DATA_DIR", "/env/data")
	t.Setenv("BIKESHARE_LOG_LEVEL", "debug")
	env, err := LoadEnv()
	require.NoError(t, err)

	dir := "/file/data"
	settings, err := Resolve(FileConfig{Data: DataConfig{Dir: &dir}}, env)
	require.NoError(t, err)
	assert.Equal(t, "/env/data", settings.DataDir)
	assert.Equal(t, "debug", settings.LogLevel)
}

func TestValidateReportsFields(t *testing.T) {
	settings, err := Resolve(FileConfig{}, EnvConfig{})
	require.NoError(t, err)
	settings.PageSize = 0
	settings.LogLevel = "loud"
	err = Validate(settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PageSize")
	assert.Contains(t, err.Error(), "LogLevel")
}

func TestCityTableSourcesSorted(t *testing.T) {
	table := NewCityTable(DefaultCitySources())
	sources := table.Sources()
	require.Len(t, sources, 3)
	assert.Equal(t, "chicago", sources[0].Name)
	assert.Equal(t, "new york city", sources[1].Name)
	assert.Equal(t, "washington", sources[2].Name)
}
