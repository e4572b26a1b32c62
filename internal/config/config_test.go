package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bferrors "github.com/lepinkainen/bookfinder/internal/errors"
	"github.com/lepinkainen/bookfinder/internal/testutil"
)

func TestLoadDefaults(t *testing.T) {
	testutil.ResetViper(t)
	SetDefaults()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.APIKey())
	assert.Equal(t, "https://www.googleapis.com/books/v1/volumes", cfg.GoogleBooks.Endpoint)
	assert.Equal(t, 10*time.Second, cfg.GoogleBooks.Timeout)
	assert.Equal(t, 5, cfg.GoogleBooks.RatePerSecond)
	assert.Equal(t, 40, cfg.GoogleBooks.MaxResults)
	assert.Equal(t, 500*time.Millisecond, cfg.Search.Debounce)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "./cache.db", cfg.Cache.DBFile)
	assert.Equal(t, 168*time.Hour, cfg.Cache.TTL)
	assert.Empty(t, cfg.Export.Dir)
}

func TestAPIKeyFromEnvironment(t *testing.T) {
	testutil.ResetViper(t)
	t.Setenv(APIKeyEnv, "  env-key  ")
	SetDefaults()
	require.NoError(t, BindEnv())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey())
}

func TestAPIKeyProvider(t *testing.T) {
	var provider APIKeyProvider = &Config{GoogleBooks: GoogleBooks{APIKey: "abc"}}
	assert.Equal(t, "abc", provider.APIKey())

	var nilConfig *Config
	assert.Equal(t, "", nilConfig.APIKey())
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		setting string
	}{
		{"endpoint not a URL", map[string]any{KeyEndpoint: "not a url"}, KeyEndpoint},
		{"zero timeout", map[string]any{KeyTimeout: "0s"}, KeyTimeout},
		{"negative rate", map[string]any{KeyRatePerSecond: -1}, KeyRatePerSecond},
		{"too many results", map[string]any{KeyMaxResults: 41}, KeyMaxResults},
		{"zero debounce", map[string]any{KeyDebounce: "0s"}, KeyDebounce},
		{"cache enabled without file", map[string]any{KeyCacheDBFile: ""}, KeyCacheDBFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.SetViperValues(t, tt.values)
			SetDefaults()

			_, err := Load()
			require.Error(t, err)
			assert.True(t, bferrors.IsConfigError(err))
			assert.Contains(t, err.Error(), tt.setting)
		})
	}
}

func TestCacheFileNotRequiredWhenDisabled(t *testing.T) {
	testutil.SetViperValues(t, map[string]any{KeyCacheEnabled: false, KeyCacheDBFile: ""})
	SetDefaults()

	_, err := Load()
	assert.NoError(t, err)
}

func TestReadOrCreateWritesDefaultConfig(t *testing.T) {
	testutil.ResetViper(t)
	dir := t.TempDir()
	SetDefaults()

	created, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "googlebooks")
}

func TestReadOrCreateReadsExistingConfig(t *testing.T) {
	testutil.ResetViper(t)
	dir := t.TempDir()
	content := "googlebooks:\n  apikey: file-key\nsearch:\n  debounce: 250ms\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	SetDefaults()

	created, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.False(t, created)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey())
	assert.Equal(t, 250*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, "file-key", viper.GetString(KeyAPIKey))
}

func TestReadOrCreateRejectsBrokenYAML(t *testing.T) {
	testutil.ResetViper(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("googlebooks: [unclosed"), 0o644))

	_, err := ReadOrCreate(dir)
	assert.Error(t, err)
}

func TestSettingName(t *testing.T) {
	assert.Equal(t, "googlebooks.endpoint", settingName("Config.googlebooks.endpoint"))
	assert.Equal(t, "config", settingName("Config"))
}
