package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// ResetViper clears viper before the test and again when it completes.
func ResetViper(t *testing.T) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
}

// SetViperValues resets viper and applies values for the duration of the test.
func SetViperValues(t *testing.T, values map[string]any) {
	t.Helper()

	ResetViper(t)
	for key, value := range values {
		viper.Set(key, value)
	}
}

// SetupTestCache points cache.dbfile at a database inside env and returns its path.
func SetupTestCache(t *testing.T, env *TestEnv) string {
	t.Helper()

	path := filepath.Join(env.RootDir(), "cache.db")
	viper.Set("cache.dbfile", path)
	return path
}
