// Package config loads bookfinder settings from config.yaml, the environment
// and CLI overrides through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	bferrors "github.com/lepinkainen/bookfinder/internal/errors"
)

// Viper keys.
const (
	KeyAPIKey        = "googlebooks.apikey"
	KeyEndpoint      = "googlebooks.endpoint"
	KeyTimeout       = "googlebooks.timeout"
	KeyRatePerSecond = "googlebooks.ratelimit"
	KeyMaxResults    = "googlebooks.maxresults"
	KeyDebounce      = "search.debounce"
	KeyCacheEnabled  = "cache.enabled"
	KeyCacheDBFile   = "cache.dbfile"
	KeyCacheTTL      = "cache.ttl"
	KeyExportDir     = "export.dir"

	// APIKeyEnv is the environment variable holding the Google Books key.
	APIKeyEnv = "GOOGLE_BOOKS_API_KEY"
)

// APIKeyProvider supplies the search API key. An empty key is a normal
// condition that disables searching.
type APIKeyProvider interface {
	APIKey() string
}

// Config is the resolved application configuration.
type Config struct {
	GoogleBooks GoogleBooks `mapstructure:"googlebooks"`
	Search      Search      `mapstructure:"search"`
	Cache       Cache       `mapstructure:"cache"`
	Export      Export      `mapstructure:"export"`
}

// GoogleBooks configures the search API client.
type GoogleBooks struct {
	APIKey        string        `mapstructure:"apikey"`
	Endpoint      string        `mapstructure:"endpoint" validate:"required,url"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RatePerSecond int           `mapstructure:"ratelimit" validate:"gt=0"`
	MaxResults    int           `mapstructure:"maxresults" validate:"gte=1,lte=40"`
}

// Search configures input handling.
type Search struct {
	Debounce time.Duration `mapstructure:"debounce" validate:"gt=0"`
}

// Cache configures the SQLite response cache.
type Cache struct {
	Enabled bool          `mapstructure:"enabled"`
	DBFile  string        `mapstructure:"dbfile" validate:"required_if=Enabled true"`
	TTL     time.Duration `mapstructure:"ttl" validate:"gt=0"`
}

// Export configures where favorites are written on quit. Empty disables it.
type Export struct {
	Dir string `mapstructure:"dir"`
}

// APIKey returns the configured key with surrounding whitespace removed.
func (c *Config) APIKey() string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.GoogleBooks.APIKey)
}

// SetDefaults registers default values for every key.
func SetDefaults() {
	viper.SetDefault(KeyAPIKey, "")
	viper.SetDefault(KeyEndpoint, "https://www.googleapis.com/books/v1/volumes")
	viper.SetDefault(KeyTimeout, "10s")
	viper.SetDefault(KeyRatePerSecond, 5)
	viper.SetDefault(KeyMaxResults, 40)
	viper.SetDefault(KeyDebounce, "500ms")

	viper.SetDefault(KeyCacheEnabled, true)
	viper.SetDefault(KeyCacheDBFile, "./cache.db")
	viper.SetDefault(KeyCacheTTL, "168h") // 7 days

	viper.SetDefault(KeyExportDir, "")
}

// BindEnv maps GOOGLE_BOOKS_API_KEY onto googlebooks.apikey.
func BindEnv() error {
	viper.AutomaticEnv()
	if err := viper.BindEnv(KeyAPIKey, APIKeyEnv); err != nil {
		return fmt.Errorf("failed to bind %s: %w", APIKeyEnv, err)
	}
	return nil
}

// ReadOrCreate reads config.yaml from dir. When the file does not exist a
// default one is written and created is true.
func ReadOrCreate(dir string) (created bool, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(dir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return false, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := viper.SafeWriteConfigAs(filepath.Join(dir, "config.yaml")); err != nil {
			return false, fmt.Errorf("failed to write default config: %w", err)
		}
		return true, nil
	}

	return false, nil
}

// Load decodes the current viper state into a validated Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, bferrors.NewConfigError("config", fmt.Sprintf("invalid configuration: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("mapstructure"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}()

// Validate checks value ranges. A missing API key is not an error here;
// the search core reports it when a search is attempted.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	errs := make([]error, 0, len(validationErrs))
	for _, e := range validationErrs {
		setting := settingName(e.Namespace())
		errs = append(errs, bferrors.NewConfigError(setting, setting+" "+friendlyMessage(e)))
	}
	return errors.Join(errs...)
}

// settingName turns "Config.googlebooks.endpoint" into "googlebooks.endpoint".
func settingName(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return strings.ToLower(namespace)
	}
	return strings.ToLower(rest)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be at least " + e.Param()
	case "lte":
		return "must be at most " + e.Param()
	default:
		return "is invalid"
	}
}
