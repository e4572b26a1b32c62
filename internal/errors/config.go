package errors

import "errors"

// ConfigError means search cannot run until configuration is fixed.
// Retrying does not help.
type ConfigError struct {
	Setting string
	Reason  string
}

func (e *ConfigError) Error() string {
	return e.Reason
}

// NewConfigError creates a ConfigError for the named setting.
func NewConfigError(setting, reason string) *ConfigError {
	return &ConfigError{Setting: setting, Reason: reason}
}

// ErrMissingAPIKey is the ConfigError reported when no Google Books API key is configured.
var ErrMissingAPIKey = NewConfigError("googlebooks.apikey",
	"Google Books API key is missing. Set GOOGLE_BOOKS_API_KEY or googlebooks.apikey in config.yaml.")

// IsConfigError reports whether err is a ConfigError (even when wrapped).
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
