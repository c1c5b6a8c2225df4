package domain

import (
	"errors"
	"fmt"
	"time"
)

// QuotaError indicates the API quota is exhausted and the run was aborted
// before any listing or detail traffic.
type QuotaError struct {
	Remaining int
	ResetAt   time.Time
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("api quota exhausted (%d remaining), resets at %s",
		e.Remaining, e.ResetAt.Format(time.RFC3339))
}

// IsQuotaExhausted checks if an error is or wraps a QuotaError.
func IsQuotaExhausted(err error) bool {
	var quotaErr *QuotaError
	return errors.As(err, &quotaErr)
}

// APIStatusError is a non-success HTTP status returned by the hosting API.
// It is fatal for the whole run; there is no retry or backoff.
type APIStatusError struct {
	StatusCode int
	URL        string
}

func (e *APIStatusError) Error() string {
	return fmt.Sprintf("api returned status %d for %s", e.StatusCode, e.URL)
}

// IsAPIStatus checks if an error is or wraps an APIStatusError.
func IsAPIStatus(err error) bool {
	var statusErr *APIStatusError
	return errors.As(err, &statusErr)
}

// ConfigError reports an invalid configuration value detected at
// construction time.
type ConfigError struct {
	Setting string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Setting, e.Reason)
}

// IsConfig checks if an error is or wraps a ConfigError.
func IsConfig(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
