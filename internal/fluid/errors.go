package fluid

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every configuration failure.
var ErrInvalidConfig = errors.New("invalid fluid configuration")

// ConfigError reports the field that failed validation.
type ConfigError struct {
	Field  string
	Detail string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ErrInvalidConfig.Error()
	}
	if e.Detail == "" {
		return fmt.Sprintf("invalid fluid configuration: %s", e.Field)
	}
	return fmt.Sprintf("invalid fluid configuration: %s (%s)", e.Field, e.Detail)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func invalidf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Detail: fmt.Sprintf(format, args...)}
}
