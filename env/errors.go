package env

import (
	"errors"
	"fmt"
)

// ErrConfiguration is wrapped by every configuration error
var ErrConfiguration = errors.New("invalid configuration")

// ErrEnvironment returns an error describing an environment variable holding an unusable value
func ErrEnvironment(name, value string) error {
	return fmt.Errorf("%w: environment variable %v has unsupported value '%v'", ErrConfiguration, name, value)
}

// ErrMissing returns an error describing a required environment variable that was not set
func ErrMissing(name string, reason string) error {
	return fmt.Errorf("%w: %v must be set %v", ErrConfiguration, name, reason)
}
