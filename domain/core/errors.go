package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)

	// Fatal pipeline errors
	ErrConfigInvalid = errors.New("configuration invalid")
	ErrSchemaInvalid = errors.New("dataset schema invalid")
)

// IsNotFoundError reports whether err is a not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsFatalInputError reports whether err stems from configuration or schema validation
func IsFatalInputError(err error) bool {
	return errors.Is(err, ErrConfigInvalid) || errors.Is(err, ErrSchemaInvalid)
}
