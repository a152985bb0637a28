package errors

import (
	"fmt"
	"strings"

	"adhypo/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is maps fatal error codes onto the domain sentinels so callers can use errors.Is.
func (e *AppError) Is(target error) bool {
	switch e.Code {
	case CodeConfigInvalid:
		return target == core.ErrConfigInvalid
	case CodeSchemaInvalid:
		return target == core.ErrSchemaInvalid
	}
	return false
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeSchemaInvalid = "SCHEMA_INVALID"
	CodeDatabaseError = "DATABASE_ERROR"
	CodeInternalError = "INTERNAL_ERROR"
	CodeInvalidInput  = "INVALID_INPUT"
)

// ConfigInvalid reports missing or malformed configuration
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// DatabaseError reports a ledger failure
func DatabaseError(message string, cause error) *AppError {
	return &AppError{Code: CodeDatabaseError, Message: message, Cause: cause}
}

// InvalidInput reports a malformed request
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// SchemaError reports required dataset columns that are absent.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("Missing columns: [%s]", strings.Join(e.Missing, ", "))
}

// Unwrap lets errors.Is(err, core.ErrSchemaInvalid) match.
func (e *SchemaError) Unwrap() error {
	return core.ErrSchemaInvalid
}

// NewSchemaError builds a SchemaError for the given missing columns
func NewSchemaError(missing []string) *SchemaError {
	return &SchemaError{Missing: append([]string(nil), missing...)}
}
