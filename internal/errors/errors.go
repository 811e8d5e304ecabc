package errors

import "fmt"

// Error types for the application
var (
	ErrUnknownArgument   = fmt.Errorf("UNKNOWN_ARGUMENT")
	ErrMissingValue      = fmt.Errorf("MISSING_VALUE")
	ErrInvalidValue      = fmt.Errorf("INVALID_VALUE")
	ErrPromptFile        = fmt.Errorf("PROMPT_FILE")
	ErrTokenOverflow     = fmt.Errorf("TOKEN_OVERFLOW")
	ErrPromptTooLong     = fmt.Errorf("PROMPT_TOO_LONG")
	ErrEngineUnavailable = fmt.Errorf("ENGINE_UNAVAILABLE")
	ErrInvalidConfig     = fmt.Errorf("INVALID_CONFIG")
)

// ValidationError wraps a rejected command-line or config value
type ValidationError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s (value: %v): %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ResourceError wraps resource-related errors
type ResourceError struct {
	Resource string
	Limit    interface{}
	Actual   interface{}
	Err      error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource %s exceeded limit %v (actual: %v): %v", e.Resource, e.Limit, e.Actual, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// ExitError carries the process exit code for a failure that has already
// been reported to the user. Err is nil for a clean early exit such as --help.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return fmt.Sprintf("exit status %d: %v", e.Code, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
