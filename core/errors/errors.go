package errors

import (
	stderrors "errors"
	"fmt"
)

// Error types for different categories of failures
const (
	// Grouping engine
	ErrUnbalancedGrouping = "UNBALANCED_GROUPING"

	// Host integration
	ErrInputRead       = "INPUT_READ_ERROR"
	ErrUnsupportedFile = "UNSUPPORTED_FILE"
	ErrConfigInvalid   = "CONFIG_INVALID"
)

// Sentinels for errors.Is comparisons. Matching is by Type only.
var (
	UnbalancedGrouping = &GroupError{Type: ErrUnbalancedGrouping}
	ConfigInvalid      = &GroupError{Type: ErrConfigInvalid}
	UnsupportedFile    = &GroupError{Type: ErrUnsupportedFile}
)

// GroupError represents a structured error with type and context
type GroupError struct {
	Type    string
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface
func (e *GroupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap allows error unwrapping
func (e *GroupError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a GroupError of the same Type.
func (e *GroupError) Is(target error) bool {
	t, ok := target.(*GroupError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// New creates a new GroupError
func New(errorType, message string) *GroupError {
	return &GroupError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]any),
	}
}

// Wrap creates a new GroupError wrapping an existing error
func Wrap(errorType, message string, cause error) *GroupError {
	return &GroupError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error
func (e *GroupError) WithContext(key string, value any) *GroupError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// GetContext returns context value by key
func (e *GroupError) GetContext(key string) (any, bool) {
	value, exists := e.Context[key]
	return value, exists
}

// NewUnbalancedError reports a grouping paren with no partner. column is the
// 1-based rune column of the offending paren.
func NewUnbalancedError(message string, column int) *GroupError {
	return New(ErrUnbalancedGrouping, fmt.Sprintf("%s at column %d", message, column)).
		WithContext("column", column)
}

// NewInputError creates an input-related error
func NewInputError(message string, cause error) *GroupError {
	return Wrap(ErrInputRead, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *GroupError {
	return Wrap(ErrConfigInvalid, message, cause)
}

// IsErrorType checks if an error, or any error it wraps, is of a specific type
func IsErrorType(err error, errorType string) bool {
	var groupErr *GroupError
	if stderrors.As(err, &groupErr) {
		return groupErr.Type == errorType
	}
	return false
}
