package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// InternalError is the rich error type carried through the application. It
// wraps a cause with an optional user-facing hint and reportable details that
// are safe to surface in API responses.
type InternalError struct {
	cause             error
	hint              string
	reportableDetails map[string]interface{}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.cause == nil {
		return e.hint
	}
	return e.cause.Error()
}

// Unwrap returns the underlying cause so errors.Is / errors.As keep working
func (e *InternalError) Unwrap() error {
	return e.cause
}

// Hint returns the user-facing hint, if any
func (e *InternalError) Hint() string {
	return e.hint
}

// ReportableDetails returns details that are safe to expose to API clients
func (e *InternalError) ReportableDetails() map[string]interface{} {
	return e.reportableDetails
}

// ErrorBuilder provides a fluent API for constructing internal errors
type ErrorBuilder struct {
	err *InternalError
}

// NewError starts building an error from a new message
func NewError(message string) *ErrorBuilder {
	return &ErrorBuilder{
		err: &InternalError{
			cause: errors.NewWithDepth(1, message),
		},
	}
}

// NewErrorf starts building an error from a formatted message
func NewErrorf(format string, args ...interface{}) *ErrorBuilder {
	return NewError(fmt.Sprintf(format, args...))
}

// WithError starts building an error that wraps an existing error
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{
		err: &InternalError{
			cause: err,
		},
	}
}

// WithHint attaches a user-facing hint to the error
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err.hint = hint
	return b
}

// WithHintf attaches a formatted user-facing hint to the error
func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.err.hint = fmt.Sprintf(format, args...)
	return b
}

// WithReportableDetails attaches details that may be returned to API clients
func (b *ErrorBuilder) WithReportableDetails(details map[string]interface{}) *ErrorBuilder {
	b.err.reportableDetails = details
	return b
}

// Mark classifies the error with one of the sentinel errors and finalizes it
func (b *ErrorBuilder) Mark(sentinel error) error {
	b.err.cause = errors.Mark(b.err.cause, sentinel)
	return b.err
}
