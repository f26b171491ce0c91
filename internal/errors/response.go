package errors

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// ErrorDetail carries the client-safe portion of an error
type ErrorDetail struct {
	Message          string                 `json:"message"`
	InternalError    string                 `json:"internal_error,omitempty"`
	ReportableErrors map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse is the standard error envelope returned by the REST API
type ErrorResponse struct {
	Success bool         `json:"success" default:"false"`
	Error   *ErrorDetail `json:"error"`
}

// NewErrorResponse converts any error into the standard API error envelope
func NewErrorResponse(err error) *ErrorResponse {
	resp := &ErrorResponse{
		Success: false,
		Error: &ErrorDetail{
			Message: err.Error(),
		},
	}

	var internal *InternalError
	if errors.As(err, &internal) {
		if internal.Hint() != "" {
			resp.Error.Message = internal.Hint()
			resp.Error.InternalError = internal.Error()
		}
		resp.Error.ReportableErrors = internal.ReportableDetails()
	}

	return resp
}

// HTTPStatusFromErr maps the error classification to an HTTP status code
func HTTPStatusFromErr(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsAlreadyExists(err):
		return http.StatusConflict
	case IsVersionConflict(err):
		return http.StatusConflict
	case IsValidation(err):
		return http.StatusBadRequest
	case IsInvalidOperation(err):
		return http.StatusBadRequest
	case IsPermissionDenied(err):
		return http.StatusForbidden
	case IsDatabase(err):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// IsVersionConflict returns true if the error is marked as a version conflict error
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}
