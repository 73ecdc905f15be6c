package api

import (
	"errors"
	"net/http"

	"github.com/vfirsov/kernel/contracts"
)

// ErrorCode represents an API error code.
type ErrorCode string

// Error codes for API responses.
const (
	CodeInvalidInput      ErrorCode = "invalid_input"
	CodeTaskHeaderMissing ErrorCode = "task_header_missing"
	CodeMissingFields     ErrorCode = "missing_fields"
	CodePolicyDenied      ErrorCode = "policy_denied"
	CodeContractViolation ErrorCode = "contract_violation"
	CodeApprovalNotFound  ErrorCode = "approval_not_found"
	CodeSafeMode          ErrorCode = "safe_mode"
	CodeUnauthorized      ErrorCode = "unauthorized"
	CodeNotImplemented    ErrorCode = "not_implemented"
	CodeInternalError     ErrorCode = "internal_error"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	StatusCode int
	Code       ErrorCode
	Err        error
}

func (e *HTTPError) Error() string { return e.Err.Error() }
func (e *HTTPError) Unwrap() error { return e.Err }

// MapError maps a domain error to an HTTPError.
func MapError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, contracts.ErrInvalidInput):
		return &HTTPError{http.StatusBadRequest, CodeInvalidInput, err}
	case errors.Is(err, contracts.ErrTaskHeaderMissing):
		return &HTTPError{http.StatusBadRequest, CodeTaskHeaderMissing, err}
	case errors.Is(err, contracts.ErrMissingFields):
		return &HTTPError{http.StatusBadRequest, CodeMissingFields, err}
	case errors.Is(err, contracts.ErrPolicyDenied):
		return &HTTPError{http.StatusForbidden, CodePolicyDenied, err}
	case errors.Is(err, contracts.ErrContractViolation):
		return &HTTPError{http.StatusUnprocessableEntity, CodeContractViolation, err}
	case errors.Is(err, contracts.ErrApprovalNotFound):
		return &HTTPError{http.StatusNotFound, CodeApprovalNotFound, err}
	case errors.Is(err, contracts.ErrSafeMode):
		return &HTTPError{http.StatusServiceUnavailable, CodeSafeMode, err}
	default:
		return &HTTPError{http.StatusInternalServerError, CodeInternalError, err}
	}
}

// writeError writes an error response to the HTTP response writer.
func writeError(w http.ResponseWriter, err error) {
	httpErr := MapError(err)
	if httpErr == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.StatusCode)
	writeJSON(w, ErrorDTO{Code: string(httpErr.Code), Message: httpErr.Error()})
}
