// Package errors provides standardized error handling for the advisor HTTP services.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeRequestTooLarge  ErrorCode = "REQUEST_TOO_LARGE"

	ErrCodeStudentNotFound    ErrorCode = "STUDENT_NOT_FOUND"
	ErrCodeUniversityNotFound ErrorCode = "UNIVERSITY_NOT_FOUND"
	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"

	ErrCodeDatasetLoadFailed ErrorCode = "DATASET_LOAD_FAILED"

	ErrCodeDocumentStoreFailed ErrorCode = "DOCUMENT_STORE_FAILED"
	ErrCodeSessionStoreFailed  ErrorCode = "SESSION_STORE_FAILED"

	ErrCodeGenerationFailed  ErrorCode = "GENERATION_FAILED"
	ErrCodeGenerationTimeout ErrorCode = "GENERATION_TIMEOUT"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"-"`
	Timestamp time.Time `json:"-"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidRequestError is returned for bodies that are not valid JSON.
func NewInvalidRequestError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Request body could not be parsed",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewRequestTooLargeError is returned when a body exceeds the read limit.
func NewRequestTooLargeError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestTooLarge,
		Message:   "Request body is too large",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewRequestBodyError classifies a failed body read.
func NewRequestBodyError(err error) *StandardError {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return NewRequestTooLargeError(err)
	}
	return NewInvalidRequestError(err)
}

// NewValidationFailedError carries schema violations.
func NewValidationFailedError(details []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   strings.Join(details, "; "),
		Timestamp: time.Now().UTC(),
	}
}

func NewStudentNotFoundError(studentID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStudentNotFound,
		Message:   fmt.Sprintf("Student '%s' not found in our dataset.", studentID),
		Timestamp: time.Now().UTC(),
	}
}

func NewUniversityNotFoundError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUniversityNotFound,
		Message:   fmt.Sprintf("University '%s' not found in our database.", name),
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionNotFoundError uses the caller's wording; the drafting endpoints
// phrase it differently.
func NewSessionNotFoundError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func NewDatasetLoadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatasetLoadFailed,
		Message:   "Dataset could not be loaded",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewDocumentStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentStoreFailed,
		Message:   "Document store lookup failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewSessionStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Session store operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewGenerationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationFailed,
		Message:   "Text generation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewGenerationTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationTimeout,
		Message:   "Text generation timed out",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Classification
// ==========================

// HTTPStatus maps an error code to the response status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeValidationFailed, ErrCodeSessionNotFound:
		return http.StatusBadRequest
	case ErrCodeRequestTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrCodeStudentNotFound, ErrCodeUniversityNotFound:
		return http.StatusNotFound
	case ErrCodeDocumentStoreFailed, ErrCodeSessionStoreFailed, ErrCodeGenerationFailed:
		return http.StatusBadGateway
	case ErrCodeGenerationTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasSuffix(codeStr, "NOT_FOUND"):
		return "NOT_FOUND"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION") || strings.HasSuffix(codeStr, "TOO_LARGE"):
		return "VALIDATION"
	case strings.Contains(codeStr, "STORE") || strings.Contains(codeStr, "DATASET"):
		return "STORAGE"
	case strings.Contains(codeStr, "GENERATION"):
		return "AI"
	default:
		return "OTHER"
	}
}

// AsStandardError normalizes any error into a StandardError.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}
