// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodePersonaNotFound     ErrorCode = "PERSONA_NOT_FOUND"
	ErrCodePersonaStoreFailed  ErrorCode = "PERSONA_STORE_FAILED"
	ErrCodeJobStoreFailed      ErrorCode = "JOB_STORE_FAILED"
	ErrCodeWeightStoreFailed   ErrorCode = "WEIGHT_STORE_FAILED"
	ErrCodeInvalidMatchOptions ErrorCode = "INVALID_MATCH_OPTIONS"

	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed        ErrorCode = "SEARCH_QUERY_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout         ErrorCode = "TIMEOUT_ERROR"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a StandardError with the same code.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// HasCode reports whether err, or anything it wraps, is a StandardError with code.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if !stderrors.As(err, &stdErr) {
		return false
	}
	return stdErr.Code == code
}

// AsStandardError extracts the first StandardError in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	ok := stderrors.As(err, &stdErr)
	return stdErr, ok
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewPersonaNotFoundError is returned when a persona does not exist or belongs to
// another user.
func NewPersonaNotFoundError(userID, personaID string) *StandardError {
	return &StandardError{
		Code:      ErrCodePersonaNotFound,
		Message:   "Persona not found",
		Details:   fmt.Sprintf("userId: %s, personaId: %s", userID, personaID),
		Retryable: false,
		Metadata: map[string]interface{}{
			"userId":    userID,
			"personaId": personaID,
		},
		Timestamp: time.Now().UTC(),
	}
}

func NewPersonaStoreFailedError(err error) *StandardError {
	return upstreamError(ErrCodePersonaStoreFailed, "Persona store error", err)
}

func NewJobStoreFailedError(err error) *StandardError {
	return upstreamError(ErrCodeJobStoreFailed, "Job store error", err)
}

func NewWeightStoreFailedError(err error) *StandardError {
	return upstreamError(ErrCodeWeightStoreFailed, "Weight store error", err)
}

func upstreamError(code ErrorCode, message string, err error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

func NewInvalidMatchOptionsError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidMatchOptions,
		Message:   "Invalid match options",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInputValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputValidationFailed,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

func NewSearchQueryFailedError(index string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Search query execution error",
		Details:   fmt.Sprintf("index: %s, error: %s", index, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Failed to send notification",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExternalService,
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTimeout,
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodePersonaNotFound:          "PERSONA_NOT_FOUND",
	ErrCodePersonaStoreFailed:       "PERSONA_STORE_FAILED",
	ErrCodeJobStoreFailed:           "JOB_STORE_FAILED",
	ErrCodeWeightStoreFailed:        "WEIGHT_STORE_FAILED",
	ErrCodeInvalidMatchOptions:      "INVALID_MATCH_OPTIONS",
	ErrCodeInputValidationFailed:    "INPUT_VALIDATION_FAILED",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeSearchQueryFailed:        "SEARCH_QUERY_FAILED",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
	ErrCodeExternalService:          "EXTERNAL_SERVICE_ERROR",
	ErrCodeTimeout:                  "TIMEOUT_ERROR",
	ErrCodeInternal:                 "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended workflow retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodePersonaStoreFailed,
		ErrCodeJobStoreFailed,
		ErrCodeWeightStoreFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeExternalService:
		return 3

	case ErrCodeTimeout:
		return 2

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PERSONA") || strings.Contains(codeStr, "WEIGHT"):
		return "PERSONA"
	case strings.Contains(codeStr, "JOB_STORE") || strings.Contains(codeStr, "SEARCH"):
		return "JOB_SOURCE"
	case strings.Contains(codeStr, "DATABASE"):
		return "DATABASE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
