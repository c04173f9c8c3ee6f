// internal/common/errors/errors.go
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeJobFormValidationFailed ErrorCode = "JOB_FORM_VALIDATION_FAILED"
	ErrCodeJobNotFound             ErrorCode = "JOB_NOT_FOUND"
	ErrCodeConfirmationNotPending  ErrorCode = "CONFIRMATION_NOT_PENDING"
	ErrCodeInvalidView             ErrorCode = "INVALID_VIEW"

	ErrCodeGigNotFound          ErrorCode = "GIG_NOT_FOUND"
	ErrCodeDisclaimerNotPending ErrorCode = "DISCLAIMER_NOT_PENDING"

	ErrCodeFlowStateUnavailable ErrorCode = "FLOW_STATE_UNAVAILABLE"
	ErrCodeCatalogQueryFailed   ErrorCode = "CATALOG_QUERY_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeEventPublishFailed     ErrorCode = "EVENT_PUBLISH_FAILED"

	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key to the error's metadata and returns it.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = map[string]interface{}{}
	}
	e.Metadata[key] = value
	return e
}

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

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewJobFormValidationFailedError lists the failing fields in details.
func NewJobFormValidationFailedError(fields []string) *StandardError {
	return newError(ErrCodeJobFormValidationFailed, "Job form validation failed",
		fmt.Sprintf("fields: %s", strings.Join(fields, ",")), false).
		WithMetadata("fields", fields)
}

func NewJobNotFoundError(jobID int64) *StandardError {
	return newError(ErrCodeJobNotFound, "Job not found on board", fmt.Sprintf("jobId: %d", jobID), false)
}

func NewConfirmationNotPendingError(boardID string) *StandardError {
	return newError(ErrCodeConfirmationNotPending, "No submission awaiting confirmation", fmt.Sprintf("boardId: %s", boardID), false)
}

func NewInvalidViewError(view string) *StandardError {
	return newError(ErrCodeInvalidView, "Unknown navigation target", fmt.Sprintf("view: %s", view), false)
}

func NewGigNotFoundError(gigID string) *StandardError {
	return newError(ErrCodeGigNotFound, "Gig not found in catalog", fmt.Sprintf("gigId: %s", gigID), false)
}

func NewDisclaimerNotPendingError(sessionID string) *StandardError {
	return newError(ErrCodeDisclaimerNotPending, "No gig awaiting disclaimer acknowledgement", fmt.Sprintf("sessionId: %s", sessionID), false)
}

func NewFlowStateUnavailableError(key string, err error) *StandardError {
	return newError(ErrCodeFlowStateUnavailable, "Flow state store unavailable", fmt.Sprintf("key: %s, error: %s", key, err.Error()), true)
}

func NewCatalogQueryFailedError(source string, err error) *StandardError {
	return newError(ErrCodeCatalogQueryFailed, "Gig catalog query failed", fmt.Sprintf("source: %s, error: %s", source, err.Error()), true)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed", fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true)
}

func NewEventPublishFailedError(eventType string, err error) *StandardError {
	return newError(ErrCodeEventPublishFailed, "Job event publish failed", fmt.Sprintf("type: %s, error: %s", eventType, err.Error()), true)
}

func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid job variables", details, false)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError("EXTERNAL_SERVICE_ERROR", fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError("TIMEOUT_ERROR", fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError("RESOURCE_NOT_FOUND", fmt.Sprintf("Resource not found in %s", service), details, false)
}

func NewBusinessRuleError(message, details string) *StandardError {
	return newError("BUSINESS_RULE_VIOLATION", message, details, false)
}

func NewAuthenticationError(details string) *StandardError {
	return newError("AUTHENTICATION_ERROR", "Authentication failed", details, false)
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeJobFormValidationFailed: "JOB_FORM_INVALID",
	ErrCodeJobNotFound:             "JOB_NOT_FOUND",
	ErrCodeConfirmationNotPending:  "CONFIRMATION_NOT_PENDING",
	ErrCodeInvalidView:             "INVALID_VIEW",
	ErrCodeGigNotFound:             "GIG_NOT_FOUND",
	ErrCodeDisclaimerNotPending:    "DISCLAIMER_NOT_PENDING",
	ErrCodeFlowStateUnavailable:    "FLOW_STATE_UNAVAILABLE",
	ErrCodeCatalogQueryFailed:      "CATALOG_QUERY_FAILED",
	ErrCodeNotificationSendFailed:  "NOTIFICATION_SEND_FAILED",
	ErrCodeEventPublishFailed:      "EVENT_PUBLISH_FAILED",
	ErrCodeInvalidInput:            "INVALID_INPUT",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeFlowStateUnavailable,
		ErrCodeCatalogQueryFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeEventPublishFailed,
		"EXTERNAL_SERVICE_ERROR":
		return 3
	case "TIMEOUT_ERROR":
		return 2
	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// AsStandardError unwraps err to a *StandardError if one is in its chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "JOB_") || strings.HasPrefix(codeStr, "CONFIRMATION"):
		return "CREATOR"
	case strings.HasPrefix(codeStr, "GIG_") || strings.HasPrefix(codeStr, "DISCLAIMER"):
		return "BROWSE"
	case strings.Contains(codeStr, "FLOW_STATE"):
		return "STATE"
	case strings.Contains(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "EVENT"):
		return "EVENTS"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
