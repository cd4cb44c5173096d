// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
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
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	ErrCodeProspectLookupFailed ErrorCode = "PROSPECT_LOOKUP_FAILED"
	ErrCodeSignalQueryFailed    ErrorCode = "SIGNAL_QUERY_FAILED"
	ErrCodeContactQueryFailed   ErrorCode = "CONTACT_QUERY_FAILED"
	ErrCodeCompanyLookupFailed  ErrorCode = "COMPANY_LOOKUP_FAILED"

	ErrCodeAlertRulesInvalid    ErrorCode = "ALERT_RULES_INVALID"
	ErrCodeAlertRulesLoadFailed ErrorCode = "ALERT_RULES_LOAD_FAILED"
	ErrCodeAlertDispatchFailed  ErrorCode = "ALERT_DISPATCH_FAILED"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the repository or transport error the StandardError was built from.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key to the error metadata and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
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

// NewInvalidInputError creates a non-retryable input validation error.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Job variables failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProspectLookupFailedError creates a retryable prospect repository error.
func NewProspectLookupFailedError(prospectID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProspectLookupFailed,
		Message:   "Prospect lookup failed",
		Details:   fmt.Sprintf("prospectId: %s, error: %s", prospectID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewSignalQueryFailedError creates a retryable signal repository error.
func NewSignalQueryFailedError(prospectID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSignalQueryFailed,
		Message:   "Signal query failed",
		Details:   fmt.Sprintf("prospectId: %s, error: %s", prospectID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewContactQueryFailedError creates a retryable contact repository error.
func NewContactQueryFailedError(prospectID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeContactQueryFailed,
		Message:   "Contact query failed",
		Details:   fmt.Sprintf("prospectId: %s, error: %s", prospectID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewCompanyLookupFailedError creates a retryable company profile error.
func NewCompanyLookupFailedError(companyID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCompanyLookupFailed,
		Message:   "Company profile lookup failed",
		Details:   fmt.Sprintf("companyId: %s, error: %s", companyID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewAlertRulesInvalidError creates a non-retryable rule schema error.
func NewAlertRulesInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlertRulesInvalid,
		Message:   "Alert rules failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAlertRulesLoadFailedError creates a retryable rule repository error.
func NewAlertRulesLoadFailedError(tenantID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlertRulesLoadFailed,
		Message:   "Loading alert rules failed",
		Details:   fmt.Sprintf("tenantId: %s, error: %s", tenantID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewAlertDispatchFailedError creates a retryable sink error.
func NewAlertDispatchFailedError(sink string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlertDispatchFailed,
		Message:   fmt.Sprintf("Alert dispatch to %s failed", sink),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      "RESOURCE_NOT_FOUND",
		Message:   fmt.Sprintf("Resource not found in %s", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the codes modelled on BPMN boundary events.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:         "INVALID_INPUT",
	ErrCodeProspectLookupFailed: "INTELLIGENCE_DATA_UNAVAILABLE",
	ErrCodeSignalQueryFailed:    "INTELLIGENCE_DATA_UNAVAILABLE",
	ErrCodeContactQueryFailed:   "INTELLIGENCE_DATA_UNAVAILABLE",
	ErrCodeCompanyLookupFailed:  "INTELLIGENCE_DATA_UNAVAILABLE",
	ErrCodeAlertRulesInvalid:    "ALERT_RULES_INVALID",
	ErrCodeAlertRulesLoadFailed: "ALERT_RULES_LOAD_FAILED",
	ErrCodeAlertDispatchFailed:  "ALERT_DISPATCH_FAILED",
	ErrCodeCacheUnavailable:     "CACHE_UNAVAILABLE",
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeProspectLookupFailed,
		ErrCodeSignalQueryFailed,
		ErrCodeContactQueryFailed,
		ErrCodeCompanyLookupFailed,
		ErrCodeAlertRulesLoadFailed:
		return 3

	case ErrCodeAlertDispatchFailed, "EXTERNAL_SERVICE_ERROR", "TIMEOUT_ERROR":
		return 2

	case ErrCodeCacheUnavailable:
		return 1

	default:
		return 0 // Business errors: no retry
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
	case strings.Contains(codeStr, "PROSPECT") ||
		strings.Contains(codeStr, "SIGNAL") ||
		strings.Contains(codeStr, "CONTACT") ||
		strings.Contains(codeStr, "COMPANY"):
		return "REPOSITORY"
	case strings.Contains(codeStr, "ALERT"):
		return "ALERTING"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "TIMEOUT") || strings.Contains(codeStr, "EXTERNAL"):
		return "EXTERNAL"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
