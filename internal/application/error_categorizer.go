package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/clinicdesk/clinic-backend/internal/domain"
)

// ErrorCategory represents the nature of an error for retry and logging.
type ErrorCategory string

const (
	CategoryTransient      ErrorCategory = "TRANSIENT"
	CategoryBusinessRule   ErrorCategory = "BUSINESS_RULE"
	CategoryClientError    ErrorCategory = "CLIENT_ERROR"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

// CategorizeError determines error category for retry and logging purposes
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	// Context Errors (Transient - network/timeout issues)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTransient
	}

	// Domain Errors (Business Rules)
	if errors.Is(err, domain.ErrPreconditionViolated) ||
		errors.Is(err, domain.ErrEmptyOrderSet) ||
		errors.Is(err, domain.ErrInvalidTransition) {
		return CategoryBusinessRule
	}

	if errors.Is(err, domain.ErrInvalidAmount) ||
		errors.Is(err, domain.ErrUnknownOrderCategory) ||
		errors.Is(err, domain.ErrUnknownPolicyStatus) ||
		errors.Is(err, domain.ErrUnknownInvoiceStatus) ||
		errors.Is(err, ErrNotFound) {
		return CategoryClientError
	}

	if errors.Is(err, domain.ErrUnbalancedResult) {
		return CategoryInfrastructure
	}

	// Service/Application Errors
	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeInvalidInput, ErrCodeNotFound:
			return CategoryClientError
		case ErrCodePrecondition, ErrCodeInvalidState:
			return CategoryBusinessRule
		case ErrCodeTransient:
			return CategoryTransient
		case ErrCodeInternal:
			return CategoryInfrastructure
		}
	}

	// Default: Transient (safe fallback)
	return CategoryTransient
}

// IsRetryable returns true if the error category suggests retry
func IsRetryable(err error) bool {
	category := CategorizeError(err)
	return category == CategoryTransient || category == CategoryInfrastructure
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnknownOrderCategory),
		errors.Is(err, domain.ErrUnknownPolicyStatus),
		errors.Is(err, domain.ErrUnknownInvoiceStatus):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrPreconditionViolated),
		errors.Is(err, domain.ErrEmptyOrderSet):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict

	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	// Default to 500
	return http.StatusInternalServerError
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	if errors.Is(err, domain.ErrInvalidAmount) {
		return "INVALID_AMOUNT"
	}
	if errors.Is(err, domain.ErrUnknownOrderCategory) {
		return "UNKNOWN_ORDER_CATEGORY"
	}
	if errors.Is(err, domain.ErrUnknownPolicyStatus) {
		return "UNKNOWN_POLICY_STATUS"
	}
	if errors.Is(err, domain.ErrUnknownInvoiceStatus) {
		return "UNKNOWN_INVOICE_STATUS"
	}
	if errors.Is(err, domain.ErrPreconditionViolated) {
		return ErrCodePrecondition
	}
	if errors.Is(err, domain.ErrEmptyOrderSet) {
		return "EMPTY_ORDER_SET"
	}
	if errors.Is(err, domain.ErrInvalidTransition) {
		return "INVALID_TRANSITION"
	}
	if errors.Is(err, ErrNotFound) {
		return ErrCodeNotFound
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "TIMEOUT"
	}

	return ErrCodeInternal
}
