package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeRateLimit    ErrorType = "rate_limit"
	ErrorTypeAccount      ErrorType = "account"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeModeration   ErrorType = "moderation"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeSelfTarget   ErrorType = "self_target"
	ErrorTypeTransaction  ErrorType = "transaction"
	ErrorTypeInternal     ErrorType = "internal"
)

// DomainError represents a structured error with additional context.
// Every pipeline stage produces exactly one of these (or succeeds); no stage
// returns a compound outcome.
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// Domain error variables

var (
	// Admission / identity
	ErrRateLimited  = NewDomainError(ErrorTypeRateLimit, "Too many requests", nil)
	ErrUnauthorized = NewDomainError(ErrorTypeUnauthorized, "Unauthorized", nil)

	// Validation
	ErrNoValidFields = NewDomainError(ErrorTypeValidation, "No valid fields to update", nil)

	// Moderation
	ErrContentBlocked = NewDomainError(ErrorTypeModeration, "Content rejected by moderation", nil)

	// Mutation outcomes
	ErrProfileNotFound = NewDomainError(ErrorTypeNotFound, "Profile not found", nil)
	ErrAccountNotFound = NewDomainError(ErrorTypeNotFound, "Account not found", nil)
	ErrNotOwner        = NewDomainError(ErrorTypeForbidden, "Not authorized to update this profile", nil)
	ErrSelfFollow      = NewDomainError(ErrorTypeSelfTarget, "Cannot follow yourself", nil)
	ErrAlreadyFollows  = NewDomainError(ErrorTypeConflict, "Already following this user", nil)

	// Infrastructure
	ErrTransactionFailed = NewDomainError(ErrorTypeTransaction, "transaction failed", nil)
	ErrInternal          = NewDomainError(ErrorTypeInternal, "Internal server error", nil)
)

// AccountStandingError is the one error the pipeline forwards verbatim: the
// account system owns the exact user-facing status code and wording.
type AccountStandingError struct {
	StatusCode int
	ReasonCode string
	Message    string
}

// Error implements the error interface
func (e *AccountStandingError) Error() string {
	return fmt.Sprintf("account %s: %s", e.ReasonCode, e.Message)
}

// IsUnauthorizedError checks if an error is an unauthorized error
func IsUnauthorizedError(err error) bool {
	return isType(err, ErrorTypeUnauthorized)
}

// IsRateLimitError checks if an error is a rate limit error
func IsRateLimitError(err error) bool {
	return isType(err, ErrorTypeRateLimit)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsModerationError checks if an error is a moderation block
func IsModerationError(err error) bool {
	return isType(err, ErrorTypeModeration)
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsForbiddenError checks if an error is a forbidden error
func IsForbiddenError(err error) bool {
	return isType(err, ErrorTypeForbidden)
}

// IsConflictError checks if an error is a duplicate-resource conflict
func IsConflictError(err error) bool {
	return isType(err, ErrorTypeConflict)
}

// IsSelfTargetError checks if an error is a self-target rejection
func IsSelfTargetError(err error) bool {
	return isType(err, ErrorTypeSelfTarget)
}

// IsTransactionError checks if an error is a transaction error
func IsTransactionError(err error) bool {
	return isType(err, ErrorTypeTransaction)
}

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool {
	return isType(err, ErrorTypeInternal)
}

// IsAccountStandingError extracts an AccountStandingError if present
func IsAccountStandingError(err error) (*AccountStandingError, bool) {
	var standingErr *AccountStandingError
	if errors.As(err, &standingErr) {
		return standingErr, true
	}
	return nil, false
}

// GetErrorType returns the error type of a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ErrorTypeInternal
}

// GetErrorDetails returns the details map of a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		if len(domainErr.Details) == 0 {
			return nil
		}
		return domainErr.Details
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == t
	}
	return false
}
