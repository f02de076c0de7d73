package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeUnauthenticated ErrorType = "unauthenticated"
	ErrorTypeInvalidInput    ErrorType = "invalid_input"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeForbidden       ErrorType = "forbidden"
	ErrorTypeUpstream        ErrorType = "upstream_failure"
	ErrorTypeInternal        ErrorType = "internal"
)

// DomainError represents a structured error with a stable machine-readable
// type. Handlers map the type to an HTTP status and echo it as the error
// code, instead of forwarding raw collaborator messages.
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
	return e.Type == t.Type && e.Message == t.Message
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
	// Authentication errors
	ErrNoToken           = NewDomainError(ErrorTypeUnauthenticated, "no token provided", nil)
	ErrTokenVerification = NewDomainError(ErrorTypeUnauthenticated, "token verification failed", nil)

	// Validation errors
	ErrMissingTopic = NewDomainError(ErrorTypeInvalidInput, "topic is required", nil)
	ErrInvalidInput = NewDomainError(ErrorTypeInvalidInput, "invalid input", nil)

	// Not found errors
	ErrCampaignNotFound = NewDomainError(ErrorTypeNotFound, "campaign not found", nil)
	ErrUserNotFound     = NewDomainError(ErrorTypeNotFound, "user not found", nil)

	// Permission errors
	ErrNotCampaignOwner = NewDomainError(ErrorTypeForbidden, "campaign belongs to another user", nil)

	// Upstream errors
	ErrTextGeneration   = NewDomainError(ErrorTypeUpstream, "text generation failed", nil)
	ErrNewsFetch        = NewDomainError(ErrorTypeUpstream, "news lookup failed", nil)
	ErrIdentityProvider = NewDomainError(ErrorTypeUpstream, "identity provider request failed", nil)

	// Internal errors
	ErrInternal      = NewDomainError(ErrorTypeInternal, "internal server error", nil)
	ErrDatabaseError = NewDomainError(ErrorTypeInternal, "database error", nil)
)

// Error type checking helper functions

// IsUnauthenticatedError checks if an error is an authentication error
func IsUnauthenticatedError(err error) bool {
	return GetErrorType(err) == ErrorTypeUnauthenticated
}

// IsInvalidInputError checks if an error is a validation error
func IsInvalidInputError(err error) bool {
	return GetErrorType(err) == ErrorTypeInvalidInput
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return GetErrorType(err) == ErrorTypeNotFound
}

// IsForbiddenError checks if an error is a forbidden error
func IsForbiddenError(err error) bool {
	return GetErrorType(err) == ErrorTypeForbidden
}

// IsUpstreamError checks if an error is an upstream/external failure
func IsUpstreamError(err error) bool {
	return GetErrorType(err) == ErrorTypeUpstream
}

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool {
	return GetErrorType(err) == ErrorTypeInternal
}

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorDetails returns the details map of a domain error, or nil if not a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

// WrapError wraps an error with additional context
func WrapError(errType ErrorType, message string, err error) error {
	return NewDomainError(errType, message, err)
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, message, err)
}

// WrapUpstream wraps an error as an upstream failure
func WrapUpstream(message string, err error) error {
	return NewDomainError(ErrorTypeUpstream, message, err)
}
