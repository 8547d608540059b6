package errors

import (
	stderrors "errors"
	"fmt"
)

// Application error types organized by category for better error handling

type ErrorType int

// Domain errors - requests that break business rules
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound

	// Infrastructure errors - upstream services and the map library
	ErrorTypeExternalAPI
	ErrorTypeLibraryLoad
	ErrorTypeUnavailable

	// Lifecycle errors
	ErrorTypeSessionClosed

	// System/Configuration errors
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeExternalAPI:
		return "EXTERNAL_API_ERROR"
	case ErrorTypeLibraryLoad:
		return "LIBRARY_LOAD_ERROR"
	case ErrorTypeUnavailable:
		return "UNAVAILABLE_ERROR"
	case ErrorTypeSessionClosed:
		return "SESSION_CLOSED_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Short aliases used across the codebase
const (
	ValidationError    = ErrorTypeValidation
	NotFoundError      = ErrorTypeNotFound
	ExternalAPIError   = ErrorTypeExternalAPI
	LibraryLoadError   = ErrorTypeLibraryLoad
	UnavailableError   = ErrorTypeUnavailable
	SessionClosedError = ErrorTypeSessionClosed
	ConfigurationError = ErrorTypeConfiguration
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain error constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

// Infrastructure error constructors
func NewExternalAPIError(message string, cause error) *AppError {
	return Wrap(ExternalAPIError, message, cause)
}

// NewLibraryLoadError reports a map library import that failed or produced
// a handle without its map constructor.
func NewLibraryLoadError(message string, cause error) *AppError {
	return Wrap(LibraryLoadError, message, cause)
}

func NewUnavailableError(message string) *AppError {
	return New(UnavailableError, message)
}

func NewSessionClosedError(message string) *AppError {
	return New(SessionClosedError, message)
}

// System/Configuration error constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

func isType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// Helper functions for error type checking
func IsNotFoundError(err error) bool {
	return isType(err, NotFoundError)
}

func IsValidationError(err error) bool {
	return isType(err, ValidationError)
}

func IsExternalAPIError(err error) bool {
	return isType(err, ExternalAPIError)
}

func IsLibraryLoadError(err error) bool {
	return isType(err, LibraryLoadError)
}

func IsUnavailableError(err error) bool {
	return isType(err, UnavailableError)
}

func IsSessionClosedError(err error) bool {
	return isType(err, SessionClosedError)
}

func IsConfigurationError(err error) bool {
	return isType(err, ConfigurationError)
}
