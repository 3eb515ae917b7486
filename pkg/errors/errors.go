package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCanceled     ErrorCode = "CANCELED"

	// Configuration errors
	ErrConfigLoad        ErrorCode = "CONFIG_LOAD"
	ErrConfigParse       ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid     ErrorCode = "CONFIG_INVALID"
	ErrRasterTypeUnknown ErrorCode = "RASTER_TYPE_UNKNOWN"

	// Resolution errors
	ErrArtifactMissing   ErrorCode = "ARTIFACT_MISSING"
	ErrResolutionFailed  ErrorCode = "RESOLUTION_FAILED"
	ErrResolutionUnknown ErrorCode = "RESOLUTION_UNKNOWN"

	// FileSystem errors
	ErrFileCopy    ErrorCode = "FILE_COPY"
	ErrFileWrite   ErrorCode = "FILE_WRITE"
	ErrDirCreate   ErrorCode = "DIR_CREATE"
	ErrArchiveRead ErrorCode = "ARCHIVE_READ"
	ErrWalk        ErrorCode = "WALK"

	// Naming errors
	ErrNameCollision ErrorCode = "NAME_COLLISION"

	// Vector errors
	ErrTranscode ErrorCode = "TRANSCODE"
)

// DrawablesError represents a structured error with code and details
type DrawablesError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DrawablesError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DrawablesError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a DrawablesError with the same code
func (e *DrawablesError) Is(target error) bool {
	var targetErr *DrawablesError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DrawablesError with the given code and message
func New(code ErrorCode, message string) *DrawablesError {
	return &DrawablesError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DrawablesError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DrawablesError {
	return &DrawablesError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DrawablesError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *DrawablesError {
	if err == nil {
		return nil
	}
	return &DrawablesError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DrawablesError {
	if err == nil {
		return nil
	}
	return &DrawablesError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DrawablesError) WithDetail(key string, value interface{}) *DrawablesError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *DrawablesError) WithDetails(details map[string]interface{}) *DrawablesError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var drawablesErr *DrawablesError
	if errors.As(err, &drawablesErr) {
		return drawablesErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DrawablesError
func GetErrorCode(err error) ErrorCode {
	var drawablesErr *DrawablesError
	if errors.As(err, &drawablesErr) {
		return drawablesErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DrawablesError
func GetErrorDetails(err error) map[string]interface{} {
	var drawablesErr *DrawablesError
	if errors.As(err, &drawablesErr) {
		return drawablesErr.Details
	}
	return nil
}

// IsConfigError reports whether err belongs to the configuration class,
// which is always detected before any file I/O.
func IsConfigError(err error) bool {
	switch GetErrorCode(err) {
	case ErrConfigLoad, ErrConfigParse, ErrConfigInvalid, ErrRasterTypeUnknown:
		return true
	}
	return false
}

// IsResolutionError reports whether err belongs to the dependency resolution class
func IsResolutionError(err error) bool {
	switch GetErrorCode(err) {
	case ErrArtifactMissing, ErrResolutionFailed, ErrResolutionUnknown:
		return true
	}
	return false
}

// As returns the first DrawablesError in err's chain
func As(err error) (*DrawablesError, bool) {
	var drawablesErr *DrawablesError
	if errors.As(err, &drawablesErr) {
		return drawablesErr, true
	}
	return nil, false
}
