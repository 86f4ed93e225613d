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

	// File access errors
	ErrNotFound        ErrorCode = "NOT_FOUND"
	ErrIsDirectory     ErrorCode = "IS_DIRECTORY"
	ErrInvalidEncoding ErrorCode = "INVALID_ENCODING"
	ErrAccessDenied    ErrorCode = "ACCESS_DENIED"

	// Package errors
	ErrPackageNotFound    ErrorCode = "PACKAGE_NOT_FOUND"
	ErrPackageFetch       ErrorCode = "PACKAGE_FETCH"
	ErrPackageSpecInvalid ErrorCode = "PACKAGE_SPEC_INVALID"
	ErrDependencyResolve  ErrorCode = "DEPENDENCY_RESOLVE"

	// Packaging errors
	ErrSourceNotDirectory ErrorCode = "SOURCE_NOT_DIRECTORY"
	ErrInvalidFilePath    ErrorCode = "INVALID_FILE_PATH"
	ErrArchiveWrite       ErrorCode = "ARCHIVE_WRITE"
	ErrArchiveRead        ErrorCode = "ARCHIVE_READ"
	ErrTimestampRange     ErrorCode = "TIMESTAMP_RANGE"

	// Manifest errors
	ErrManifestRead    ErrorCode = "MANIFEST_READ"
	ErrManifestParse   ErrorCode = "MANIFEST_PARSE"
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// Detail keys shared by the packages that attach context to errors.
const (
	DetailPath     = "path"
	DetailPackage  = "package"
	DetailImporter = "importer"
	DetailLine     = "line"
)

// TmplfsError represents a structured error with code and details
type TmplfsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TmplfsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TmplfsError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *TmplfsError) Is(target error) bool {
	var targetErr *TmplfsError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TmplfsError with the given code and message
func New(code ErrorCode, message string) *TmplfsError {
	return &TmplfsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TmplfsError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TmplfsError {
	return &TmplfsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a TmplfsError
func Wrap(err error, code ErrorCode, message string) *TmplfsError {
	if err == nil {
		return nil
	}
	return &TmplfsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TmplfsError {
	if err == nil {
		return nil
	}
	return &TmplfsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TmplfsError) WithDetail(key string, value interface{}) *TmplfsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *TmplfsError) WithDetails(details map[string]interface{}) *TmplfsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code.
// The outermost TmplfsError in the chain decides.
func IsErrorCode(err error, code ErrorCode) bool {
	var tmplErr *TmplfsError
	if errors.As(err, &tmplErr) {
		return tmplErr.Code == code
	}
	return false
}

// HasErrorCode reports whether any TmplfsError in the chain carries code.
func HasErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var tmplErr *TmplfsError
		if !errors.As(err, &tmplErr) {
			return false
		}
		if tmplErr.Code == code {
			return true
		}
		err = tmplErr.Wrapped
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TmplfsError
func GetErrorCode(err error) ErrorCode {
	var tmplErr *TmplfsError
	if errors.As(err, &tmplErr) {
		return tmplErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TmplfsError
func GetErrorDetails(err error) map[string]interface{} {
	var tmplErr *TmplfsError
	if errors.As(err, &tmplErr) {
		return tmplErr.Details
	}
	return nil
}
