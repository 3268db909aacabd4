package errors

import "errors"

// Code identifies a structured error type used across the application.
type Code string

const (
	// Generic codes
	CodeUnknown Code = "unknown"

	// Placeholder errors
	CodeUnknownToken       Code = "unknown_token"
	CodeMalformedPrefix    Code = "malformed_prefix"
	CodeUnclosedGroup      Code = "unclosed_group"
	CodeInvalidOpacity     Code = "invalid_opacity"
	CodeOpacityOutOfRange  Code = "opacity_out_of_range"
	CodeUnknownFormat      Code = "unknown_format"
	CodeUnknownRole        Code = "unknown_role"
	CodeUnknownVariant     Code = "unknown_variant"
	CodeTemplateFailed     Code = "template_failed"
	CodeTemplateNotFound   Code = "template_source_missing"
	CodeConfigurationError Code = "configuration_error"
	CodeCacheFailed        Code = "cache_failed"

	// Release check errors
	CodeNetworkFailure Code = "network_failure"
	CodeRateLimited    Code = "rate_limited"
	CodeInvalidVersion Code = "invalid_version"
)

// Error represents a structured error with a machine-readable code plus message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// Is matches another structured error carrying the same code, so sentinel
// values built with New can be used with errors.Is.
func (e Error) Is(target error) bool {
	var other Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code && other.Message == ""
}

// New wraps an error with a code/message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// Sentinel returns a message-less error usable as an errors.Is target for code.
func Sentinel(code Code) Error {
	return Error{Code: code}
}

// CodeOf walks the error chain and returns the first structured code found.
func CodeOf(err error) Code {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	return CodeUnknown
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
