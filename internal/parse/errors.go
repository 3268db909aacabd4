package parse

import (
	"fmt"

	appErrors "rosepine/internal/errors"
)

// Sentinels for errors.Is checks against a parse failure.
var (
	ErrUnknownToken    = appErrors.Sentinel(appErrors.CodeUnknownToken)
	ErrMalformedPrefix = appErrors.Sentinel(appErrors.CodeMalformedPrefix)
	ErrUnclosedGroup   = appErrors.Sentinel(appErrors.CodeUnclosedGroup)
	ErrInvalidOpacity  = appErrors.Sentinel(appErrors.CodeInvalidOpacity)
)

// Error describes a placeholder that could not be parsed. Start is the
// offset of the prefix character; Pos is where scanning gave up.
type Error struct {
	Code  appErrors.Code
	Start int
	Pos   int
	Err   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s at %d (placeholder at %d)", describe(e.Code), e.Pos, e.Start)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the structured error so appErrors.IsCode and errors.Is work.
func (e *Error) Unwrap() error {
	return appErrors.New(e.Code, describe(e.Code), e.Err)
}

func describe(code appErrors.Code) string {
	switch code {
	case appErrors.CodeUnknownToken:
		return "no role, format or metadata name matches"
	case appErrors.CodeMalformedPrefix:
		return "prefix expected"
	case appErrors.CodeUnclosedGroup:
		return "role group is not closed"
	case appErrors.CodeInvalidOpacity:
		return "invalid opacity digits"
	default:
		return string(code)
	}
}

func newError(code appErrors.Code, start, pos int, err error) *Error {
	return &Error{Code: code, Start: start, Pos: pos, Err: err}
}
