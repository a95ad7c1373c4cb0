package engine

import (
	"errors"
	"fmt"
)

const (
	CodeDataUnavailable  = "DATA_UNAVAILABLE"
	CodeEmptyTable       = "EMPTY_TABLE"
	CodeInvalidParameter = "INVALID_PARAMETER"
)

var (
	ErrDataUnavailable  = &Error{Code: CodeDataUnavailable, Message: "data unavailable"}
	ErrEmptyTable       = &Error{Code: CodeEmptyTable, Message: "table has no rows"}
	ErrInvalidParameter = &Error{Code: CodeInvalidParameter, Message: "invalid parameter"}
)

// Error is the engine's structured error. Two errors match under errors.Is
// when their codes are equal, so callers can test against the sentinels.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func dataUnavailable(cause error, format string, args ...interface{}) error {
	return &Error{Code: CodeDataUnavailable, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func emptyTable(op string) error {
	return &Error{Code: CodeEmptyTable, Message: op + ": table has no rows"}
}

func invalidParameter(format string, args ...interface{}) error {
	return &Error{Code: CodeInvalidParameter, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
