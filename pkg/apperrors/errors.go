package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Code is a stable, machine-readable error kind.
type Code string

const (
	CodeDuplicateCredential Code = "DUPLICATE_CREDENTIAL"
	CodeInvalidCredentials  Code = "INVALID_CREDENTIALS"
	CodeUnauthenticated     Code = "UNAUTHENTICATED"
	CodeNotFound            Code = "NOT_FOUND"
	CodeValidation          Code = "VALIDATION_ERROR"
	CodeCategoryInUse       Code = "CATEGORY_IN_USE"
	CodeInternal            Code = "INTERNAL"
)

// HTTPStatus returns the response status for the code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeDuplicateCredential, CodeInvalidCredentials, CodeValidation:
		return fiber.StatusBadRequest
	case CodeUnauthenticated:
		return fiber.StatusUnauthorized
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeCategoryInUse:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Error is what services return for any failure a client may see. Only
// Message and Param reach the response body; Cause is kept for logs.
type Error struct {
	Code    Code
	Message string

	// Param names the offending request field, if the failure is tied to one.
	Param string
	Cause error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same Code, so sentinel values built with
// New can be compared with errors.Is regardless of message or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// ForField is New with the blamed request field attached.
func ForField(code Code, field, message string) *Error {
	return &Error{Code: code, Message: message, Param: field}
}

// Wrap keeps cause behind a client-safe message.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// From returns the outermost *Error in err's chain.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf is the code of err, with anything untyped counted as CodeInternal.
func CodeOf(err error) Code {
	if appErr, ok := From(err); ok {
		return appErr.Code
	}
	return CodeInternal
}
