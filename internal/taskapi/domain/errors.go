package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode is the stable machine-readable code carried in error envelopes.
type ErrorCode string

const (
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeAuthentication ErrorCode = "AUTHENTICATION_ERROR"
	CodeAuthorization  ErrorCode = "AUTHORIZATION_ERROR"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeDuplicate      ErrorCode = "DUPLICATE_RESOURCE"
	CodeRateLimited    ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeDatabase       ErrorCode = "DATABASE_ERROR"
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
)

// Error is a typed domain failure carrying its HTTP status and wire code.
// Services raise these; the HTTP boundary performs the single translation
// into the response envelope. Details is optional structured context (e.g.
// per-field validation messages) safe to expose to clients.
type Error struct {
	Status  int
	Code    ErrorCode
	Message string
	Details any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// WithCause attaches an underlying error for logs. The cause is never
// serialized to clients.
func (e *Error) WithCause(err error) *Error {
	clone := *e
	clone.cause = err
	return &clone
}

// AsError unwraps err into a *Error, or nil if it isn't one.
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return nil
}

func NewValidationError(message string, details any) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Code: CodeValidation, Message: message, Details: details}
}

func NewAuthenticationError(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: CodeAuthentication, Message: message}
}

func NewAuthorizationError(message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: CodeAuthorization, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

func NewDuplicateError(message string) *Error {
	return &Error{Status: http.StatusConflict, Code: CodeDuplicate, Message: message}
}

func NewBadRequestError(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeBadRequest, Message: message}
}

func NewRateLimitError() *Error {
	return &Error{Status: http.StatusTooManyRequests, Code: CodeRateLimited, Message: "Too many requests. Please try again later."}
}

func NewDatabaseError(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeDatabase, Message: "A storage error occurred", cause: err}
}

func NewInternalError(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "An internal error occurred", cause: err}
}
