// Package errors gives photogrid errors a machine-readable Code.
//
// Codes fall into a handful of classes (bad input, missing resource,
// access, transient, partial batch, internal). The class decides how the
// CLI exits and which status the preview server answers with:
//
//	err := errors.New(errors.ErrCodeInvalidField, "caption too long (max %d)", 100)
//	errors.Is(err, errors.ErrCodeInvalidField)        // true
//	errors.GetCode(err).Class() == errors.ClassInput  // true
//
// Wrap keeps the cause reachable for the standard library's errors.Is:
//
//	err = errors.Wrap(errors.ErrCodeNetwork, ioErr, "GET %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidField    Code = "INVALID_FIELD"
	ErrCodeInvalidFragment Code = "INVALID_FRAGMENT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodePictureNotFound Code = "PICTURE_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	ErrCodeNetwork Code = "NETWORK_ERROR"

	ErrCodeUnauthorized Code = "UNAUTHORIZED"
	ErrCodeForbidden    Code = "FORBIDDEN"
	// ErrCodeReauthenticate means the server dropped the token cookie; no
	// request will succeed until a new code is redeemed.
	ErrCodeReauthenticate Code = "REAUTHENTICATE"
	ErrCodeCodeRejected   Code = "CODE_REJECTED"

	ErrCodeBatchPartial Code = "BATCH_PARTIAL"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Class groups codes that callers treat alike.
type Class int

const (
	ClassInternal Class = iota
	ClassInput
	ClassMissing
	ClassAccess
	ClassTransient
	ClassPartial
)

var classes = map[Code]Class{
	ErrCodeInvalidInput:    ClassInput,
	ErrCodeInvalidField:    ClassInput,
	ErrCodeInvalidFragment: ClassInput,
	ErrCodeInvalidConfig:   ClassInput,
	ErrCodeNotFound:        ClassMissing,
	ErrCodePictureNotFound: ClassMissing,
	ErrCodeFileNotFound:    ClassMissing,
	ErrCodeNetwork:         ClassTransient,
	ErrCodeUnauthorized:    ClassAccess,
	ErrCodeForbidden:       ClassAccess,
	ErrCodeReauthenticate:  ClassAccess,
	ErrCodeCodeRejected:    ClassAccess,
	ErrCodeBatchPartial:    ClassPartial,
}

// Class returns the code's class. Unknown codes are internal.
func (c Code) Class() Class { return classes[c] }

// HTTPStatus is the status the preview server answers with for c.
func (c Code) HTTPStatus() int {
	switch c.Class() {
	case ClassInput:
		return http.StatusBadRequest
	case ClassMissing:
		return http.StatusNotFound
	case ClassAccess:
		if c == ErrCodeUnauthorized {
			return http.StatusUnauthorized
		}
		return http.StatusForbidden
	case ClassTransient:
		return http.StatusBadGateway
	case ClassPartial:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Error carries a Code, a message for people and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether any *Error in err's chain has code.
func Is(err error, code Code) bool {
	for e := (*Error)(nil); errors.As(err, &e); err = e.Cause {
		if e.Code == code {
			return true
		}
	}
	return false
}

// GetCode returns the outermost code in err's chain, or "".
func GetCode(err error) Code {
	return GetCodeOr(err, "")
}

// GetCodeOr is GetCode with a fallback for uncoded errors.
func GetCodeOr(err error, def Code) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return def
}

// UserMessage drops the code prefix and the cause from coded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// NeedsReauth reports whether err means the token cookie must be replaced
// before any further request can succeed.
func NeedsReauth(err error) bool {
	return Is(err, ErrCodeReauthenticate)
}
