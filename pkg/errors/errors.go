package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeDependency   Code = "DEPENDENCY_ERROR"
)

// Metadata describes how a code surfaces in the toast area.
type Metadata struct {
	ToastTitle     string
	ToastMessage   string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		ToastTitle:     "Incomplete Form",
		ToastMessage:   "Please fill in all fields.",
		DetailsAllowed: true,
	},
	CodeUnauthorized: {
		ToastTitle:     "Sign In Required",
		ToastMessage:   "Please sign in to continue.",
		DetailsAllowed: false,
	},
	CodeNotFound: {
		ToastTitle:     "Not Found",
		ToastMessage:   "That item could not be found.",
		DetailsAllowed: false,
	},
	CodeConflict: {
		ToastTitle:     "Conflict",
		ToastMessage:   "That action conflicts with the current state.",
		DetailsAllowed: false,
	},
	CodeInternal: {
		ToastTitle:     "Something Went Wrong",
		ToastMessage:   "An unexpected error occurred.",
		DetailsAllowed: false,
	},
	CodeDependency: {
		ToastTitle:     "Storage Unavailable",
		ToastMessage:   "Your changes may not have been saved.",
		DetailsAllowed: true,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
