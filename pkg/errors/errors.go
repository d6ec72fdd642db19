package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error for boundary handling.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthorization
	KindNotFound
	KindStore
	KindInternal
)

// AppError is the error type every layer surfaces to the request boundary.
type AppError struct {
	Kind    Kind   `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by kind so callers can test with errors.Is against
// the kind sentinels below.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Kind sentinels for errors.Is checks.
var (
	ErrValidation    = &AppError{Kind: KindValidation}
	ErrAuthorization = &AppError{Kind: KindAuthorization}
	ErrNotFound      = &AppError{Kind: KindNotFound}
	ErrStore         = &AppError{Kind: KindStore}
	ErrInternal      = &AppError{Kind: KindInternal}
)

func NewValidation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewAuthorization(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: message}
}

func NewNotFound(resource string) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func NewStore(err error) *AppError {
	return &AppError{Kind: KindStore, Message: "storage failure", Err: err}
}

func NewInternal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf returns the kind of err if it is (or wraps) an AppError,
// KindInternal otherwise.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
