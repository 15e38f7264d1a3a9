// Package apperr classifies failures of the messaging core so that every
// transport can report them with a stable, specific kind.
package apperr

import (
	"errors"
	"fmt"
)

// Kind enumerates the error taxonomy exposed to callers.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindForbidden  Kind = "forbidden"
	KindConflict   Kind = "conflict"
	KindStorage    Kind = "storage"
	KindAuth       Kind = "auth"
)

// Error carries a kind, a client-safe message and the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	// ChatID is set on conflicts so the client can open the existing chat.
	ChatID uint
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind && other.Message == ""
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Conflict reports that the chat for a pair already exists.
func Conflict(message string, chatID uint) *Error {
	return &Error{Kind: KindConflict, Message: message, ChatID: chatID}
}

// Storage wraps a store failure. The cause stays in the chain for logging only.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "storage unavailable", Err: err}
}

// Auth wraps a credential failure.
func Auth(message string, err error) *Error {
	return &Error{Kind: KindAuth, Message: message, Err: err}
}

// Sentinels usable with errors.Is to test only the kind.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrForbidden  = &Error{Kind: KindForbidden}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrStorage    = &Error{Kind: KindStorage}
	ErrAuth       = &Error{Kind: KindAuth}
)

// KindOf returns the kind of err, or KindStorage when err is not classified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

// As extracts the *Error from err.
func As(err error) (*Error, bool) {
	var appErr *Error
	ok := errors.As(err, &appErr)
	return appErr, ok
}
