package services

import (
	"errors"

	"freshsilver-api/internal/adapters/storage"
)

// Client facing validation messages
const (
	MsgInvalidMessageText = "Invalid message text"
	MsgAuthorTooLong      = "Author name too long"
	MsgInvalidName        = "Invalid name"
	MsgMissingVisitorID   = "Missing visitor ID"
	MsgNotFound           = "Not found"
)

// Kind classifies a service error. Handlers translate kinds to status codes.
type Kind int

const (
	KindUnknown Kind = iota
	KindBadRequest
	KindNotFound
	KindStorageFailure
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	case KindStorageFailure:
		return "storage_failure"
	default:
		return "unknown"
	}
}

// Error is the tagged error returned by every service operation
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest reports invalid client input
func BadRequest(message string) error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// NotFound reports a missing route or resource
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// StorageFailure wraps an error raised by the store. The message carries the
// store's own error text without the adapter's operation prefix.
func StorageFailure(err error) error {
	message := err.Error()
	var storageErr *storage.StorageError
	if errors.As(err, &storageErr) && storageErr.Err != nil {
		message = storageErr.Err.Error()
	}
	return &Error{Kind: KindStorageFailure, Message: message, Err: err}
}

// KindOf returns the kind of err. Untagged errors count as storage failures
// so they never leak as a success.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindStorageFailure
}
