package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an operation failure. Every kind is an expected,
// recoverable outcome surfaced to the caller.
type Kind string

const (
	KindValidation        Kind = "VALIDATION_FAILED"
	KindNotFound          Kind = "NOT_FOUND"
	KindConflict          Kind = "CONFLICT"
	KindInvalidVariant    Kind = "INVALID_VARIANT"
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"
	KindInvalidCode       Kind = "INVALID_CODE"
	KindMismatch          Kind = "MISMATCH"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindRateLimited       Kind = "RATE_LIMITED"
	KindInternal          Kind = "INTERNAL_SERVER_ERROR"
)

type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithField builds an error whose message is keyed to a single input field.
func WithField(kind Kind, field, message string) *Error {
	return &Error{Kind: kind, Message: message, Fields: map[string]string{field: message}}
}

// KindOf extracts the Kind from err, or KindInternal when err is untyped.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps the error kind to a transport status code. The same code
// is mirrored in the response envelope.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindInvalidVariant, KindInsufficientStock, KindInvalidCode, KindMismatch:
		return fiber.StatusBadRequest
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}
