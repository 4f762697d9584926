package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure of the cart pipeline.
type Kind string

const (
	KindUnknown           Kind = ""
	KindInvalidRequest    Kind = "invalid_request"
	KindUpstreamCatalog   Kind = "upstream_catalog"
	KindProductNotFound   Kind = "product_not_found"
	KindInsufficientStock Kind = "insufficient_stock"
	KindNoQuotes          Kind = "no_quotes_available"
)

// Error carries a failure kind and a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error without an underlying cause.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind and message to err. A nil err yields nil.
func Wrap(kind Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// PublicMessage returns the message that is safe to show to clients.
// Causes are kept out of it; they go to the logs.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// HTTPStatus maps a kind to the response status. Every pipeline failure is
// reported as a client error.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidRequest, KindUpstreamCatalog, KindProductNotFound, KindInsufficientStock, KindNoQuotes:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
