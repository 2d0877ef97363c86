package errors

import (
	stderrors "errors"
	"fmt"
)

type Kind string

const (
	KindValidation          Kind = "VALIDATION_ERROR"
	KindNotFound            Kind = "NOT_FOUND"
	KindUpstreamUnavailable Kind = "UPSTREAM_UNAVAILABLE"
	KindParseFailure        Kind = "PARSE_FAILURE"
	KindUnsupported         Kind = "UNSUPPORTED"
)

// APIError carries the message a handler puts in its failure body. Err is the
// underlying cause, kept for logging.
type APIError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewValidationError(message string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
	}
}

func NewNotFoundError(message string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: message,
	}
}

func NewUnsupportedError(message string) *APIError {
	return &APIError{
		Kind:    KindUnsupported,
		Message: message,
	}
}

// NewUpstreamError wraps a transport failure. prefix, when set, is prepended
// to the cause as "<prefix>: <cause>".
func NewUpstreamError(prefix string, err error) *APIError {
	return &APIError{
		Kind:    KindUpstreamUnavailable,
		Message: withPrefix(prefix, err),
		Err:     err,
	}
}

func NewParseError(prefix string, err error) *APIError {
	return &APIError{
		Kind:    KindParseFailure,
		Message: withPrefix(prefix, err),
		Err:     err,
	}
}

// KindOf reports the kind of the first *APIError in err's chain, or
// KindUpstreamUnavailable for anything else.
func KindOf(err error) Kind {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUpstreamUnavailable
}

func withPrefix(prefix string, err error) string {
	if prefix == "" {
		return err.Error()
	}
	return fmt.Sprintf("%s: %v", prefix, err)
}
