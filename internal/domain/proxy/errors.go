package proxy

import (
	"errors"
)

// ErrURLRequired is reported when the request carries no usable URL
var ErrURLRequired = errors.New("URL is required")

// Error kinds, used as metric labels and log fields
const (
	KindValidation = "validation"
	KindFetch      = "fetch"
	KindInternal   = "internal"
)

// ValidationError rejects input before any I/O happens
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FetchError reports that the upstream page could not be retrieved
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return "Failed to fetch content: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewURLRequired returns the validation error for a missing url field
func NewURLRequired() *ValidationError {
	return &ValidationError{Field: "url", Err: ErrURLRequired}
}

// Kind classifies err as KindValidation, KindFetch or KindInternal
func Kind(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return KindValidation
	}
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return KindFetch
	}
	return KindInternal
}
