package fetch

import "errors"

var (
	ErrEmptyURL     = errors.New("url must not be empty")
	ErrBodyTooLarge = errors.New("response body exceeds size limit")
)

// Error reports a transport-level failure reaching a URL. Its message is the
// underlying cause's message.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(url string, err error) *Error {
	return &Error{URL: url, Err: err}
}
