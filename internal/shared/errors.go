package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidPage indicates a page number outside the result set.
	ErrInvalidPage = errors.New("invalid page")
)

// FormatError reports a JSON value of the right type in the wrong format.
type FormatError struct {
	Detail string
}

func (e *FormatError) Error() string { return e.Detail }
