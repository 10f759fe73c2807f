package value

import "errors"

var (
	// ErrMalformed indicates the encoded document is not a valid tree.
	ErrMalformed = errors.New("value: malformed document")

	// ErrInvalidNumber indicates a number that is not a finite decimal.
	ErrInvalidNumber = errors.New("value: invalid number")

	// ErrUnsupported indicates a Go value with no tree representation.
	ErrUnsupported = errors.New("value: unsupported type")
)
