package question

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error returned by Service wraps exactly one of these.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrNotFound      = errors.New("resource not found")
	ErrUnprocessable = errors.New("unprocessable")
)

var (
	// ErrExhausted means every question of the requested quiz category was already asked.
	ErrExhausted = fmt.Errorf("quiz pool exhausted: %w", ErrUnprocessable)
	// ErrCoercion means a creation field could not be converted to its stored type.
	ErrCoercion = fmt.Errorf("field coercion failed: %w", ErrUnprocessable)
)

func fail(kind error, op string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", op, kind)
	}
	return fmt.Errorf("%s: %w: %w", op, kind, cause)
}
