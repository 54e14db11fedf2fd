package apperrors

import (
	"errors"
	"fmt"
)

// Sentinels for the three failure classes callers can act on. Everything a
// store or service returns wraps exactly one of them.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")
)

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func NotFound(what string, id any) error {
	return fmt.Errorf("%w: %s %v", ErrNotFound, what, id)
}

// Storage wraps a driver error; the original error stays reachable via errors.Is/As.
func Storage(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// Classified reports whether err already carries one of the sentinels.
func Classified(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrStorage)
}

// Ensure wraps unclassified errors as storage failures and passes the rest through.
func Ensure(op string, err error) error {
	if err == nil || Classified(err) {
		return err
	}
	return Storage(op, err)
}
