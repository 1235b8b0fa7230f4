package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for comparison with errors.Is
var (
	ErrDecode       = errors.New("decode error")
	ErrIO           = errors.New("i/o error")
	ErrMissingID    = errors.New("missing ID field")
	ErrUnhashableID = errors.New("unhashable ID")
	ErrConfig       = errors.New("invalid configuration")
)

// Wrap functions for consistent error wrapping
func WrapDecode(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
}

func WrapIO(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}

func WrapMissingID(field string, pos int) error {
	return fmt.Errorf("%w: original record %d has no %q field", ErrMissingID, pos, field)
}

func WrapUnhashableID(which string, pos int, err error) error {
	return fmt.Errorf("%w: %s record %d: %w", ErrUnhashableID, which, pos, err)
}

func WrapConfig(msg string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrConfig, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrConfig, msg, err)
}
