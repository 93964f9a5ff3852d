package source

import (
	"errors"
	"fmt"
)

// Sentinel failures callers branch on.
var (
	// ErrShortCSV indicates the downloaded CSV is too short to contain the
	// expected metadata lines plus a header.
	ErrShortCSV = errors.New("holdings csv has too few lines")

	// ErrMissingColumns indicates required holdings columns are absent.
	ErrMissingColumns = errors.New("holdings table is missing required columns")
)

// FatalError marks a failure with no further fallback: the resolver aborts
// the chain instead of trying the next source.
type FatalError struct {
	Err error
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	return e.Err.Error()
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *FatalError) Unwrap() error {
	return e.Err
}

// fatalf wraps a formatted error as fatal.
func fatalf(format string, args ...any) error {
	return &FatalError{Err: fmt.Errorf(format, args...)}
}

// IsFatal reports whether err carries a FatalError anywhere in its chain.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
