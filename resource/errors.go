package resource

import (
	"github.com/uniresource/uniresource/internal/errorutil"
)

const (
	// ErrNoHandler is returned when no scanner or opener is registered for the scheme of a URI.
	ErrNoHandler errorutil.Error = "no handler"
	// ErrNotContainer is returned when a scan origin is not a directory.
	ErrNotContainer errorutil.Error = "not a container"
)

// IOError records an I/O failure and the locator that caused it.
// The locator is a resource name, URI or file path.
type IOError struct {
	Op      string
	Locator string
	Err     error
}

func (e *IOError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Op + " " + e.Locator + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newIOError(op, locator string, err error) error {
	return &IOError{Op: op, Locator: locator, Err: err} //errtrace:skip
}
