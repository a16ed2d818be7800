package uri

import (
	"fmt"

	"github.com/uniresource/uniresource/internal/errorutil"
	"github.com/uniresource/uniresource/internal/grammar"
)

const (
	// ErrMalformedInput is returned for text that is not a URI.
	ErrMalformedInput = grammar.ErrMalformedInput
	// ErrInvalidArgument is returned for components that cannot be reconstructed into a URI.
	ErrInvalidArgument = errorutil.ErrInvalidArgument
	// ErrPrecondition is returned when a URI is passed to an operation not designed for it.
	ErrPrecondition = errorutil.ErrPrecondition
)

var (
	// ErrNoRule is returned by [Build] when no reconstruction rule applies to the components.
	// It wraps [ErrInvalidArgument].
	ErrNoRule = fmt.Errorf("%w: no reconstruction rule applies", ErrInvalidArgument)
	// ErrSchemeMismatch is returned when a URI has an unexpected scheme.
	// It wraps [ErrPrecondition].
	ErrSchemeMismatch = fmt.Errorf("%w: scheme mismatch", ErrPrecondition)
	// ErrPredicateMismatch is returned by [Predicate.Require].
	// It wraps [ErrPrecondition].
	ErrPredicateMismatch = fmt.Errorf("%w: predicate mismatch", ErrPrecondition)
)

func newMalformedErr(text, format string, args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, "%q: %s", text, fmt.Sprintf(format, args...)) //errtrace:skip
}

func wrapMalformedErr(text, component string, err error) error {
	return fmt.Errorf("%q: %s: %w", text, component, err) //errtrace:skip
}
