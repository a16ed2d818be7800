// Package errorutil provides the error primitives shared by all packages of the module.
package errorutil

//go:generate go tool errtrace -w .

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/uniresource/uniresource/internal/util"
)

// Error is a string type that implements the error interface.
// It is used to declare constant sentinel errors.
type Error string

func (s Error) Error() string { return string(s) }

func Errorf(format string, args ...any) error {
	return Error(fmt.Sprintf(format, args...)) //errtrace:skip
}

// NewWrapperError creates or wraps an error with a sentinel error.
// It supports multiple argument patterns:
//   - No args: returns sentinel
//   - error arg: wraps with sentinel (unless already wrapped)
//   - string arg: formats as message with sentinel
//   - string + args: formats with Sprintf then wraps with sentinel
func NewWrapperError(sentinel error, args ...any) error {
	if len(args) == 0 {
		return sentinel //errtrace:skip
	}
	switch v := args[0].(type) {
	case error:
		if errors.Is(v, sentinel) {
			return v //errtrace:skip
		}
		return fmt.Errorf("%w: %w", sentinel, v) //errtrace:skip
	case string:
		if len(args) == 1 {
			return fmt.Errorf("%w: %s", sentinel, v) //errtrace:skip
		}
		return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(v, args[1:]...)) //errtrace:skip
	default:
		return sentinel //errtrace:skip
	}
}

// ErrInvalidArgument is an error returned when an invalid argument is provided.
const ErrInvalidArgument Error = "invalid argument"

// NewInvalidArgumentError creates a new error with [ErrInvalidArgument] or
// wraps provided error with [ErrInvalidArgument].
func NewInvalidArgumentError(args ...any) error {
	return NewWrapperError(ErrInvalidArgument, args...) //errtrace:skip
}

// ErrPrecondition is an error returned when a component is invoked with an input
// it was not designed for, e.g. a URI of a foreign scheme.
const ErrPrecondition Error = "precondition violated"

// NewPreconditionError creates a new error with [ErrPrecondition] or
// wraps provided error with [ErrPrecondition].
func NewPreconditionError(args ...any) error {
	return NewWrapperError(ErrPrecondition, args...) //errtrace:skip
}

// Join combines errors into a single error.
// Nil errors are discarded, nil is returned if nothing remains.
func Join(errs ...error) error {
	errs = compact(errs)
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0] //errtrace:skip
	}
	return &multiError{errs: errs} //errtrace:skip
}

// JoinPrefix is like [Join] but prepends the prefix to the resulting message.
func JoinPrefix(prefix string, errs ...error) error {
	errs = compact(errs)
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return fmt.Errorf("%s: %w", strings.TrimRight(prefix, ":"), errs[0]) //errtrace:skip
	}
	return &multiError{prefix: prefix, errs: errs} //errtrace:skip
}

func compact(errs []error) []error {
	return slices.DeleteFunc(slices.Clone(errs), func(err error) bool { return err == nil })
}

// multiError renders its errors as a bullet list, nested lists are indented one level deeper.
type multiError struct {
	prefix string
	errs   []error
}

func (e *multiError) Error() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteString(e.prefix)
	e.list(sb, 1)
	return sb.String()
}

func (e *multiError) list(sb *strings.Builder, depth int) {
	pad := strings.Repeat("  ", depth)
	for _, err := range e.errs {
		sb.WriteString("\n" + pad + "- ")
		if m, ok := err.(*multiError); ok { //nolint:errorlint
			sb.WriteString(cmp.Or(m.prefix, "multiple errors"))
			m.list(sb, depth+1)
			continue
		}
		sb.WriteString(strings.ReplaceAll(err.Error(), "\n", "\n"+pad+"  "))
	}
}

func (e *multiError) Unwrap() []error { return e.errs }
