package errorutil

import (
	"errors"
	"io/fs"
)

// IsSyntaxErr returns true if the error reports malformed input text.
func IsSyntaxErr(err error) bool {
	var e interface{ Syntax() bool }
	return errors.As(err, &e) && e.Syntax()
}

// IsNotExist returns true if the error reports a missing file, entry or resource.
func IsNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }

// IsPreconditionErr returns true if the error is an [ErrPrecondition] error.
func IsPreconditionErr(err error) bool { return errors.Is(err, ErrPrecondition) }
