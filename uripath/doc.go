// Package uripath provides views of a URI path.
//
// A [TaggedPath] splits a path of the form "<path>[:<tag>]" as used by container image
// references, e.g. "/library/alpine:3.20". Only the last "/"-separated segment of the path
// may carry a tag and the tag follows the last ":" of that segment.
//
// A [SegmentedPath] breaks a path into its elements and remembers whether the path
// is absolute and whether it names a container.
package uripath

//go:generate go tool errtrace -w .

import (
	"github.com/uniresource/uniresource/internal/errorutil"
)

const (
	ErrInvalidPath    errorutil.Error = "invalid path"
	ErrInvalidTag     errorutil.Error = "invalid tag"
	ErrInvalidElement errorutil.Error = "invalid path element"
)
