package resource

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"braces.dev/errtrace"

	"github.com/uniresource/uniresource/handler"
	"github.com/uniresource/uniresource/internal/errorutil"
	"github.com/uniresource/uniresource/uri"
)

// Scanner enumerates the names under a container.
//
// The origin is the URI the container resolved to, every returned name is prefixed
// by the normalized container. Container names end with "/", content names do not.
type Scanner interface {
	Scan(ctx context.Context, container string, origin *uri.URI) ([]string, error)
}

// ScannerFunc is an adapter to allow the use of ordinary functions as a [Scanner].
type ScannerFunc func(ctx context.Context, container string, origin *uri.URI) ([]string, error)

// Scan calls fn(ctx, container, origin).
func (fn ScannerFunc) Scan(ctx context.Context, container string, origin *uri.URI) ([]string, error) {
	return errtrace.Wrap2(fn(ctx, container, origin))
}

// ScanDir walks the directory of the "file:" origin in lexical order.
// The origin itself is reported as the container.
//
//	ScanDir(ctx, "a/", "file:/tmp/cp/a/") -> ["a/", "a/b/", "a/b/c.txt", "a/d.txt"]
func ScanDir(ctx context.Context, container string, origin *uri.URI) ([]string, error) {
	root, err := FilePath(origin)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	fi, err := os.Stat(root)
	if err != nil {
		return nil, errtrace.Wrap(newIOError("scan", origin.String(), err))
	}
	if !fi.IsDir() {
		return nil, errtrace.Wrap(newIOError("scan", origin.String(), ErrNotContainer))
	}

	c := NormalizeContainer(container)
	var names []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		switch {
		case rel == ".":
			names = append(names, c)
		case d.IsDir():
			names = append(names, c+rel+Separator)
		case d.Type().IsRegular():
			names = append(names, c+rel)
		}
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errtrace.Wrap(ctxErr)
		}
		return nil, errtrace.Wrap(newIOError("scan", origin.String(), err))
	}
	return names, nil
}

// ScanJar lists the entries of the archive a "jar:" origin points into,
// the entry part of the origin is ignored.
// Only the entries whose names start with the container are reported, in archive order,
// the container itself included when the archive has an entry for it.
//
//	ScanJar(ctx, "a/b/", "jar:file:/x.jar!/a/b/") -> ["a/b/", "a/b/c.txt"]
func ScanJar(ctx context.Context, container string, origin *uri.URI) ([]string, error) {
	path, err := archivePath(origin)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	r, err := openArchive(path)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	defer r.Close() //nolint:errcheck

	c := NormalizeContainer(container)
	var names []string
	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return nil, errtrace.Wrap(err)
		}
		if strings.HasPrefix(f.Name, c) {
			names = append(names, f.Name)
		}
	}
	return names, nil
}

// DefaultScanners returns the directory and archive scanners keyed by scheme.
func DefaultScanners() *handler.Indexed[Scanner] {
	return handler.NewIndexedBuilder[Scanner]().
		AddHandler(string(uri.SchemeFile), ScannerFunc(ScanDir)).
		AddHandler(string(uri.SchemeJar), ScannerFunc(ScanJar)).
		Build()
}

// Find locates the container with the loader and scans it with [DefaultScanners].
func Find(ctx context.Context, loader Loader, container string) ([]string, error) {
	return errtrace.Wrap2(FindWith(ctx, DefaultScanners(), loader, container))
}

// FindWith locates the container with the loader and scans it with the scanner
// created by scanners for the scheme of the located URI.
// It fails with [ErrNoHandler] when there is no scanner for the scheme.
func FindWith(ctx context.Context, scanners handler.Factory[Scanner], loader Loader, container string) ([]string, error) {
	c := NormalizeContainer(container)
	u, ok := loader.Resource(c)
	if !ok {
		return nil, errtrace.Wrap(newIOError("find", c, fs.ErrNotExist))
	}
	scheme := u.Scheme().Or("")
	s, ok := scanners.CreateHandler(scheme)
	if !ok {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrNoHandler, "no scanner for scheme %q of %q", scheme, u.String()))
	}
	return errtrace.Wrap2(s.Scan(ctx, c, u))
}
