package resource

import (
	"errors"
	"io"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"

	"braces.dev/errtrace"

	"github.com/uniresource/uniresource/internal/grammar"
	"github.com/uniresource/uniresource/log"
	"github.com/uniresource/uniresource/uri"
)

// Loader looks up resources by name.
type Loader interface {
	// Resource returns the URI of the first resource with the name.
	Resource(name string) (*uri.URI, bool)
	// Open opens the content of the first resource with the name.
	// It fails with an error matching [fs.ErrNotExist] when there is none.
	Open(name string) (io.ReadCloser, error)
	// Resources returns the URIs of all resources with the name.
	Resources(name string) []*uri.URI
}

// PathLoaderOptions are the options of a [PathLoader].
type PathLoaderOptions struct {
	// Logger is the logger used by the loader.
	// If nil, the [log.Default] is used.
	Logger *slog.Logger
}

func (o *PathLoaderOptions) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

// PathLoader is a [Loader] over an ordered list of roots.
// A root is either a directory or a zip archive, earlier roots shadow later ones.
// Archives are opened on every lookup and closed before the lookup returns.
type PathLoader struct {
	roots []loaderRoot
	log   *slog.Logger
}

type loaderRoot struct {
	path    string
	uri     *uri.URI
	archive bool
}

// NewPathLoader creates a loader over the roots.
// Roots that do not exist are skipped.
func NewPathLoader(roots []string, opts *PathLoaderOptions) (*PathLoader, error) {
	l := &PathLoader{log: opts.log()}
	for _, p := range roots {
		fi, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				l.log.Warn("skip missing loader root", slog.String("root", p))
				continue
			}
			return nil, errtrace.Wrap(newIOError("stat", p, err))
		}

		r := loaderRoot{path: p, archive: !fi.IsDir()}
		if r.archive {
			r.uri, err = FileURI(p)
		} else {
			r.uri, err = FileURI(p + string(os.PathSeparator))
		}
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		l.roots = append(l.roots, r)
	}
	return l, nil
}

// Roots returns the URIs of the roots in lookup order.
func (l *PathLoader) Roots() []*uri.URI {
	out := make([]*uri.URI, len(l.roots))
	for i, r := range l.roots {
		out[i] = r.uri
	}
	return out
}

func (l *PathLoader) Resource(name string) (*uri.URI, bool) {
	for u := range l.lookup(name) {
		return u, true
	}
	return nil, false
}

func (l *PathLoader) Resources(name string) []*uri.URI {
	var out []*uri.URI
	for u := range l.lookup(name) {
		out = append(out, u)
	}
	return out
}

func (l *PathLoader) Open(name string) (io.ReadCloser, error) {
	n := NormalizeContent(name)
	if n == RootContainerName {
		return nil, errtrace.Wrap(newIOError("open", name, fs.ErrNotExist))
	}
	for _, r := range l.roots {
		if r.archive {
			rc, err := openEntry(r.path, n)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return rc, errtrace.Wrap(err)
		}

		f, err := os.Open(filepath.Join(r.path, filepath.FromSlash(n)))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errtrace.Wrap(newIOError("open", name, err))
		}
		if fi, err := f.Stat(); err == nil && fi.IsDir() {
			f.Close() //nolint:errcheck
			continue
		}
		return f, nil
	}
	return nil, errtrace.Wrap(newIOError("open", name, fs.ErrNotExist))
}

// lookup iterates over the URIs of the resources with the name, root by root.
func (l *PathLoader) lookup(name string) iter.Seq[*uri.URI] {
	n := ParseLocation(name).Name()
	return func(yield func(*uri.URI) bool) {
		for _, r := range l.roots {
			u, ok := l.find(r, n)
			if !ok {
				continue
			}
			l.log.Debug("resource found", slog.String("name", n), slog.Any("uri", u))
			if !yield(u) {
				return
			}
		}
	}
}

func (l *PathLoader) find(r loaderRoot, name string) (*uri.URI, bool) {
	if r.archive {
		ar, err := openArchive(r.path)
		if err != nil {
			l.log.Warn("failed to open archive", slog.String("root", r.path), slog.Any("error", err))
			return nil, false
		}
		defer ar.Close() //nolint:errcheck

		if _, ok := findEntry(&ar.Reader, name); !ok {
			return nil, false
		}
		u, err := uri.FormatJar("", r.uri.String(), grammar.Escape(name, grammar.IsPathChar))
		if err != nil {
			l.log.Warn("failed to format archive entry URI", slog.String("root", r.path), slog.String("name", name), slog.Any("error", err))
			return nil, false
		}
		return u, true
	}

	p := filepath.Join(r.path, filepath.FromSlash(name))
	fi, err := os.Stat(p)
	if err != nil {
		return nil, false
	}
	if IsContainerName(name) && !fi.IsDir() {
		return nil, false
	}
	if fi.IsDir() {
		p += string(os.PathSeparator)
	}
	u, err := FileURI(p)
	if err != nil {
		l.log.Warn("failed to build file URI", slog.String("path", p), slog.Any("error", err))
		return nil, false
	}
	return u, true
}
