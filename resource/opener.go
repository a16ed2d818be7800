package resource

import (
	"context"
	"io"
	"os"

	"braces.dev/errtrace"

	"github.com/uniresource/uniresource/handler"
	"github.com/uniresource/uniresource/internal/errorutil"
	"github.com/uniresource/uniresource/internal/grammar"
	"github.com/uniresource/uniresource/uri"
)

// Opener opens the content a URI points to.
type Opener interface {
	Open(ctx context.Context, u *uri.URI) (io.ReadCloser, error)
}

// OpenerFunc is an adapter to allow the use of ordinary functions as an [Opener].
type OpenerFunc func(ctx context.Context, u *uri.URI) (io.ReadCloser, error)

// Open calls fn(ctx, u).
func (fn OpenerFunc) Open(ctx context.Context, u *uri.URI) (io.ReadCloser, error) {
	return errtrace.Wrap2(fn(ctx, u))
}

// ClasspathOpener opens "classpath:" URIs through a [Loader].
//
// The loader is selected by the authority of the URI: an absent or empty authority selects
// the default loader, any other authority is resolved by name with Loaders.
//
//	classpath:config/app.yaml
//	classpath:///config/app.yaml
//	classpath://plugins/config/app.yaml
type ClasspathOpener struct {
	// Scheme is the scheme of the URIs. If empty, "classpath" is used.
	Scheme uri.Scheme
	// Default is the loader of URIs without authority.
	Default Loader
	// Loaders resolves named loaders, it may be nil.
	Loaders handler.Factory[Loader]
}

func (o *ClasspathOpener) scheme() uri.Scheme {
	if o.Scheme == "" {
		return uri.SchemeClasspath
	}
	return o.Scheme
}

// Open opens the content of the resource named by the path of u.
func (o *ClasspathOpener) Open(ctx context.Context, u *uri.URI) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if err := o.scheme().Require(u); err != nil {
		return nil, errtrace.Wrap(err)
	}

	loader, err := o.loader(u)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	name := u.SchemeSpecificPart()
	if !u.IsOpaque() {
		name = u.Path().Or("")
	}
	return errtrace.Wrap2(loader.Open(NormalizeContent(grammar.Unescape(name))))
}

func (o *ClasspathOpener) loader(u *uri.URI) (Loader, error) {
	auth := u.Authority().Or("")
	if auth == "" {
		if o.Default == nil {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrNoHandler, "no default loader for %q", u.String()))
		}
		return o.Default, nil
	}
	if o.Loaders != nil {
		if l, ok := o.Loaders.CreateHandler(auth); ok && l != nil {
			return l, nil
		}
	}
	return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrNoHandler, "no loader %q for %q", auth, u.String()))
}

// OpenFile opens the file a "file:" URI points to.
func OpenFile(ctx context.Context, u *uri.URI) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	p, err := FilePath(u)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, errtrace.Wrap(newIOError("open", u.String(), err))
	}
	return f, nil
}

// OpenJar opens the archive entry a "jar:" URI points to.
// Closing the returned reader closes the archive.
func OpenJar(ctx context.Context, u *uri.URI) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	parts, err := uri.SplitJar(u)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	au, err := uri.Parse(parts.URL)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	path, err := FilePath(au)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(openEntry(path, grammar.Unescape(parts.Entry)))
}

// DefaultOpeners returns the "classpath:", "file:" and "jar:" openers keyed by scheme.
// The classpath opener uses the loader as its default loader.
func DefaultOpeners(loader Loader) *handler.Indexed[Opener] {
	return handler.NewIndexedBuilder[Opener]().
		AddHandler(string(uri.SchemeClasspath), &ClasspathOpener{Default: loader}).
		AddHandler(string(uri.SchemeFile), OpenerFunc(OpenFile)).
		AddHandler(string(uri.SchemeJar), OpenerFunc(OpenJar)).
		Build()
}

// Open opens u with the opener created by openers for its scheme.
// It fails with [ErrNoHandler] when there is no opener for the scheme.
func Open(ctx context.Context, openers handler.Factory[Opener], u *uri.URI) (io.ReadCloser, error) {
	scheme, ok := u.Scheme().Get()
	if !ok {
		return nil, errtrace.Wrap(errorutil.NewPreconditionError("URI %q is relative", u.String()))
	}
	o, ok := openers.CreateHandler(scheme)
	if !ok {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrNoHandler, "no opener for scheme %q", scheme))
	}
	return errtrace.Wrap2(o.Open(ctx, u))
}
