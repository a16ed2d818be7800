package resource

import (
	"os"
	"path/filepath"
	"strings"

	"braces.dev/errtrace"

	"github.com/uniresource/uniresource/internal/errorutil"
	"github.com/uniresource/uniresource/internal/grammar"
	"github.com/uniresource/uniresource/uri"
)

// FileURI builds the "file:" URI of the path.
// Relative paths are made absolute. A trailing separator is kept.
//
//	/tmp/a b/ -> file:/tmp/a%20b/
func FileURI(path string) (*uri.URI, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errtrace.Wrap(newIOError("abs", path, err))
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		// volume name
		p = "/" + p
	}
	if strings.HasSuffix(path, string(os.PathSeparator)) || strings.HasSuffix(path, "/") {
		if !strings.HasSuffix(p, "/") {
			p += "/"
		}
	}
	// literal percent signs must not be taken for escapes
	p = strings.ReplaceAll(p, "%", "%25")
	return errtrace.Wrap2(uri.NewBuilder().SetScheme(string(uri.SchemeFile)).SetPath(p).Build())
}

// FilePath converts a "file:" URI to a path of the operating system.
// The path of the URI is percent-decoded. An authority other than "" or "localhost" is rejected.
func FilePath(u *uri.URI) (string, error) {
	if err := uri.SchemeFile.Require(u); err != nil {
		return "", errtrace.Wrap(err)
	}
	if u.IsOpaque() {
		return "", errtrace.Wrap(errorutil.NewPreconditionError("file URI %q is opaque", u.String()))
	}
	if auth := u.Authority().Or(""); auth != "" && !strings.EqualFold(u.Host().Or(""), "localhost") {
		return "", errtrace.Wrap(errorutil.NewPreconditionError("file URI %q has a remote host", u.String()))
	}
	p := grammar.Unescape(u.Path().Or(""))
	if p == "" {
		return "", errtrace.Wrap(errorutil.NewPreconditionError("file URI %q has no path", u.String()))
	}
	if filepath.VolumeName(p[1:]) != "" {
		p = p[1:]
	}
	return filepath.FromSlash(p), nil
}
