package uri

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/uniresource/uniresource/internal/errorutil"
)

// JarSeparator separates the archive URL from the entry in a "jar" URI.
const JarSeparator = "!/"

// JarParts are the parts of a "jar" URI: "<scheme>:<url>!/<entry>".
type JarParts struct {
	Scheme string
	URL    string
	Entry  string
}

// SplitJar splits a "jar" URI into its parts.
// Nested archives are split at the last separator:
//
//	jar:jar:file:/a.jar!/b.jar!/c -> URL: jar:file:/a.jar!/b.jar, Entry: c
func SplitJar(u *URI) (JarParts, error) {
	if err := SchemeJar.Require(u); err != nil {
		return JarParts{}, errtrace.Wrap(err)
	}
	ssp := u.SchemeSpecificPart()
	i := strings.LastIndex(ssp, JarSeparator)
	if i <= 0 {
		return JarParts{}, errtrace.Wrap(newMalformedErr(u.String(), "missing %q separator", JarSeparator))
	}
	return JarParts{
		Scheme: u.Scheme().Or(""),
		URL:    ssp[:i],
		Entry:  ssp[i+len(JarSeparator):],
	}, nil
}

// FormatJar creates a "jar" URI. An empty scheme defaults to "jar".
func FormatJar(scheme, url, entry string) (*URI, error) {
	if scheme == "" {
		scheme = string(SchemeJar)
	}
	if url == "" {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("jar URL is empty"))
	}
	return errtrace.Wrap2(Parse(scheme + ":" + url + JarSeparator + entry))
}

// URI formats the parts back into a URI.
func (p JarParts) URI() (*URI, error) {
	return errtrace.Wrap2(FormatJar(p.Scheme, p.URL, p.Entry))
}

// JarArchive returns the URL of the archive of a "jar" URI.
func JarArchive(u *URI) (*URI, error) {
	p, err := SplitJar(u)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(Parse(p.URL))
}
