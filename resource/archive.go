package resource

import (
	"io"
	"io/fs"
	"strings"

	"braces.dev/errtrace"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/uniresource/uniresource/internal/errorutil"
	"github.com/uniresource/uniresource/uri"
)

// openArchive opens the zip archive at the path.
// Besides the standard methods, entries compressed with zstd are readable.
func openArchive(path string) (*zip.ReadCloser, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errtrace.Wrap(newIOError("open", path, err))
	}
	r.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
	return r, nil
}

// archivePath returns the file path of the archive a "jar:" URI points into.
// Only the text before the first separator is considered, nested archives are not supported.
func archivePath(u *uri.URI) (string, error) {
	if err := uri.SchemeJar.Require(u); err != nil {
		return "", errtrace.Wrap(err)
	}
	archive, _, _ := strings.Cut(u.SchemeSpecificPart(), uri.JarSeparator)
	au, err := uri.Parse(archive)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	return errtrace.Wrap2(FilePath(au))
}

// findEntry returns the entry of the archive with the name.
// A container name also matches when the archive has no explicit directory entry
// but holds entries under it.
func findEntry(r *zip.Reader, name string) (*zip.File, bool) {
	for _, f := range r.File {
		if f.Name == name {
			return f, true
		}
	}
	if IsContainerName(name) {
		for _, f := range r.File {
			if strings.HasPrefix(f.Name, name) {
				return nil, true
			}
		}
	}
	return nil, false
}

// archiveEntry is the content of an archive entry, closing it closes the archive as well.
type archiveEntry struct {
	io.ReadCloser
	archive io.Closer
}

func (e *archiveEntry) Close() error {
	return errtrace.Wrap(errorutil.Join(e.ReadCloser.Close(), e.archive.Close()))
}

// openEntry opens the content entry of the archive at the path.
func openEntry(path, name string) (io.ReadCloser, error) {
	r, err := openArchive(path)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	f, ok := findEntry(&r.Reader, name)
	if !ok || f == nil || f.FileInfo().IsDir() {
		r.Close() //nolint:errcheck
		return nil, errtrace.Wrap(newIOError("open", path+"!/"+name, fs.ErrNotExist))
	}
	rc, err := f.Open()
	if err != nil {
		r.Close() //nolint:errcheck
		return nil, errtrace.Wrap(newIOError("open", path+"!/"+name, err))
	}
	return &archiveEntry{rc, r}, nil
}
