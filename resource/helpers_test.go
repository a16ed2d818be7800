package resource_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/uniresource/uniresource/resource"
	"github.com/uniresource/uniresource/uri"
)

func contentOf(name string) string { return "content of " + name }

// writeArchive creates a zip archive with the entries in the order given.
// Names ending with "/" become directory entries, entries prefixed with "zstd:" are compressed with zstd.
func writeArchive(t *testing.T, name string, entries ...string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("os.Create() error = %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	w.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())
	for _, e := range entries {
		hdr := &zip.FileHeader{Name: e, Method: zip.Deflate}
		if n, ok := strings.CutPrefix(e, "zstd:"); ok {
			hdr.Name, hdr.Method = n, zstd.ZipMethodWinZip
		}
		if strings.HasSuffix(hdr.Name, "/") {
			hdr.Method = zip.Store
		}
		ew, err := w.CreateHeader(hdr)
		if err != nil {
			t.Fatalf("w.CreateHeader(%q) error = %v", hdr.Name, err)
		}
		if !strings.HasSuffix(hdr.Name, "/") {
			if _, err := ew.Write([]byte(contentOf(hdr.Name))); err != nil {
				t.Fatalf("write %q error = %v", hdr.Name, err)
			}
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("w.Close() error = %v", err)
	}
	return p
}

// writeTree creates the files under a new directory.
// Names ending with "/" become directories.
func writeTree(t *testing.T, names ...string) string {
	t.Helper()

	root := t.TempDir()
	for _, n := range names {
		p := filepath.Join(root, filepath.FromSlash(n))
		if strings.HasSuffix(n, "/") {
			if err := os.MkdirAll(p, 0o755); err != nil {
				t.Fatalf("os.MkdirAll() error = %v", err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("os.MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(p, []byte(contentOf(n)), 0o644); err != nil {
			t.Fatalf("os.WriteFile() error = %v", err)
		}
	}
	return root
}

func fileURI(t *testing.T, p string) *uri.URI {
	t.Helper()

	u, err := resource.FileURI(p)
	if err != nil {
		t.Fatalf("resource.FileURI(%q) error = %v", p, err)
	}
	return u
}

func jarURI(t *testing.T, archive, entry string) *uri.URI {
	t.Helper()

	u, err := uri.FormatJar("", fileURI(t, archive).String(), entry)
	if err != nil {
		t.Fatalf("uri.FormatJar() error = %v", err)
	}
	return u
}
