package uri_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/uniresource/uniresource/uri"
)

func TestSplitJar(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    uri.JarParts
		wantErr error
	}{
		{
			in:   "jar:file:/path/to/file.jar!/resource",
			want: uri.JarParts{Scheme: "jar", URL: "file:/path/to/file.jar", Entry: "resource"},
		},
		{
			in:   "jar:jar:file:/a.jar!/b.jar!/c/d.txt",
			want: uri.JarParts{Scheme: "jar", URL: "jar:file:/a.jar!/b.jar", Entry: "c/d.txt"},
		},
		{
			in:   "JAR:file:/a.jar!/",
			want: uri.JarParts{Scheme: "JAR", URL: "file:/a.jar", Entry: ""},
		},
		{
			in:   "jar:file:/a.jar!/x#frag",
			want: uri.JarParts{Scheme: "jar", URL: "file:/a.jar", Entry: "x"},
		},
		{in: "jar:file:/a.jar", wantErr: uri.ErrMalformedInput},
		{in: "jar:!/x", wantErr: uri.ErrMalformedInput},
		{in: "http://example.com/a.jar!/x", wantErr: uri.ErrSchemeMismatch},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			got, err := uri.SplitJar(uri.MustParse(c.in))
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("uri.SplitJar(%q) error = %v, want %v", c.in, err, c.wantErr)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("uri.SplitJar(%q) diff (-got +want):\n%v", c.in, diff)
			}
		})
	}
}

func TestFormatJar(t *testing.T) {
	t.Parallel()

	u, err := uri.FormatJar("", "file:/a.jar", "x/y.txt")
	if err != nil || u.String() != "jar:file:/a.jar!/x/y.txt" {
		t.Errorf("uri.FormatJar() = (%v, %v), want %q", u, err, "jar:file:/a.jar!/x/y.txt")
	}

	p, err := uri.SplitJar(uri.MustParse("jar:jar:file:/a.jar!/b.jar!/c"))
	if err != nil {
		t.Fatalf("uri.SplitJar() error = %v, want nil", err)
	}
	u, err = p.URI()
	if err != nil || u.String() != "jar:jar:file:/a.jar!/b.jar!/c" {
		t.Errorf("p.URI() = (%v, %v), want %q", u, err, "jar:jar:file:/a.jar!/b.jar!/c")
	}

	_, err = uri.FormatJar("jar", "", "x")
	if diff := cmp.Diff(err, error(uri.ErrInvalidArgument), cmpopts.EquateErrors()); diff != "" {
		t.Errorf("uri.FormatJar(empty URL) error = %v, want %v", err, uri.ErrInvalidArgument)
	}
}

func TestJarArchive(t *testing.T) {
	t.Parallel()

	u, err := uri.JarArchive(uri.MustParse("jar:file:/path/to/file.jar!/resource"))
	if err != nil {
		t.Fatalf("uri.JarArchive() error = %v, want nil", err)
	}
	if u.String() != "file:/path/to/file.jar" || !uri.SchemeFile.Matches(u) {
		t.Errorf("uri.JarArchive() = %v, want file:/path/to/file.jar", u)
	}
	if got := u.Path().Or(""); got != "/path/to/file.jar" {
		t.Errorf("u.Path() = %q, want %q", got, "/path/to/file.jar")
	}
}

func TestJDBCProperties(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want map[string]string
	}{
		{
			"jdbc:sqlserver://localhost:1433;databaseName=database1;user=user1;password=password1;encrypt=true;trustServerCertificate=false",
			map[string]string{
				"databaseName":           "database1",
				"user":                   "user1",
				"password":               "password1",
				"encrypt":                "true",
				"trustServerCertificate": "false",
			},
		},
		{"jdbc:mysql://localhost:3306/db", map[string]string{}},
		{"jdbc:h2:mem:test;MODE=MySQL;DB_CLOSE_DELAY=-1;flag;", map[string]string{"MODE": "MySQL", "DB_CLOSE_DELAY": "-1"}},
	}

	for _, c := range cases {
		got, err := uri.JDBCProperties(uri.MustParse(c.in))
		if err != nil {
			t.Errorf("uri.JDBCProperties(%q) error = %v, want nil", c.in, err)
			continue
		}
		if diff := cmp.Diff(got, c.want); diff != "" {
			t.Errorf("uri.JDBCProperties(%q) diff (-got +want):\n%v", c.in, diff)
		}
	}

	_, err := uri.JDBCProperties(uri.MustParse("http://example.com"))
	if diff := cmp.Diff(err, uri.ErrSchemeMismatch, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("uri.JDBCProperties(http) error = %v, want %v", err, uri.ErrSchemeMismatch)
	}
}

func TestJDBCInner(t *testing.T) {
	t.Parallel()

	u, err := uri.JDBCInner(uri.MustParse("jdbc:sqlserver://localhost:1433;databaseName=database1"))
	if err != nil {
		t.Fatalf("uri.JDBCInner() error = %v, want nil", err)
	}
	if u.String() != "sqlserver://localhost:1433" || u.Host().Or("") != "localhost" || u.Port() != 1433 {
		t.Errorf("uri.JDBCInner() = %+v, want sqlserver://localhost:1433", u)
	}

	u, err = uri.JDBCInner(uri.MustParse("jdbc:mysql://localhost:3306/db"))
	if err != nil || u.Path().Or("") != "/db" || u.Port() != 3306 {
		t.Errorf("uri.JDBCInner() = (%+v, %v), want mysql://localhost:3306/db", u, err)
	}
}
