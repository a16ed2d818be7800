package uri_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/uniresource/uniresource/uri"
)

func TestBuild_RoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		rule uri.Rule
	}{
		{"https://user@example.com:8443/p/a?q=1#top", uri.RuleAuthorityDecomposed},
		{"http://example.com/path", uri.RuleServerBased},
		{"http://example.com", uri.RuleServerBased},
		{"http://example.com/path?x=1", uri.RuleAuthorityDecomposed},
		{"http://example.com?q", uri.RuleAuthorityDecomposed},
		{"http://user@host", uri.RuleAuthorityDecomposed},
		{"http://[::1]:80/", uri.RuleAuthorityDecomposed},
		{"http://exa%20mple.com/a%2Fb", uri.RuleServerBased},
		{"mailto:user@example.com", uri.RuleOpaque},
		{"jar:file:/path/to/file.jar!/resource", uri.RuleOpaque},
		{"jdbc:mysql://localhost:3306/db", uri.RuleOpaque},
		{"urn:isbn:0451450523#p1", uri.RuleOpaque},
		{"file:///path/to/file", uri.RuleServerBased},
		{"file:/tmp/x", uri.RuleServerBased},
		{"file://a@b@c/x", uri.RuleServerBased},
		{"file://h:abc/x", uri.RuleServerBased},
		{"foo://a:b:c/x", uri.RuleServerBased},
		{"foo://a:b:c/x?q", uri.RuleAuthority},
		{"docker://registry.example.com/library/alpine:3.20", uri.RuleServerBased},
		{"/path/to/resource:tag", uri.RuleServerBased},
		{"relative/path", uri.RuleServerBased},
		{"//host/p", uri.RuleServerBased},
		{"#frag", uri.RuleServerBased},
		{"", uri.RuleServerBased},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			t.Parallel()

			comps := uri.FromURI(uri.MustParse(c.in))
			if r, ok := uri.SelectRule(comps); !ok || r != c.rule {
				t.Errorf("uri.SelectRule(%q) = (%v, %v), want (%v, true)", c.in, r, ok, c.rule)
			}

			u, err := uri.Build(comps)
			if err != nil {
				t.Fatalf("uri.Build(%q) error = %v, want nil", c.in, err)
			}
			if got := u.String(); got != c.in {
				t.Errorf("uri.Build(%q) = %q, want %q", c.in, got, c.in)
			}
			if !u.Equal(uri.MustParse(c.in)) {
				t.Errorf("uri.Build(%q) is not equal to the parsed input", c.in)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		comps    uri.Components
		wantRule uri.Rule
		want     string
	}{
		{
			"server-based with escaped path",
			components(func(c *uri.Components) {
				c.Scheme = some("http")
				c.Host = some("example.com")
				c.Path = some("/a b")
			}),
			uri.RuleServerBased,
			"http://example.com/a%20b",
		},
		{
			"all decomposed",
			uri.Components{
				Scheme:   some("https"),
				UserInfo: some("u"),
				Host:     some("h"),
				Port:     8080,
				Path:     some("/p"),
				Query:    some("x=1"),
				Fragment: some("f"),
			},
			uri.RuleAuthorityDecomposed,
			"https://u@h:8080/p?x=1#f",
		},
		{
			"opaque with escaped ssp",
			components(func(c *uri.Components) {
				c.Scheme = some("mailto")
				c.SchemeSpecificPart = some("a b@example.com")
			}),
			uri.RuleOpaque,
			"mailto:a%20b@example.com",
		},
		{
			"registry authority with query",
			components(func(c *uri.Components) {
				c.Scheme = some("foo")
				c.Authority = some("a:b:c")
				c.Query = some("q")
			}),
			uri.RuleAuthority,
			"foo://a:b:c?q",
		},
		{
			"ipv6 host gets brackets",
			components(func(c *uri.Components) {
				c.Scheme = some("http")
				c.Host = some("::1")
				c.Port = 80
			}),
			uri.RuleAuthorityDecomposed,
			"http://[::1]:80",
		},
		{
			"file without authority",
			components(func(c *uri.Components) {
				c.Scheme = some("file")
				c.Path = some("/tmp/x")
			}),
			uri.RuleServerBased,
			"file:/tmp/x",
		},
		{
			"escaped host",
			components(func(c *uri.Components) {
				c.Scheme = some("http")
				c.Host = some("ex ample")
				c.Path = some("/")
			}),
			uri.RuleServerBased,
			"http://ex%20ample/",
		},
		{
			"existing escapes kept",
			components(func(c *uri.Components) {
				c.Path = some("/a%2Fb%zz")
			}),
			uri.RuleServerBased,
			"/a%2Fb%25zz",
		},
		{
			"escaped query",
			components(func(c *uri.Components) {
				c.Scheme = some("http")
				c.Host = some("h")
				c.Query = some("a b")
			}),
			uri.RuleAuthorityDecomposed,
			"http://h?a%20b",
		},
		{
			"escaped fragment",
			components(func(c *uri.Components) {
				c.Scheme = some("s")
				c.SchemeSpecificPart = some("x")
				c.Fragment = some("f#g")
			}),
			uri.RuleOpaque,
			"s:x#f%23g",
		},
		{
			"ssp ignored by server-based",
			components(func(c *uri.Components) {
				c.Scheme = some("http")
				c.SchemeSpecificPart = some("ignored")
				c.Host = some("h")
				c.Path = some("/p")
			}),
			uri.RuleServerBased,
			"http://h/p",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if r, ok := uri.SelectRule(c.comps); !ok || r != c.wantRule {
				t.Errorf("uri.SelectRule() = (%v, %v), want (%v, true)", r, ok, c.wantRule)
			}
			u, err := uri.Build(c.comps)
			if err != nil {
				t.Fatalf("uri.Build() error = %v, want nil", err)
			}
			if got := u.String(); got != c.want {
				t.Errorf("uri.Build() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestBuild_Error(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		comps   uri.Components
		wantErr error
	}{
		{
			"no components",
			uri.NewComponents(),
			uri.ErrNoRule,
		},
		{
			"only query",
			components(func(c *uri.Components) { c.Query = some("q") }),
			uri.ErrNoRule,
		},
		{
			"user info without host",
			components(func(c *uri.Components) {
				c.Scheme = some("http")
				c.UserInfo = some("u")
			}),
			uri.ErrInvalidArgument,
		},
		{
			"port without host",
			components(func(c *uri.Components) { c.Port = 80 }),
			uri.ErrInvalidArgument,
		},
		{
			"negative port",
			uri.Components{Scheme: some("http"), Host: some("h"), Port: -5},
			uri.ErrInvalidArgument,
		},
		{
			"relative path in absolute URI",
			components(func(c *uri.Components) {
				c.Scheme = some("http")
				c.Path = some("rel")
			}),
			uri.ErrMalformedInput,
		},
		{
			"relative path after authority",
			components(func(c *uri.Components) {
				c.Scheme = some("http")
				c.Host = some("h")
				c.Path = some("p")
			}),
			uri.ErrMalformedInput,
		},
		{
			"double slash path without authority",
			components(func(c *uri.Components) {
				c.Scheme = some("file")
				c.Path = some("//p")
			}),
			uri.ErrMalformedInput,
		},
		{
			"colon in first segment",
			components(func(c *uri.Components) { c.Path = some("a:b") }),
			uri.ErrMalformedInput,
		},
		{
			"illegal scheme",
			components(func(c *uri.Components) {
				c.Scheme = some("1x")
				c.Path = some("/p")
			}),
			uri.ErrMalformedInput,
		},
		{
			"host that is not a host",
			components(func(c *uri.Components) {
				c.Scheme = some("http")
				c.Host = some("a:b:c")
				c.Path = some("/")
			}),
			uri.ErrMalformedInput,
		},
		{
			"empty ssp",
			components(func(c *uri.Components) {
				c.Scheme = some("mailto")
				c.SchemeSpecificPart = some("")
			}),
			uri.ErrMalformedInput,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			u, err := uri.Build(c.comps)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("uri.Build() = (%v, %v), want error %v", u, err, c.wantErr)
			}
		})
	}
}

func TestApplicableRules(t *testing.T) {
	t.Parallel()

	c := components(func(c *uri.Components) {
		c.Scheme = some("foo")
		c.Authority = some("a:b:c")
		c.Path = some("/x")
	})
	got := slices.Collect(uri.ApplicableRules(c))
	want := []uri.Rule{uri.RuleServerBased, uri.RuleAuthority}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("uri.ApplicableRules() diff (-got +want):\n%v", diff)
	}

	for r := range uri.Rules() {
		if _, err := r.Build(c); err != nil && r.Applies(c) {
			t.Errorf("%s.Build() error = %v, want nil", r, err)
		}
	}
}

func TestSelectByTrial(t *testing.T) {
	t.Parallel()

	c := components(func(c *uri.Components) {
		c.Scheme = some("http")
		c.Host = some("h")
		c.Query = some("q")
	})
	r, u, ok := uri.SelectByTrial(c)
	if !ok || r != uri.RuleAuthorityDecomposed {
		t.Fatalf("uri.SelectByTrial() = (%v, %v, %v), want (%v, _, true)", r, u, ok, uri.RuleAuthorityDecomposed)
	}
	if got := u.String(); got != "http://h?q" {
		t.Errorf("uri.SelectByTrial() URI = %q, want %q", got, "http://h?q")
	}

	if _, _, ok := uri.SelectByTrial(components(func(c *uri.Components) { c.Scheme = some("1x") })); ok {
		t.Error("uri.SelectByTrial(illegal scheme) ok = true, want false")
	}
}

func TestRule_Render(t *testing.T) {
	t.Parallel()

	c := components(func(c *uri.Components) {
		c.Scheme = some("http")
		c.Host = some("h")
		c.Path = some("/p")
		c.Query = some("q")
	})
	cases := []struct {
		rule uri.Rule
		want string
	}{
		{uri.RuleAuthorityDecomposed, "http://h/p?q"},
		{uri.RuleServerBased, "http://h/p"},
	}
	for _, cc := range cases {
		got, err := cc.rule.Render(c)
		if err != nil || got != cc.want {
			t.Errorf("%s.Render() = (%q, %v), want (%q, nil)", cc.rule, got, err, cc.want)
		}
	}

	if got := uri.Rule(42).String(); got != "Rule(42)" {
		t.Errorf("Rule(42).String() = %q, want %q", got, "Rule(42)")
	}
}

func TestCorrect(t *testing.T) {
	t.Parallel()

	c := components(func(c *uri.Components) {
		c.Scheme = some("FILE")
		c.SchemeSpecificPart = some("///tmp/x")
		c.Authority = some("")
		c.Path = some("/tmp/x")
	})
	got := uri.Correct(c, uri.DefaultSchemeHandlers())
	if host, ok := got.Host.Get(); !ok || host != "" {
		t.Errorf("uri.Correct().Host = (%q, %v), want (\"\", true)", host, ok)
	}
	u, err := uri.Build(got)
	if err != nil || u.String() != "FILE:///tmp/x" {
		t.Errorf("uri.Build(corrected) = (%v, %v), want %q", u, err, "FILE:///tmp/x")
	}

	plain := components(func(c *uri.Components) {
		c.Scheme = some("file")
		c.SchemeSpecificPart = some("/tmp/x")
		c.Path = some("/tmp/x")
	})
	if got := uri.Correct(plain, uri.DefaultSchemeHandlers()); got.Host.IsSet() {
		t.Errorf("uri.Correct(file:/tmp/x).Host = %q, want absent", got.Host)
	}
	for _, in := range []string{"file://a@b@c/x", "file://h:abc/x"} {
		registry := uri.Decompose(uri.MustParse(in))
		if got := uri.Correct(registry, uri.DefaultSchemeHandlers()); got.Host.IsSet() {
			t.Errorf("uri.Correct(%q).Host = %q, want absent", in, got.Host)
		}
	}
	if got := uri.Correct(c, nil); got.Host.IsSet() {
		t.Error("uri.Correct(c, nil) changed the components")
	}
}
