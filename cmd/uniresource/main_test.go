package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(t.Context(), append([]string{"--config", writeConfig(t)}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for name, data := range map[string]string{
		"res/conf/app.yaml":   "name: app\n",
		"res/conf/db.yaml":    "url: jdbc:h2:mem:test\n",
		"res/static/logo.txt": "logo\n",
	} {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := filepath.Join(dir, "uniresource.yaml")
	data := "schemes: [file, jar, http, https, jdbc, classpath]\nclasspath: [res]\nlog: {format: text, level: debug}\n"
	if err := os.WriteFile(cfg, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestRun(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			"classify",
			[]string{"classify", "docker://host:5000/repo/image:tag", "classpath:conf/app.yaml"},
			[]string{"uri: docker://host:5000/repo/image:tag", "IsPathTagged", "HasValidHost", "uri: classpath:conf/app.yaml", "HasStandardScheme"},
			nil,
		},
		{
			"decompose",
			[]string{"decompose", "https://user@example.com:8443/a?b#c"},
			[]string{"scheme: https\n", "user_info: user\n", "host: example.com\n", "port: 8443\n", "path: /a\n", "query: b\n", "fragment: c\n"},
			nil,
		},
		{
			"decompose opaque",
			[]string{"decompose", "mailto:user@example.com"},
			[]string{"scheme: mailto\n", "scheme_specific_part: user@example.com\n", "rule: Opaque\n"},
			[]string{"host:", "port:"},
		},
		{
			"build",
			[]string{"build", "--scheme", "https", "--host", "example.com", "--path", "/a", "--param", "q=x", "--param", "q=y"},
			[]string{"uri: https://example.com/a?q=x&q=y\n"},
			nil,
		},
		{
			"build tagged",
			[]string{"build", "--from", "docker://registry/repo", "--tag", "1.0"},
			[]string{"uri: docker://registry/repo:1.0\n"},
			nil,
		},
		{
			"tag",
			[]string{"tag", "/repo/image:1.0"},
			[]string{"path: /repo/image\n", "tag: \"1.0\"\n", "tagged: true\n"},
			nil,
		},
		{
			"untag",
			[]string{"tag", "--untag", "/repo/image:1.0"},
			[]string{"full: /repo/image\n", "tagged: false\n"},
			[]string{"tag:"},
		},
		{
			"query values",
			[]string{"query", "name=John&age=x&name=Jane", "name"},
			[]string{"- John\n- Jane\n"},
			nil,
		},
		{
			"query entries",
			[]string{"query", "a=x&b=z"},
			[]string{"key: a\n", "value: x\n", "key: b\n", "value: z\n"},
			nil,
		},
		{
			"scan",
			[]string{"scan", "conf"},
			[]string{"conf/\n", "conf/app.yaml\n", "conf/db.yaml\n"},
			[]string{"static"},
		},
		{
			"cat",
			[]string{"cat", "classpath:conf/app.yaml"},
			[]string{"name: app\n"},
			nil,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			out, _, err := runCmd(t, c.args...)
			if err != nil {
				t.Fatalf("run(%q) error = %v, want nil", c.args, err)
			}
			for _, s := range c.contains {
				if !strings.Contains(out, s) {
					t.Errorf("run(%q) output = %q, want it to contain %q", c.args, out, s)
				}
			}
			for _, s := range c.excludes {
				if strings.Contains(out, s) {
					t.Errorf("run(%q) output = %q, want it not to contain %q", c.args, out, s)
				}
			}
		})
	}
}

func TestRun_Error(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"no command", nil, "no command"},
		{"unknown command", []string{"frobnicate"}, `unknown command "frobnicate"`},
		{"missing argument", []string{"decompose"}, "unexpected number of arguments"},
		{"malformed", []string{"decompose", "a b"}, "malformed"},
		{"require", []string{"classify", "--require", "IsOpaque", "https://example.com"}, "IsOpaque"},
		{"unknown predicate", []string{"classify", "--require", "IsBlue", "a:b"}, "unknown predicate"},
		{"missing key", []string{"query", "a=x", "b"}, `"b"`},
		{"no opener", []string{"cat", "mailto:user@example.com"}, "no handler"},
		{"missing resource", []string{"cat", "classpath:conf/missing.yaml"}, "not exist"},
		{"bad log level", []string{"--log-level", "loud", "tag", "a"}, `"loud"`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := runCmd(t, c.args...)
			if err == nil || !strings.Contains(err.Error(), c.wantMsg) {
				t.Errorf("run(%q) error = %v, want error containing %q", c.args, err, c.wantMsg)
			}
		})
	}
}

func TestRun_Metrics(t *testing.T) {
	t.Parallel()

	_, stderr, err := runCmd(t, "--metrics", "cat", "classpath:static/logo.txt")
	if err != nil {
		t.Fatalf("run() error = %v, want nil", err)
	}
	want := "uniresource_handler_lookups_total{name=classpath,registry=openers,result=hit} 1\n"
	if !strings.Contains(stderr, want) {
		t.Errorf("run() stderr = %q, want it to contain %q", stderr, want)
	}
}
