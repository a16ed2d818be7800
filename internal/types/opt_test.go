package types_test

import (
	"testing"

	"github.com/uniresource/uniresource/internal/types"
)

func TestOpt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		opt     types.Opt
		wantVal string
		wantOk  bool
		wantOr  string
	}{
		{"zero", types.Opt{}, "", false, "def"},
		{"none", types.None(), "", false, "def"},
		{"some empty", types.Some(""), "", true, ""},
		{"some", types.Some("abc"), "abc", true, "abc"},
		{"of false", types.OptOf("abc", false), "", false, "def"},
		{"of true", types.OptOf("abc", true), "abc", true, "abc"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			v, ok := c.opt.Get()
			if v != c.wantVal || ok != c.wantOk {
				t.Errorf("opt.Get() = (%q, %v), want (%q, %v)", v, ok, c.wantVal, c.wantOk)
			}
			if got := c.opt.IsSet(); got != c.wantOk {
				t.Errorf("opt.IsSet() = %v, want %v", got, c.wantOk)
			}
			if got := c.opt.Or("def"); got != c.wantOr {
				t.Errorf("opt.Or(\"def\") = %q, want %q", got, c.wantOr)
			}
		})
	}
}
