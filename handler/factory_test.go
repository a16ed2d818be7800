package handler_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/uniresource/uniresource/handler"
)

func prefixFactory(prefix string) handler.Factory[string] {
	return handler.FactoryFunc[string](func(name string) (string, bool) {
		if !strings.HasPrefix(name, prefix) {
			return "", false
		}
		return prefix + ":" + name, true
	})
}

func TestChain_CreateHandler(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		chain  *handler.Chain[string]
		in     string
		want   string
		wantOk bool
	}{
		{"nil", nil, "a", "", false},
		{"empty", handler.NewChain[string](), "a", "", false},
		{"single hit", handler.NewChain(prefixFactory("a")), "abc", "a:abc", true},
		{"single miss", handler.NewChain(prefixFactory("a")), "xyz", "", false},
		{"first wins", handler.NewChain(prefixFactory("a"), prefixFactory("ab")), "abc", "a:abc", true},
		{"second hit", handler.NewChain(prefixFactory("x"), prefixFactory("ab")), "abc", "ab:abc", true},
		{"nil skipped", handler.NewChain(nil, prefixFactory("a")), "abc", "a:abc", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, ok := c.chain.CreateHandler(c.in)
			if got != c.want || ok != c.wantOk {
				t.Errorf("chain.CreateHandler(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.wantOk)
			}
		})
	}
}

func TestChain_Len(t *testing.T) {
	t.Parallel()

	c := handler.NewChain(prefixFactory("a"), nil, prefixFactory("b"))
	if got := c.Len(); got != 2 {
		t.Errorf("chain.Len() = %d, want 2", got)
	}
	if got := len(slices.Collect(c.Factories())); got != 2 {
		t.Errorf("len(chain.Factories()) = %d, want 2", got)
	}
}

func TestNamed_CreateHandler(t *testing.T) {
	t.Parallel()

	calls := 0
	f := handler.NewNamed("file", func() int {
		calls++
		return 42
	})

	cases := []struct {
		in     string
		want   int
		wantOk bool
	}{
		{"file", 42, true},
		{"FILE", 42, true},
		{"jar", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := f.CreateHandler(c.in)
		if got != c.want || ok != c.wantOk {
			t.Errorf("named.CreateHandler(%q) = (%d, %v), want (%d, %v)", c.in, got, ok, c.want, c.wantOk)
		}
	}
	if calls != 2 {
		t.Errorf("supplier calls = %d, want 2", calls)
	}

	var zero handler.Named[int]
	if _, ok := zero.CreateHandler(""); ok {
		t.Error("zero Named answered a name")
	}
}

func TestIndexed_CreateHandler(t *testing.T) {
	t.Parallel()

	idx := handler.NewIndexedBuilder[string]().
		AddHandler("file", "file-1").
		Add("JAR", handler.FactoryFunc[string](func(string) (string, bool) { return "", false })).
		AddHandler("jar", "jar-2").
		AddFunc("http", func(name string) (string, bool) { return "web:" + name, true }).
		Build()

	cases := []struct {
		in     string
		want   string
		wantOk bool
	}{
		{"file", "file-1", true},
		{"File", "file-1", true},
		{"jar", "jar-2", true},
		{"HTTP", "web:HTTP", true},
		{"https", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := idx.CreateHandler(c.in)
		if got != c.want || ok != c.wantOk {
			t.Errorf("indexed.CreateHandler(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.wantOk)
		}
	}

	if diff := cmp.Diff(slices.Collect(idx.Names()), []string{"file", "jar", "http"}); diff != "" {
		t.Errorf("indexed.Names() diff (-got +want):\n%v", diff)
	}
	if !idx.Has("JAR") || idx.Has("ftp") {
		t.Error("indexed.Has() mismatch")
	}
}

func TestIndexed_OnlyMatchingBucket(t *testing.T) {
	t.Parallel()

	var consulted []string
	spy := func(bucket string) handler.Factory[string] {
		return handler.FactoryFunc[string](func(name string) (string, bool) {
			consulted = append(consulted, bucket)
			return bucket, true
		})
	}
	idx := handler.NewIndexedBuilder[string]().
		Add("a", spy("a")).
		Add("b", spy("b")).
		Build()

	if got, _ := idx.CreateHandler("b"); got != "b" {
		t.Errorf("indexed.CreateHandler(\"b\") = %q, want \"b\"", got)
	}
	if diff := cmp.Diff(consulted, []string{"b"}); diff != "" {
		t.Errorf("consulted factories diff (-got +want):\n%v", diff)
	}
}

func TestIndexed_ToBuilder(t *testing.T) {
	t.Parallel()

	b := handler.NewIndexedBuilder[string]().AddHandler("a", "1")
	x1 := b.Build()
	b.AddHandler("b", "2")

	if x1.Has("b") {
		t.Error("built factory changed after builder update")
	}

	x2 := x1.ToBuilder().AddHandler("c", "3").Build()
	for _, n := range []string{"a", "c"} {
		if !x2.Has(n) {
			t.Errorf("x2.Has(%q) = false, want true", n)
		}
	}
	if x1.Has("c") {
		t.Error("original factory changed after ToBuilder update")
	}

	var nilIdx *handler.Indexed[string]
	if _, ok := nilIdx.CreateHandler("a"); ok {
		t.Error("nil Indexed answered a name")
	}
}

func TestCatalog_FindAll(t *testing.T) {
	t.Parallel()

	var cat handler.Catalog[handler.Factory[string]]
	if got := cat.FindAll(); len(got) != 0 {
		t.Fatalf("empty catalog.FindAll() = %v, want empty", got)
	}

	cat.Register(func() handler.Factory[string] { return prefixFactory("a") })
	cat.RegisterAll(func() []handler.Factory[string] {
		return []handler.Factory[string]{prefixFactory("b"), prefixFactory("c")}
	})
	cat.Register(nil)

	if got := cat.Len(); got != 2 {
		t.Errorf("catalog.Len() = %d, want 2", got)
	}
	all := cat.FindAll()
	if len(all) != 3 {
		t.Fatalf("len(catalog.FindAll()) = %d, want 3", len(all))
	}
	chain := handler.NewChain(all...)
	if got, _ := chain.CreateHandler("cat"); got != "c:cat" {
		t.Errorf("chain.CreateHandler(\"cat\") = %q, want \"c:cat\"", got)
	}
}
