package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/uniresource/uniresource/query"
	"github.com/uniresource/uniresource/resource"
	"github.com/uniresource/uniresource/uri"
	"github.com/uniresource/uniresource/uripath"
)

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func wantArgs(fs *pflag.FlagSet, minArgs, maxArgs int) error {
	if n := fs.NArg(); n < minArgs || (maxArgs >= 0 && n > maxArgs) {
		return fmt.Errorf("%s: unexpected number of arguments %d, see uniresource --help", fs.Name(), n)
	}
	return nil
}

type classifyOutput struct {
	URI        string   `yaml:"uri"`
	Predicates []string `yaml:"predicates"`
}

func runClassify(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("classify")
	require := fs.StringArray("require", nil, "fail unless the predicate holds, may be repeated")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 1, -1); err != nil {
		return err
	}

	var preds []uri.Predicate
	for _, name := range *require {
		p, err := uri.ParsePredicate(name)
		if err != nil {
			return err
		}
		preds = append(preds, p)
	}

	var (
		out  []classifyOutput
		errs []error
	)
	for _, s := range fs.Args() {
		u, err := uri.Parse(s)
		if err != nil {
			return err
		}
		for _, p := range preds {
			errs = append(errs, a.classifier.Require(p, u))
		}
		o := classifyOutput{URI: u.String(), Predicates: []string{}}
		for p := range a.classifier.Classify(u).Matched() {
			o.Predicates = append(o.Predicates, p.String())
		}
		out = append(out, o)
	}
	if err := a.print(out); err != nil {
		return err
	}
	return errors.Join(errs...)
}

type buildOutput struct {
	Rule string `yaml:"rule,omitempty"`
	URI  string `yaml:"uri"`
}

func runBuild(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("build")
	var (
		from      = fs.String("from", "", "start from the components of this URI")
		scheme    = fs.String("scheme", "", "scheme")
		ssp       = fs.String("ssp", "", "scheme-specific part")
		authority = fs.String("authority", "", "registry authority")
		userInfo  = fs.String("user-info", "", "user information")
		host      = fs.String("host", "", "host")
		port      = fs.Int("port", uri.NoPort, "port")
		path      = fs.String("path", "", "path")
		tag       = fs.String("tag", "", "tag of the path")
		rawQuery  = fs.String("query", "", "raw query")
		params    = fs.StringArray("param", nil, "query parameter key=value, may be repeated")
		fragment  = fs.String("fragment", "", "fragment")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 0, 0); err != nil {
		return err
	}

	b := uri.NewBuilder()
	if *from != "" {
		var err error
		if b, err = uri.BuilderFromString(*from); err != nil {
			return err
		}
	}
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	set("scheme", func() { b.SetScheme(*scheme) })
	set("ssp", func() { b.SetSchemeSpecificPart(*ssp) })
	set("authority", func() { b.SetAuthority(*authority) })
	set("user-info", func() { b.SetUserInfo(*userInfo) })
	set("host", func() { b.SetHost(*host) })
	set("port", func() { b.SetPort(*port) })
	set("path", func() { b.SetPath(*path) })
	set("query", func() { b.SetQuery(*rawQuery) })
	set("fragment", func() { b.SetFragment(*fragment) })
	if fs.Changed("tag") {
		tp, err := b.TaggedPath().WithTag(*tag)
		if err != nil {
			return err
		}
		b.SetTaggedPath(tp)
	}
	if len(*params) > 0 {
		qb := b.MappedQuery().ToBuilder()
		for _, kv := range *params {
			k, v, _ := strings.Cut(kv, "=")
			qb.Add(k, v)
		}
		b.SetMappedQuery(qb.Build())
	}

	u, err := b.Build()
	if err != nil {
		return err
	}
	out := buildOutput{URI: u.String()}
	if r, ok := b.Rule(); ok {
		out.Rule = r.String()
	}
	return a.print(out)
}

type decomposeOutput struct {
	Scheme             *string `yaml:"scheme,omitempty"`
	SchemeSpecificPart *string `yaml:"scheme_specific_part,omitempty"`
	Authority          *string `yaml:"authority,omitempty"`
	UserInfo           *string `yaml:"user_info,omitempty"`
	Host               *string `yaml:"host,omitempty"`
	Port               *int    `yaml:"port,omitempty"`
	Path               *string `yaml:"path,omitempty"`
	Query              *string `yaml:"query,omitempty"`
	Fragment           *string `yaml:"fragment,omitempty"`
	Rule               string  `yaml:"rule,omitempty"`
}

func optPtr(o uri.Opt) *string {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}

func runDecompose(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("decompose")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 1, 1); err != nil {
		return err
	}
	u, err := uri.Parse(fs.Arg(0))
	if err != nil {
		return err
	}

	c := uri.Decompose(u)
	out := decomposeOutput{
		Scheme:             optPtr(c.Scheme),
		SchemeSpecificPart: optPtr(c.SchemeSpecificPart),
		Authority:          optPtr(c.Authority),
		UserInfo:           optPtr(c.UserInfo),
		Host:               optPtr(c.Host),
		Path:               optPtr(c.Path),
		Query:              optPtr(c.Query),
		Fragment:           optPtr(c.Fragment),
	}
	if c.Port != uri.NoPort {
		out.Port = &c.Port
	}
	if r, ok := uri.SelectRule(c); ok {
		out.Rule = r.String()
	}
	return a.print(out)
}

type tagOutput struct {
	Path   string `yaml:"path"`
	Tag    string `yaml:"tag,omitempty"`
	Tagged bool   `yaml:"tagged"`
	Full   string `yaml:"full"`
}

func runTag(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("tag")
	tag := fs.String("tag", "", "replace the tag")
	untag := fs.Bool("untag", false, "remove the tag")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 1, 1); err != nil {
		return err
	}

	tp := uripath.Split(fs.Arg(0))
	switch {
	case *untag:
		tp = tp.WithoutTag()
	case fs.Changed("tag"):
		var err error
		if tp, err = tp.WithTag(*tag); err != nil {
			return err
		}
	}
	return a.print(tagOutput{Path: tp.Path, Tag: tp.Tag, Tagged: tp.Tagged, Full: tp.String()})
}

type queryEntry struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

func runQuery(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("query")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 1, 2); err != nil {
		return err
	}

	q := query.Parse(fs.Arg(0))
	if fs.NArg() == 2 {
		if _, err := q.Value(fs.Arg(1)); err != nil {
			return err
		}
		return a.print(q.Values(fs.Arg(1)))
	}
	out := []queryEntry{}
	for k, v := range q.All() {
		out = append(out, queryEntry{k, v})
	}
	return a.print(out)
}

func runScan(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("scan")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 0, 1); err != nil {
		return err
	}

	names, err := resource.FindWith(ctx, a.scanners, a.loader, fs.Arg(0))
	if err != nil {
		return err
	}
	slices.Sort(names)
	names = slices.Compact(names)
	for _, n := range names {
		fmt.Fprintln(a.stdout, n)
	}
	return nil
}

func runCat(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("cat")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := wantArgs(fs, 1, 1); err != nil {
		return err
	}

	u, err := uri.Parse(fs.Arg(0))
	if err != nil {
		return err
	}
	rc, err := resource.Open(ctx, a.openers, u)
	if err != nil {
		return err
	}
	defer rc.Close() //nolint:errcheck

	a.log.DebugContext(ctx, "resource opened", "uri", u)
	_, err = io.Copy(a.stdout, rc)
	return err
}
