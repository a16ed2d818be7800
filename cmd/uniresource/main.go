// Command uniresource classifies, builds and decomposes URIs, and lists and reads
// resources through the classpath, file and jar handlers.
//
// Usage:
//
//	uniresource [global flags] <command> [flags] [args]
//
// Commands:
//
//	classify <uri>...       show the predicates answered by each URI
//	build [flags]           build a URI from components
//	decompose <uri>         show the components of a URI
//	tag <path>              split a path into path and tag
//	query <query> [key]     show the entries of a query, or the values of a key
//	scan <container>        list the resources under a classpath container
//	cat <uri>               copy the content of a resource to stdout
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/uniresource/uniresource/config"
	"github.com/uniresource/uniresource/handler"
	"github.com/uniresource/uniresource/log"
	"github.com/uniresource/uniresource/resource"
	"github.com/uniresource/uniresource/uri"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type command struct {
	usage string
	run   func(ctx context.Context, app *app, args []string) error
}

var commands = map[string]command{
	"classify":  {"classify [--require predicate] <uri>...", runClassify},
	"build":     {"build [flags]", runBuild},
	"decompose": {"decompose <uri>", runDecompose},
	"tag":       {"tag [--tag tag | --untag] <path>", runTag},
	"query":     {"query <query> [key]", runQuery},
	"scan":      {"scan <container>", runScan},
	"cat":       {"cat <uri>", runCat},
}

// app carries what the commands share.
type app struct {
	cfg        *config.Config
	log        *slog.Logger
	stdout     io.Writer
	classifier uri.Classifier
	loader     *resource.PathLoader
	openers    *handler.Registry[resource.Opener]
	scanners   *handler.Registry[resource.Scanner]
	metrics    *prometheus.Registry
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		configPath  string
		logFormat   string
		logLevel    string
		classpath   []string
		showMetrics bool
	)

	fs := pflag.NewFlagSet("uniresource", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	fs.StringVar(&configPath, "config", "", "configuration file (default $"+config.EnvVar+")")
	fs.StringVar(&logFormat, "log-format", "", "log format: console, dev, text or json")
	fs.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringArrayVar(&classpath, "classpath", nil, "additional classpath root, may be repeated")
	fs.BoolVar(&showMetrics, "metrics", false, "print handler metrics to stderr on exit")
	fs.Usage = func() { printUsage(stderr, fs) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no command given")
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fs.Usage()
		return fmt.Errorf("unknown command %q", fs.Arg(0))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logFormat != "" {
		cfg.Log.Format = log.Format(logFormat)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	cfg.Classpath = append(cfg.Classpath, classpath...)
	if err := cfg.Validate(); err != nil {
		return err
	}

	a, err := newApp(cfg, stdout, stderr)
	if err != nil {
		return err
	}
	err = cmd.run(ctx, a, fs.Args()[1:])
	if showMetrics {
		if merr := writeMetrics(stderr, a.metrics); merr != nil {
			err = errors.Join(err, merr)
		}
	}
	return err
}

func newApp(cfg *config.Config, stdout, stderr io.Writer) (*app, error) {
	logger, err := cfg.Logger(stderr)
	if err != nil {
		return nil, err
	}
	log.SetDefault(logger)

	loader, err := resource.NewPathLoader(cfg.Classpath, &resource.PathLoaderOptions{Logger: logger})
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	metrics, err := handler.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	var openers handler.Catalog[handler.Factory[resource.Opener]]
	openers.Register(func() handler.Factory[resource.Opener] { return resource.DefaultOpeners(loader) })
	var scanners handler.Catalog[handler.Factory[resource.Scanner]]
	scanners.Register(func() handler.Factory[resource.Scanner] { return resource.DefaultScanners() })

	return &app{
		cfg:        cfg,
		log:        logger,
		stdout:     stdout,
		classifier: uri.Classifier{Schemes: cfg.SchemeSet()},
		loader:     loader,
		openers: handler.NewRegistry[resource.Opener](&openers, &handler.RegistryOptions{
			Name:    "openers",
			Logger:  logger,
			Metrics: metrics,
		}),
		scanners: handler.NewRegistry[resource.Scanner](&scanners, &handler.RegistryOptions{
			Name:    "scanners",
			Logger:  logger,
			Metrics: metrics,
		}),
		metrics: reg,
	}, nil
}

func (a *app) print(v any) error {
	enc := yaml.NewEncoder(a.stdout)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			v := m.GetCounter().GetValue()
			if m.GetGauge() != nil {
				v = m.GetGauge().GetValue()
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), v)
		}
	}
	return nil
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: uniresource [global flags] <command> [flags] [args]\n\nCommands:\n")
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	slices.Sort(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %s\n", commands[n].usage)
	}
	fmt.Fprintf(w, "\nGlobal flags:\n%s", fs.FlagUsages())
}
