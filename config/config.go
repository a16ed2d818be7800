// Package config loads the YAML configuration of the uniresource tools.
//
// The configuration is read from a single file, named either by the --config flag
// or by the UNIRESOURCE_CONFIG environment variable. A missing file name yields [Default].
//
//	schemes: [file, jar, http, https, jdbc, classpath]
//	classpath:
//	  - ./resources
//	  - ./lib/app.jar
//	log:
//	  format: console
//	  level: info
package config

//go:generate go tool errtrace -w .

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"braces.dev/errtrace"
	"gopkg.in/yaml.v3"

	"github.com/uniresource/uniresource/internal/errorutil"
	"github.com/uniresource/uniresource/internal/grammar"
	"github.com/uniresource/uniresource/log"
	"github.com/uniresource/uniresource/uri"
)

// EnvVar is the environment variable naming the configuration file.
const EnvVar = "UNIRESOURCE_CONFIG"

// Config is the configuration of the uniresource tools.
type Config struct {
	// Schemes is the well-known scheme set used to classify URIs.
	// If empty, [uri.DefaultSchemes] is used.
	Schemes []string `yaml:"schemes,omitempty"`
	// Classpath lists the directories and archives searched by the classpath loader.
	// Relative entries are resolved against the directory of the configuration file.
	Classpath []string `yaml:"classpath,omitempty"`
	// Log configures the logger.
	Log LogConfig `yaml:"log"`
}

// LogConfig configures the logger.
type LogConfig struct {
	// Format is one of console, dev, text or json.
	Format log.Format `yaml:"format"`
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Format: log.FormatConsole,
			Level:  "info",
		},
	}
}

// Load loads the configuration file at path.
// An empty path falls back to [EnvVar], and to [Default] when the variable is not set either.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	defer f.Close() //nolint:errcheck

	cfg, err := Read(f)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.JoinPrefix("config "+path+":", err))
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// Read decodes and validates the configuration from r.
// Fields missing from the document keep their [Default] values, unknown fields are rejected.
func Read(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return cfg, nil
}

// Parse decodes and validates the configuration from data.
func Parse(data []byte) (*Config, error) {
	return errtrace.Wrap2(Read(bytes.NewReader(data)))
}

func (c *Config) resolve(dir string) {
	for i, p := range c.Classpath {
		if !filepath.IsAbs(p) {
			c.Classpath[i] = filepath.Join(dir, p)
		}
	}
}

// Validate checks the configuration and reports all problems found.
func (c *Config) Validate() error {
	var errs []error
	for _, s := range c.Schemes {
		if !grammar.IsScheme(s) {
			errs = append(errs, errorutil.NewInvalidArgumentError("schemes: invalid scheme %q", s))
		}
	}
	for i, p := range c.Classpath {
		if p == "" {
			errs = append(errs, errorutil.NewInvalidArgumentError("classpath[%d]: empty path", i))
		}
	}
	if !slices.Contains([]log.Format{"", log.FormatConsole, log.FormatDev, log.FormatText, log.FormatJSON}, c.Log.Format) {
		errs = append(errs, errorutil.NewInvalidArgumentError("log.format: unknown format %q", c.Log.Format))
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, errorutil.NewInvalidArgumentError("log.level: unknown level %q", c.Log.Level))
		}
	}
	return errtrace.Wrap(errorutil.Join(errs...))
}

// SchemeSet returns the configured well-known scheme set.
func (c *Config) SchemeSet() *uri.SchemeSet {
	if len(c.Schemes) == 0 {
		return uri.DefaultSchemes
	}
	return uri.NewSchemeSet(c.Schemes...)
}

// Logger creates the configured logger writing to w.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	lvl := slog.LevelInfo
	if c.Log.Level != "" {
		var err error
		if lvl, err = log.ParseLevel(c.Log.Level); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return errtrace.Wrap2(log.New(w, c.Log.Format, lvl))
}
