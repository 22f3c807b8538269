package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dtnitsch/blog-linker/models"
	"github.com/dtnitsch/blog-linker/pkg/caching"
	"github.com/dtnitsch/blog-linker/pkg/detector"
	"github.com/dtnitsch/blog-linker/pkg/linkdb"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// NewLogger returns the JSON logger for a command, writing to the app's
// error writer (stderr). --quiet keeps errors only; --verbose enables debug output.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	switch {
	case c.Bool("quiet"):
		logLevel = slog.LevelError
	case c.Bool("verbose"):
		logLevel = slog.LevelDebug
	}
	var w io.Writer = os.Stderr
	if c.App != nil && c.App.ErrWriter != nil {
		w = c.App.ErrWriter
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig loads the config file named by --config and applies flag overrides.
func LoadConfig(c *cli.Context) (models.LinkerConfig, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return models.LinkerConfig{}, err
	}
	if c.IsSet("corpus") {
		cfg.CorpusDir = c.String("corpus")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("cache-dir") {
		cfg.CacheDir = c.String("cache-dir")
	}
	return cfg, cfg.Validate()
}

// NewBuilder wires the optional metadata cache and content signal detector
// into a corpus builder.
func NewBuilder(c *cli.Context, cfg models.LinkerConfig, logger *slog.Logger) (*linkdb.Builder, error) {
	opts := []linkdb.Option{linkdb.WithLogger(logger)}

	if cfg.CacheDir != "" {
		cache, err := caching.NewCache(cfg.CacheDir, cfg.CacheTTLDuration())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cache: %w", err)
		}
		opts = append(opts, linkdb.WithCache(cache))
	}

	if !c.Bool("no-signals") {
		opts = append(opts, linkdb.WithDetector(detector.New(cfg.Languages)))
	}

	return linkdb.NewBuilder(cfg, opts...), nil
}

// SplitList splits a comma-separated flag value, trimming entries and
// dropping empties.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// WriteYAML marshals v and writes it to w.
func WriteYAML(w io.Writer, v interface{}) error {
	yamlBytes, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	_, err = w.Write(yamlBytes)
	return err
}
