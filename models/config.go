package models

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where LoadConfig looks when no path is given.
const DefaultConfigPath = "blog-linker.yaml"

// LinkerConfig holds the site-specific knobs for building, scoring and weaving links.
type LinkerConfig struct {
	CorpusDir       string `yaml:"corpus_dir"`
	BrandSuffix     string `yaml:"brand_suffix"`     // stripped from <title>, e.g. " | Acme Blog"
	SlugPrefix      string `yaml:"slug_prefix"`      // stripped from filenames, e.g. "blog-"
	HeadingSelector string `yaml:"heading_selector"` // CSS selector for the main heading
	URLPrefix       string `yaml:"url_prefix"`
	BaseURL         string `yaml:"base_url"`

	Categories         []string `yaml:"categories"`
	FallbackCategories []string `yaml:"fallback_categories"`
	FallbackLimit      int      `yaml:"fallback_limit"`
	TargetCount        int      `yaml:"target_count"`

	ProseSelector     string `yaml:"prose_selector"`
	ConclusionHeading string `yaml:"conclusion_heading"`

	CacheDir  string   `yaml:"cache_dir"` // empty disables the metadata cache
	CacheTTL  string   `yaml:"cache_ttl"`
	DBPath    string   `yaml:"db_path"`
	Languages []string `yaml:"languages"` // fewer than two disables language detection
}

// DefaultCategories is the built-in topic taxonomy.
var DefaultCategories = []string{
	"whatsapp automation",
	"ai automation",
	"customer service",
	"business automation",
	"chatbot",
	"lead generation",
	"marketing automation",
	"ecommerce",
	"crm integration",
	"small business",
	"customer engagement",
	"sales automation",
}

// Defaults returns a LinkerConfig with every field set.
func Defaults() LinkerConfig {
	return LinkerConfig{
		CorpusDir:          "blog",
		BrandSuffix:        " | Blog",
		SlugPrefix:         "blog-",
		HeadingSelector:    "h1.blog-title",
		URLPrefix:          "/blog/",
		Categories:         append([]string(nil), DefaultCategories...),
		FallbackCategories: []string{"whatsapp automation", "ai automation", "business automation"},
		FallbackLimit:      5,
		TargetCount:        8,
		ProseSelector:      ".prose",
		ConclusionHeading:  "Conclusion",
		CacheTTL:           "24h",
		DBPath:             "blog-linker.db",
		Languages:          []string{"english", "spanish", "portuguese"},
	}
}

// LoadConfig reads a YAML config file over Defaults.
// BLOG_LINKER_CONFIG overrides the path and BLOG_LINKER_CORPUS the corpus dir.
// A missing file is not an error: defaults are returned.
func LoadConfig(path string) (LinkerConfig, error) {
	if envPath := os.Getenv("BLOG_LINKER_CONFIG"); envPath != "" {
		path = envPath
	}
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := Defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return LinkerConfig{}, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return LinkerConfig{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if envCorpus := os.Getenv("BLOG_LINKER_CORPUS"); envCorpus != "" {
		cfg.CorpusDir = envCorpus
	}

	if err := cfg.Validate(); err != nil {
		return LinkerConfig{}, err
	}
	return cfg, nil
}

// Validate checks that values are usable.
func (c *LinkerConfig) Validate() error {
	if c.CorpusDir == "" {
		return fmt.Errorf("corpus_dir is required")
	}
	if c.TargetCount < 0 {
		return fmt.Errorf("target_count must be >= 0, got %d", c.TargetCount)
	}
	if c.FallbackLimit < 0 {
		return fmt.Errorf("fallback_limit must be >= 0, got %d", c.FallbackLimit)
	}
	if c.CacheTTL != "" {
		if _, err := time.ParseDuration(c.CacheTTL); err != nil {
			return fmt.Errorf("invalid cache_ttl %q: %w", c.CacheTTL, err)
		}
	}
	return nil
}

// CacheTTLDuration returns the parsed cache TTL, or 0 when unset.
func (c *LinkerConfig) CacheTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0
	}
	return d
}
