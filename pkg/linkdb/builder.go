package linkdb

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/dtnitsch/blog-linker/models"
	"github.com/dtnitsch/blog-linker/pkg/caching"
	"github.com/dtnitsch/blog-linker/pkg/detector"
	"github.com/dtnitsch/blog-linker/pkg/parser"
	"github.com/dtnitsch/blog-linker/pkg/storage"
)

// SkippedFile records a corpus file the builder could not use.
type SkippedFile struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// Builder scans a corpus directory into a LinkDatabase.
type Builder struct {
	cfg      models.LinkerConfig
	parser   *parser.Parser
	storage  *storage.Storage
	cache    *caching.Cache
	detector *detector.Detector
	logger   *slog.Logger
	variant  string // cache key component for the parse settings


	skipped []SkippedFile
}

// Option configures a Builder.
type Option func(*Builder)

// WithCache reuses parsed metadata for unchanged files.
func WithCache(c *caching.Cache) Option {
	return func(b *Builder) { b.cache = c }
}

// WithDetector enriches articles with content signals.
func WithDetector(d *detector.Detector) Option {
	return func(b *Builder) { b.detector = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder returns a Builder for cfg.
func NewBuilder(cfg models.LinkerConfig, opts ...Option) *Builder {
	b := &Builder{
		cfg:     cfg,
		parser:  parser.New(cfg),
		storage: &storage.Storage{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.variant = cacheVariant(b.parser, b.detector != nil)
	return b
}

// cacheVariant digests every setting that changes the parsed Article, so a
// cached entry is only reused under the settings that produced it.
func cacheVariant(p *parser.Parser, signals bool) string {
	h := sha256.New()
	for _, field := range []string{p.BrandSuffix, p.SlugPrefix, p.HeadingSelector, p.URLPrefix, p.BaseURL} {
		h.Write([]byte(field))
		h.Write([]byte{0})
	}
	if signals {
		h.Write([]byte("signals"))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Build scans the corpus and returns the database. It never fails: an
// unreadable directory yields an empty database and bad files are skipped.
func (b *Builder) Build() *LinkDatabase {
	db := New(b.cfg.Categories)
	b.skipped = nil

	files, err := b.storage.ListFiles(b.cfg.CorpusDir, b.cfg.SlugPrefix, ".html")
	if err != nil {
		b.logger.Error("corpus directory unreadable", "dir", b.cfg.CorpusDir, "error", err)
		return db
	}

	for _, path := range files {
		// failures are logged and recorded by AddFile
		_, _ = b.AddFile(db, path)
	}

	b.logger.Info("link database built",
		"articles", db.Articles.Len(),
		"keywords", len(db.Keywords),
		"skipped", len(b.skipped),
	)
	return db
}

// AddFile parses one file and appends it to db. Failures are logged,
// recorded in Skipped and returned.
func (b *Builder) AddFile(db *LinkDatabase, path string) (*models.Article, error) {
	article, err := b.parseFile(path)
	if err != nil {
		b.skip(path, err)
		return nil, err
	}
	if first, ok := db.Articles.Get(article.Slug); ok {
		err := &DuplicateSlugError{Slug: article.Slug, First: first.Filename}
		b.skip(path, err)
		return nil, err
	}
	if !db.Update(article) {
		err := fmt.Errorf("article %s rejected", path)
		b.skip(path, err)
		return nil, err
	}
	return article, nil
}

// Skipped returns the files dropped by the last Build plus any AddFile failures.
func (b *Builder) Skipped() []SkippedFile {
	return append([]SkippedFile(nil), b.skipped...)
}

func (b *Builder) skip(path string, err error) {
	b.logger.Warn("skipping corpus file", "file", path, "error", err)
	b.skipped = append(b.skipped, SkippedFile{Path: path, Error: err.Error()})
}

func (b *Builder) parseFile(path string) (*models.Article, error) {
	stats, err := b.storage.GetFileStats(path)
	if err != nil {
		return nil, err
	}

	var cacheKey string
	if b.cache != nil {
		cacheKey = caching.FileKey(path, stats.SizeBytes, stats.ModTime, b.variant)
		if data, ok := b.cache.Get(cacheKey); ok {
			var cached models.Article
			if err := json.Unmarshal(data, &cached); err == nil && cached.Slug != "" {
				return &cached, nil
			}
		}
	}

	raw, err := b.storage.ReadFile(path)
	if err != nil {
		return nil, err
	}

	article, err := b.parser.ParseArticle(path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	if b.detector != nil {
		sig, err := b.detector.Analyze(string(raw), &url.URL{Path: article.URL})
		if err != nil {
			b.logger.Debug("content signals unavailable", "file", path, "error", err)
		} else {
			article.WordCount = sig.WordCount
			article.Excerpt = sig.Excerpt
			article.Language = sig.Language
		}
	}

	if b.cache != nil {
		if data, err := json.Marshal(article); err == nil {
			if err := b.cache.Set(cacheKey, data); err != nil {
				b.logger.Debug("metadata cache write failed", "file", path, "error", err)
			}
		}
	}

	return article, nil
}

// DuplicateSlugError reports a second corpus file mapping to an existing slug.
type DuplicateSlugError struct {
	Slug  string
	First string // filename already holding the slug
}

func (e *DuplicateSlugError) Error() string {
	if e.First == "" {
		return "duplicate slug " + e.Slug
	}
	return fmt.Sprintf("duplicate slug %s (already used by %s)", e.Slug, e.First)
}
