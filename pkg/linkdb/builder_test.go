package linkdb

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/blog-linker/models"
	"github.com/dtnitsch/blog-linker/pkg/caching"
	"github.com/dtnitsch/blog-linker/pkg/detector"
)

func articleHTML(title string, keywords ...string) string {
	return fmt.Sprintf(`<html><head><title>%s | Blog</title>
<meta name="description" content="About %s">
<meta name="keywords" content="%s"></head>
<body><h1 class="blog-title">%s</h1><p>text</p></body></html>`,
		title, title, strings.Join(keywords, ", "), title)
}

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func testConfig(dir string) models.LinkerConfig {
	cfg := models.Defaults()
	cfg.CorpusDir = dir
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuild(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"blog-whatsapp-lead-gen-2024-01-02.html":    articleHTML("WhatsApp Lead Gen", "lead generation", "whatsapp"),
		"blog-ai-automation-basics-2024-02-03.html": articleHTML("AI Automation Basics", "ai automation"),
		"index.html":                                articleHTML("Blog Index"),
	})

	b := NewBuilder(testConfig(dir), WithLogger(quietLogger()))
	db := b.Build()

	if db.Articles.Len() != 2 {
		t.Fatalf("Articles.Len() = %d, want 2", db.Articles.Len())
	}
	a, ok := db.Articles.Get("whatsapp-lead-gen")
	if !ok {
		t.Fatal("whatsapp-lead-gen not built")
	}
	if a.Title != "WhatsApp Lead Gen" || a.Description != "About WhatsApp Lead Gen" {
		t.Errorf("article = %+v", a)
	}
	if !db.Keywords["whatsapp"].Has("whatsapp-lead-gen") {
		t.Error("keyword index missing whatsapp")
	}
	if !db.Categories["ai automation"].Has("ai-automation-basics") {
		t.Error("category ai automation missing ai-automation-basics")
	}
	if len(b.Skipped()) != 0 {
		t.Errorf("Skipped() = %v", b.Skipped())
	}
}

func TestBuild_UnreadableDirectoryYieldsEmptyDatabase(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	b := NewBuilder(testConfig(filepath.Join(t.TempDir(), "missing")), WithLogger(logger))
	db := b.Build()

	if db == nil || db.Articles.Len() != 0 {
		t.Fatalf("Build() = %+v, want empty database", db)
	}
	if len(db.CategoryNames()) != 12 {
		t.Errorf("empty database lost its categories: %v", db.CategoryNames())
	}
	if !strings.Contains(logs.String(), "corpus directory unreadable") {
		t.Errorf("expected an error log, got %q", logs.String())
	}
}

func TestBuild_SkipsDuplicateSlugs(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"blog-good-2024-01-01.html": articleHTML("Good Post", "chatbot"),
		"blog-good-2024-05-05.html": articleHTML("Same Slug Later", "chatbot"),
	})

	b := NewBuilder(testConfig(dir), WithLogger(quietLogger()))
	db := b.Build()

	if db.Articles.Len() != 1 {
		t.Errorf("Articles.Len() = %d, want 1", db.Articles.Len())
	}
	if got, _ := db.Articles.Get("good"); got == nil || got.Title != "Good Post" {
		t.Errorf("first file should win the slug, got %+v", got)
	}

	skipped := b.Skipped()
	var dup bool
	for _, s := range skipped {
		if strings.Contains(s.Error, "duplicate slug good") && strings.Contains(s.Error, "blog-good-2024-01-01.html") {
			dup = true
		}
	}
	if !dup {
		t.Errorf("Skipped() = %v, want a duplicate slug entry", skipped)
	}
}

func TestBuild_UsesCache(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"blog-cached-2024-01-01.html": articleHTML("Cached Post", "crm integration"),
	})
	path := filepath.Join(dir, "blog-cached-2024-01-01.html")
	cache, err := caching.NewCache(filepath.Join(t.TempDir(), "cache"), time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(dir)
	first := NewBuilder(cfg, WithCache(cache), WithLogger(quietLogger())).Build()
	if first.Articles.Len() != 1 {
		t.Fatalf("first build = %d articles", first.Articles.Len())
	}

	// same size and mtime, different title: only a cache hit keeps the old title
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(articleHTML("Cachex Post", "crm integration")), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, info.ModTime(), info.ModTime()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		mutate    func(cfg *models.LinkerConfig)
		wantTitle string
		wantURL   string
	}{
		{
			name:      "unchanged settings hit the cache",
			mutate:    func(cfg *models.LinkerConfig) {},
			wantTitle: "Cached Post",
			wantURL:   "/blog/blog-cached-2024-01-01.html",
		},
		{
			name:      "url prefix change misses the cache",
			mutate:    func(cfg *models.LinkerConfig) { cfg.URLPrefix = "/posts/" },
			wantTitle: "Cachex Post",
			wantURL:   "/posts/blog-cached-2024-01-01.html",
		},
		{
			name:      "brand suffix change misses the cache",
			mutate:    func(cfg *models.LinkerConfig) { cfg.BrandSuffix = " | Other" },
			wantTitle: "Cached",
			wantURL:   "/blog/blog-cached-2024-01-01.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig(dir)
			tt.mutate(&c)
			db := NewBuilder(c, WithCache(cache), WithLogger(quietLogger())).Build()
			a, ok := db.Articles.Get("cached")
			if !ok {
				t.Fatalf("article missing, skipped = %v", db.Articles.Items())
			}
			if a.Title != tt.wantTitle || a.URL != tt.wantURL {
				t.Errorf("article = %q %q, want %q %q", a.Title, a.URL, tt.wantTitle, tt.wantURL)
			}
			if !db.Keywords["crm integration"].Has("cached") {
				t.Error("article was not indexed")
			}
		})
	}
}

func TestBuild_WithDetector(t *testing.T) {
	body := strings.Repeat("<p>Customer service teams answer the same questions every day. "+
		"A chatbot on your website can handle these questions, collect contact details "+
		"and pass complex conversations to a person on your team.</p>\n", 4)
	page := `<html><head><title>Chatbot Guide | Blog</title>
<meta name="keywords" content="chatbot, customer service"></head>
<body><article><h1 class="blog-title">Chatbot Guide</h1>` + body + `</article></body></html>`

	dir := writeCorpus(t, map[string]string{"blog-chatbot-guide-2024-01-01.html": page})

	cfg := testConfig(dir)
	db := NewBuilder(cfg,
		WithDetector(detector.New(cfg.Languages)),
		WithLogger(quietLogger()),
	).Build()

	a, ok := db.Articles.Get("chatbot-guide")
	if !ok {
		t.Fatal("article missing")
	}
	if a.Language != "en" {
		t.Errorf("Language = %q, want en", a.Language)
	}
	if a.WordCount < 100 {
		t.Errorf("WordCount = %d, want >= 100", a.WordCount)
	}
	if a.Excerpt == "" {
		t.Error("Excerpt is empty")
	}
	if a.Title != "Chatbot Guide" {
		t.Errorf("Title = %q; signals must not change metadata", a.Title)
	}
}

func TestAddFile(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"blog-first-2024-01-01.html": articleHTML("First", "ecommerce"),
	})
	b := NewBuilder(testConfig(dir), WithLogger(quietLogger()))
	db := b.Build()

	path := filepath.Join(dir, "blog-second-2024-02-02.html")
	if err := os.WriteFile(path, []byte(articleHTML("Second Ecommerce Post", "ecommerce")), 0644); err != nil {
		t.Fatal(err)
	}
	a, err := b.AddFile(db, path)
	if err != nil {
		t.Fatalf("AddFile() error = %v", err)
	}
	if a.Slug != "second" || db.Articles.Len() != 2 {
		t.Errorf("AddFile() = %+v, articles = %d", a, db.Articles.Len())
	}
	if db.Categories["ecommerce"].Len() != 2 {
		t.Errorf("ecommerce category size = %d, want 2", db.Categories["ecommerce"].Len())
	}

	if _, err := b.AddFile(db, filepath.Join(dir, "blog-missing.html")); err == nil {
		t.Error("AddFile() on a missing file returned nil error")
	}
}
