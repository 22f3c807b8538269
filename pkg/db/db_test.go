package db

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dtnitsch/blog-linker/models"
	"github.com/dtnitsch/blog-linker/pkg/linkdb"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	// every pooled connection to :memory: is a separate database
	database.SetMaxOpenConns(1)

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func sampleLinkDB(t *testing.T) *linkdb.LinkDatabase {
	t.Helper()
	ldb := linkdb.New(models.DefaultCategories)
	for _, a := range []*models.Article{
		{Title: "WhatsApp Lead Gen", Keywords: []string{"lead generation", "whatsapp"}, Slug: "a1", Filename: "blog-a1.html", URL: "/blog/blog-a1.html"},
		{Title: "Chatbot Playbook", Keywords: []string{"chatbot"}, Slug: "a2", Filename: "blog-a2.html", URL: "/blog/blog-a2.html", Language: "en", WordCount: 120},
		{Title: "Gardening Notes", Keywords: []string{}, Slug: "a3", Filename: "blog-a3.html", URL: "/blog/blog-a3.html"},
	} {
		if !ldb.Update(a) {
			t.Fatalf("Update(%s) = false", a.Slug)
		}
	}
	return ldb
}

func TestOpen_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer db.Close()

	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}

	var name string
	if err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='links'").Scan(&name); err != nil {
		t.Errorf("links table missing: %v", err)
	}
}

func TestSaveDatabase_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ldb := sampleLinkDB(t)
	if err := db.SaveDatabase(ldb); err != nil {
		t.Fatalf("SaveDatabase() failed: %v", err)
	}

	got, err := db.ListArticles()
	if err != nil {
		t.Fatalf("ListArticles() failed: %v", err)
	}
	want := ldb.Articles.Items()
	if len(got) != len(want) {
		t.Fatalf("ListArticles() returned %d articles, want %d", len(got), len(want))
	}
	for i := range want {
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Errorf("article %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSaveDatabase_Replaces(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.SaveDatabase(sampleLinkDB(t)); err != nil {
		t.Fatalf("SaveDatabase() failed: %v", err)
	}

	smaller := linkdb.New(models.DefaultCategories)
	smaller.Update(&models.Article{Title: "Only", Keywords: []string{"crm integration"}, Slug: "only", Filename: "blog-only.html", URL: "/blog/blog-only.html"})
	if err := db.SaveDatabase(smaller); err != nil {
		t.Fatalf("second SaveDatabase() failed: %v", err)
	}

	got, err := db.ListArticles()
	if err != nil {
		t.Fatalf("ListArticles() failed: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "only" {
		t.Errorf("ListArticles() = %v, want only the new snapshot", got)
	}

	var kwCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM article_keywords").Scan(&kwCount); err != nil {
		t.Fatalf("failed to count keywords: %v", err)
	}
	if kwCount != 1 {
		t.Errorf("article_keywords has %d rows, want 1 (cascade from articles)", kwCount)
	}
}

func TestLoadDatabase(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.SaveDatabase(sampleLinkDB(t)); err != nil {
		t.Fatalf("SaveDatabase() failed: %v", err)
	}

	ldb, err := db.LoadDatabase(models.DefaultCategories)
	if err != nil {
		t.Fatalf("LoadDatabase() failed: %v", err)
	}
	if ldb.Articles.Len() != 3 {
		t.Errorf("Articles.Len() = %d, want 3", ldb.Articles.Len())
	}
	if s := ldb.Keywords["chatbot"]; s == nil || !s.Has("a2") {
		t.Error("keyword index not rebuilt")
	}
	if !ldb.Categories["lead generation"].Has("a1") {
		t.Error("category membership not rebuilt")
	}

	counts, err := db.CategoryCounts()
	if err != nil {
		t.Fatalf("CategoryCounts() failed: %v", err)
	}
	if counts["lead generation"] != 1 || counts["chatbot"] != 1 {
		t.Errorf("CategoryCounts() = %v", counts)
	}
}

func TestRecordLinks(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.SaveDatabase(sampleLinkDB(t)); err != nil {
		t.Fatalf("SaveDatabase() failed: %v", err)
	}

	suggest := func(slug string, rel float64) models.LinkSuggestion {
		return models.LinkSuggestion{Article: models.Article{Slug: slug}, Relevance: rel, AnchorText: slug}
	}

	if err := db.RecordLinks("new-post", []models.LinkSuggestion{suggest("a1", 0.5), suggest("a2", 0.4)}); err != nil {
		t.Fatalf("RecordLinks() failed: %v", err)
	}
	if err := db.RecordLinks("other-post", []models.LinkSuggestion{suggest("a1", 0.3)}); err != nil {
		t.Fatalf("RecordLinks() failed: %v", err)
	}
	// same pair again updates in place
	if err := db.RecordLinks("new-post", []models.LinkSuggestion{suggest("a1", 0.9)}); err != nil {
		t.Fatalf("RecordLinks() repeat failed: %v", err)
	}

	counts, err := db.InboundCounts()
	if err != nil {
		t.Fatalf("InboundCounts() failed: %v", err)
	}
	want := []InboundCount{
		{Slug: "a1", Title: "WhatsApp Lead Gen", Count: 2},
		{Slug: "a2", Title: "Chatbot Playbook", Count: 1},
		{Slug: "a3", Title: "Gardening Notes", Count: 0},
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("InboundCounts() = %+v, want %+v", counts, want)
	}

	var rel float64
	if err := db.QueryRow("SELECT relevance FROM links WHERE source_slug = 'new-post' AND target_slug = 'a1'").Scan(&rel); err != nil {
		t.Fatalf("failed to query link: %v", err)
	}
	if rel != 0.9 {
		t.Errorf("relevance = %v, want 0.9", rel)
	}

	orphans, err := db.OrphanArticles()
	if err != nil {
		t.Fatalf("OrphanArticles() failed: %v", err)
	}
	if !reflect.DeepEqual(orphans, []string{"a3"}) {
		t.Errorf("OrphanArticles() = %v, want [a3]", orphans)
	}
}
