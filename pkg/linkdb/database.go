// Package linkdb builds the in-memory link database: the set of published
// articles plus a category grouping and a lowercase keyword inverted index.
package linkdb

import (
	"strings"

	"github.com/dtnitsch/blog-linker/models"
)

// ArticleSet is an insertion-ordered set of articles keyed by slug.
type ArticleSet struct {
	order []string
	items map[string]*models.Article
}

// NewArticleSet returns an empty set.
func NewArticleSet() *ArticleSet {
	return &ArticleSet{items: make(map[string]*models.Article)}
}

// Add inserts a, reporting false when its slug is already present.
func (s *ArticleSet) Add(a *models.Article) bool {
	if _, ok := s.items[a.Slug]; ok {
		return false
	}
	s.items[a.Slug] = a
	s.order = append(s.order, a.Slug)
	return true
}

func (s *ArticleSet) Has(slug string) bool {
	_, ok := s.items[slug]
	return ok
}

func (s *ArticleSet) Get(slug string) (*models.Article, bool) {
	a, ok := s.items[slug]
	return a, ok
}

func (s *ArticleSet) Len() int {
	return len(s.order)
}

// Items returns the articles in insertion order.
func (s *ArticleSet) Items() []*models.Article {
	out := make([]*models.Article, 0, len(s.order))
	for _, slug := range s.order {
		out = append(out, s.items[slug])
	}
	return out
}

// LinkDatabase is rebuilt per invocation. After the build only Update mutates it.
type LinkDatabase struct {
	Articles   *ArticleSet
	Categories map[string]*ArticleSet
	Keywords   map[string]*ArticleSet

	categoryNames []string
	keywordOrder  []string
}

// New returns an empty database for the given category taxonomy.
// Category names are lowercased; duplicates and blanks are dropped.
func New(categories []string) *LinkDatabase {
	db := &LinkDatabase{
		Articles:   NewArticleSet(),
		Categories: make(map[string]*ArticleSet),
		Keywords:   make(map[string]*ArticleSet),
	}
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, ok := db.Categories[c]; ok {
			continue
		}
		db.Categories[c] = NewArticleSet()
		db.categoryNames = append(db.categoryNames, c)
	}
	return db
}

// Update adds one article and categorizes and indexes only that article.
// It returns false, leaving the database untouched, for an empty or known slug.
func (db *LinkDatabase) Update(a *models.Article) bool {
	if a == nil || a.Slug == "" || !db.Articles.Add(a) {
		return false
	}

	allText := a.CombinedText()
	for _, c := range db.categoryNames {
		if strings.Contains(allText, c) {
			db.Categories[c].Add(a)
		}
	}

	for _, kw := range a.Keywords {
		key := strings.ToLower(kw)
		set, ok := db.Keywords[key]
		if !ok {
			set = NewArticleSet()
			db.Keywords[key] = set
			db.keywordOrder = append(db.keywordOrder, key)
		}
		set.Add(a)
	}
	return true
}

// CategoryNames returns the taxonomy in configured order.
func (db *LinkDatabase) CategoryNames() []string {
	return append([]string(nil), db.categoryNames...)
}

// KeywordKeys returns the indexed keywords in first-seen order.
func (db *LinkDatabase) KeywordKeys() []string {
	return append([]string(nil), db.keywordOrder...)
}

// InCategory returns the articles of category c, or nil for an unknown category.
func (db *LinkDatabase) InCategory(c string) []*models.Article {
	set, ok := db.Categories[strings.ToLower(c)]
	if !ok {
		return nil
	}
	return set.Items()
}
