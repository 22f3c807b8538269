// Package relevance finds, scores and selects related articles for internal linking.
package relevance

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/dtnitsch/blog-linker/models"
	"github.com/dtnitsch/blog-linker/pkg/analytics"
	"github.com/dtnitsch/blog-linker/pkg/linkdb"
)

const (
	DefaultTargetCount   = 8
	DefaultFallbackLimit = 5

	titleSimilarityThreshold   = 0.2
	keywordSimilarityThreshold = 0.3
)

// DefaultFallbackCategories are drawn from, in order, when nothing matches.
var DefaultFallbackCategories = []string{"whatsapp automation", "ai automation", "business automation"}

// Engine recommends related articles from a LinkDatabase.
type Engine struct {
	db                 *linkdb.LinkDatabase
	picker             PhrasePicker
	fallbackCategories []string
	fallbackLimit      int
	logger             *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPicker sets the context phrase strategy.
func WithPicker(p PhrasePicker) Option {
	return func(e *Engine) {
		if p != nil {
			e.picker = p
		}
	}
}

// WithFallback sets the categories and count used when no candidate matches.
// Empty categories or a non-positive limit keep the defaults.
func WithFallback(categories []string, limit int) Option {
	return func(e *Engine) {
		if len(categories) > 0 {
			e.fallbackCategories = categories
		}
		if limit > 0 {
			e.fallbackLimit = limit
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine returns an Engine over db.
func NewEngine(db *linkdb.LinkDatabase, opts ...Option) *Engine {
	if db == nil {
		db = linkdb.New(nil)
	}
	e := &Engine{
		db:                 db,
		picker:             RandomPicker{},
		fallbackCategories: DefaultFallbackCategories,
		fallbackLimit:      DefaultFallbackLimit,
		logger:             slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEngineFromConfig wires the configured fallback policy.
func NewEngineFromConfig(db *linkdb.LinkDatabase, cfg models.LinkerConfig, opts ...Option) *Engine {
	all := append([]Option{WithFallback(cfg.FallbackCategories, cfg.FallbackLimit)}, opts...)
	return NewEngine(db, all...)
}

// GenerateInternalLinks returns at most targetCount suggestions for current,
// sorted by descending relevance. The current article is never suggested.
func (e *Engine) GenerateInternalLinks(current models.CurrentArticle, targetCount int) []models.LinkSuggestion {
	suggestions := []models.LinkSuggestion{}
	if targetCount <= 0 {
		return suggestions
	}

	currentText := current.CombinedText()
	candidates := e.FindCandidates(current)

	scored := make([]ScoredArticle, 0, len(candidates))
	for _, a := range candidates {
		scored = append(scored, ScoredArticle{Article: a, Relevance: CalculateRelevance(a, currentText)})
	}

	for _, s := range SelectDiverseLinks(scored, targetCount) {
		suggestions = append(suggestions, models.LinkSuggestion{
			Article:    *s.Article,
			Relevance:  s.Relevance,
			Context:    contextFor(e.picker, s.Article.Title),
			AnchorText: AnchorText(s.Article),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Relevance > suggestions[j].Relevance
	})

	e.logger.Debug("internal links generated",
		"slug", current.Slug,
		"candidates", len(candidates),
		"returned", len(suggestions),
	)
	return suggestions
}

// FindCandidates returns the union of every discovery pass in first-found
// order, excluding the current article. When the union is empty the
// fallback categories are used.
func (e *Engine) FindCandidates(current models.CurrentArticle) []*models.Article {
	found := linkdb.NewArticleSet()
	add := func(a *models.Article) {
		if a.Slug != current.Slug {
			found.Add(a)
		}
	}
	addSet := func(s *linkdb.ArticleSet) {
		if s == nil {
			return
		}
		for _, a := range s.Items() {
			add(a)
		}
	}

	keywords := normalizeKeywords(current.Keywords)
	currentText := current.CombinedText()

	// exact keyword
	for _, kw := range keywords {
		addSet(e.db.Keywords[kw])
	}

	// fuzzy keyword
	indexed := e.db.KeywordKeys()
	for _, kw := range keywords {
		for _, key := range indexed {
			if strings.Contains(key, kw) || strings.Contains(kw, key) {
				addSet(e.db.Keywords[key])
			}
		}
	}

	// category
	for _, c := range e.db.CategoryNames() {
		if strings.Contains(currentText, c) {
			addSet(e.db.Categories[c])
		}
	}

	// title similarity
	articles := e.db.Articles.Items()
	for _, a := range articles {
		if analytics.Jaccard(currentText, strings.ToLower(a.Title)) > titleSimilarityThreshold {
			add(a)
		}
	}

	// keyword-pair similarity
	for _, a := range articles {
		if keywordPairMatch(keywords, a.Keywords) {
			add(a)
		}
	}

	if found.Len() == 0 {
		e.addFallback(add, found)
	}
	return found.Items()
}

func (e *Engine) addFallback(add func(*models.Article), found *linkdb.ArticleSet) {
	for _, c := range e.fallbackCategories {
		for _, a := range e.db.InCategory(c) {
			if found.Len() >= e.fallbackLimit {
				return
			}
			add(a)
		}
	}
	if found.Len() > 0 {
		e.logger.Debug("fallback categories used", "count", found.Len())
	}
}

func keywordPairMatch(current, candidate []string) bool {
	for _, ck := range current {
		for _, ak := range candidate {
			if analytics.Jaccard(ck, strings.ToLower(ak)) > keywordSimilarityThreshold {
				return true
			}
		}
	}
	return false
}

// normalizeKeywords lowercases and trims, dropping empties. An empty keyword
// would fuzzy-match every index key.
func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
