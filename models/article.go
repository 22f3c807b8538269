// Package models defines the data structures shared by the link builder,
// relevance engine and content weaver.
package models

import "strings"

// Article holds the link metadata extracted from one published post.
// Slug is the identity key: two articles with the same slug are the same article.
type Article struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
	Slug        string   `json:"slug" yaml:"slug"`
	Filename    string   `json:"filename" yaml:"filename"`
	URL         string   `json:"url" yaml:"url"`
	DistURL     string   `json:"dist_url" yaml:"dist_url"`
	MainHeading string   `json:"main_heading" yaml:"main_heading"`

	// Content signals (from pkg/detector). Informational only.
	Language  string `json:"language,omitempty" yaml:"language,omitempty"`
	WordCount int    `json:"word_count,omitempty" yaml:"word_count,omitempty"`
	Excerpt   string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
}

// CombinedText returns lowercase(title + " " + keywords joined by spaces).
func (a *Article) CombinedText() string {
	return combinedText(a.Title, a.Keywords)
}

// CurrentArticle describes the article links are being generated for.
// It may not exist in the corpus yet.
type CurrentArticle struct {
	Title    string   `json:"title" yaml:"title"`
	Keywords []string `json:"keywords" yaml:"keywords"`
	Slug     string   `json:"slug" yaml:"slug"`
}

// CombinedText returns lowercase(title + " " + keywords joined by spaces).
func (c CurrentArticle) CombinedText() string {
	return combinedText(c.Title, c.Keywords)
}

// LinkSuggestion is an Article scored against a specific current article.
type LinkSuggestion struct {
	Article `yaml:",inline"`

	Relevance  float64 `json:"relevance" yaml:"relevance"` // 0-1, contextual to the query
	Context    string  `json:"context" yaml:"context"`
	AnchorText string  `json:"anchor_text" yaml:"anchor_text"`
}

func combinedText(title string, keywords []string) string {
	return strings.ToLower(title + " " + strings.Join(keywords, " "))
}
