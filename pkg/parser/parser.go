package parser

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/blog-linker/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var dateSuffix = regexp.MustCompile(`-\d{4}-\d{2}-\d{2}$`)

// Parser extracts link metadata from published article HTML.
type Parser struct {
	BrandSuffix     string
	SlugPrefix      string
	HeadingSelector string
	URLPrefix       string
	BaseURL         string
}

// New returns a Parser configured for the site described by cfg.
func New(cfg models.LinkerConfig) *Parser {
	return &Parser{
		BrandSuffix:     cfg.BrandSuffix,
		SlugPrefix:      cfg.SlugPrefix,
		HeadingSelector: cfg.HeadingSelector,
		URLPrefix:       cfg.URLPrefix,
		BaseURL:         cfg.BaseURL,
	}
}

// ParseArticle reads one corpus file and returns its Article.
// Missing optional markers fall back to derived values; only unparseable
// input or an empty slug is an error.
func (p *Parser) ParseArticle(filename string, r io.Reader) (*models.Article, error) {
	slug := p.Slug(filename)
	if slug == "" {
		return nil, fmt.Errorf("cannot derive slug from filename %q", filename)
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	base := filepath.Base(filename)
	article := &models.Article{
		Slug:     slug,
		Filename: base,
		URL:      p.URLPrefix + base,
	}
	article.DistURL = article.URL
	if p.BaseURL != "" {
		article.DistURL = strings.TrimRight(p.BaseURL, "/") + "/" + strings.TrimLeft(article.URL, "/")
	}

	article.Title = p.extractTitle(doc)
	if article.Title == "" {
		article.Title = TitleFromSlug(slug)
	}

	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		article.Description = normalizeText(desc)
	}

	article.Keywords = []string{}
	if kw, ok := doc.Find(`meta[name="keywords"]`).First().Attr("content"); ok {
		article.Keywords = SplitKeywords(kw)
	}

	if p.HeadingSelector != "" {
		article.MainHeading = normalizeText(doc.Find(p.HeadingSelector).First().Text())
	}
	if article.MainHeading == "" {
		article.MainHeading = article.Title
	}

	return article, nil
}

// extractTitle returns the <title> text with the brand suffix removed, or ""
// when the title is absent or does not carry the suffix.
func (p *Parser) extractTitle(doc *goquery.Document) string {
	sel := doc.Find("title").First()
	if sel.Length() == 0 {
		return ""
	}
	text := normalizeText(sel.Text())
	if p.BrandSuffix == "" {
		return text
	}
	suffix := strings.TrimSpace(p.BrandSuffix)
	if !strings.HasSuffix(text, suffix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimSuffix(text, suffix))
}

// Slug derives the identity key from a filename: extension, prefix and a
// trailing -YYYY-MM-DD are removed.
func (p *Parser) Slug(filename string) string {
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	slug := strings.TrimPrefix(name, p.SlugPrefix)
	slug = dateSuffix.ReplaceAllString(slug, "")
	if slug == "" {
		// prefix-only or date-only names keep the raw stem
		slug = name
	}
	return slug
}

// TitleFromSlug turns "whatsapp-lead-gen" into "Whatsapp Lead Gen".
func TitleFromSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// SplitKeywords splits a comma-separated keywords attribute, trimming each
// entry and dropping empties. Order and duplicates are preserved.
func SplitKeywords(raw string) []string {
	keywords := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			keywords = append(keywords, part)
		}
	}
	return keywords
}

// normalizeText cleans up a string by trimming space and removing excess newlines.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
