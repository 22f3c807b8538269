// Package weaver inserts internal links into article HTML.
//
// Links are consumed in order by four injection phases sharing one cursor:
// the first paragraph of each prose block, long list items, long plain
// paragraphs, and finally a related-articles block placed before the
// "Conclusion" heading. All predicates are evaluated on the parse tree.
package weaver

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/blog-linker/models"
	"golang.org/x/net/html"
)

const (
	DefaultProseSelector     = ".prose"
	DefaultConclusionHeading = "Conclusion"

	// Inner-HTML lengths (in runes) an element must exceed to receive a link.
	ListItemMinLength  = 50
	ParagraphMinLength = 100

	relatedKeywordLimit = 3
)

// Weaver holds the site-specific injection markers.
type Weaver struct {
	ProseSelector     string
	ConclusionHeading string
}

// New returns a Weaver configured from cfg, defaulting blank markers.
func New(cfg models.LinkerConfig) *Weaver {
	w := &Weaver{
		ProseSelector:     cfg.ProseSelector,
		ConclusionHeading: cfg.ConclusionHeading,
	}
	if w.ProseSelector == "" {
		w.ProseSelector = DefaultProseSelector
	}
	if w.ConclusionHeading == "" {
		w.ConclusionHeading = DefaultConclusionHeading
	}
	return w
}

// InsertInternalLinks weaves links into content with the default markers.
func InsertInternalLinks(content string, links []models.LinkSuggestion) string {
	return New(models.LinkerConfig{}).InsertInternalLinks(content, links)
}

// InsertInternalLinks returns content with links inserted. It never fails:
// with no links, no injection point, or content that cannot be parsed,
// content is returned as is.
// Neither content nor links are modified.
func (w *Weaver) InsertInternalLinks(content string, links []models.LinkSuggestion) string {
	if len(links) == 0 {
		return content
	}

	doc, err := parse(content)
	if err != nil {
		return content
	}

	c := &cursor{links: links}
	w.injectProse(doc, c)
	injectListItems(doc, c)
	injectParagraphs(doc, c)
	w.injectRelated(doc, c)

	// nothing was inserted: keep the caller's markup byte for byte
	if c.consumed() == 0 {
		return content
	}

	out, err := doc.render()
	if err != nil {
		return content
	}
	return out
}

type cursor struct {
	links []models.LinkSuggestion
	pos   int
}

func (c *cursor) next() (*models.LinkSuggestion, bool) {
	if c.pos >= len(c.links) {
		return nil, false
	}
	l := &c.links[c.pos]
	c.pos++
	return l, true
}

func (c *cursor) remaining() []models.LinkSuggestion {
	return c.links[c.pos:]
}

func (c *cursor) consumed() int {
	return c.pos
}

func (c *cursor) exhausted() bool {
	return c.pos >= len(c.links)
}

// injectProse adds a citation note after the first paragraph of each prose block.
func (w *Weaver) injectProse(doc *document, c *cursor) {
	doc.Find(w.ProseSelector).Each(func(_ int, block *goquery.Selection) {
		if c.exhausted() {
			return
		}
		first := block.Find("p").First()
		if first.Length() == 0 {
			return
		}
		link, _ := c.next()
		first.AfterHtml(proseNote(link))
	})
}

// injectListItems appends "(context: anchor)" to list items longer than ListItemMinLength.
func injectListItems(doc *document, c *cursor) {
	doc.Find("li").Each(func(_ int, item *goquery.Selection) {
		if c.exhausted() {
			return
		}
		inner, err := item.Html()
		if err != nil || utf8.RuneCountInString(inner) <= ListItemMinLength {
			return
		}
		link, _ := c.next()
		item.AppendHtml(listNote(link))
	})
}

// injectParagraphs places an anchor at the middle word of long plain paragraphs.
func injectParagraphs(doc *document, c *cursor) {
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if c.exhausted() || !isPlainParagraph(p) {
			return
		}
		inner, err := p.Html()
		if err != nil || utf8.RuneCountInString(inner) <= ParagraphMinLength {
			return
		}
		link, _ := c.next()
		words := strings.Split(inner, " ")
		mid := len(words) / 2
		words = append(words[:mid], append([]string{inlineAnchor(link)}, words[mid:]...)...)
		p.SetHtml(strings.Join(words, " "))
	})
}

// isPlainParagraph reports whether p has no anchor and no markup a space
// split could cut through: only text and attribute-free inline elements.
func isPlainParagraph(p *goquery.Selection) bool {
	if p.Find("a").Length() > 0 {
		return false
	}
	plain := true
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for child := n.FirstChild; child != nil && plain; child = child.NextSibling {
			switch child.Type {
			case html.TextNode:
			case html.ElementNode:
				if len(child.Attr) > 0 {
					plain = false
					return
				}
				walk(child)
			default:
				plain = false
			}
		}
	}
	for _, n := range p.Nodes {
		walk(n)
	}
	return plain
}

// injectRelated renders the unconsumed links before the conclusion heading.
// Without such a heading the block is dropped.
func (w *Weaver) injectRelated(doc *document, c *cursor) {
	rest := c.remaining()
	if len(rest) == 0 {
		return
	}
	heading := doc.Find("h1,h2,h3,h4,h5,h6").FilterFunction(func(_ int, h *goquery.Selection) bool {
		return strings.EqualFold(strings.TrimSpace(h.Text()), w.ConclusionHeading)
	}).First()
	if heading.Length() == 0 {
		return
	}
	heading.BeforeHtml(relatedBlock(rest))
	c.pos = len(c.links)
}
