package weaver

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/blog-linker/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// document is either a full HTML document or a body fragment held under a
// synthetic container, so fragments render back without <html><body>.
type document struct {
	*goquery.Document
	container *html.Node // nil for full documents
}

func parse(content string) (*document, error) {
	if isFullDocument(content) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
		if err != nil {
			return nil, err
		}
		return &document{Document: doc}, nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, err
	}
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return &document{Document: goquery.NewDocumentFromNode(container), container: container}, nil
}

func isFullDocument(content string) bool {
	head := strings.ToLower(strings.TrimSpace(content))
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(head, "<!doctype") || strings.Contains(head, "<html")
}

func (d *document) render() (string, error) {
	if d.container == nil {
		return d.Html()
	}
	var buf bytes.Buffer
	for n := d.container.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func esc(s string) string {
	return html.EscapeString(s)
}

func inlineAnchor(l *models.LinkSuggestion) string {
	return fmt.Sprintf(`<a href="%s" class="internal-link" title="%s">%s</a>`,
		esc(l.URL), esc(l.Context), esc(l.AnchorText))
}

func proseNote(l *models.LinkSuggestion) string {
	return fmt.Sprintf(`<span class="internal-link-note"><em>See also: <a href="%s" class="internal-link internal-link-citation" title="%s">%s</a></em></span>`,
		esc(l.URL), esc(l.Context), esc(l.AnchorText))
}

func listNote(l *models.LinkSuggestion) string {
	return fmt.Sprintf(` <span class="internal-link-context">(%s: %s)</span>`,
		esc(l.Context), inlineAnchor(l))
}

var relatedTemplate = template.Must(template.New("related").Parse(
	`<section class="related-articles"><h3>Related Articles</h3><div class="related-articles-grid">` +
		`{{range .}}<div class="related-article-card">` +
		`<h4><a href="{{.URL}}" class="internal-link">{{.Title}}</a></h4>` +
		`{{if .Description}}<p>{{.Description}}</p>{{end}}` +
		`{{if .Tags}}<div class="related-article-tags">{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</div>{{end}}` +
		`</div>{{end}}</div></section>`))

type relatedCard struct {
	URL         string
	Title       string
	Description string
	Tags        []string
}

func relatedBlock(links []models.LinkSuggestion) string {
	cards := make([]relatedCard, 0, len(links))
	for _, l := range links {
		tags := l.Keywords
		if len(tags) > relatedKeywordLimit {
			tags = tags[:relatedKeywordLimit]
		}
		cards = append(cards, relatedCard{
			URL:         l.URL,
			Title:       l.Title,
			Description: l.Description,
			Tags:        tags,
		})
	}
	var buf bytes.Buffer
	if err := relatedTemplate.Execute(&buf, cards); err != nil {
		return ""
	}
	return buf.String()
}
