package detector

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"
)

// maxLanguageSample bounds the text handed to the language detector.
const maxLanguageSample = 2000

// Signals are cheap content facts about an article. They are reported and
// persisted but never influence link relevance.
type Signals struct {
	WordCount          int
	Excerpt            string
	Language           string  // ISO-639-1, lowercase; empty when undetected
	LanguageConfidence float64 // 0-1
}

// Detector computes Signals. A nil *Detector is valid and detects nothing.
type Detector struct {
	languages lingua.LanguageDetector
}

// New builds a Detector for the named languages ("english", "spanish", ...).
// Language detection is disabled when fewer than two names are recognised.
func New(languageNames []string) *Detector {
	var langs []lingua.Language
	seen := map[lingua.Language]bool{}
	for _, name := range languageNames {
		for _, l := range lingua.AllLanguages() {
			if strings.EqualFold(l.String(), strings.TrimSpace(name)) && !seen[l] {
				langs = append(langs, l)
				seen[l] = true
			}
		}
	}

	d := &Detector{}
	if len(langs) >= 2 {
		d.languages = lingua.NewLanguageDetectorBuilder().
			FromLanguages(langs...).
			Build()
	}
	return d
}

// Analyze extracts the main content of an article page and derives Signals.
func (d *Detector) Analyze(html string, pageURL *url.URL) (Signals, error) {
	var sig Signals
	if d == nil {
		return sig, nil
	}

	rp := readability.NewParser()
	article, err := rp.Parse(strings.NewReader(html), pageURL)
	if err != nil {
		return sig, fmt.Errorf("readability: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return sig, fmt.Errorf("readability content: %w", err)
	}
	text := strings.TrimSpace(doc.Text())
	sig.WordCount = len(strings.Fields(text))
	sig.Excerpt = strings.TrimSpace(article.Excerpt)

	sample := strings.TrimSpace(article.Title + " " + text)
	if runes := []rune(sample); len(runes) > maxLanguageSample {
		sample = string(runes[:maxLanguageSample])
	}
	sig.Language, sig.LanguageConfidence = d.DetectLanguage(sample)

	return sig, nil
}

// DetectLanguage returns the most likely ISO-639-1 code for text and its confidence.
func (d *Detector) DetectLanguage(text string) (string, float64) {
	if d == nil || d.languages == nil || strings.TrimSpace(text) == "" {
		return "", 0
	}
	values := d.languages.ComputeLanguageConfidenceValues(text)
	if len(values) == 0 || values[0].Value() == 0 {
		return "", 0
	}
	best := values[0]
	return strings.ToLower(best.Language().IsoCode639_1().String()), best.Value()
}
