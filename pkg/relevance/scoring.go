package relevance

import (
	"sort"
	"strings"

	"github.com/dtnitsch/blog-linker/models"
	"github.com/dtnitsch/blog-linker/pkg/analytics"
)

const (
	commonWordWeight   = 0.1
	titleJaccardWeight = 0.3
	keywordHitWeight   = 0.2

	maxAnchorLength = 60
)

// ScoredArticle pairs a candidate with its relevance to the current article.
type ScoredArticle struct {
	Article   *models.Article
	Relevance float64
}

// CalculateRelevance scores article against the current article's combined
// lowercase text. Contributions are summed, then clamped to 1.
func CalculateRelevance(article *models.Article, currentText string) float64 {
	currentText = strings.ToLower(currentText)

	score := commonWordWeight * float64(analytics.CommonWordCount(currentText, article.CombinedText()))
	score += titleJaccardWeight * analytics.Jaccard(currentText, strings.ToLower(article.Title))

	for _, kw := range article.Keywords {
		kw = strings.ToLower(kw)
		if kw != "" && strings.Contains(currentText, kw) {
			score += keywordHitWeight
		}
	}

	if score > 1 {
		score = 1
	}
	return score
}

// SelectDiverseLinks orders candidates by descending relevance (stable) and
// keeps the first n. It does no per-category balancing.
func SelectDiverseLinks(scored []ScoredArticle, n int) []ScoredArticle {
	out := append([]ScoredArticle(nil), scored...)
	sortScored(out)
	if n < 0 {
		n = 0
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func sortScored(s []ScoredArticle) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Relevance > s[j].Relevance
	})
}

// AnchorText returns the main heading (or title), cut to 57 runes plus "..."
// when longer than 60.
func AnchorText(a *models.Article) string {
	text := a.MainHeading
	if text == "" {
		text = a.Title
	}
	runes := []rune(text)
	if len(runes) > maxAnchorLength {
		return string(runes[:maxAnchorLength-3]) + "..."
	}
	return text
}
