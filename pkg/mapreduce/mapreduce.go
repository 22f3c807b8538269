package mapreduce

import (
	"strings"

	"github.com/dtnitsch/blog-linker/models"
	"github.com/dtnitsch/blog-linker/pkg/analytics"
)

// Map generates a term frequency map for one article's title and keywords.
func Map(article *models.Article, a *analytics.Analytics) map[string]int {
	return a.WordFrequency(article.Title + " " + strings.Join(article.Keywords, " "))
}

// Reduce aggregates a slice of term frequency maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}
