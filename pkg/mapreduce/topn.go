package mapreduce

import (
	"sort"
	"strings"
	"unicode"
)

// TermCount is a term with its corpus-wide count.
type TermCount struct {
	Term  string `json:"term" yaml:"term"`
	Count int    `json:"count" yaml:"count"`
}

// isValidTerm keeps terms with at least one letter. WordFrequency has
// already trimmed punctuation, so what is left to drop are bare numbers
// such as years and prices.
func isValidTerm(word string) bool {
	return strings.IndexFunc(word, unicode.IsLetter) >= 0
}

// TopTerms returns the n most frequent terms, ties broken alphabetically.
func TopTerms(wordCounts map[string]int, n int) []TermCount {
	var ss []TermCount
	for k, v := range wordCounts {
		if isValidTerm(k) {
			ss = append(ss, TermCount{Term: k, Count: v})
		}
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Count != ss[j].Count {
			return ss[i].Count > ss[j].Count
		}
		return ss[i].Term < ss[j].Term
	})

	if n >= 0 && len(ss) > n {
		ss = ss[:n]
	}
	return ss
}
