package analytics

import (
	"strings"
)

type Analytics struct{}

// stopwords are ignored by WordFrequency. Similarity scoring does not use them:
// relevance works on raw whitespace tokens.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		a about above after again against all also am an and any are as at
		be because been before being below between both but by
		can cannot could did do does doing down during each few for from further
		had has have having he her here hers herself him himself his how
		i if in into is it its itself just me more most my myself
		no nor not now of off on once only or other our ours ourselves out over own
		same she should so some such than that the their theirs them themselves then
		there these they this those through to too under until up use using very
		was we were what when where which while who whom why will with would
		you your yours yourself yourselves
		how-to guide guides tips best ultimate complete vs
		blog post article read page click`) {
		stopwords[w] = struct{}{}
	}
}

// IsStopword checks if a word is a common stopword that should be filtered out.
func IsStopword(word string) bool {
	_, exists := stopwords[strings.ToLower(word)]
	return exists
}

// Tokenize splits text on whitespace after lowercasing it.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// WordSet returns the distinct lowercase whitespace tokens of text.
func WordSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// CommonWordCount returns |WordSet(a) ∩ WordSet(b)|.
func CommonWordCount(a, b string) int {
	setA, setB := WordSet(a), WordSet(b)
	if len(setB) < len(setA) {
		setA, setB = setB, setA
	}
	n := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			n++
		}
	}
	return n
}

// Jaccard returns intersection-over-union of the word sets of a and b.
// Two empty texts have similarity 0.
func Jaccard(a, b string) float64 {
	setA, setB := WordSet(a), WordSet(b)
	union := len(setA)
	inter := 0
	for w := range setB {
		if _, ok := setA[w]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// WordFrequency counts non-stopword words, stripping surrounding punctuation.
func (a *Analytics) WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)

	for _, word := range Tokenize(text) {
		word = strings.TrimFunc(word, func(r rune) bool {
			// Keep only lowercase letters and numbers
			return ('a' > r || r > 'z') && ('0' > r || r > '9')
		})

		if word == "" || IsStopword(word) {
			continue
		}

		frequencies[word]++
	}

	return frequencies
}
