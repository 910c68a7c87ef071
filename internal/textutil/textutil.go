// Package textutil provides transcript text helpers: tokenization and
// word-overlap similarity used to compare transcription candidates.
package textutil

import "strings"

// Tokenize splits transcript text into lowercase whitespace-delimited words.
// Accented characters are preserved; French transcripts rely on them.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// WordSet builds the set of distinct lowercase words in the text.
func WordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range Tokenize(text) {
		set[word] = struct{}{}
	}
	return set
}

// Jaccard computes |A∩B| / |A∪B| over word sets. Two empty sets count as full
// agreement.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	intersection := 0
	for word := range a {
		if _, ok := b[word]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}
