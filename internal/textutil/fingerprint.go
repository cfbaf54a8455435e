package textutil

import (
	"math"
	"strings"
	"unicode"
)

const minTokenLength = 3

// Fingerprint is a term-frequency vector over the words of a short title.
type Fingerprint struct {
	tokens map[string]float64
	norm   float64
}

// NewFingerprint returns nil when text has no words of minTokenLength or more.
func NewFingerprint(text string) *Fingerprint {
	fp := &Fingerprint{tokens: make(map[string]float64)}
	for _, token := range Tokenize(text) {
		fp.tokens[token]++
	}
	if len(fp.tokens) == 0 {
		return nil
	}
	var sum float64
	for _, weight := range fp.tokens {
		sum += weight * weight
	}
	fp.norm = math.Sqrt(sum)
	return fp
}

// Tokenize lowercases text and splits it on anything that is not a letter
// or digit, dropping words shorter than minTokenLength.
func Tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := words[:0]
	for _, word := range words {
		if len([]rune(word)) >= minTokenLength {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
