package textutil

import "math"

// Fingerprint represents a term-frequency vector for sentence similarity
// comparison.
type Fingerprint struct {
	tokens map[string]float64
	norm   float64
}

// NewFingerprint creates a fingerprint from the provided text.
// Returns nil if the text produces no tokens.
func NewFingerprint(text string) *Fingerprint {
	return fingerprintOf(Tokenize(text))
}

// NewFingerprintFromTokens builds a fingerprint from already tokenized text.
func NewFingerprintFromTokens(tokens []string) *Fingerprint {
	return fingerprintOf(tokens)
}

func fingerprintOf(tokens []string) *Fingerprint {
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	var norm float64
	for _, count := range counts {
		norm += count * count
	}
	return &Fingerprint{
		tokens: counts,
		norm:   math.Sqrt(norm),
	}
}

// TokenCount returns the number of unique tokens in the fingerprint.
func (f *Fingerprint) TokenCount() int {
	if f == nil {
		return 0
	}
	return len(f.tokens)
}

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for token, count := range a.tokens {
		if other, ok := b.tokens[token]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// JaccardSimilarity is the overlap of the two distinct-token sets. Two empty
// fingerprints are identical; one empty fingerprint shares nothing.
func JaccardSimilarity(a, b *Fingerprint) float64 {
	switch {
	case a.TokenCount() == 0 && b.TokenCount() == 0:
		return 1
	case a.TokenCount() == 0 || b.TokenCount() == 0:
		return 0
	}
	shared := 0
	for token := range a.tokens {
		if _, ok := b.tokens[token]; ok {
			shared++
		}
	}
	union := len(a.tokens) + len(b.tokens) - shared
	return float64(shared) / float64(union)
}
