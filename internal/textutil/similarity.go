package textutil

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

// Closest returns the candidate most similar to text when its similarity
// reaches threshold. Ties keep the earlier candidate.
func Closest(text string, candidates []string, threshold float64) (string, bool) {
	fp := NewFingerprint(text)
	if fp == nil {
		return "", false
	}
	best, bestScore := "", 0.0
	for _, candidate := range candidates {
		score := CosineSimilarity(fp, NewFingerprint(candidate))
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if best == "" || bestScore < threshold {
		return "", false
	}
	return best, true
}
