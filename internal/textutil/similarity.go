package textutil

import "sort"

// SimilarPair is a pair of texts whose combined similarity reached the
// requested threshold. I and J index into the slice given to SimilarPairs
// with I < J.
type SimilarPair struct {
	I        int     `json:"i"`
	J        int     `json:"j"`
	Cosine   float64 `json:"cosine"`
	Jaccard  float64 `json:"jaccard"`
	Combined float64 `json:"combined"`
}

// SimilarPairs compares every pair of texts and returns those whose combined
// score (mean of cosine and Jaccard similarity) is at least threshold, most
// similar first. Ties keep index order.
func SimilarPairs(texts []string, threshold float64) []SimilarPair {
	prints := make([]*Fingerprint, len(texts))
	for i, text := range texts {
		prints[i] = NewFingerprint(text)
	}
	var pairs []SimilarPair
	for i := 0; i < len(prints); i++ {
		for j := i + 1; j < len(prints); j++ {
			cos := CosineSimilarity(prints[i], prints[j])
			jac := JaccardSimilarity(prints[i], prints[j])
			combined := (cos + jac) / 2
			if combined < threshold {
				continue
			}
			pairs = append(pairs, SimilarPair{I: i, J: j, Cosine: cos, Jaccard: jac, Combined: combined})
		}
	}
	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].Combined > pairs[b].Combined
	})
	return pairs
}
