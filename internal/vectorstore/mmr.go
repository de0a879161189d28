package vectorstore

import "math"

// candidate is a similarity-search hit considered for MMR selection.
type candidate struct {
	result    SearchResult
	embedding []float32
}

// selectMMR picks up to k candidates by maximal marginal relevance.
// Each round picks the candidate maximizing
//
//	lambda*sim(query, c) - (1-lambda)*max(sim(c, selected))
//
// so lambda 1 is pure relevance and lambda 0 maximizes diversity.
// Candidates arrive ranked by query similarity, which seeds the first
// pick when lambda is 0 and all penalties are equal.
func selectMMR(candidates []candidate, k int, lambda float64) []SearchResult {
	if k > len(candidates) {
		k = len(candidates)
	}
	if k <= 0 {
		return []SearchResult{}
	}

	selected := make([]SearchResult, 0, k)
	selectedEmb := make([][]float32, 0, k)
	remaining := make([]candidate, len(candidates))
	copy(remaining, candidates)

	for len(selected) < k && len(remaining) > 0 {
		bestIdx := 0
		bestScore := math.Inf(-1)
		for i, c := range remaining {
			penalty := 0.0
			for _, emb := range selectedEmb {
				if sim := cosineSimilarity(c.embedding, emb); sim > penalty {
					penalty = sim
				}
			}
			score := lambda*float64(c.result.Similarity) - (1-lambda)*penalty
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		picked := remaining[bestIdx]
		selected = append(selected, picked.result)
		selectedEmb = append(selectedEmb, picked.embedding)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return selected
}

// cosineSimilarity returns the cosine of the angle between two vectors,
// zero when either has no magnitude or dimensions mismatch.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
