package rag

// Cutoff is the largest nearest-neighbour distance that still counts as relevant.
func Cutoff(threshold float64) float64 {
	return 1 - threshold
}

// Relevant reports whether retrieval should ground the answer.
// Only the first (nearest) match is considered; a similarity equal to the
// threshold is relevant. The comparison runs at the float32 precision of the
// stored scores so the boundary holds for any threshold.
func Relevant(matches []Match, threshold float64) bool {
	if len(matches) == 0 {
		return false
	}
	return float32(1-matches[0].Distance) >= float32(threshold)
}
