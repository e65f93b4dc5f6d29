package gutensearch

import "sort"

// jaccardThreshold is the minimum similarity for an edge to exist between
// two books; ties at exactly the threshold are excluded (the edge weight
// range is the open-at-the-bottom interval (0.01, 1]).
const jaccardThreshold = 0.01

// SimilarityGraph is the undirected, symmetric adjacency map produced by
// BuildSimilarityGraph: book_id -> (neighbor book_id -> Jaccard weight).
type SimilarityGraph map[string]map[string]float64

// Neighbors returns bookID's neighbor map (empty for an isolated vertex),
// or nil if bookID is unknown.
func (g SimilarityGraph) Neighbors(bookID string) map[string]float64 {
	return g[bookID]
}

// BuildSimilarityGraph computes pairwise Jaccard similarity over book
// vocabularies and keeps an edge for every pair whose similarity exceeds
// jaccardThreshold. The result is independent of map iteration order: book
// IDs are sorted before pairs are enumerated, and every qualifying edge is
// written symmetrically.
func BuildSimilarityGraph(vocab map[string]map[string]struct{}) SimilarityGraph {
	ids := make([]string, 0, len(vocab))
	for id := range vocab {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	graph := make(SimilarityGraph, len(ids))
	for _, id := range ids {
		graph[id] = make(map[string]float64)
	}

	for i := 0; i < len(ids); i++ {
		a := vocab[ids[i]]
		for j := i + 1; j < len(ids); j++ {
			b := vocab[ids[j]]
			sim := jaccard(a, b)
			if sim <= jaccardThreshold {
				continue
			}
			graph[ids[i]][ids[j]] = sim
			graph[ids[j]][ids[i]] = sim
		}
	}
	return graph
}

// jaccard computes |a ∩ b| / |a ∪ b| for two term sets. Two empty sets are
// defined to have zero similarity (no union to divide by).
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	intersection := 0
	for term := range small {
		if _, ok := large[term]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
