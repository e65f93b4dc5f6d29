package gutensearch

import (
	"container/heap"
	"math"
	"sort"
)

// pqItem is one entry in the Dijkstra priority queue.
type pqItem struct {
	bookID string
	dist   float64
}

// distHeap is a binary min-heap of pqItem ordered by distance, used by
// dijkstra to pick the next-closest unvisited vertex.
type distHeap []pqItem

func (h distHeap) Len() int            { return len(h) }
func (h distHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x interface{}) { *h = append(*h, x.(pqItem)) }
func (h *distHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// dijkstra computes weighted shortest-path distances from source to every
// vertex reachable in g, where edge (u,v) has length 1/weight(u,v). The
// returned map contains only source and vertices reachable from it.
func dijkstra(g SimilarityGraph, source string) map[string]float64 {
	dist := map[string]float64{source: 0}
	visited := make(map[string]bool)

	pq := &distHeap{{bookID: source, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqItem)
		if visited[cur.bookID] {
			continue
		}
		visited[cur.bookID] = true

		for neighbor, weight := range g[cur.bookID] {
			if weight <= 0 {
				continue
			}
			candidate := cur.dist + 1/weight
			if d, ok := dist[neighbor]; !ok || candidate < d {
				dist[neighbor] = candidate
				heap.Push(pq, pqItem{bookID: neighbor, dist: candidate})
			}
		}
	}
	return dist
}

// ComputeCloseness returns a closeness-centrality score for every vertex in
// g: for each source s, closeness(s) = (reachable(s)-1) / sum of distances
// to reachable vertices, or 0 if s is isolated or the distance sum is
// zero. Every key of g receives a score, so a vertex whose neighbor map is
// empty scores 0; a book_id that appears only as a neighbor and not as a
// key of g receives no score.
func ComputeCloseness(g SimilarityGraph) map[string]float64 {
	ids := make([]string, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	scores := make(map[string]float64, len(ids))
	for _, source := range ids {
		dist := dijkstra(g, source)
		reachable := 0
		sum := 0.0
		for target, d := range dist {
			if target == source {
				continue
			}
			if math.IsInf(d, 1) {
				continue
			}
			reachable++
			sum += d
		}
		if reachable == 0 || sum == 0 {
			scores[source] = 0
			continue
		}
		scores[source] = float64(reachable) / sum
	}
	return scores
}
