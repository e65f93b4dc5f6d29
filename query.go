package gutensearch

import (
	"context"
	"log/slog"
	"sort"
	"strings"
)

// RankingMethod selects how Result lists are ordered.
type RankingMethod string

const (
	RankByOccurrence RankingMethod = "occurrence"
	RankByCloseness  RankingMethod = "closeness"
)

// Result is one ranked hit: always carries a count, and carries a
// centrality score only when ranked by closeness. This mirrors the
// source's heterogeneous result record as a Go struct with an optional
// field rather than two result types, since the only variation is
// whether Score is populated.
type Result struct {
	ID    string
	Title string
	Count int
	Score float64 // populated, and used for ordering, only under RankByCloseness
}

// Suggestion is one "similar book" entry derived from the similarity
// graph's neighbor relation.
type Suggestion struct {
	ID         string
	Title      string
	Similarity float64
}

// QueryRequest is one user query: at most one keyword and one regex, plus
// a ranking method.
type QueryRequest struct {
	Keyword string
	Regex   string
	Ranking RankingMethod
}

// QueryResponse holds both result lists plus shared suggestions, matching
// §6's two ordered result lists and one suggestions list.
type QueryResponse struct {
	KeywordResults []Result
	RegexResults   []Result
	Suggestions    []Suggestion
}

// exactMatchThreshold is the postings-size cutoff at or above which the
// keyword path trusts the exact index lookup instead of falling back to a KMP
// scan over every term (§4.9 step 1b).
const exactMatchThreshold = 8

// QueryContext is the process-lifetime-immutable context every query runs
// against: the index store plus the graph, closeness scores, and book
// registry loaded once at startup (by LoadQueryContext). Rebuilding
// these requires constructing a new QueryContext and swapping the
// reference atomically (see design notes on global mutable state).
type QueryContext struct {
	Store    IndexStore
	Graph    SimilarityGraph // nil if load failed at startup
	Scores   map[string]float64
	Registry *BookRegistry
	Logger   *slog.Logger
}

// NewQueryContext wires together an already-open store with a graph,
// scores, and registry already loaded (or nil/empty on load failure, per
// §7's "process starts with an empty graph and null scores").
func NewQueryContext(store IndexStore, graph SimilarityGraph, scores map[string]float64, registry *BookRegistry, logger *slog.Logger) *QueryContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryContext{Store: store, Graph: graph, Scores: scores, Registry: registry, Logger: logger}
}

// Query runs the full pipeline for req: keyword path, regex path,
// ranking, and suggestion expansion. A failure confined to one path
// (store I/O, invalid regex) yields an empty list for that path only; the
// other path still runs, per §7.
func (qc *QueryContext) Query(ctx context.Context, req QueryRequest) QueryResponse {
	var resp QueryResponse

	if req.Keyword != "" {
		resp.KeywordResults = qc.runKeywordPath(ctx, req.Keyword)
		qc.rank(resp.KeywordResults, req.Ranking)
	}
	if req.Regex != "" {
		resp.RegexResults = qc.runRegexPath(ctx, req.Regex)
		qc.rank(resp.RegexResults, req.Ranking)
	}

	top := topIDs(resp.KeywordResults, resp.RegexResults, 3)
	resp.Suggestions = qc.suggest(top)
	return resp
}

// runKeywordPath implements §4.9 step 1: exact lookup, falling back to a
// KMP scan of every indexed term when the exact postings are small.
func (qc *QueryContext) runKeywordPath(ctx context.Context, keyword string) []Result {
	key := strings.ToLower(keyword)

	exact, err := qc.Store.GetTerm(ctx, key)
	if err != nil {
		qc.Logger.Warn("keyword path: exact lookup failed", "keyword", key, "error", err)
		return nil
	}

	raw := exact
	if len(exact) < exactMatchThreshold {
		// The KMP scan below matches every term containing keyword as a
		// substring, which includes the keyword term itself (a string
		// trivially contains itself), so it already covers what exact
		// found. Starting raw from the scan result rather than from a
		// clone of exact avoids double-counting that term's postings.
		merged, err := qc.kmpFallback(ctx, key)
		if err != nil {
			qc.Logger.Warn("keyword path: kmp fallback failed", "keyword", key, "error", err)
			return nil
		}
		raw = merged
	}
	return qc.materialize(raw)
}

// kmpFallback streams every postings record, merging chunks per term, and
// sums the postings of every term whose string contains keyword as a
// substring. Each unique term contributes at most once, so a split term's
// postings are never double-counted (per the split-term count semantics
// design note).
func (qc *QueryContext) kmpFallback(ctx context.Context, keyword string) (Postings, error) {
	termPostings, err := qc.scanMergedByTerm(ctx)
	if err != nil {
		return nil, err
	}
	matcher := NewKMPMatcher(keyword)
	out := make(Postings)
	for term, postings := range termPostings {
		if matcher.Contains(term) {
			out.Merge(postings)
		}
	}
	return out, nil
}

// runRegexPath implements §4.9 step 2: compile the regex, then scan every
// term, partial-matching each against the compiled DFA.
func (qc *QueryContext) runRegexPath(ctx context.Context, pattern string) []Result {
	dfa, err := CompileRegex(pattern)
	if err != nil {
		return nil
	}
	termPostings, err := qc.scanMergedByTerm(ctx)
	if err != nil {
		qc.Logger.Warn("regex path: scan failed", "regex", pattern, "error", err)
		return nil
	}
	out := make(Postings)
	for term, postings := range termPostings {
		if dfa.PartialMatch(term) {
			out.Merge(postings)
		}
	}
	return qc.materialize(out)
}

// scanMergedByTerm streams ScanAll and merges chunks into one postings
// map per term, so downstream per-term predicates (KMP, regex) see each
// term's logical postings exactly once regardless of how many physical
// records it was split across.
func (qc *QueryContext) scanMergedByTerm(ctx context.Context) (map[string]Postings, error) {
	it, err := qc.Store.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	merged := make(map[string]Postings)
	for it.Next() {
		rec := it.Record()
		p, ok := merged[rec.Term]
		if !ok {
			p = make(Postings)
			merged[rec.Term] = p
		}
		p.Merge(rec.Books)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return merged, nil
}

// materialize converts a postings map into a Result list carrying title
// from the registry, leaving Score unset (the ranker fills it in).
func (qc *QueryContext) materialize(postings Postings) []Result {
	out := make([]Result, 0, len(postings))
	for id, count := range postings {
		out = append(out, Result{ID: id, Title: qc.Registry.Title(id), Count: count})
	}
	return out
}

// rank sorts results in place per §4.9 step 3. Under RankByCloseness,
// scores are attached from qc.Scores first; if qc.Scores is nil (graph
// load failed at startup, per §7) ranking silently falls back to
// occurrence ordering.
func (qc *QueryContext) rank(results []Result, method RankingMethod) {
	if method == RankByCloseness && qc.Scores != nil {
		for i := range results {
			results[i].Score = qc.Scores[results[i].ID]
		}
		sort.Slice(results, func(i, j int) bool {
			if results[i].Score != results[j].Score {
				return results[i].Score > results[j].Score
			}
			if results[i].Count != results[j].Count {
				return results[i].Count > results[j].Count
			}
			return results[i].ID < results[j].ID
		})
		return
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].ID < results[j].ID
	})
}

// topIDs collects up to n leading IDs from the keyword results followed
// by the regex results, deduplicated, used to seed suggestion expansion.
func topIDs(keyword, regex []Result, n int) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(results []Result) {
		for _, r := range results {
			if len(out) >= n {
				return
			}
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			out = append(out, r.ID)
		}
	}
	add(keyword)
	add(regex)
	return out
}

// suggest implements the Suggestion Engine (§4.9 step 4): expand topIDs
// through the similarity graph's neighbor relation, excluding the seeds
// themselves, deduplicating by book_id while keeping the maximum weight
// seen, and returning the top 5 by weight.
func (qc *QueryContext) suggest(topIDs []string) []Suggestion {
	if qc.Graph == nil || len(topIDs) == 0 {
		return nil
	}
	exclude := make(map[string]bool, len(topIDs))
	for _, id := range topIDs {
		exclude[id] = true
	}

	best := make(map[string]float64)
	for _, id := range topIDs {
		for neighbor, weight := range qc.Graph.Neighbors(id) {
			if exclude[neighbor] {
				continue
			}
			if cur, ok := best[neighbor]; !ok || weight > cur {
				best[neighbor] = weight
			}
		}
	}

	suggestions := make([]Suggestion, 0, len(best))
	for id, weight := range best {
		suggestions = append(suggestions, Suggestion{ID: id, Title: qc.Registry.Title(id), Similarity: weight})
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Similarity != suggestions[j].Similarity {
			return suggestions[i].Similarity > suggestions[j].Similarity
		}
		return suggestions[i].ID < suggestions[j].ID
	})
	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions
}
