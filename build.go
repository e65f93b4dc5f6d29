package gutensearch

import (
	"context"
	"fmt"
	"log/slog"
)

// BuildAll runs the Inverted-Index Builder and the Similarity Graph
// Builder + Closeness Centrality end to end over corpus, then replaces
// store's contents atomically at the record level: drop() followed by
// put_record for every resulting postings, graph, and score record. This
// is the offline half of the control flow in §2 ("Corpus -> Tokenizer ->
// Inverted-Index Builder -> Index Store; Corpus -> vocabulary sets ->
// Similarity Graph Builder -> Closeness -> scored nodes + graph").
func BuildAll(ctx context.Context, store IndexStore, corpusDir string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	books, err := LoadCorpus(corpusDir, logger)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}
	logger.Info("loaded corpus", "books", len(books))

	idx := BuildIndex(books)
	records := idx.Shard()
	graph := BuildSimilarityGraph(idx.Vocabulary())
	scores := ComputeCloseness(graph)

	if err := store.Drop(ctx); err != nil {
		return fmt.Errorf("dropping prior store contents: %w", err)
	}

	for _, rec := range records {
		if err := store.PutRecord(ctx, rec); err != nil {
			return fmt.Errorf("writing postings record for term %q part %d: %w", rec.Term, rec.Part, err)
		}
	}
	logger.Info("wrote postings records", "count", len(records))

	for bookID, neighbors := range graph {
		err := store.PutGraphRecord(ctx, GraphRecord{BookID: bookID, Neighbors: neighbors})
		if err != nil {
			return fmt.Errorf("writing graph record for book %q: %w", bookID, err)
		}
	}
	for bookID, closeness := range scores {
		err := store.PutScoreRecord(ctx, ScoreRecord{BookID: bookID, Closeness: closeness})
		if err != nil {
			return fmt.Errorf("writing score record for book %q: %w", bookID, err)
		}
	}
	logger.Info("wrote graph and score records", "books", len(graph))
	return nil
}

// LoadQueryContext opens the components a query needs at startup: the
// book registry from corpusDir and the similarity graph + closeness
// scores from store. A failure loading the graph or scores is not fatal
// (§7): the returned QueryContext carries a nil Graph/Scores and queries
// fall back to occurrence ranking with empty suggestions.
func LoadQueryContext(ctx context.Context, store IndexStore, corpusDir string, logger *slog.Logger) (*QueryContext, error) {
	if logger == nil {
		logger = slog.Default()
	}

	books, err := LoadCorpus(corpusDir, logger)
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}
	registry := NewBookRegistry(books)

	graph, scores, err := loadGraphAndScores(ctx, store, books)
	if err != nil {
		logger.Warn("graph/score load failed at startup, falling back to occurrence ranking", "error", err)
		return NewQueryContext(store, nil, nil, registry, logger), nil
	}
	return NewQueryContext(store, graph, scores, registry, logger), nil
}

func loadGraphAndScores(ctx context.Context, store IndexStore, books []Book) (SimilarityGraph, map[string]float64, error) {
	graph := make(SimilarityGraph, len(books))
	for _, b := range books {
		rec, ok, err := store.GetGraphRecord(ctx, b.ID)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			graph[b.ID] = rec.Neighbors
		} else {
			graph[b.ID] = map[string]float64{}
		}
	}
	scores, err := store.ScanScores(ctx)
	if err != nil {
		return nil, nil, err
	}
	return graph, scores, nil
}
