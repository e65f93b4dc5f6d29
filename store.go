package gutensearch

import "context"

// GraphRecord is one adjacency record of the similarity graph: a book_id
// and its neighbor -> Jaccard weight map.
type GraphRecord struct {
	BookID    string             `json:"book_id"`
	Neighbors map[string]float64 `json:"neighbors"`
}

// ScoreRecord is one closeness-centrality record.
type ScoreRecord struct {
	BookID    string  `json:"book_id"`
	Closeness float64 `json:"closeness"`
}

// IndexStore is the abstract persistence interface the query pipeline and
// the builder depend on. It is intentionally agnostic to the backing
// store: MemoryStore and PebbleStore both satisfy it.
//
// PutRecord, PutGraphRecord, and PutScoreRecord are idempotent by their
// respective identity (term+part; book_id; book_id). ScanAll streams
// postings records in unspecified order; callers must tolerate multiple
// records per term and merge them. Drop removes every record of every
// kind, used before a full rebuild.
type IndexStore interface {
	PutRecord(ctx context.Context, rec Record) error
	GetTerm(ctx context.Context, term string) (Postings, error)
	ScanAll(ctx context.Context) (RecordIterator, error)
	Drop(ctx context.Context) error

	PutGraphRecord(ctx context.Context, rec GraphRecord) error
	GetGraphRecord(ctx context.Context, bookID string) (GraphRecord, bool, error)

	PutScoreRecord(ctx context.Context, rec ScoreRecord) error
	GetScoreRecord(ctx context.Context, bookID string) (ScoreRecord, bool, error)
	ScanScores(ctx context.Context) (map[string]float64, error)
}

// RecordIterator streams postings Records. Next returns false once
// exhausted or on error; check Err after the loop.
type RecordIterator interface {
	Next() bool
	Record() Record
	Err() error
	Close() error
}
