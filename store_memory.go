package gutensearch

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/RoaringBitmap/roaring"
)

// MemoryStore is an in-memory IndexStore, used by tests and by small
// corpora that do not warrant an on-disk database.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]map[int]Record // term -> part -> record
	graph   map[string]GraphRecord
	scores  map[string]ScoreRecord
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]map[int]Record),
		graph:   make(map[string]GraphRecord),
		scores:  make(map[string]ScoreRecord),
	}
}

func (s *MemoryStore) PutRecord(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	parts, ok := s.records[rec.Term]
	if !ok {
		parts = make(map[int]Record)
		s.records[rec.Term] = parts
	}
	parts[rec.Part] = Record{Term: rec.Term, Part: rec.Part, Books: rec.Books.Clone()}
	return nil
}

// GetTerm returns the union of all chunks for term. A roaring bitmap
// tracks which numeric book_ids have already been merged so that a
// corrupt store violating the "disjoint chunks" invariant is rejected
// rather than silently summed.
func (s *MemoryStore) GetTerm(_ context.Context, term string) (Postings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	parts, ok := s.records[term]
	if !ok {
		return Postings{}, nil
	}
	return mergeChunks(term, parts)
}

// mergeChunks unions a term's physical records into one Postings map. A
// roaring bitmap of numeric book_ids is built up one CheckedAdd per
// book_id: CheckedAdd reports false when the id was already present in
// the bitmap, which means the same book_id appeared in two physical
// records for this term, a violation of the "disjoint chunks" invariant.
func mergeChunks(term string, parts map[int]Record) (Postings, error) {
	out := make(Postings)
	seen := roaring.New()
	for _, rec := range parts {
		for bookID, count := range rec.Books {
			if n, err := strconv.ParseUint(bookID, 10, 32); err == nil {
				if !seen.CheckedAdd(uint32(n)) {
					return nil, fmt.Errorf("%w: term %q: book_id %s appears in more than one physical record", ErrStoreUnavailable, term, bookID)
				}
			}
			out[bookID] += count
		}
	}
	return out, nil
}

type memoryIterator struct {
	recs []Record
	pos  int
}

func (it *memoryIterator) Next() bool {
	it.pos++
	return it.pos < len(it.recs)
}
func (it *memoryIterator) Record() Record { return it.recs[it.pos] }
func (it *memoryIterator) Err() error     { return nil }
func (it *memoryIterator) Close() error   { return nil }

func (s *MemoryStore) ScanAll(_ context.Context) (RecordIterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var recs []Record
	for _, parts := range s.records {
		for _, rec := range parts {
			recs = append(recs, rec)
		}
	}
	return &memoryIterator{recs: recs, pos: -1}, nil
}

func (s *MemoryStore) Drop(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]map[int]Record)
	s.graph = make(map[string]GraphRecord)
	s.scores = make(map[string]ScoreRecord)
	return nil
}

func (s *MemoryStore) PutGraphRecord(_ context.Context, rec GraphRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph[rec.BookID] = rec
	return nil
}

func (s *MemoryStore) GetGraphRecord(_ context.Context, bookID string) (GraphRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.graph[bookID]
	return rec, ok, nil
}

func (s *MemoryStore) PutScoreRecord(_ context.Context, rec ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[rec.BookID] = rec
	return nil
}

func (s *MemoryStore) GetScoreRecord(_ context.Context, bookID string) (ScoreRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.scores[bookID]
	return rec, ok, nil
}

func (s *MemoryStore) ScanScores(_ context.Context) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.scores))
	for id, rec := range s.scores {
		out[id] = rec.Closeness
	}
	return out, nil
}
