package gutensearch

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// Key-prefix namespaces within one Pebble database. These play the role
// the reference design gives to three separate document-store indices
// (books_index, jaccard_graph, book_scores).
const (
	prefixPosting byte = 0x01
	prefixGraph   byte = 0x02
	prefixScore   byte = 0x03
)

// PebbleStore is an IndexStore backed by an embedded key-value database.
type PebbleStore struct {
	db *pebble.DB
}

// OpenPebbleStore opens (creating if absent) a Pebble database at dir.
func OpenPebbleStore(dir string) (*PebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("%w: opening pebble store at %s: %v", ErrStoreUnavailable, dir, err)
	}
	return &PebbleStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *PebbleStore) Close() error {
	return s.db.Close()
}

func postingKey(term string, part int) []byte {
	var buf bytes.Buffer
	buf.WriteByte(prefixPosting)
	buf.WriteString(term)
	buf.WriteByte(0x00)
	binary.Write(&buf, binary.BigEndian, uint32(part))
	return buf.Bytes()
}

func postingKeyRange(term string) (lo, hi []byte) {
	lo = append([]byte{prefixPosting}, term...)
	lo = append(lo, 0x00)
	hi = append([]byte{prefixPosting}, term...)
	hi = append(hi, 0x01)
	return lo, hi
}

func graphKey(bookID string) []byte {
	return append([]byte{prefixGraph}, bookID...)
}

func scoreKey(bookID string) []byte {
	return append([]byte{prefixScore}, bookID...)
}

// recordValue is the JSON wire shape for one postings record, matching
// the Index Store record format.
type recordValue struct {
	Term  string         `json:"term"`
	Part  int            `json:"part"`
	Books map[string]int `json:"books"`
}

func (s *PebbleStore) PutRecord(_ context.Context, rec Record) error {
	val, err := json.Marshal(recordValue{Term: rec.Term, Part: rec.Part, Books: rec.Books})
	if err != nil {
		return fmt.Errorf("%w: encoding record: %v", ErrStoreUnavailable, err)
	}
	if err := s.db.Set(postingKey(rec.Term, rec.Part), val, pebble.Sync); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PebbleStore) GetTerm(_ context.Context, term string) (Postings, error) {
	lo, hi := postingKeyRange(term)
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: lo, UpperBound: hi})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer iter.Close()

	out := make(Postings)
	for iter.First(); iter.Valid(); iter.Next() {
		var rv recordValue
		if err := json.Unmarshal(iter.Value(), &rv); err != nil {
			return nil, fmt.Errorf("%w: decoding record: %v", ErrStoreUnavailable, err)
		}
		for bookID, count := range rv.Books {
			out[bookID] += count
		}
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return out, nil
}

type pebbleIterator struct {
	iter *pebble.Iterator
	rec  Record
	err  error
}

func (it *pebbleIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.iter.Valid() {
		return false
	}
	var rv recordValue
	if err := json.Unmarshal(it.iter.Value(), &rv); err != nil {
		it.err = err
		return false
	}
	it.rec = Record{Term: rv.Term, Part: rv.Part, Books: rv.Books}
	it.iter.Next()
	return true
}

func (it *pebbleIterator) Record() Record { return it.rec }
func (it *pebbleIterator) Err() error     { return it.err }
func (it *pebbleIterator) Close() error   { return it.iter.Close() }

func (s *PebbleStore) ScanAll(_ context.Context) (RecordIterator, error) {
	lo := []byte{prefixPosting}
	hi := []byte{prefixGraph}
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: lo, UpperBound: hi})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	iter.First()
	return &pebbleIterator{iter: iter}, nil
}

func (s *PebbleStore) Drop(_ context.Context) error {
	for _, lo := range []byte{prefixPosting, prefixGraph, prefixScore} {
		hi := lo + 1
		if err := s.db.DeleteRange([]byte{lo}, []byte{hi}, pebble.Sync); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}
	return nil
}

func (s *PebbleStore) PutGraphRecord(_ context.Context, rec GraphRecord) error {
	val, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := s.db.Set(graphKey(rec.BookID), val, pebble.Sync); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PebbleStore) GetGraphRecord(_ context.Context, bookID string) (GraphRecord, bool, error) {
	val, closer, err := s.db.Get(graphKey(bookID))
	if err == pebble.ErrNotFound {
		return GraphRecord{}, false, nil
	}
	if err != nil {
		return GraphRecord{}, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer closer.Close()
	var rec GraphRecord
	if err := json.Unmarshal(val, &rec); err != nil {
		return GraphRecord{}, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return rec, true, nil
}

func (s *PebbleStore) PutScoreRecord(_ context.Context, rec ScoreRecord) error {
	val, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := s.db.Set(scoreKey(rec.BookID), val, pebble.Sync); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PebbleStore) GetScoreRecord(_ context.Context, bookID string) (ScoreRecord, bool, error) {
	val, closer, err := s.db.Get(scoreKey(bookID))
	if err == pebble.ErrNotFound {
		return ScoreRecord{}, false, nil
	}
	if err != nil {
		return ScoreRecord{}, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer closer.Close()
	var rec ScoreRecord
	if err := json.Unmarshal(val, &rec); err != nil {
		return ScoreRecord{}, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return rec, true, nil
}

func (s *PebbleStore) ScanScores(_ context.Context) (map[string]float64, error) {
	lo := []byte{prefixScore}
	hi := []byte{prefixScore + 1}
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: lo, UpperBound: hi})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer iter.Close()

	out := make(map[string]float64)
	for iter.First(); iter.Valid(); iter.Next() {
		var rec ScoreRecord
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		out[rec.BookID] = rec.Closeness
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return out, nil
}
