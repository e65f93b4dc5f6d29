package gutensearch

import "sort"

// MaxPostingsPerRecord is the shard threshold: any term whose postings
// span more books than this is split across multiple physical records.
const MaxPostingsPerRecord = 500

// Postings maps book_id to the number of occurrences of one term in
// that book. Every value is >= 1.
type Postings map[string]int

// Clone returns a shallow copy of p.
func (p Postings) Clone() Postings {
	out := make(Postings, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge adds the counts in other into p, summing on key collision. It
// mutates and returns p.
func (p Postings) Merge(other Postings) Postings {
	for bookID, count := range other {
		p[bookID] += count
	}
	return p
}

// Record is one physical (term, part) record as persisted by an
// IndexStore: the postings for a term are the union of all of its
// records' Books maps.
type Record struct {
	Term  string
	Part  int
	Books Postings
}

// InvertedIndex is the in-memory term -> postings mapping built by
// BuildIndex, before it is sharded into Records for the store.
type InvertedIndex struct {
	Postings map[string]Postings
}

// NewInvertedIndex returns an empty index.
func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{Postings: make(map[string]Postings)}
}

// Add accumulates the token counts of one book's content into the index.
func (idx *InvertedIndex) Add(bookID, content string) {
	for term, count := range TokenCounts(content) {
		p, ok := idx.Postings[term]
		if !ok {
			p = make(Postings)
			idx.Postings[term] = p
		}
		p[bookID] += count
	}
}

// BuildIndex walks books in order, tokenizing each one's content and
// accumulating postings. It never fails: an empty slice of books yields
// an empty index.
func BuildIndex(books []Book) *InvertedIndex {
	idx := NewInvertedIndex()
	for _, b := range books {
		idx.Add(b.ID, b.Content)
	}
	return idx
}

// Shard splits the index into physical Records, one per term when the
// term's postings fit within MaxPostingsPerRecord, or several
// fixed-size chunks otherwise. Chunk order is deterministic (book_ids
// sorted ascending) so that repeated builds over the same corpus
// produce the same shard assignment, though the spec only requires
// that the chunks partition the postings exactly once.
func (idx *InvertedIndex) Shard() []Record {
	var records []Record
	terms := make([]string, 0, len(idx.Postings))
	for term := range idx.Postings {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	for _, term := range terms {
		postings := idx.Postings[term]
		if len(postings) <= MaxPostingsPerRecord {
			records = append(records, Record{Term: term, Part: 0, Books: postings})
			continue
		}
		bookIDs := make([]string, 0, len(postings))
		for id := range postings {
			bookIDs = append(bookIDs, id)
		}
		sort.Strings(bookIDs)

		part := 0
		for start := 0; start < len(bookIDs); start += MaxPostingsPerRecord {
			end := start + MaxPostingsPerRecord
			if end > len(bookIDs) {
				end = len(bookIDs)
			}
			chunk := make(Postings, end-start)
			for _, id := range bookIDs[start:end] {
				chunk[id] = postings[id]
			}
			records = append(records, Record{Term: term, Part: part, Books: chunk})
			part++
		}
	}
	return records
}

// Vocabulary returns, for each book_id seen while building the index, the
// set of distinct terms present in that book. It is consumed only by the
// Similarity Graph Builder.
func (idx *InvertedIndex) Vocabulary() map[string]map[string]struct{} {
	vocab := make(map[string]map[string]struct{})
	for term, postings := range idx.Postings {
		for bookID := range postings {
			set, ok := vocab[bookID]
			if !ok {
				set = make(map[string]struct{})
				vocab[bookID] = set
			}
			set[term] = struct{}{}
		}
	}
	return vocab
}
