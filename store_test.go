package gutensearch

import (
	"context"
	"path/filepath"
	"testing"
)

func storeImplementations(t *testing.T) map[string]IndexStore {
	t.Helper()
	pebbleStore, err := OpenPebbleStore(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatalf("OpenPebbleStore() error = %v", err)
	}
	t.Cleanup(func() { pebbleStore.Close() })
	return map[string]IndexStore{
		"memory": NewMemoryStore(),
		"pebble": pebbleStore,
	}
}

func TestIndexStorePutGetTerm(t *testing.T) {
	ctx := context.Background()
	for name, store := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			err := store.PutRecord(ctx, Record{Term: "alice", Part: 0, Books: Postings{"11": 400, "84": 3}})
			if err != nil {
				t.Fatalf("PutRecord() error = %v", err)
			}
			got, err := store.GetTerm(ctx, "alice")
			if err != nil {
				t.Fatalf("GetTerm() error = %v", err)
			}
			if len(got) != 2 || got["11"] != 400 || got["84"] != 3 {
				t.Fatalf("GetTerm() = %v", got)
			}
		})
	}
}

func TestIndexStoreGetTermUnknown(t *testing.T) {
	ctx := context.Background()
	for name, store := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			got, err := store.GetTerm(ctx, "zzz")
			if err != nil {
				t.Fatalf("GetTerm() error = %v", err)
			}
			if len(got) != 0 {
				t.Fatalf("GetTerm() = %v, want empty", got)
			}
		})
	}
}

func TestIndexStoreSplitTermMerges(t *testing.T) {
	ctx := context.Background()
	for name, store := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			must(t, store.PutRecord(ctx, Record{Term: "the", Part: 0, Books: Postings{"1": 1, "2": 1}}))
			must(t, store.PutRecord(ctx, Record{Term: "the", Part: 1, Books: Postings{"3": 1}}))

			got, err := store.GetTerm(ctx, "the")
			if err != nil {
				t.Fatalf("GetTerm() error = %v", err)
			}
			if len(got) != 3 {
				t.Fatalf("GetTerm() = %v, want 3 entries", got)
			}
		})
	}
}

func TestIndexStoreScanAll(t *testing.T) {
	ctx := context.Background()
	for name, store := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			must(t, store.PutRecord(ctx, Record{Term: "cat", Part: 0, Books: Postings{"1": 2}}))
			must(t, store.PutRecord(ctx, Record{Term: "dog", Part: 0, Books: Postings{"2": 1}}))

			it, err := store.ScanAll(ctx)
			if err != nil {
				t.Fatalf("ScanAll() error = %v", err)
			}
			defer it.Close()

			seen := make(map[string]bool)
			for it.Next() {
				seen[it.Record().Term] = true
			}
			if err := it.Err(); err != nil {
				t.Fatalf("iterator error = %v", err)
			}
			if !seen["cat"] || !seen["dog"] {
				t.Fatalf("ScanAll() saw %v, want cat and dog", seen)
			}
		})
	}
}

func TestIndexStoreDrop(t *testing.T) {
	ctx := context.Background()
	for name, store := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			must(t, store.PutRecord(ctx, Record{Term: "cat", Part: 0, Books: Postings{"1": 1}}))
			must(t, store.PutGraphRecord(ctx, GraphRecord{BookID: "1", Neighbors: map[string]float64{"2": 0.5}}))
			must(t, store.PutScoreRecord(ctx, ScoreRecord{BookID: "1", Closeness: 0.3}))

			must(t, store.Drop(ctx))

			got, err := store.GetTerm(ctx, "cat")
			if err != nil || len(got) != 0 {
				t.Fatalf("GetTerm() after Drop = %v, %v", got, err)
			}
			_, ok, err := store.GetGraphRecord(ctx, "1")
			if err != nil || ok {
				t.Fatalf("GetGraphRecord() after Drop: ok=%v err=%v", ok, err)
			}
			_, ok, err = store.GetScoreRecord(ctx, "1")
			if err != nil || ok {
				t.Fatalf("GetScoreRecord() after Drop: ok=%v err=%v", ok, err)
			}
		})
	}
}

func TestIndexStoreGraphAndScoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			must(t, store.PutGraphRecord(ctx, GraphRecord{BookID: "11", Neighbors: map[string]float64{"84": 0.2}}))
			rec, ok, err := store.GetGraphRecord(ctx, "11")
			if err != nil || !ok || rec.Neighbors["84"] != 0.2 {
				t.Fatalf("GetGraphRecord() = %+v, %v, %v", rec, ok, err)
			}

			must(t, store.PutScoreRecord(ctx, ScoreRecord{BookID: "11", Closeness: 0.75}))
			scores, err := store.ScanScores(ctx)
			if err != nil {
				t.Fatalf("ScanScores() error = %v", err)
			}
			if scores["11"] != 0.75 {
				t.Fatalf("ScanScores() = %v, want 11:0.75", scores)
			}
		})
	}
}
