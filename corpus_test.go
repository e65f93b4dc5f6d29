package gutensearch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseBookFilename(t *testing.T) {
	cases := []struct {
		name      string
		wantID    string
		wantTitle string
		wantOK    bool
	}{
		{"11_Alice_in_Wonderland.txt", "11", "Alice_in_Wonderland", true},
		{"84_Frankenstein.txt", "84", "Frankenstein", true},
		{"notabook.txt", "", "", false},
		{"11_Alice.csv", "", "", false},
		{"_NoDigits.txt", "", "", false},
	}
	for _, c := range cases {
		id, title, ok := parseBookFilename(c.name)
		if ok != c.wantOK || id != c.wantID || title != c.wantTitle {
			t.Errorf("parseBookFilename(%q) = (%q, %q, %v), want (%q, %q, %v)",
				c.name, id, title, ok, c.wantID, c.wantTitle, c.wantOK)
		}
	}
}

func TestLoadCorpusSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	must(t, os.WriteFile(filepath.Join(dir, "11_Alice.txt"), []byte("alice alice rabbit"), 0o644))
	must(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("ignored"), 0o644))

	books, err := LoadCorpus(dir, nil)
	if err != nil {
		t.Fatalf("LoadCorpus() error = %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("LoadCorpus() returned %d books, want 1", len(books))
	}
	if books[0].ID != "11" || books[0].Title != "Alice" {
		t.Fatalf("LoadCorpus() book = %+v", books[0])
	}
}

func TestBookRegistryUnknownID(t *testing.T) {
	reg := NewBookRegistry([]Book{{ID: "1", Title: "One"}})
	if got := reg.Title("1"); got != "One" {
		t.Errorf("Title(1) = %q, want One", got)
	}
	if got := reg.Title("999"); got != "Book 999" {
		t.Errorf("Title(999) = %q, want placeholder", got)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
