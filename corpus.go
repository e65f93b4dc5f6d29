package gutensearch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Book is an identified text loaded from the corpus.
type Book struct {
	ID      string // decimal digits, from the filename prefix before the first underscore
	Title   string // filename minus id-prefix and ".txt" suffix
	Content string // UTF-8 text, immutable once loaded
}

// parseBookFilename splits a corpus filename of the form
// "<digits>_<title>.txt" into its book ID and title. It reports false if
// the filename does not match that shape.
func parseBookFilename(name string) (id, title string, ok bool) {
	if !strings.HasSuffix(name, ".txt") {
		return "", "", false
	}
	base := strings.TrimSuffix(name, ".txt")
	idPart, rest, found := strings.Cut(base, "_")
	if !found || idPart == "" {
		return "", "", false
	}
	for _, r := range idPart {
		if r < '0' || r > '9' {
			return "", "", false
		}
	}
	return idPart, rest, true
}

// LoadCorpus walks dir for files named "<digits>_<title>.txt" and returns
// one Book per file, in directory order. A file that does not match the
// naming pattern, or that cannot be read, is skipped with a logged
// warning; LoadCorpus itself never fails because of a single bad file.
func LoadCorpus(dir string, logger *slog.Logger) ([]Book, error) {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	books := make([]Book, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, title, ok := parseBookFilename(entry.Name())
		if !ok {
			logger.Warn("skipping corpus file with unexpected name", "file", entry.Name())
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable corpus file", "error", fmt.Errorf("%w: %s: %v", ErrCorpusUnreadable, path, err))
			continue
		}
		books = append(books, Book{ID: id, Title: title, Content: string(data)})
	}
	return books, nil
}

// BookRegistry is an immutable book_id -> title map, built once from the
// corpus directory and held by the query context for the process
// lifetime (see QueryContext).
type BookRegistry struct {
	titles map[string]string
}

// NewBookRegistry builds a registry from a slice of books.
func NewBookRegistry(books []Book) *BookRegistry {
	titles := make(map[string]string, len(books))
	for _, b := range books {
		titles[b.ID] = b.Title
	}
	return &BookRegistry{titles: titles}
}

// Title returns the title for id, or a synthetic placeholder if id is
// unknown to the registry.
func (r *BookRegistry) Title(id string) string {
	if r == nil {
		return "Book " + id
	}
	if t, ok := r.titles[id]; ok {
		return t
	}
	return "Book " + id
}
