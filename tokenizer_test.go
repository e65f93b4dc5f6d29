package gutensearch

import (
	"reflect"
	"testing"
)

func TestTokenizeBasic(t *testing.T) {
	got := Tokenize("The Cat Sat on the MAT.")
	want := []string{"the", "cat", "sat", "on", "the", "mat"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeAccentedAlphabet(t *testing.T) {
	got := Tokenize("Île à vélo, café crème!")
	want := []string{"île", "à", "vélo", "café", "crème"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeNoFilters(t *testing.T) {
	// "a" and "the" would be stopwords under a stemming pipeline; this
	// tokenizer has no such concept and must keep them.
	got := Tokenize("a the i")
	want := []string{"a", "the", "i"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v (stopwords must not be filtered)", got, want)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	got := Tokenize("   123 --- !!!   ")
	if len(got) != 0 {
		t.Fatalf("Tokenize() = %v, want empty", got)
	}
}

func TestTokenCountsMatchesTokenize(t *testing.T) {
	text := "alice met alice and the rabbit met alice"
	counts := TokenCounts(text)
	want := map[string]int{"alice": 3, "met": 2, "and": 1, "the": 1, "rabbit": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("TokenCounts() = %v, want %v", counts, want)
	}
}
