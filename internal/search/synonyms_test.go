package search

import (
	"os"
	"path/filepath"
	"testing"
)

func hasTerm(terms []string, want string) bool {
	for _, t := range terms {
		if t == want {
			return true
		}
	}
	return false
}

func TestExpand(t *testing.T) {
	s := NewSynonyms()

	terms := s.Expand([]string{"add", "gloss"})
	for _, want := range []string{"add", "gloss", "set", "create", "translation", "meaning"} {
		if !hasTerm(terms, want) {
			t.Errorf("expansion missing %q: %v", want, terms)
		}
	}

	// Unknown terms pass through unchanged.
	terms = s.Expand([]string{"mystery"})
	if len(terms) != 1 || terms[0] != "mystery" {
		t.Errorf("unknown term expansion = %v", terms)
	}
}

func TestExpandDeduplicates(t *testing.T) {
	s := NewSynonyms()
	// "add" and "set" share synonyms; each term must appear once.
	terms := s.Expand([]string{"add", "set"})
	seen := map[string]int{}
	for _, t := range terms {
		seen[t]++
	}
	for term, n := range seen {
		if n > 1 {
			t.Errorf("term %q appears %d times", term, n)
		}
	}
}

func TestExpandDomainTerms(t *testing.T) {
	s := NewSynonyms()
	terms := s.Expand([]string{"noun"})
	for _, want := range []string{"noun", "speech", "grammatical", "category"} {
		if !hasTerm(terms, want) {
			t.Errorf("domain expansion missing %q: %v", want, terms)
		}
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	overlay := `crud:
  add: [attach]
domain:
  tone: [phonology, pitch]
`
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewSynonyms()
	if err := s.LoadOverlay(path); err != nil {
		t.Fatalf("LoadOverlay() error: %v", err)
	}

	terms := s.Expand([]string{"add"})
	// Built-in synonyms survive next to the overlay addition.
	if !hasTerm(terms, "attach") || !hasTerm(terms, "set") {
		t.Errorf("overlay did not extend add: %v", terms)
	}

	terms = s.Expand([]string{"tone"})
	if !hasTerm(terms, "phonology") || !hasTerm(terms, "pitch") {
		t.Errorf("overlay domain entry missing: %v", terms)
	}
}

func TestLoadOverlayMissingFile(t *testing.T) {
	s := NewSynonyms()
	if err := s.LoadOverlay(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Errorf("missing overlay should be ignored, got %v", err)
	}
}

func TestLoadOverlayMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("crud: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewSynonyms()
	if err := s.LoadOverlay(path); err == nil {
		t.Error("malformed overlay should error")
	}
}
