package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	kberr "flexkb/internal/errors"
	"flexkb/internal/slogutil"
)

func writeVectorIndex(t *testing.T) string {
	t.Helper()
	doc := `{
  "_model": "all-MiniLM-L6-v2",
  "dim": 3,
  "items": [
    {"source": "flexlibs2", "entity": "LexSenseOperations", "name": "SetGloss", "type": "method"},
    {"source": "liblcm", "entity": "ILexEntry", "name": "SensesOS", "type": "property"},
    {"source": "flexlibs2", "entity": "TextOperations", "name": "GetParagraphs", "type": "method"}
  ],
  "vectors": [
    [1, 0, 0],
    [0.9, 0.1, 0],
    [0, 0, 1]
  ]
}`
	path := filepath.Join(t.TempDir(), "embeddings.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadVectorIndex(t *testing.T) {
	idx, err := LoadVectorIndex(writeVectorIndex(t), slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatalf("LoadVectorIndex() error: %v", err)
	}
	if idx.Len() != 3 || idx.Dim != 3 {
		t.Errorf("Len = %d, Dim = %d", idx.Len(), idx.Dim)
	}
}

func TestVectorSearchRanking(t *testing.T) {
	idx, err := LoadVectorIndex(writeVectorIndex(t), slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatal(err)
	}

	results := idx.Search([]float32{1, 0, 0}, 2, "all")
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Name != "SetGloss" {
		t.Errorf("top result = %q", results[0].Name)
	}
	if results[1].Name != "SensesOS" {
		t.Errorf("second result = %q", results[1].Name)
	}
	if results[0].Score < results[1].Score {
		t.Error("scores not descending")
	}
}

func TestVectorSearchSourceFilter(t *testing.T) {
	idx, err := LoadVectorIndex(writeVectorIndex(t), slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatal(err)
	}

	results := idx.Search([]float32{1, 0, 0}, 5, "liblcm")
	for _, r := range results {
		if r.Source != "liblcm" {
			t.Errorf("filter leaked source %q", r.Source)
		}
	}
	if len(results) != 1 {
		t.Errorf("got %d liblcm results, want 1", len(results))
	}
}

func TestLoadVectorIndexMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	content := `{"items": [{"name": "a"}], "vectors": []}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadVectorIndex(path, slogutil.NewDiscardLogger())
	if kberr.CodeOf(err) != kberr.MalformedInput {
		t.Errorf("code = %q, want MALFORMED_INPUT", kberr.CodeOf(err))
	}
}

func TestLoadVectorIndexMissing(t *testing.T) {
	_, err := LoadVectorIndex(filepath.Join(t.TempDir(), "nope.json"), slogutil.NewDiscardLogger())
	if kberr.CodeOf(err) != kberr.IndexMissing {
		t.Errorf("code = %q, want INDEX_MISSING", kberr.CodeOf(err))
	}
}

func TestEmbedClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/embed":
			var req embedRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Texts) != 1 {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(embedResponse{
				Model:   "test",
				Vectors: [][]float32{{0.1, 0.2, 0.3}},
				Dim:     3,
			})
		case "/health":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewEmbedClient(srv.URL)
	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health() error: %v", err)
	}

	vec, err := c.Embed(context.Background(), "add gloss")
	if err != nil {
		t.Fatalf("Embed() error: %v", err)
	}
	if len(vec) != 3 {
		t.Errorf("vector dim = %d, want 3", len(vec))
	}
}

func TestEmbedClientUnreachable(t *testing.T) {
	c := NewEmbedClient("http://127.0.0.1:1")
	_, err := c.Embed(context.Background(), "query")
	if kberr.CodeOf(err) != kberr.EmbeddingUnavailable {
		t.Errorf("code = %q, want EMBEDDING_UNAVAILABLE", kberr.CodeOf(err))
	}
}

func TestEngineVectorPathFallsBack(t *testing.T) {
	idx, err := LoadVectorIndex(writeVectorIndex(t), slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatal(err)
	}
	// Dead embedding endpoint: the engine must silently fall through
	// to the keyword path.
	e := testEngine().WithVectors(idx, NewEmbedClient("http://127.0.0.1:1"))

	resp := e.Search(context.Background(), Request{Query: "gloss", Mode: ModeFlexlibs2})
	if resp.SearchMethod != "keyword" {
		t.Errorf("search_method = %q, want keyword", resp.SearchMethod)
	}
	if !resp.SemanticAvailable {
		t.Error("semantic_available should report the loaded index")
	}
	if resp.ResultsCount == 0 {
		t.Error("keyword fallback produced no results")
	}
}
