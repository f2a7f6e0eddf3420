package graph

import (
	"os"
	"path/filepath"
	"testing"

	kberr "flexkb/internal/errors"
	"flexkb/internal/slogutil"
)

func TestLoadDocument(t *testing.T) {
	content := `{
  "_schema": "navigation-graph/1.0",
  "_generated_at": "2026-01-12T09:30:00+00:00",
  "common_paths": {
    "ILexEntry -> ILexSense": {
      "steps": [{"from": "ILexEntry", "to": "ILexSense", "via": "SensesOS", "type": "owns"}],
      "code_pattern": "for lexsense in lexentry.SensesOS:\n    # work with lexsense"
    }
  },
  "statistics": {"common_paths_computed": 1}
}`
	path := filepath.Join(t.TempDir(), "navigation_graph.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadDocument(path, slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatalf("LoadDocument() error: %v", err)
	}
	if doc.Schema != "navigation-graph/1.0" {
		t.Errorf("schema = %q", doc.Schema)
	}

	p, ok := doc.CommonPaths[PathKey("ILexEntry", "ILexSense")]
	if !ok {
		t.Fatal("common path missing")
	}
	if len(p.Steps) != 1 || p.Steps[0].Via != "SensesOS" || p.Steps[0].Type != EdgeOwns {
		t.Errorf("steps = %v", p.Steps)
	}
	if p.CodePattern == "" {
		t.Error("code pattern missing")
	}
}

func TestLoadDocumentMissing(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "nope.json"), slogutil.NewDiscardLogger())
	if kberr.CodeOf(err) != kberr.IndexMissing {
		t.Errorf("code = %q, want INDEX_MISSING", kberr.CodeOf(err))
	}
}

func TestLoadDocumentMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{\"common_paths\": ["), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadDocument(path, slogutil.NewDiscardLogger())
	if kberr.CodeOf(err) != kberr.MalformedInput {
		t.Errorf("code = %q, want MALFORMED_INPUT", kberr.CodeOf(err))
	}
}
