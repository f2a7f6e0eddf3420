package graph

import (
	"reflect"
	"strings"
	"testing"

	"flexkb/internal/slogutil"
)

func testResolver(cache PathCache, maxDepth int) *Resolver {
	g := Build(lexiconEntities(), slogutil.NewDiscardLogger())
	return NewResolver(g, cache, maxDepth)
}

func TestNormalizeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"ILexEntry", "ILexEntry"},
		{"LexEntry", "ILexEntry"},
		{"LexEntryOperations", "ILexEntry"},
		{"StText", "IStText"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindPathSelf(t *testing.T) {
	r := testResolver(nil, 0)
	res := r.FindPath("LexEntry", "ILexEntry")
	if !res.Found {
		t.Fatal("path to self should be found")
	}
	if len(res.Steps) != 0 {
		t.Errorf("self path should be empty, got %v", res.Steps)
	}
	if res.Source != SourceComputed {
		t.Errorf("source = %q", res.Source)
	}
}

func TestFindPathTwoHops(t *testing.T) {
	r := testResolver(nil, 0)
	res := r.FindPath("LexEntryOperations", "LexExampleSentence")
	if !res.Found {
		t.Fatalf("no path found: %s", res.Message)
	}
	want := []Step{
		{From: "ILexEntry", To: "ILexSense", Via: "SensesOS", Type: EdgeOwns},
		{From: "ILexSense", To: "ILexExampleSentence", Via: "ExamplesOS", Type: EdgeOwns},
	}
	if !reflect.DeepEqual(res.Steps, want) {
		t.Errorf("steps = %v, want %v", res.Steps, want)
	}
	if res.Source != SourceComputed {
		t.Errorf("source = %q", res.Source)
	}
	if !strings.Contains(res.Code, "for lexsense in lexentry.SensesOS:") {
		t.Errorf("code pattern missing loop:\n%s", res.Code)
	}
}

func TestFindPathCacheHit(t *testing.T) {
	cached := CachedPath{
		Steps:       []Step{{From: "ILexEntry", To: "ILexSense", Via: "SensesOS", Type: EdgeOwns}},
		CodePattern: "for lexsense in lexentry.SensesOS:\n    # work with lexsense",
	}
	r := testResolver(PathCache{"ILexEntry -> ILexSense": cached}, 0)

	res := r.FindPath("LexEntry", "LexSense")
	if !res.Found || res.Source != SourcePrecomputed {
		t.Fatalf("cache entry not used: %+v", res)
	}
	if !reflect.DeepEqual(res.Steps, cached.Steps) {
		t.Errorf("cached steps altered: %v", res.Steps)
	}
	if res.Code != cached.CodePattern {
		t.Errorf("cached code pattern altered: %q", res.Code)
	}
}

func TestFindPathDepthLimit(t *testing.T) {
	r := testResolver(nil, 1)
	res := r.FindPath("ILexEntry", "ILexExampleSentence")
	if res.Found {
		t.Fatal("path over depth limit should not be found")
	}
	if res.Message == "" || res.Hint == "" {
		t.Error("not-found result should carry message and hint")
	}
	if !reflect.DeepEqual(res.ReachableFromSource, []string{"ILexSense", "IMoForm"}) {
		t.Errorf("reachable_from_source = %v", res.ReachableFromSource)
	}
}

func TestFindPathUnknownTarget(t *testing.T) {
	r := testResolver(nil, 0)
	res := r.FindPath("ILexEntry", "IScrBook")
	if res.Found {
		t.Fatal("unreachable target should not be found")
	}
	if len(res.ReachableFromSource) == 0 {
		t.Error("expected child suggestions for a known start node")
	}
}

func TestGenerateCodePattern(t *testing.T) {
	steps := []Step{
		{From: "ILexEntry", To: "ILexSense", Via: "SensesOS", Type: EdgeOwns},
		{From: "ILexSense", To: "IMoMorphType", Via: "MorphTypeRA", Type: EdgeReferences},
	}
	got := GenerateCodePattern(steps)
	want := "for lexsense in lexentry.SensesOS:\n" +
		"    momorphtype = lexsense.MorphTypeRA\n" +
		"    # work with momorphtype"
	if got != want {
		t.Errorf("pattern:\n%s\nwant:\n%s", got, want)
	}

	if GenerateCodePattern(nil) != "" {
		t.Error("empty path should render to empty string")
	}
}
