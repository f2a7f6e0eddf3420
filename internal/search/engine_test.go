package search

import (
	"context"
	"strings"
	"testing"

	"flexkb/internal/index"
	"flexkb/internal/slogutil"
)

var testBoosts = map[index.Source]float64{
	index.SourceFlexlibs2:      5,
	index.SourceFlexlibsStable: 3,
	index.SourceLiblcm:         0,
}

func testSet() *index.Set {
	fl2 := &index.Corpus{Source: index.SourceFlexlibs2}
	fl2FromDoc(fl2)
	liblcm := &index.Corpus{Source: index.SourceLiblcm}
	liblcmFromDoc(liblcm)
	return &index.Set{
		Flexlibs2: fl2,
		Liblcm:    liblcm,
		Suffixes:  index.BuildSuffixIndex(liblcm),
	}
}

func testEngine() *Engine {
	return NewEngine(testSet(), NewSynonyms(), testBoosts, slogutil.NewDiscardLogger())
}

func TestSearchScenarioGloss(t *testing.T) {
	e := testEngine()
	resp := e.Search(context.Background(), Request{Query: "add gloss to sense", Mode: ModeFlexlibs2})

	if resp.SearchMethod != "keyword" {
		t.Errorf("search_method = %q", resp.SearchMethod)
	}
	if resp.ResultsCount == 0 {
		t.Fatal("no results")
	}
	if resp.Results[0].Name != "SetGloss" {
		t.Errorf("top result = %q, want SetGloss", resp.Results[0].Name)
	}
	for _, item := range resp.Results {
		if item.Name == "Delete" {
			t.Error("unrelated Delete method should have been excluded")
		}
	}
}

func TestSearchScoringMonotonic(t *testing.T) {
	e := testEngine()

	score := func(query string) float64 {
		resp := e.Search(context.Background(), Request{Query: query, Mode: ModeFlexlibs2})
		for _, item := range resp.Results {
			if item.Name == "SetGloss" {
				return item.Score
			}
		}
		return 0
	}

	base := score("gloss")
	more := score("gloss sense")
	if more < base {
		t.Errorf("adding a matching term lowered the score: %v -> %v", base, more)
	}
}

func TestSearchExcludesNonMatches(t *testing.T) {
	e := testEngine()
	resp := e.Search(context.Background(), Request{Query: "zzzz-nothing-matches", Mode: ModeAll})
	if resp.ResultsCount != 0 {
		t.Errorf("expected no results, got %v", resp.Results)
	}
}

func TestSearchSuffixAliasExpansion(t *testing.T) {
	e := testEngine()
	// "senses" is the friendly alias for the SensesOS property, which
	// only exists in the liblcm corpus.
	resp := e.Search(context.Background(), Request{Query: "senses", Mode: ModeLiblcm})
	if resp.ResultsCount == 0 {
		t.Fatal("alias query found nothing")
	}
	found := false
	for _, item := range resp.Results {
		if item.Name == "SensesOS" && item.Type == KindProperty {
			found = true
		}
	}
	if !found {
		t.Errorf("SensesOS property not matched via alias: %v", resp.Results)
	}
}

func TestSearchFallback(t *testing.T) {
	// flexlibs_stable mode with no stable corpus loaded falls back to
	// liblcm and reports it.
	e := testEngine()
	resp := e.Search(context.Background(), Request{Query: "senses", Mode: ModeFlexlibsStable})

	if !resp.FallbackUsed {
		t.Error("fallback_used should be true")
	}
	foundFallback := false
	for _, s := range resp.SourcesSearched {
		if strings.Contains(s, "(fallback)") {
			foundFallback = true
		}
	}
	if !foundFallback {
		t.Errorf("sources_searched = %v, want liblcm (fallback)", resp.SourcesSearched)
	}
}

func TestSearchNoFallbackWhenFilled(t *testing.T) {
	e := testEngine()
	// MaxResults 1 is satisfiable from flexlibs2 alone in all mode.
	resp := e.Search(context.Background(), Request{Query: "gloss", Mode: ModeAll, MaxResults: 1})
	if resp.FallbackUsed {
		t.Error("all mode has no fallback corpus")
	}
	if resp.ResultsCount != 1 {
		t.Errorf("results_count = %d, want 1", resp.ResultsCount)
	}
}

func TestSearchSourceBoostOrdering(t *testing.T) {
	e := testEngine()
	resp := e.Search(context.Background(), Request{Query: "senses", Mode: ModeAll})

	// With equal term matches the flexlibs2 boost must rank its items
	// above liblcm ones.
	lastFl2 := -1
	firstLiblcm := len(resp.Results)
	for i, item := range resp.Results {
		if item.Source == "flexlibs2" {
			lastFl2 = i
		}
		if item.Source == "liblcm" && i < firstLiblcm {
			firstLiblcm = i
		}
	}
	if lastFl2 >= 0 && firstLiblcm < lastFl2 {
		t.Errorf("liblcm item ranked above flexlibs2: %v", resp.Results)
	}
}

func TestSearchUnknownModeDefaultsToAll(t *testing.T) {
	e := testEngine()
	resp := e.Search(context.Background(), Request{Query: "gloss", Mode: "bogus"})
	if resp.Mode != ModeAll {
		t.Errorf("mode = %q, want all", resp.Mode)
	}
}

// fl2FromDoc populates a small flexlibs2 corpus the way the loader
// would, including the sorted entity name list.
func fl2FromDoc(c *index.Corpus) {
	populate(c, map[string]*index.Entity{
		"LexSenseOperations": {
			Category: "Lexicon",
			Methods: []index.Method{
				{Name: "SetGloss", Signature: "SetGloss(sense, gloss, ws=None)", Summary: "Adds or updates a sense gloss"},
				{Name: "Delete", Signature: "Delete(obj)", Summary: "Permanently discards an object"},
				{Name: "GetSenses", Signature: "GetSenses(entry)", Summary: "Returns the senses of an entry"},
			},
		},
	})
}

func liblcmFromDoc(c *index.Corpus) {
	populate(c, map[string]*index.Entity{
		"ILexEntry": {
			Category: "Lexicon",
			Properties: []index.Property{
				{Name: "SensesOS", Relationship: index.OwnsSequence, TargetType: "ILexSense", PythonicName: "Senses", Summary: "Owned sequence of senses"},
			},
		},
		"ILexSense": {
			Category: "Lexicon",
			Methods: []index.Method{
				{Name: "AllSenses", Summary: "Returns this sense and all subsenses"},
			},
		},
	})
}

func populate(c *index.Corpus, entities map[string]*index.Entity) {
	c.Entities = entities
	for name, ent := range entities {
		ent.Name = name
	}
	c.RebuildNames()
}
