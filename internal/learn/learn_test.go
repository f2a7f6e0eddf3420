package learn

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"flexkb/internal/slogutil"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "api_patterns.json"), slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func record(t *testing.T, s *Store, o Outcome) {
	t.Helper()
	if err := s.Record(o); err != nil {
		t.Fatal(err)
	}
}

func TestExtractPatterns(t *testing.T) {
	code := `senses = LexSenseOperations.GetSenses(entry)
LexSenseOperations.SetGloss(senses[0], "dog")
project.Save()
for sense in entry.SensesOS:
    domain = sense.SemanticDomainsRC
`
	got := ExtractPatterns(code)
	want := []string{
		"LexSenseOperations.GetSenses",
		"LexSenseOperations.SetGloss",
		"FLExProject.Save",
		"*.SensesOS",
		"*.SemanticDomainsRC",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractPatterns() = %v, want %v", got, want)
	}
}

func TestExtractPatternsDeduplicates(t *testing.T) {
	code := "project.Save()\nproject.Save()"
	got := ExtractPatterns(code)
	if len(got) != 1 || got[0] != "FLExProject.Save" {
		t.Errorf("ExtractPatterns() = %v", got)
	}
}

func TestNormalizeError(t *testing.T) {
	tests := []struct{ in, want string }{
		{
			"object at 0x7f3a2b10 not found",
			"object at 0xADDR not found",
		},
		{
			"SyntaxError at line 42 in module",
			"SyntaxError at line N in module",
		},
		{
			`cannot parse 'a very long literal that keeps going' here`,
			"cannot parse '...' here",
		},
		{
			"short 'quote' survives",
			"short 'quote' survives",
		},
	}
	for _, tt := range tests {
		if got := NormalizeError(tt.in); got != tt.want {
			t.Errorf("NormalizeError(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBucketCollapsesVolatileDifferences(t *testing.T) {
	s := openStore(t)
	code := "project.Save()"

	record(t, s, Outcome{Code: code, ErrorMsg: "NullReferenceException at 0xdeadbeef, line 10"})
	record(t, s, Outcome{Code: code, ErrorMsg: "NullReferenceException at 0xcafebabe, line 99"})

	_, buckets := s.Len()
	if buckets != 1 {
		t.Fatalf("buckets = %d, want 1 (messages differ only in address and line)", buckets)
	}

	rec := s.Recommendations()
	if len(rec.RecurringErrors) != 1 {
		t.Fatalf("recurring errors = %d, want 1", len(rec.RecurringErrors))
	}
	bucket := rec.RecurringErrors[0]
	if bucket.Count != 2 {
		t.Errorf("count = %d, want 2", bucket.Count)
	}
	if bucket.Key != "NullReferenceException at 0xADDR, line N" {
		t.Errorf("key = %q", bucket.Key)
	}
	if !reflect.DeepEqual(bucket.PatternKeys, []string{"FLExProject.Save"}) {
		t.Errorf("pattern keys = %v", bucket.PatternKeys)
	}
}

func TestBucketExampleCap(t *testing.T) {
	s := openStore(t)
	for i := 0; i < 5; i++ {
		record(t, s, Outcome{Code: "project.Save()", ErrorMsg: "same failure"})
	}
	rec := s.Recommendations()
	if len(rec.RecurringErrors) != 1 {
		t.Fatal("expected one bucket")
	}
	if got := len(rec.RecurringErrors[0].Examples); got != 3 {
		t.Errorf("examples = %d, want 3", got)
	}
	if rec.RecurringErrors[0].Count != 5 {
		t.Errorf("count = %d, want 5", rec.RecurringErrors[0].Count)
	}
}

func TestSingleOccurrenceNotRecurring(t *testing.T) {
	s := openStore(t)
	record(t, s, Outcome{Code: "project.Save()", ErrorMsg: "once only"})
	rec := s.Recommendations()
	if len(rec.RecurringErrors) != 0 {
		t.Errorf("single occurrence surfaced as recurring: %v", rec.RecurringErrors)
	}
}

func TestRecommendationThresholds(t *testing.T) {
	s := openStore(t)

	// Three successes: preferred.
	for i := 0; i < 3; i++ {
		record(t, s, Outcome{Code: "LexSenseOperations.SetGloss(s, g)", Success: true})
	}
	// Three failures: avoid.
	for i := 0; i < 3; i++ {
		record(t, s, Outcome{Code: "LexSenseOperations.Delete(s)", Success: false, ErrorMsg: "boom", ErrorKind: "RuntimeError"})
	}
	// Two uses only: neither list, regardless of rate.
	for i := 0; i < 2; i++ {
		record(t, s, Outcome{Code: "LexEntryOperations.Create(form)", Success: true})
	}

	rec := s.Recommendations()

	if len(rec.Preferred) != 1 || rec.Preferred[0].Key != "LexSenseOperations.SetGloss" {
		t.Errorf("preferred = %v", rec.Preferred)
	}
	if rec.Preferred[0].SuccessRate != 1.0 {
		t.Errorf("preferred rate = %v", rec.Preferred[0].SuccessRate)
	}
	if len(rec.Avoid) != 1 || rec.Avoid[0].Key != "LexSenseOperations.Delete" {
		t.Errorf("avoid = %v", rec.Avoid)
	}
	for _, list := range [][]PatternSummary{rec.Preferred, rec.Avoid} {
		for _, p := range list {
			if p.Key == "LexEntryOperations.Create" {
				t.Error("two-observation pattern must appear in neither list")
			}
		}
	}
}

func TestMiddlingRateInNeitherList(t *testing.T) {
	s := openStore(t)
	// Two successes, two failures: rate 0.5 with 4 observations.
	for i := 0; i < 2; i++ {
		record(t, s, Outcome{Code: "project.Save()", Success: true})
		record(t, s, Outcome{Code: "project.Save()", Success: false, ErrorMsg: "flaky"})
	}
	rec := s.Recommendations()
	if len(rec.Preferred) != 0 || len(rec.Avoid) != 0 {
		t.Errorf("middling pattern leaked: preferred=%v avoid=%v", rec.Preferred, rec.Avoid)
	}
}

func TestFailureKindHistogram(t *testing.T) {
	s := openStore(t)
	record(t, s, Outcome{Code: "project.Save()", ErrorMsg: "bad state", ErrorKind: "InvalidOperation"})
	record(t, s, Outcome{Code: "project.Save()", ErrorMsg: "still bad", ErrorKind: "InvalidOperation"})

	stat, ok := s.Pattern("FLExProject.Save")
	if !ok {
		t.Fatal("pattern missing")
	}
	fk := stat.FailureKinds["InvalidOperation"]
	if fk == nil || fk.Count != 2 {
		t.Fatalf("failure kind = %+v", fk)
	}
	if fk.Example != "bad state" {
		t.Errorf("first example kept, got %q", fk.Example)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api_patterns.json")
	logger := slogutil.NewDiscardLogger()

	s, err := Open(path, logger)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		record(t, s, Outcome{Code: "project.Save()", Success: true})
	}

	reopened, err := Open(path, logger)
	if err != nil {
		t.Fatal(err)
	}
	stat, ok := reopened.Pattern("FLExProject.Save")
	if !ok || stat.SuccessCount != 3 {
		t.Errorf("reopened stat = %+v, ok = %v", stat, ok)
	}

	// The file is valid JSON at rest.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Errorf("store file not valid JSON: %v", err)
	}
}

func TestCorruptStoreResets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api_patterns.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path, slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatalf("corrupt store must not fail open: %v", err)
	}
	patterns, buckets := s.Len()
	if patterns != 0 || buckets != 0 {
		t.Errorf("store not reset: %d patterns, %d buckets", patterns, buckets)
	}

	// The store remains usable and persists over the corrupt file.
	record(t, s, Outcome{Code: "project.Save()", Success: true})
	reopened, err := Open(path, slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := reopened.Pattern("FLExProject.Save"); !ok {
		t.Error("store did not recover after reset")
	}
}
