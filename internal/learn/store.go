// Package learn tracks which API usage patterns succeed or fail when
// generated code runs against a live project, and derives
// recommendations from the accumulated counts.
package learn

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

const (
	// maxBucketExamples caps retained examples per error bucket.
	maxBucketExamples = 3
	// maxExampleCode caps the code text stored with an example.
	maxExampleCode = 500
)

// FailureKind is one entry of a pattern's per-kind failure histogram.
type FailureKind struct {
	Count   int    `json:"count"`
	Example string `json:"example,omitempty"`
}

// PatternStat is the success/failure record of one pattern key.
type PatternStat struct {
	Key          string                  `json:"key"`
	SuccessCount int                     `json:"success_count"`
	FailureCount int                     `json:"failure_count"`
	LastUsed     time.Time               `json:"last_used"`
	FailureKinds map[string]*FailureKind `json:"failure_kinds,omitempty"`
}

// Observations returns the total recorded uses.
func (p *PatternStat) Observations() int {
	return p.SuccessCount + p.FailureCount
}

// SuccessRate returns successes over total observations.
func (p *PatternStat) SuccessRate() float64 {
	total := p.Observations()
	if total == 0 {
		return 0
	}
	return float64(p.SuccessCount) / float64(total)
}

// ErrorExample is one retained occurrence of a bucketed error.
type ErrorExample struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

// ErrorBucket groups error messages that normalize to the same key.
type ErrorBucket struct {
	Key         string         `json:"key"`
	Count       int            `json:"count"`
	Examples    []ErrorExample `json:"examples,omitempty"`
	PatternKeys []string       `json:"pattern_keys,omitempty"`
	FirstSeen   time.Time      `json:"first_seen"`
}

// storeData is the on-disk document.
type storeData struct {
	Version  int                     `json:"version"`
	Patterns map[string]*PatternStat `json:"patterns"`
	Errors   map[string]*ErrorBucket `json:"errors"`
}

func emptyData() storeData {
	return storeData{
		Version:  1,
		Patterns: make(map[string]*PatternStat),
		Errors:   make(map[string]*ErrorBucket),
	}
}

// Store is the file-backed pattern statistics store. All access goes
// through a single mutex; the file is rewritten whole after every
// recorded outcome.
type Store struct {
	mu     sync.Mutex
	path   string
	data   storeData
	logger *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// Open loads the store from path, creating an empty one when the file
// does not exist. A file that fails to parse is reset to empty with a
// warning rather than failing the caller.
func Open(path string, logger *slog.Logger) (*Store, error) {
	s := &Store{
		path:   path,
		data:   emptyData(),
		logger: logger,
		now:    time.Now,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	var data storeData
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.Warn("Pattern store corrupt, resetting to empty",
			"path", path, "error", err.Error())
		return s, nil
	}
	if data.Patterns == nil {
		data.Patterns = make(map[string]*PatternStat)
	}
	if data.Errors == nil {
		data.Errors = make(map[string]*ErrorBucket)
	}
	s.data = data

	logger.Info("Pattern store loaded",
		"path", path, "patterns", len(data.Patterns), "error_buckets", len(data.Errors))
	return s, nil
}

// Outcome describes one execution of generated code.
type Outcome struct {
	Code      string
	Success   bool
	ErrorMsg  string
	ErrorKind string
}

// Record extracts pattern keys from the executed code, updates their
// counters, buckets the error on failure, and rewrites the store file.
func (s *Store) Record(o Outcome) error {
	keys := ExtractPatterns(o.Code)
	if len(keys) == 0 && o.ErrorMsg == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, key := range keys {
		stat := s.data.Patterns[key]
		if stat == nil {
			stat = &PatternStat{Key: key}
			s.data.Patterns[key] = stat
		}
		stat.LastUsed = now
		if o.Success {
			stat.SuccessCount++
			continue
		}
		stat.FailureCount++
		if o.ErrorKind != "" {
			if stat.FailureKinds == nil {
				stat.FailureKinds = make(map[string]*FailureKind)
			}
			fk := stat.FailureKinds[o.ErrorKind]
			if fk == nil {
				fk = &FailureKind{}
				stat.FailureKinds[o.ErrorKind] = fk
			}
			fk.Count++
			if fk.Example == "" {
				fk.Example = o.ErrorMsg
			}
		}
	}

	if !o.Success && o.ErrorMsg != "" {
		s.bucketError(o, keys, now)
	}

	return s.persistLocked()
}

func (s *Store) bucketError(o Outcome, keys []string, now time.Time) {
	key := BucketKey(o.ErrorMsg)
	bucket := s.data.Errors[key]
	if bucket == nil {
		bucket = &ErrorBucket{Key: key, FirstSeen: now}
		s.data.Errors[key] = bucket
	}
	bucket.Count++

	if len(bucket.Examples) < maxBucketExamples {
		code := o.Code
		if len(code) > maxExampleCode {
			code = code[:maxExampleCode]
		}
		bucket.Examples = append(bucket.Examples, ErrorExample{Code: code, Error: o.ErrorMsg})
	}

	for _, k := range keys {
		if !containsKey(bucket.PatternKeys, k) {
			bucket.PatternKeys = append(bucket.PatternKeys, k)
		}
	}
	sort.Strings(bucket.PatternKeys)
}

// persistLocked rewrites the store file atomically. Callers hold mu.
func (s *Store) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s.tmp", s.path)
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Pattern returns a copy of one pattern's stats.
func (s *Store) Pattern(key string) (PatternStat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stat := s.data.Patterns[key]
	if stat == nil {
		return PatternStat{}, false
	}
	return *stat, true
}

// Len returns the number of tracked patterns and error buckets.
func (s *Store) Len() (patterns, buckets int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.Patterns), len(s.data.Errors)
}

func containsKey(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
