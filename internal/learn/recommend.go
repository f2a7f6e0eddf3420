package learn

import "sort"

const (
	// minObservations gates both recommendation lists.
	minObservations = 3
	// preferredRate is the minimum success rate for "preferred".
	preferredRate = 0.8
	// avoidRate is the maximum success rate for "avoid".
	avoidRate = 0.3
	// minBucketCount gates the recurring-error list.
	minBucketCount = 2
)

// PatternSummary is one recommendation entry.
type PatternSummary struct {
	Key          string  `json:"key"`
	Observations int     `json:"observations"`
	SuccessRate  float64 `json:"success_rate"`
}

// ErrorSummary is one recurring-error entry.
type ErrorSummary struct {
	Key         string         `json:"key"`
	Count       int            `json:"count"`
	Examples    []ErrorExample `json:"examples,omitempty"`
	PatternKeys []string       `json:"pattern_keys,omitempty"`
}

// Recommendations is the derived view over the store.
type Recommendations struct {
	Preferred       []PatternSummary `json:"preferred"`
	Avoid           []PatternSummary `json:"avoid"`
	RecurringErrors []ErrorSummary   `json:"recurring_errors"`
}

// Recommendations derives the current recommendation lists. A pattern
// needs at least three observations to appear anywhere; patterns with
// a middling success rate appear in neither list.
func (s *Store) Recommendations() Recommendations {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := Recommendations{
		Preferred:       []PatternSummary{},
		Avoid:           []PatternSummary{},
		RecurringErrors: []ErrorSummary{},
	}

	for _, stat := range s.data.Patterns {
		obs := stat.Observations()
		if obs < minObservations {
			continue
		}
		summary := PatternSummary{
			Key:          stat.Key,
			Observations: obs,
			SuccessRate:  stat.SuccessRate(),
		}
		rate := summary.SuccessRate
		switch {
		case rate >= preferredRate:
			rec.Preferred = append(rec.Preferred, summary)
		case rate <= avoidRate:
			rec.Avoid = append(rec.Avoid, summary)
		}
	}

	sort.Slice(rec.Preferred, func(a, b int) bool {
		if rec.Preferred[a].Observations != rec.Preferred[b].Observations {
			return rec.Preferred[a].Observations > rec.Preferred[b].Observations
		}
		return rec.Preferred[a].Key < rec.Preferred[b].Key
	})
	sort.Slice(rec.Avoid, func(a, b int) bool {
		if rec.Avoid[a].SuccessRate != rec.Avoid[b].SuccessRate {
			return rec.Avoid[a].SuccessRate < rec.Avoid[b].SuccessRate
		}
		return rec.Avoid[a].Key < rec.Avoid[b].Key
	})

	for _, bucket := range s.data.Errors {
		if bucket.Count < minBucketCount {
			continue
		}
		rec.RecurringErrors = append(rec.RecurringErrors, ErrorSummary{
			Key:         bucket.Key,
			Count:       bucket.Count,
			Examples:    append([]ErrorExample{}, bucket.Examples...),
			PatternKeys: append([]string{}, bucket.PatternKeys...),
		})
	}
	sort.Slice(rec.RecurringErrors, func(a, b int) bool {
		if rec.RecurringErrors[a].Count != rec.RecurringErrors[b].Count {
			return rec.RecurringErrors[a].Count > rec.RecurringErrors[b].Count
		}
		return rec.RecurringErrors[a].Key < rec.RecurringErrors[b].Key
	})

	return rec
}
