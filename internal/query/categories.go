package query

import "strings"

// CategoryCount is the per-source entity count of one category.
type CategoryCount struct {
	Flexlibs2Count int `json:"flexlibs2_count"`
	LiblcmCount    int `json:"liblcm_count"`
}

// CategoriesResult is the list_categories answer.
type CategoriesResult struct {
	Categories      map[string]*CategoryCount `json:"categories"`
	TotalCategories int                       `json:"total_categories"`
}

// ListCategories aggregates entity categories across the corpora.
func (e *Engine) ListCategories() CategoriesResult {
	s := e.snapshot()
	categories := make(map[string]*CategoryCount)

	count := func(name string) *CategoryCount {
		if name == "" {
			name = "uncategorized"
		}
		c := categories[name]
		if c == nil {
			c = &CategoryCount{}
			categories[name] = c
		}
		return c
	}

	if s.set.Flexlibs2 != nil {
		for _, name := range s.set.Flexlibs2.EntityNames() {
			count(s.set.Flexlibs2.Entities[name].Category).Flexlibs2Count++
		}
	}
	if s.set.Liblcm != nil {
		for _, name := range s.set.Liblcm.EntityNames() {
			count(s.set.Liblcm.Entities[name].Category).LiblcmCount++
		}
	}

	return CategoriesResult{Categories: categories, TotalCategories: len(categories)}
}

// EntitySummary is one entity row of list_entities_in_category.
type EntitySummary struct {
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	MethodsCount int    `json:"methods_count,omitempty"`
	Summary      string `json:"summary,omitempty"`
}

// CategoryEntitiesResult is the list_entities_in_category answer.
type CategoryEntitiesResult struct {
	Category string                     `json:"category"`
	Entities map[string][]EntitySummary `json:"entities"`
	Counts   map[string]int             `json:"counts"`
}

// ListEntitiesInCategory returns per-source entity summaries for one
// category, matched case-insensitively.
func (e *Engine) ListEntitiesInCategory(category string) CategoryEntitiesResult {
	s := e.snapshot()
	wanted := strings.ToLower(category)

	result := CategoryEntitiesResult{
		Category: wanted,
		Entities: map[string][]EntitySummary{"flexlibs2": {}, "liblcm": {}},
		Counts:   map[string]int{},
	}

	if s.set.Flexlibs2 != nil {
		for _, name := range s.set.Flexlibs2.EntityNames() {
			ent := s.set.Flexlibs2.Entities[name]
			if strings.ToLower(ent.Category) != wanted {
				continue
			}
			result.Entities["flexlibs2"] = append(result.Entities["flexlibs2"], EntitySummary{
				Name:         name,
				MethodsCount: len(ent.Methods),
				Summary:      truncate(ent.Summary, 100),
			})
		}
	}
	if s.set.Liblcm != nil {
		for _, name := range s.set.Liblcm.EntityNames() {
			ent := s.set.Liblcm.Entities[name]
			if strings.ToLower(ent.Category) != wanted {
				continue
			}
			result.Entities["liblcm"] = append(result.Entities["liblcm"], EntitySummary{
				Name:    name,
				Type:    ent.Type,
				Summary: truncate(ent.Summary, 100),
			})
		}
	}

	result.Counts["flexlibs2"] = len(result.Entities["flexlibs2"])
	result.Counts["liblcm"] = len(result.Entities["liblcm"])
	return result
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
