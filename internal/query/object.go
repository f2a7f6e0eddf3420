package query

import (
	"fmt"
	"strings"

	"flexkb/internal/index"
)

const (
	// DefaultMethodLimit caps methods per page of get_object_api.
	DefaultMethodLimit = 50
	// maxPartialMatches caps suggested partial matches per corpus.
	maxPartialMatches = 10
)

// ObjectRequest queries the API documentation of one entity.
type ObjectRequest struct {
	ObjectType       string
	IncludeFlexlibs2 bool
	IncludeLiblcm    bool
	SummaryOnly      bool
	MethodFilter     string
	Limit            int
	Offset           int
}

// MethodPage is one paginated view of an entity's methods.
type MethodPage struct {
	Category        string         `json:"category,omitempty"`
	Summary         string         `json:"summary,omitempty"`
	SourceFile      string         `json:"source_file,omitempty"`
	TotalMethods    int            `json:"total_methods"`
	Methods         []index.Method `json:"methods"`
	ReturnedMethods int            `json:"returned_methods"`
	HasMore         bool           `json:"has_more"`
	NextOffset      int            `json:"next_offset,omitempty"`
}

// PartialMatch is one suggestion when no entity matched exactly.
type PartialMatch struct {
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	Category     string `json:"category,omitempty"`
	MethodsCount int    `json:"methods_count,omitempty"`
}

// ObjectResult is the get_object_api answer.
type ObjectResult struct {
	ObjectType       string         `json:"object_type"`
	Found            bool           `json:"found"`
	Flexlibs2        *MethodPage    `json:"flexlibs2,omitempty"`
	Liblcm           *MethodPage    `json:"liblcm,omitempty"`
	Flexlibs2Matches []PartialMatch `json:"flexlibs2_matches,omitempty"`
	LiblcmMatches    []PartialMatch `json:"liblcm_matches,omitempty"`
	Message          string         `json:"message,omitempty"`
}

// GetObjectAPI returns the documentation of an entity: an exact match
// per included corpus, or partial-match suggestions. Pagination applies
// to the exact-match method lists.
func (e *Engine) GetObjectAPI(req ObjectRequest) ObjectResult {
	if req.Limit <= 0 {
		req.Limit = DefaultMethodLimit
	}
	s := e.snapshot()

	result := ObjectResult{ObjectType: req.ObjectType}

	if req.IncludeFlexlibs2 && s.set.Flexlibs2 != nil {
		if ent := s.set.Flexlibs2.Get(req.ObjectType); ent != nil {
			result.Flexlibs2 = paginateEntity(ent, req)
			result.Found = true
		} else if matches := partialMatches(s.set.Flexlibs2, req.ObjectType, true); len(matches) > 0 {
			result.Flexlibs2Matches = matches
			result.Found = true
		}
	}

	if req.IncludeLiblcm && s.set.Liblcm != nil {
		if ent := s.set.Liblcm.Get(req.ObjectType); ent != nil {
			result.Liblcm = paginateEntity(ent, req)
			result.Found = true
		} else if matches := partialMatches(s.set.Liblcm, req.ObjectType, false); len(matches) > 0 {
			result.LiblcmMatches = matches
			result.Found = true
		}
	}

	if !result.Found {
		result.Message = fmt.Sprintf(
			"No API documentation found for %q. Try searching with search_by_capability or list_categories to explore available APIs.",
			req.ObjectType)
	}
	return result
}

func paginateEntity(ent *index.Entity, req ObjectRequest) *MethodPage {
	page := &MethodPage{
		Category:   ent.Category,
		Summary:    ent.Summary,
		SourceFile: ent.SourceFile,
	}

	methods := ent.Methods
	if req.MethodFilter != "" {
		filter := strings.ToLower(req.MethodFilter)
		kept := make([]index.Method, 0, len(methods))
		for _, m := range methods {
			if strings.Contains(strings.ToLower(m.Name), filter) {
				kept = append(kept, m)
			}
		}
		methods = kept
	}
	page.TotalMethods = len(methods)

	// Offsets and limits come straight from tool callers; clamp both so
	// a negative value behaves like zero instead of slicing out of range.
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > len(methods) {
		offset = len(methods)
	}
	limit := req.Limit
	if limit < 0 {
		limit = 0
	}
	end := offset + limit
	if end > len(methods) {
		end = len(methods)
	}
	methods = methods[offset:end]

	if req.SummaryOnly {
		page.Methods = make([]index.Method, len(methods))
		for i, m := range methods {
			page.Methods[i] = index.Method{Name: m.Name, Signature: m.Signature}
		}
	} else {
		page.Methods = append([]index.Method{}, methods...)
	}

	page.ReturnedMethods = len(page.Methods)
	page.HasMore = end < page.TotalMethods
	if page.HasMore {
		page.NextOffset = end
	}
	return page
}

func partialMatches(c *index.Corpus, objectType string, withMethodCount bool) []PartialMatch {
	needle := strings.ToLower(objectType)
	var out []PartialMatch
	for _, name := range c.EntityNames() {
		if !strings.Contains(strings.ToLower(name), needle) {
			continue
		}
		ent := c.Entities[name]
		m := PartialMatch{Name: name, Category: ent.Category}
		if withMethodCount {
			m.MethodsCount = len(ent.Methods)
		} else {
			m.Type = ent.Type
		}
		out = append(out, m)
		if len(out) >= maxPartialMatches {
			break
		}
	}
	return out
}
