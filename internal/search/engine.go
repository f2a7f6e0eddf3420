package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"flexkb/internal/index"
)

// DefaultMaxResults caps result counts when the caller gives none.
const DefaultMaxResults = 10

// Mode selects which corpora a search consults.
type Mode string

const (
	ModeFlexlibs2      Mode = "flexlibs2"
	ModeFlexlibsStable Mode = "flexlibs_stable"
	ModeLiblcm         Mode = "liblcm"
	ModeAll            Mode = "all"
)

// modeConfig names the primary corpora of a mode plus the fallback
// corpora consulted only when the primaries under-fill.
type modeConfig struct {
	primary     []index.Source
	fallback    []index.Source
	description string
}

var modeConfigs = map[Mode]modeConfig{
	ModeFlexlibs2: {
		primary:     []index.Source{index.SourceFlexlibs2},
		description: "FlexLibs 2.0 (recommended)",
	},
	ModeFlexlibsStable: {
		primary:     []index.Source{index.SourceFlexlibsStable},
		fallback:    []index.Source{index.SourceLiblcm},
		description: "FlexLibs Stable with LibLCM fallback",
	},
	ModeLiblcm: {
		primary:     []index.Source{index.SourceLiblcm},
		description: "Pure LibLCM",
	},
	ModeAll: {
		primary:     []index.Source{index.SourceFlexlibs2, index.SourceFlexlibsStable, index.SourceLiblcm},
		description: "All sources",
	},
}

// Request is one search query.
type Request struct {
	Query      string
	MaxResults int
	Mode       Mode
	NoSemantic bool
}

// Response carries the ranked results plus the diagnostics callers use
// to understand which path produced them.
type Response struct {
	Query             string   `json:"query"`
	Mode              Mode     `json:"api_mode"`
	ModeDescription   string   `json:"api_mode_description"`
	SearchMethod      string   `json:"search_method"`
	SourcesSearched   []string `json:"sources_searched"`
	FallbackUsed      bool     `json:"fallback_used"`
	SemanticAvailable bool     `json:"semantic_available"`
	ResultsCount      int      `json:"results_count"`
	Results           []Item   `json:"results"`
}

// Engine ranks corpus items against queries. Immutable after
// construction, safe for concurrent use.
type Engine struct {
	set      *index.Set
	synonyms *Synonyms
	boosts   map[index.Source]float64
	vectors  *VectorIndex
	embed    *EmbedClient

	// aliasFull maps lowercased pythonic aliases to lowercased full
	// suffixed names, so a query for "senses" also matches "SensesOS".
	aliasFull map[string][]string

	logger *slog.Logger
}

// NewEngine builds the search engine over a loaded corpus set.
func NewEngine(set *index.Set, synonyms *Synonyms, boosts map[index.Source]float64, logger *slog.Logger) *Engine {
	e := &Engine{
		set:       set,
		synonyms:  synonyms,
		boosts:    boosts,
		aliasFull: make(map[string][]string),
		logger:    logger,
	}
	if set.Suffixes != nil {
		for _, alias := range set.Suffixes.Aliases() {
			lower := strings.ToLower(alias)
			for _, full := range set.Suffixes.FullNames(alias) {
				e.aliasFull[lower] = append(e.aliasFull[lower], strings.ToLower(full))
			}
		}
	}
	return e
}

// WithVectors attaches the vector path. Either argument may be nil,
// which leaves the engine lexical-only.
func (e *Engine) WithVectors(idx *VectorIndex, client *EmbedClient) *Engine {
	e.vectors = idx
	e.embed = client
	return e
}

// SemanticAvailable reports whether the vector path can run.
func (e *Engine) SemanticAvailable() bool {
	return e.vectors != nil && e.vectors.Len() > 0 && e.embed != nil
}

// Search runs a query. The vector path is tried first when available
// and not disabled; any vector failure falls through to the lexical
// path silently.
func (e *Engine) Search(ctx context.Context, req Request) Response {
	if req.MaxResults <= 0 {
		req.MaxResults = DefaultMaxResults
	}
	cfg, ok := modeConfigs[req.Mode]
	if !ok {
		req.Mode = ModeAll
		cfg = modeConfigs[ModeAll]
	}

	resp := Response{
		Query:             req.Query,
		Mode:              req.Mode,
		ModeDescription:   cfg.description,
		SearchMethod:      "keyword",
		SourcesSearched:   []string{},
		SemanticAvailable: e.SemanticAvailable(),
		Results:           []Item{},
	}

	if !req.NoSemantic && e.SemanticAvailable() {
		if items := e.vectorSearch(ctx, req); len(items) > 0 {
			resp.SearchMethod = "semantic"
			resp.SourcesSearched = []string{string(req.Mode)}
			resp.Results = items
			resp.ResultsCount = len(items)
			return resp
		}
	}

	e.lexicalSearch(req, cfg, &resp)
	resp.ResultsCount = len(resp.Results)
	return resp
}

func (e *Engine) vectorSearch(ctx context.Context, req Request) []Item {
	vec, err := e.embed.Embed(ctx, req.Query)
	if err != nil {
		e.logger.Debug("Vector path unavailable, falling back to keyword search", "error", err.Error())
		return nil
	}

	// The vector index only tags items by single source, so combined
	// modes search every item.
	filter := "all"
	if req.Mode == ModeFlexlibs2 || req.Mode == ModeLiblcm {
		filter = string(req.Mode)
	}
	return e.vectors.Search(vec, req.MaxResults, filter)
}

func (e *Engine) lexicalSearch(req Request, cfg modeConfig, resp *Response) {
	terms := e.expandQuery(req.Query)

	var results []Item
	for _, src := range cfg.primary {
		c := e.set.Corpus(src)
		if c == nil {
			continue
		}
		results = append(results, e.searchCorpus(c, terms)...)
		resp.SourcesSearched = append(resp.SourcesSearched, string(src))
	}

	if len(results) < req.MaxResults {
		for _, src := range cfg.fallback {
			if contains(resp.SourcesSearched, string(src)) {
				continue
			}
			c := e.set.Corpus(src)
			if c == nil {
				continue
			}
			extra := e.searchCorpus(c, terms)
			if len(extra) > 0 {
				results = append(results, extra...)
				resp.SourcesSearched = append(resp.SourcesSearched, string(src)+" (fallback)")
				resp.FallbackUsed = true
			}
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	if len(results) > req.MaxResults {
		results = results[:req.MaxResults]
	}
	resp.Results = results
}

// expandQuery tokenizes and expands through the synonym tables and the
// suffix alias map.
func (e *Engine) expandQuery(query string) []string {
	tokens := strings.Fields(strings.ToLower(query))
	expanded := e.synonyms.Expand(tokens)

	seen := make(map[string]bool, len(expanded))
	for _, t := range expanded {
		seen[t] = true
	}
	for _, t := range tokens {
		for _, full := range e.aliasFull[t] {
			if !seen[full] {
				seen[full] = true
				expanded = append(expanded, full)
			}
		}
	}
	return expanded
}

// searchCorpus scores every method of a corpus, plus relationship
// properties for the liblcm corpus where properties are the primary
// navigable surface. Items matching no term are dropped.
func (e *Engine) searchCorpus(c *index.Corpus, terms []string) []Item {
	boost := e.boosts[c.Source]
	var out []Item

	for _, entityName := range c.EntityNames() {
		ent := c.Entities[entityName]
		category := ent.Category
		if category == "" {
			category = "general"
		}

		for i := range ent.Methods {
			m := &ent.Methods[i]
			score := scoreItem(boost, terms, m.SearchBlob(), strings.ToLower(m.Name))
			if score <= boost {
				continue
			}
			out = append(out, Item{
				Score:       score,
				Source:      string(c.Source),
				Entity:      entityName,
				Name:        m.Name,
				Type:        KindMethod,
				Signature:   m.Signature,
				Description: m.ShortDescription(),
				Category:    category,
			})
		}

		if c.Source != index.SourceLiblcm {
			continue
		}
		for i := range ent.Properties {
			p := &ent.Properties[i]
			if p.Relationship == index.Plain {
				continue
			}
			blob := strings.ToLower(p.Name + " " + p.PythonicName + " " + p.Summary)
			score := scoreItem(boost, terms, blob, strings.ToLower(p.Name))
			if score <= boost {
				continue
			}
			out = append(out, Item{
				Score:       score,
				Source:      string(c.Source),
				Entity:      entityName,
				Name:        p.Name,
				Type:        KindProperty,
				Signature:   p.Signature,
				Description: p.Summary,
				Category:    category,
			})
		}
	}
	return out
}

// scoreItem applies the term-match scoring: one point per term found in
// the searchable blob, two more per term found in the name itself.
func scoreItem(boost float64, terms []string, blob, nameLower string) float64 {
	score := boost
	for _, t := range terms {
		if strings.Contains(blob, t) {
			score++
		}
		if strings.Contains(nameLower, t) {
			score += 2
		}
	}
	return score
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
