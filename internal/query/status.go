package query

import (
	"time"

	"flexkb/internal/graph"
	"flexkb/internal/version"
)

// CorpusStatus reports one corpus in get_status.
type CorpusStatus struct {
	Loaded   bool   `json:"loaded"`
	Entities int    `json:"entities,omitempty"`
	Schema   string `json:"schema,omitempty"`
}

// StatusResult is the get_status answer.
type StatusResult struct {
	Version           string                  `json:"version"`
	Corpora           map[string]CorpusStatus `json:"corpora"`
	Graph             graph.Stats             `json:"graph"`
	PathCacheEntries  int                     `json:"path_cache_entries"`
	SuffixAliases     int                     `json:"suffix_aliases"`
	SemanticAvailable bool                    `json:"semantic_available"`
	LearnPatterns     int                     `json:"learn_patterns"`
	LearnErrorBuckets int                     `json:"learn_error_buckets"`
	LoadedAt          time.Time               `json:"loaded_at"`
}

// Status reports what the engine has loaded and how big it is.
func (e *Engine) Status() StatusResult {
	s := e.snapshot()

	corpora := make(map[string]CorpusStatus, 3)
	status := func(loaded bool, entities int, schema string) CorpusStatus {
		return CorpusStatus{Loaded: loaded, Entities: entities, Schema: schema}
	}
	if s.set.Flexlibs2 != nil {
		corpora["flexlibs2"] = status(true, s.set.Flexlibs2.Len(), s.set.Flexlibs2.Schema)
	} else {
		corpora["flexlibs2"] = status(false, 0, "")
	}
	if s.set.FlexlibsStable != nil {
		corpora["flexlibs_stable"] = status(true, s.set.FlexlibsStable.Len(), s.set.FlexlibsStable.Schema)
	} else {
		corpora["flexlibs_stable"] = status(false, 0, "")
	}
	if s.set.Liblcm != nil {
		corpora["liblcm"] = status(true, s.set.Liblcm.Len(), s.set.Liblcm.Schema)
	} else {
		corpora["liblcm"] = status(false, 0, "")
	}

	cacheEntries := 0
	if s.navDoc != nil {
		cacheEntries = len(s.navDoc.CommonPaths)
	}
	patterns, buckets := e.learn.Len()

	return StatusResult{
		Version:           version.Version,
		Corpora:           corpora,
		Graph:             s.graph.Stats(),
		PathCacheEntries:  cacheEntries,
		SuffixAliases:     s.set.Suffixes.Len(),
		SemanticAvailable: s.search.SemanticAvailable(),
		LearnPatterns:     patterns,
		LearnErrorBuckets: buckets,
		LoadedAt:          s.loadedAt,
	}
}
