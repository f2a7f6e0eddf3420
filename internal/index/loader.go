package index

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	kberr "flexkb/internal/errors"
)

// corpusDoc mirrors the on-disk document layout produced by the extractor.
type corpusDoc struct {
	Schema   string             `json:"_schema"`
	Entities map[string]*Entity `json:"entities"`
}

// LoadCorpus reads one corpus document from path. Malformed entity or
// property records (missing names) are skipped with a warning; a missing
// file is reported as IndexMissing so the caller can degrade.
func LoadCorpus(path string, source Source, logger *slog.Logger) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kberr.Wrap(kberr.IndexMissing, fmt.Sprintf("corpus %s not found at %s", source, path), err)
		}
		return nil, err
	}

	var doc corpusDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, kberr.Wrap(kberr.MalformedInput, fmt.Sprintf("corpus %s failed to parse", source), err)
	}

	c := &Corpus{
		Source:   source,
		Schema:   doc.Schema,
		Entities: make(map[string]*Entity, len(doc.Entities)),
	}

	skippedProps := 0
	for name, ent := range doc.Entities {
		if name == "" || ent == nil {
			continue
		}
		ent.Name = name

		// Drop properties without a name; infer the relationship kind
		// from the suffix convention when the extractor left it blank.
		kept := ent.Properties[:0]
		for _, p := range ent.Properties {
			if p.Name == "" {
				skippedProps++
				continue
			}
			if p.Relationship == "" {
				p.Relationship = KindFromSuffix(p.Name)
			} else {
				p.Relationship = ParseRelKind(string(p.Relationship))
			}
			// Names shorter than the suffix itself can still carry an
			// extractor-supplied relationship; they get no alias.
			if p.PythonicName == "" && p.Relationship != Plain && len(p.Name) > 2 {
				p.PythonicName = p.Name[:len(p.Name)-2]
			}
			kept = append(kept, p)
		}
		ent.Properties = kept

		c.Entities[name] = ent
	}

	c.RebuildNames()

	if skippedProps > 0 {
		logger.Warn("Skipped malformed property records",
			"source", string(source), "count", skippedProps)
	}
	logger.Info("Corpus loaded",
		"source", string(source), "entities", len(c.Entities), "schema", doc.Schema)

	return c, nil
}

// Set holds the up-to-three loaded corpora plus the suffix index derived
// from the liblcm corpus. A Set is immutable after Load.
type Set struct {
	Flexlibs2      *Corpus
	FlexlibsStable *Corpus
	Liblcm         *Corpus
	Suffixes       *SuffixIndex
}

// Paths names the corpus documents to load. Empty entries are skipped.
type Paths struct {
	Flexlibs2      string
	FlexlibsStable string
	Liblcm         string
}

// Load reads every available corpus. A missing or unreadable corpus is
// logged and left nil; only having no corpus at all is an error.
func Load(paths Paths, logger *slog.Logger) (*Set, error) {
	s := &Set{}

	load := func(path string, source Source) *Corpus {
		if path == "" {
			return nil
		}
		c, err := LoadCorpus(path, source, logger)
		if err != nil {
			logger.Warn("Corpus unavailable", "source", string(source), "error", err.Error())
			return nil
		}
		return c
	}

	s.Flexlibs2 = load(paths.Flexlibs2, SourceFlexlibs2)
	s.FlexlibsStable = load(paths.FlexlibsStable, SourceFlexlibsStable)
	s.Liblcm = load(paths.Liblcm, SourceLiblcm)

	if s.Flexlibs2 == nil && s.FlexlibsStable == nil && s.Liblcm == nil {
		return nil, kberr.New(kberr.IndexMissing, "no corpus documents could be loaded").
			WithHint(kberr.HintFor(kberr.IndexMissing))
	}

	s.Suffixes = BuildSuffixIndex(s.Liblcm)

	return s, nil
}

// Corpus returns the corpus for a source tag, or nil.
func (s *Set) Corpus(source Source) *Corpus {
	switch source {
	case SourceFlexlibs2:
		return s.Flexlibs2
	case SourceFlexlibsStable:
		return s.FlexlibsStable
	case SourceLiblcm:
		return s.Liblcm
	}
	return nil
}

// Available returns the source tags with a loaded corpus, in priority order.
func (s *Set) Available() []Source {
	out := make([]Source, 0, 3)
	for _, src := range AllSources {
		if s.Corpus(src) != nil {
			out = append(out, src)
		}
	}
	return out
}
