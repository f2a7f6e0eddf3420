package search

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	kberr "flexkb/internal/errors"
)

// crudSynonyms expands common operation verbs into the vocabulary API
// method names actually use.
var crudSynonyms = map[string][]string{
	"add":        {"add", "set", "create", "insert", "append"},
	"set":        {"set", "add", "update", "modify", "assign"},
	"get":        {"get", "fetch", "retrieve", "find", "read"},
	"delete":     {"delete", "remove", "clear", "erase"},
	"remove":     {"remove", "delete", "clear"},
	"create":     {"create", "add", "new", "make"},
	"update":     {"update", "set", "modify", "change"},
	"find":       {"find", "search", "get", "lookup", "query"},
	"list":       {"list", "getall", "all", "iterate", "enumerate"},
	"gloss":      {"gloss", "translation", "meaning"},
	"definition": {"definition", "meaning", "description"},
	"sense":      {"sense", "meaning", "definition"},
	"entry":      {"entry", "headword", "lexeme", "word"},
}

// domainSynonyms maps linguistic terminology to the API-facing words
// the corpora use for the same concepts.
var domainSynonyms = map[string][]string{
	"noun":          {"part", "speech", "grammatical", "category", "pos"},
	"verb":          {"part", "speech", "grammatical", "category", "pos"},
	"pos":           {"part", "speech", "category", "grammatical"},
	"morpheme":      {"morph", "form", "allomorph"},
	"affix":         {"morph", "prefix", "suffix", "infl"},
	"pronunciation": {"pronunciation", "phonetic", "form"},
	"translation":   {"translation", "gloss", "free"},
	"text":          {"text", "sttext", "paragraph", "interlinear"},
	"wordform":      {"wordform", "wfi", "analysis"},
	"domain":        {"domain", "semantic", "possibility"},
}

// Synonyms is the merged expansion table used by the lexical path.
type Synonyms struct {
	table map[string][]string
}

// synonymOverlay is the on-disk overlay document shape.
type synonymOverlay struct {
	CRUD   map[string][]string `yaml:"crud"`
	Domain map[string][]string `yaml:"domain"`
}

// NewSynonyms builds the table from the built-in CRUD and domain sets.
func NewSynonyms() *Synonyms {
	s := &Synonyms{table: make(map[string][]string, len(crudSynonyms)+len(domainSynonyms))}
	for term, exp := range crudSynonyms {
		s.table[term] = exp
	}
	for term, exp := range domainSynonyms {
		s.table[term] = append(s.table[term], exp...)
	}
	return s
}

// LoadOverlay merges a YAML overlay file into the table. Overlay
// entries extend built-in ones rather than replacing them. A missing
// file leaves the table unchanged.
func (s *Synonyms) LoadOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var overlay synonymOverlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return kberr.Wrap(kberr.MalformedInput, fmt.Sprintf("synonym overlay %s failed to parse", path), err)
	}

	for term, exp := range overlay.CRUD {
		s.table[strings.ToLower(term)] = append(s.table[strings.ToLower(term)], exp...)
	}
	for term, exp := range overlay.Domain {
		s.table[strings.ToLower(term)] = append(s.table[strings.ToLower(term)], exp...)
	}
	return nil
}

// Expand returns the deduplicated expansion of query terms: every
// original term plus every synonym of a known term.
func (s *Synonyms) Expand(terms []string) []string {
	seen := make(map[string]bool, len(terms)*2)
	out := make([]string, 0, len(terms)*2)
	appendTerm := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}

	for _, t := range terms {
		appendTerm(t)
	}
	for _, t := range terms {
		for _, syn := range s.table[t] {
			appendTerm(strings.ToLower(syn))
		}
	}
	return out
}
