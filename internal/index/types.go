// Package index holds the loaded API corpora: the entity/property/method
// records produced by the external extraction pipeline, keyed by source.
package index

import (
	"sort"
	"strings"
)

// RelKind classifies a property's relationship to its target entity.
type RelKind string

const (
	// OwnsAtomic is a single owned child object (suffix OA)
	OwnsAtomic RelKind = "owns_atomic"
	// OwnsSequence is an ordered collection of owned children (suffix OS)
	OwnsSequence RelKind = "owns_sequence"
	// OwnsCollection is an unordered collection of owned children (suffix OC)
	OwnsCollection RelKind = "owns_collection"
	// RefAtomic is a single referenced object (suffix RA)
	RefAtomic RelKind = "references_atomic"
	// RefSequence is an ordered collection of referenced objects (suffix RS)
	RefSequence RelKind = "references_sequence"
	// RefCollection is an unordered collection of referenced objects (suffix RC)
	RefCollection RelKind = "references_collection"
	// Plain is a property with no navigable relationship
	Plain RelKind = "plain"
)

// relSuffixes maps the LibLCM property-name suffix convention to kinds.
var relSuffixes = map[string]RelKind{
	"OA": OwnsAtomic,
	"OS": OwnsSequence,
	"OC": OwnsCollection,
	"RA": RefAtomic,
	"RS": RefSequence,
	"RC": RefCollection,
}

// KindFromSuffix classifies a property name by its two-letter suffix.
// Returns Plain for names without a relationship suffix.
func KindFromSuffix(name string) RelKind {
	if len(name) < 3 {
		return Plain
	}
	if k, ok := relSuffixes[name[len(name)-2:]]; ok {
		return k
	}
	return Plain
}

// ParseRelKind parses the extractor's relationship string. Unknown or
// empty strings are Plain.
func ParseRelKind(s string) RelKind {
	switch RelKind(s) {
	case OwnsAtomic, OwnsSequence, OwnsCollection, RefAtomic, RefSequence, RefCollection:
		return RelKind(s)
	}
	return Plain
}

// IsOwning reports whether the kind is one of the three owning kinds.
func (k RelKind) IsOwning() bool {
	return k == OwnsAtomic || k == OwnsSequence || k == OwnsCollection
}

// IsReference reports whether the kind is one of the three referencing kinds.
func (k RelKind) IsReference() bool {
	return k == RefAtomic || k == RefSequence || k == RefCollection
}

// IsMany reports whether the kind carries collection cardinality.
func (k RelKind) IsMany() bool {
	switch k {
	case OwnsSequence, OwnsCollection, RefSequence, RefCollection:
		return true
	}
	return false
}

// IsOrdered reports whether a many-valued kind preserves sequence.
func (k RelKind) IsOrdered() bool {
	return k == OwnsSequence || k == RefSequence
}

// Suffix returns the two-letter property-name suffix for the kind, or "".
func (k RelKind) Suffix() string {
	for suf, kind := range relSuffixes {
		if kind == k {
			return suf
		}
	}
	return ""
}

// Property is one property record of an entity. Immutable once loaded.
type Property struct {
	Name         string  `json:"name"`
	Relationship RelKind `json:"relationship,omitempty"`
	TargetType   string  `json:"target_type,omitempty"`
	PythonicName string  `json:"pythonic_name,omitempty"`
	Signature    string  `json:"signature,omitempty"`
	Summary      string  `json:"summary,omitempty"`
}

// Method is one method record of an entity. Immutable once loaded.
type Method struct {
	Name        string `json:"name"`
	Signature   string `json:"signature,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	Example     string `json:"example,omitempty"`
}

// SearchBlob returns the text searched by the lexical engine.
func (m *Method) SearchBlob() string {
	return strings.ToLower(m.Name + " " + m.Description + " " + m.Summary)
}

// ShortDescription returns the summary, falling back to a truncated
// description, for display in search results.
func (m *Method) ShortDescription() string {
	s := m.Summary
	if s == "" {
		s = m.Description
	}
	if len(s) > 150 {
		s = s[:150]
	}
	return s
}

// Entity is one class/interface record. Immutable once loaded.
type Entity struct {
	Name       string     `json:"-"`
	Type       string     `json:"type,omitempty"` // interface, class, enum, struct
	Category   string     `json:"category,omitempty"`
	Summary    string     `json:"summary,omitempty"`
	SourceFile string     `json:"source_file,omitempty"`
	Properties []Property `json:"properties,omitempty"`
	Methods    []Method   `json:"methods,omitempty"`
}

// Source identifies which corpus an item came from.
type Source string

const (
	SourceFlexlibs2      Source = "flexlibs2"
	SourceFlexlibsStable Source = "flexlibs_stable"
	SourceLiblcm         Source = "liblcm"
)

// AllSources lists the corpora in priority order. This order is the
// tie-break for equal search scores, so it must stay stable.
var AllSources = []Source{SourceFlexlibs2, SourceFlexlibsStable, SourceLiblcm}

// Corpus is one loaded corpus document.
type Corpus struct {
	Source   Source
	Schema   string
	Entities map[string]*Entity

	// entityNames is the stable (sorted) enumeration order used by
	// search and graph construction for reproducible results.
	entityNames []string
}

// EntityNames returns entity names in stable sorted order.
func (c *Corpus) EntityNames() []string {
	return c.entityNames
}

// RebuildNames recomputes the sorted entity name list after the entity
// map has been populated directly, as the loader and tests do.
func (c *Corpus) RebuildNames() {
	c.entityNames = make([]string, 0, len(c.Entities))
	for name := range c.Entities {
		c.entityNames = append(c.entityNames, name)
	}
	sort.Strings(c.entityNames)
}

// Get returns the entity with the exact given name, or nil.
func (c *Corpus) Get(name string) *Entity {
	if c == nil {
		return nil
	}
	return c.Entities[name]
}

// Len returns the number of entities in the corpus.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Entities)
}
