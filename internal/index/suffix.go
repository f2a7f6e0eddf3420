package index

// SuffixEntry records one suffixed relationship property.
type SuffixEntry struct {
	Entity   string  `json:"entity"`
	FullName string  `json:"full_name"`
	Pythonic string  `json:"pythonic_name"`
	Kind     RelKind `json:"kind"`
}

// SuffixIndex is the bidirectional mapping between suffix-free
// ("pythonic") property names and their full suffixed names. A pythonic
// name can resolve to several full names across entities and kinds.
// Full names are keyed per entity ("ILexEntry.SensesOS"), since the
// same suffixed name can appear on several entities with different
// targets.
type SuffixIndex struct {
	byPythonic map[string][]SuffixEntry
	byFull     map[string]SuffixEntry
}

func fullKey(entity, name string) string {
	return entity + "." + name
}

// BuildSuffixIndex derives the index from a corpus. Only relationship
// properties (those with a suffix) are indexed. A nil corpus yields an
// empty, usable index.
func BuildSuffixIndex(c *Corpus) *SuffixIndex {
	idx := &SuffixIndex{
		byPythonic: make(map[string][]SuffixEntry),
		byFull:     make(map[string]SuffixEntry),
	}
	if c == nil {
		return idx
	}

	for _, name := range c.EntityNames() {
		ent := c.Entities[name]
		for _, p := range ent.Properties {
			if p.Relationship == Plain || p.PythonicName == "" {
				continue
			}
			entry := SuffixEntry{
				Entity:   ent.Name,
				FullName: p.Name,
				Pythonic: p.PythonicName,
				Kind:     p.Relationship,
			}
			idx.byPythonic[p.PythonicName] = append(idx.byPythonic[p.PythonicName], entry)
			idx.byFull[fullKey(ent.Name, p.Name)] = entry
		}
	}

	return idx
}

// ResolvePythonic returns every full suffixed form of a pythonic alias,
// across all entities.
func (s *SuffixIndex) ResolvePythonic(alias string) []SuffixEntry {
	return s.byPythonic[alias]
}

// ResolvePythonicFor returns the full form of alias on a specific entity,
// if any.
func (s *SuffixIndex) ResolvePythonicFor(entity, alias string) (SuffixEntry, bool) {
	for _, e := range s.byPythonic[alias] {
		if e.Entity == entity {
			return e, true
		}
	}
	return SuffixEntry{}, false
}

// ResolveFull returns the entry for a full suffixed name on a specific
// entity, if indexed.
func (s *SuffixIndex) ResolveFull(entity, full string) (SuffixEntry, bool) {
	e, ok := s.byFull[fullKey(entity, full)]
	return e, ok
}

// FullNames returns all full suffixed names for an alias, used by the
// search engine to expand friendly query terms into raw field names.
func (s *SuffixIndex) FullNames(alias string) []string {
	entries := s.byPythonic[alias]
	if len(entries) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if !seen[e.FullName] {
			seen[e.FullName] = true
			out = append(out, e.FullName)
		}
	}
	return out
}

// Aliases returns every indexed pythonic alias, in no particular order.
func (s *SuffixIndex) Aliases() []string {
	out := make([]string, 0, len(s.byPythonic))
	for alias := range s.byPythonic {
		out = append(out, alias)
	}
	return out
}

// Len returns the number of indexed suffixed properties across all
// entities.
func (s *SuffixIndex) Len() int {
	return len(s.byFull)
}
