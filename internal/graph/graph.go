// Package graph holds the relationship graph between API entities and
// the BFS path resolver that answers "how do I get from A to B" queries.
package graph

import "flexkb/internal/index"

// EdgeType distinguishes ownership from reference edges.
type EdgeType string

const (
	EdgeOwns       EdgeType = "owns"
	EdgeReferences EdgeType = "references"
)

// Edge is one directed relationship edge. Via is the property name the
// edge travels through.
type Edge struct {
	From        string   `json:"from"`
	To          string   `json:"to"`
	Via         string   `json:"via"`
	Type        EdgeType `json:"type"`
	Cardinality string   `json:"cardinality"` // one or many
	Ordered     bool     `json:"ordered,omitempty"`
}

// Relation is one entry in an entity's relationship summary, as exposed
// by get_object_api and the not-found suggestions.
type Relation struct {
	Target      string `json:"target"`
	Via         string `json:"via"`
	Cardinality string `json:"cardinality,omitempty"`
	Ordered     bool   `json:"ordered,omitempty"`
}

// Relations summarizes every relationship an entity participates in.
type Relations struct {
	Children     []Relation `json:"children,omitempty"`
	Parents      []Relation `json:"parents,omitempty"`
	References   []Relation `json:"references,omitempty"`
	ReferencedBy []Relation `json:"referenced_by,omitempty"`
}

// Graph is the directed multigraph over entity names. Cycles are legal.
// Immutable after Build.
type Graph struct {
	adjacency map[string][]Edge
	reverse   map[string][]Edge
	relations map[string]*Relations
	edgeCount int
}

// Edges returns the outgoing edges of an entity in insertion order.
func (g *Graph) Edges(from string) []Edge {
	return g.adjacency[from]
}

// Incoming returns the edges arriving at an entity.
func (g *Graph) Incoming(to string) []Edge {
	return g.reverse[to]
}

// RelationsOf returns the relationship summary for an entity, or nil
// when the entity has no relationships at all.
func (g *Graph) RelationsOf(entity string) *Relations {
	return g.relations[entity]
}

// Children returns up to limit owned child targets of an entity,
// used for the reachable_from_source suggestion on failed lookups.
func (g *Graph) Children(entity string, limit int) []string {
	rels := g.relations[entity]
	if rels == nil {
		return nil
	}
	out := make([]string, 0, limit)
	for _, c := range rels.Children {
		if len(out) >= limit {
			break
		}
		out = append(out, c.Target)
	}
	return out
}

// Stats reports graph size for the status tool.
type Stats struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
}

// Stats returns node and edge counts.
func (g *Graph) Stats() Stats {
	return Stats{Nodes: len(g.adjacency), Edges: g.edgeCount}
}

// cardinality maps a relationship kind to the edge cardinality label.
func cardinality(k index.RelKind) string {
	if k.IsMany() {
		return "many"
	}
	return "one"
}
