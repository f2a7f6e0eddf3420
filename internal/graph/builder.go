package graph

import (
	"log/slog"
	"sort"

	"flexkb/internal/index"
)

// Build derives the relationship graph from a set of entities. Edges
// are appended in deterministic order (entities sorted by name,
// properties in document order) so results are reproducible across
// runs. Properties without a name or target type are skipped.
func Build(entities map[string]*index.Entity, logger *slog.Logger) *Graph {
	g := &Graph{
		adjacency: make(map[string][]Edge),
		reverse:   make(map[string][]Edge),
		relations: make(map[string]*Relations),
	}

	names := make([]string, 0, len(entities))
	for name := range entities {
		names = append(names, name)
	}
	sort.Strings(names)

	skipped := 0
	for _, name := range names {
		ent := entities[name]
		if ent == nil {
			continue
		}
		for _, p := range ent.Properties {
			if p.Relationship == index.Plain {
				continue
			}
			if p.Name == "" || p.TargetType == "" {
				skipped++
				continue
			}

			et := EdgeOwns
			if p.Relationship.IsReference() {
				et = EdgeReferences
			}
			edge := Edge{
				From:        name,
				To:          p.TargetType,
				Via:         p.Name,
				Type:        et,
				Cardinality: cardinality(p.Relationship),
				Ordered:     p.Relationship.IsOrdered(),
			}
			g.addEdge(edge)
		}
	}

	if skipped > 0 {
		logger.Warn("Skipped relationship properties without a target", "count", skipped)
	}
	stats := g.Stats()
	logger.Info("Relationship graph built", "nodes", stats.Nodes, "edges", stats.Edges)

	return g
}

func (g *Graph) addEdge(e Edge) {
	g.adjacency[e.From] = append(g.adjacency[e.From], e)
	g.reverse[e.To] = append(g.reverse[e.To], e)
	g.edgeCount++

	rel := Relation{Target: e.To, Via: e.Via, Cardinality: e.Cardinality, Ordered: e.Ordered}
	back := Relation{Target: e.From, Via: e.Via, Cardinality: e.Cardinality, Ordered: e.Ordered}

	fromRels := g.relationsFor(e.From)
	toRels := g.relationsFor(e.To)
	if e.Type == EdgeOwns {
		fromRels.Children = append(fromRels.Children, rel)
		toRels.Parents = append(toRels.Parents, back)
	} else {
		fromRels.References = append(fromRels.References, rel)
		toRels.ReferencedBy = append(toRels.ReferencedBy, back)
	}
}

func (g *Graph) relationsFor(entity string) *Relations {
	r := g.relations[entity]
	if r == nil {
		r = &Relations{}
		g.relations[entity] = r
	}
	return r
}
