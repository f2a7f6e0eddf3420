package graph

import (
	"fmt"
	"strings"
)

// DefaultMaxDepth caps BFS path length.
const DefaultMaxDepth = 5

// Resolver answers navigation queries over a built graph, consulting
// the precomputed path cache before searching.
type Resolver struct {
	graph    *Graph
	cache    PathCache
	maxDepth int
}

// NewResolver builds a resolver. cache may be nil; maxDepth <= 0 uses
// the default.
func NewResolver(g *Graph, cache PathCache, maxDepth int) *Resolver {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Resolver{graph: g, cache: cache, maxDepth: maxDepth}
}

// PathSource tells the caller whether a result came from the cache or
// from a live search.
type PathSource string

const (
	SourcePrecomputed PathSource = "precomputed"
	SourceComputed    PathSource = "computed"
)

// PathResult is the answer to a navigation query. When Found is false,
// Hint and ReachableFromSource help the caller recover.
type PathResult struct {
	From                string     `json:"from"`
	To                  string     `json:"to"`
	FromNormalized      string     `json:"from_normalized"`
	ToNormalized        string     `json:"to_normalized"`
	Found               bool       `json:"found"`
	Source              PathSource `json:"source,omitempty"`
	Steps               []Step     `json:"steps,omitempty"`
	Code                string     `json:"code,omitempty"`
	Description         string     `json:"description,omitempty"`
	Message             string     `json:"message,omitempty"`
	Hint                string     `json:"hint,omitempty"`
	ReachableFromSource []string   `json:"reachable_from_source,omitempty"`
}

// NormalizeName converts a friendly type name to interface form:
// "LexEntryOperations" and "LexEntry" both become "ILexEntry".
func NormalizeName(name string) string {
	name = strings.ReplaceAll(name, "Operations", "")
	if !strings.HasPrefix(name, "I") {
		name = "I" + name
	}
	return name
}

// FindPath resolves a path between two entity types. Both names are
// normalized first. An unresolvable pair yields Found=false with a
// hint, not an error.
func (r *Resolver) FindPath(from, to string) *PathResult {
	fromNorm := NormalizeName(from)
	toNorm := NormalizeName(to)

	result := &PathResult{
		From:           from,
		To:             to,
		FromNormalized: fromNorm,
		ToNormalized:   toNorm,
	}

	if path, ok := r.cache[PathKey(fromNorm, toNorm)]; ok {
		result.Found = true
		result.Source = SourcePrecomputed
		result.Steps = path.Steps
		result.Code = path.CodePattern
		result.Description = fmt.Sprintf("Navigate from %s to %s", fromNorm, toNorm)
		return result
	}

	steps := r.bfs(fromNorm, toNorm)
	if steps != nil {
		result.Found = true
		result.Source = SourceComputed
		result.Steps = steps
		result.Code = GenerateCodePattern(steps)
		plural := ""
		if len(steps) != 1 {
			plural = "s"
		}
		result.Description = fmt.Sprintf("Path found via BFS (%d step%s)", len(steps), plural)
		return result
	}

	result.Message = fmt.Sprintf("No navigation path found from %s to %s.", fromNorm, toNorm)
	result.Hint = "Try using get_object_api to explore the properties and relationships of these objects."
	result.ReachableFromSource = r.graph.Children(fromNorm, 5)
	return result
}

// bfs returns the shortest path by edge count, or nil. An empty
// non-nil slice means start and end are the same node.
func (r *Resolver) bfs(start, end string) []Step {
	if start == end {
		return []Step{}
	}

	type state struct {
		node string
		path []Step
	}
	queue := []state{{node: start}}
	visited := map[string]bool{start: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if len(cur.path) >= r.maxDepth {
			continue
		}

		for _, e := range r.graph.Edges(cur.node) {
			step := Step{From: cur.node, To: e.To, Via: e.Via, Type: e.Type}
			if e.To == end {
				return append(append([]Step{}, cur.path...), step)
			}
			if !visited[e.To] {
				visited[e.To] = true
				next := append(append([]Step{}, cur.path...), step)
				queue = append(queue, state{node: e.To, path: next})
			}
		}
	}

	return nil
}

// GenerateCodePattern renders a path as a FlexTools-style access
// snippet: sequence and collection hops become for loops, atomic hops
// become assignments.
func GenerateCodePattern(steps []Step) string {
	if len(steps) == 0 {
		return ""
	}

	var lines []string
	indent := ""
	currentVar := varName(steps[0].From)

	for _, step := range steps {
		if isCollectionProp(step.Via) {
			itemVar := varName(step.To)
			lines = append(lines, fmt.Sprintf("%sfor %s in %s.%s:", indent, itemVar, currentVar, step.Via))
			indent += "    "
			currentVar = itemVar
		} else {
			newVar := varName(step.To)
			lines = append(lines, fmt.Sprintf("%s%s = %s.%s", indent, newVar, currentVar, step.Via))
			currentVar = newVar
		}
	}

	lines = append(lines, fmt.Sprintf("%s# work with %s", indent, currentVar))
	return strings.Join(lines, "\n")
}

// varName derives a loop variable from a type name: lowercase with the
// first "i" dropped, so ILexEntry becomes lexentry.
func varName(typeName string) string {
	return strings.Replace(strings.ToLower(typeName), "i", "", 1)
}

func isCollectionProp(prop string) bool {
	for _, suf := range []string{"OS", "OC", "RS", "RC"} {
		if strings.HasSuffix(prop, suf) {
			return true
		}
	}
	return false
}
