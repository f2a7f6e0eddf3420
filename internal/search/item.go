// Package search implements ranked lookup over the loaded corpora:
// a lexical scoring path with synonym and suffix expansion, and an
// optional vector path backed by a precomputed embedding index.
package search

// ItemKind classifies what a search item points at.
type ItemKind string

const (
	KindMethod   ItemKind = "method"
	KindProperty ItemKind = "property"
	KindEntity   ItemKind = "entity"
)

// Item is one ranked search result.
type Item struct {
	Score       float64  `json:"score"`
	Source      string   `json:"source"`
	Entity      string   `json:"entity"`
	Name        string   `json:"name"`
	Type        ItemKind `json:"type"`
	Signature   string   `json:"signature,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
}
