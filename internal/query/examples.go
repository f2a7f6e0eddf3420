package query

import "strings"

// DefaultExampleLimit caps find_examples results.
const DefaultExampleLimit = 5

// operationVerbs maps an operation class to the method-name fragments
// that identify it.
var operationVerbs = map[string][]string{
	"create":  {"create", "add", "new"},
	"read":    {"get", "find", "fetch"},
	"update":  {"set", "update", "modify"},
	"delete":  {"delete", "remove"},
	"iterate": {"getall", "list", "iterate"},
	"search":  {"find", "search", "query"},
}

// ExamplesRequest filters the example corpus.
type ExamplesRequest struct {
	MethodName    string
	OperationType string
	ObjectType    string
	MaxResults    int
}

// Example is one method with usage code attached.
type Example struct {
	Class       string `json:"class"`
	Method      string `json:"method"`
	Signature   string `json:"signature,omitempty"`
	Description string `json:"description,omitempty"`
	Example     string `json:"example"`
}

// ExamplesResult is the find_examples answer.
type ExamplesResult struct {
	Query        ExamplesRequest `json:"query"`
	ResultsCount int             `json:"results_count"`
	Examples     []Example       `json:"examples"`
}

// FindExamples returns methods carrying example code, filtered by
// method name substring, operation class, and entity substring. Only
// the flexlibs2 corpus carries examples.
func (e *Engine) FindExamples(req ExamplesRequest) ExamplesResult {
	if req.MaxResults <= 0 {
		req.MaxResults = DefaultExampleLimit
	}
	s := e.snapshot()

	result := ExamplesResult{Query: req, Examples: []Example{}}
	if s.set.Flexlibs2 == nil {
		return result
	}

	methodNeedle := strings.ToLower(req.MethodName)
	objectNeedle := strings.ToLower(req.ObjectType)
	verbs := operationVerbs[req.OperationType]

outer:
	for _, entityName := range s.set.Flexlibs2.EntityNames() {
		if objectNeedle != "" && !strings.Contains(strings.ToLower(entityName), objectNeedle) {
			continue
		}
		ent := s.set.Flexlibs2.Entities[entityName]
		for i := range ent.Methods {
			m := &ent.Methods[i]
			if m.Example == "" {
				continue
			}
			nameLower := strings.ToLower(m.Name)
			if methodNeedle != "" && !strings.Contains(nameLower, methodNeedle) {
				continue
			}
			if req.OperationType != "" && !matchesVerb(nameLower, verbs) {
				continue
			}
			result.Examples = append(result.Examples, Example{
				Class:       entityName,
				Method:      m.Name,
				Signature:   m.Signature,
				Description: m.ShortDescription(),
				Example:     m.Example,
			})
			if len(result.Examples) >= req.MaxResults {
				break outer
			}
		}
	}

	result.ResultsCount = len(result.Examples)
	return result
}

func matchesVerb(nameLower string, verbs []string) bool {
	for _, v := range verbs {
		if strings.Contains(nameLower, v) {
			return true
		}
	}
	return false
}
