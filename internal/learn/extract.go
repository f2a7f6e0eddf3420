package learn

import "regexp"

// Pattern keys are derived from executed code with structural
// heuristics, not parsing: calls through an Operations wrapper, direct
// calls on the project object, and relationship-suffix property access.
var (
	operationsCall = regexp.MustCompile(`\b(\w+Operations)\.(\w+)`)
	projectCall    = regexp.MustCompile(`\bproject\.(\w+)\(`)
	suffixAccess   = regexp.MustCompile(`\.(\w+(?:OA|OS|OC|RA|RS|RC))\b`)
)

// ExtractPatterns returns the deduplicated pattern keys found in a
// piece of executed code, in first-seen order.
func ExtractPatterns(code string) []string {
	seen := make(map[string]bool)
	var keys []string
	add := func(key string) {
		if key != "" && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	for _, m := range operationsCall.FindAllStringSubmatch(code, -1) {
		add(m[1] + "." + m[2])
	}
	for _, m := range projectCall.FindAllStringSubmatch(code, -1) {
		add("FLExProject." + m[1])
	}
	for _, m := range suffixAccess.FindAllStringSubmatch(code, -1) {
		add("*." + m[1])
	}

	return keys
}
