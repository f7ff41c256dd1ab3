package ai

import (
	"encoding/json"
	"regexp"

	"github.com/synthpanel/focusgroup/internal/model/persona"
)

var listPattern = regexp.MustCompile(`(?s)\[.*?\]`)

// parseSelection extracts the first bracketed list from the raw model reply
// and resolves the names it contains to persona ids, preserving the model's
// speaking order. Unmatched names are dropped. Returns nil when nothing
// usable could be extracted; the caller falls back.
func parseSelection(raw string, personas []persona.Persona) []int {
	match := listPattern.FindString(raw)
	if match == "" {
		return nil
	}

	var names []string
	if err := json.Unmarshal([]byte(match), &names); err != nil {
		return nil
	}

	index := nameIndex(personas)
	var selected []int
	for _, name := range names {
		if id, ok := index[name]; ok {
			selected = append(selected, id)
		}
	}
	return selected
}

// nameIndex maps both full names and bare first names to persona ids. When
// two personas share a first name the later one wins; that ambiguity is
// inherited behavior, kept rather than disambiguated.
func nameIndex(personas []persona.Persona) map[string]int {
	index := make(map[string]int, len(personas)*2)
	for _, p := range personas {
		index[p.Name] = p.ID
		index[p.FirstName()] = p.ID
	}
	return index
}

// fallbackResponders is the circuit breaker for unparseable selection output:
// the first 3 personas in catalog order. It never fails.
func fallbackResponders(personas []persona.Persona) []int {
	n := len(personas)
	if n > 3 {
		n = 3
	}
	ids := make([]int, 0, n)
	for _, p := range personas[:n] {
		ids = append(ids, p.ID)
	}
	return ids
}
