package persona

import (
	"fmt"
	"strings"
)

// NotFoundError reports an unknown audience or persona identifier. For
// audiences it also carries the set of valid ids so the caller can correct
// the request.
type NotFoundError struct {
	Resource  string // "audience" or "persona"
	ID        string
	Available []string
}

func (e *NotFoundError) Error() string {
	if len(e.Available) > 0 {
		return fmt.Sprintf("%s %q not found. Available: %s", e.Resource, e.ID, strings.Join(e.Available, ", "))
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}
