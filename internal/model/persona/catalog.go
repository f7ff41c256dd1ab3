package persona

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Catalog exposes audience retrieval for the orchestrator and HTTP handlers.
type Catalog interface {
	List() ([]Summary, error)
	Load(audienceID string) (Audience, error)
}

type catalogFile struct {
	Audiences map[string]audienceRecord `json:"audiences"`
}

type audienceRecord struct {
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Personas    []Persona `json:"personas"`
}

// FileCatalog reads audiences from a static JSON file. The file is re-read on
// every call: the service holds no state between requests, so two concurrent
// calls can never observe each other's view of the catalog.
type FileCatalog struct {
	path string
}

// NewFileCatalog returns a catalog backed by the JSON file at path.
func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{path: path}
}

func (c *FileCatalog) read() (catalogFile, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return catalogFile{}, fmt.Errorf("failed to read audience catalog %s: %w", c.path, err)
	}

	var parsed catalogFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return catalogFile{}, fmt.Errorf("failed to parse audience catalog %s: %w", c.path, err)
	}
	return parsed, nil
}

// List returns a summary for every audience in the catalog, ordered by id.
func (c *FileCatalog) List() ([]Summary, error) {
	parsed, err := c.read()
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(parsed.Audiences))
	for id, record := range parsed.Audiences {
		summaries = append(summaries, Summary{
			ID:           id,
			Category:     record.Category,
			Description:  record.Description,
			PersonaCount: len(record.Personas),
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

// Load returns the full audience for audienceID, or a NotFoundError that
// enumerates the valid ids.
func (c *FileCatalog) Load(audienceID string) (Audience, error) {
	parsed, err := c.read()
	if err != nil {
		return Audience{}, err
	}

	record, ok := parsed.Audiences[audienceID]
	if !ok {
		return Audience{}, &NotFoundError{Resource: "audience", ID: audienceID, Available: audienceIDs(parsed)}
	}

	return Audience{
		ID:          audienceID,
		Category:    record.Category,
		Description: record.Description,
		Personas:    record.Personas,
	}, nil
}

func audienceIDs(parsed catalogFile) []string {
	ids := make([]string, 0, len(parsed.Audiences))
	for id := range parsed.Audiences {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MemoryCatalog implements Catalog over an in-memory audience list, used as
// the built-in seed when no catalog file is configured, and by tests.
type MemoryCatalog struct {
	items []Audience
}

// NewMemoryCatalog returns a MemoryCatalog preloaded with the supplied audiences.
func NewMemoryCatalog(items []Audience) *MemoryCatalog {
	return &MemoryCatalog{items: append([]Audience(nil), items...)}
}

// List returns a summary per audience in stored order.
func (c *MemoryCatalog) List() ([]Summary, error) {
	summaries := make([]Summary, 0, len(c.items))
	for _, a := range c.items {
		summaries = append(summaries, Summary{
			ID:           a.ID,
			Category:     a.Category,
			Description:  a.Description,
			PersonaCount: len(a.Personas),
		})
	}
	return summaries, nil
}

// Load looks up an audience by identifier.
func (c *MemoryCatalog) Load(audienceID string) (Audience, error) {
	for _, a := range c.items {
		if a.ID == audienceID {
			return a, nil
		}
	}

	ids := make([]string, 0, len(c.items))
	for _, a := range c.items {
		ids = append(ids, a.ID)
	}
	return Audience{}, &NotFoundError{Resource: "audience", ID: audienceID, Available: ids}
}
