// internal/sources/registry.go
package sources

import (
	"fmt"
	"regexp"
	"sort"
)

var registry = make(map[string]*Source)

// Register adds a source; called from adapter init() funcs.
func Register(s *Source) {
	if s == nil || s.ID == "" {
		panic("sources: Register with empty id")
	}
	if _, dup := registry[s.ID]; dup {
		panic(fmt.Sprintf("sources: duplicate id %q", s.ID))
	}
	registry[s.ID] = s
}

// Get returns the source for id.
func Get(id string) (*Source, error) {
	s, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown source %q", id)
	}
	return s, nil
}

// All returns registered sources sorted by id.
func All() []*Source {
	out := make([]*Source, 0, len(registry))
	for _, s := range registry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// BulkSection is one section of a document portal: an index page listing
// downloadable files matched by LinkPattern.
type BulkSection struct {
	Name        string
	IndexURL    string
	LinkPattern *regexp.Regexp
}

// BulkSource describes a policy-portal bulk download target.
type BulkSource struct {
	ID      string
	Name    string
	BaseURL string

	Sections []BulkSection
}

var bulkRegistry = make(map[string]*BulkSource)

// RegisterBulk adds a bulk download source.
func RegisterBulk(s *BulkSource) {
	if s == nil || s.ID == "" {
		panic("sources: RegisterBulk with empty id")
	}
	if _, dup := bulkRegistry[s.ID]; dup {
		panic(fmt.Sprintf("sources: duplicate bulk id %q", s.ID))
	}
	bulkRegistry[s.ID] = s
}

// GetBulk returns the bulk source for id.
func GetBulk(id string) (*BulkSource, error) {
	s, ok := bulkRegistry[id]
	if !ok {
		return nil, fmt.Errorf("unknown bulk source %q", id)
	}
	return s, nil
}

// AllBulk returns registered bulk sources sorted by id.
func AllBulk() []*BulkSource {
	out := make([]*BulkSource, 0, len(bulkRegistry))
	for _, s := range bulkRegistry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
