// internal/dedup/dedup.go
package dedup

// Set is the per-run seen-URL set. Insertion-only; discarded at run end.
type Set struct {
	seen map[string]struct{}
}

// NewSet creates an empty dedup set.
func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Add inserts url and reports whether it was new. A false return means the
// candidate must be skipped.
func (s *Set) Add(url string) bool {
	if _, ok := s.seen[url]; ok {
		return false
	}
	s.seen[url] = struct{}{}
	return true
}

// Seen reports whether url has been added.
func (s *Set) Seen(url string) bool {
	_, ok := s.seen[url]
	return ok
}

// Len returns the number of distinct URLs seen.
func (s *Set) Len() int { return len(s.seen) }
