// internal/dedup/quota.go
package dedup

// Quota tracks per-category item counts against a maximum. Checked before
// extraction begins for a candidate.
type Quota struct {
	max    int
	counts map[string]int
}

// NewQuota creates quota counters with a shared per-category maximum.
// A non-positive max means unlimited.
func NewQuota(max int) *Quota {
	return &Quota{max: max, counts: make(map[string]int)}
}

// Allow reports whether category can accept another record.
func (q *Quota) Allow(category string) bool {
	if q.max <= 0 {
		return true
	}
	return q.counts[category] < q.max
}

// Inc records one emitted record for category.
func (q *Quota) Inc(category string) {
	q.counts[category]++
}

// Count returns the emitted count for category.
func (q *Quota) Count(category string) int { return q.counts[category] }

// Total returns the overall emitted count.
func (q *Quota) Total() int {
	total := 0
	for _, n := range q.counts {
		total += n
	}
	return total
}
