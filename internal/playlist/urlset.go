package playlist

import "sort"

// URLSet is an insertion-order-preserving set of stream addresses. It
// keeps membership unique while remembering first-seen order, so output
// can be rendered either sorted or in original order.
type URLSet struct {
	seen  map[string]struct{}
	order []string
}

// NewURLSet returns a set seeded with the given addresses.
func NewURLSet(urls ...string) *URLSet {
	s := &URLSet{seen: make(map[string]struct{}, len(urls))}
	for _, u := range urls {
		s.Add(u)
	}
	return s
}

// Add inserts url and reports whether it was not already present.
func (s *URLSet) Add(url string) bool {
	if s.Contains(url) {
		return false
	}
	s.seen[url] = struct{}{}
	s.order = append(s.order, url)
	return true
}

// AddAll unions other into s, preserving s's existing order.
func (s *URLSet) AddAll(other *URLSet) {
	if other == nil {
		return
	}
	for _, u := range other.order {
		s.Add(u)
	}
}

// Contains reports membership.
func (s *URLSet) Contains(url string) bool {
	_, ok := s.seen[url]
	return ok
}

// Len returns the number of distinct addresses.
func (s *URLSet) Len() int {
	return len(s.order)
}

// Ordered returns the addresses in first-seen order.
func (s *URLSet) Ordered() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Sorted returns the addresses in lexicographic order.
func (s *URLSet) Sorted() []string {
	out := s.Ordered()
	sort.Strings(out)
	return out
}
