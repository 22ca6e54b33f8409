// Package facets maintains the filter selection that narrows search results
// orthogonally to the free-text query: multi-select category, author and tag
// sets plus single-select date and popularity buckets.
package facets

import (
	"errors"
	"sort"
)

// ErrInvalidFacetValue is returned when a bucket setter receives a value
// outside its enumerated set. The state is left unchanged.
var ErrInvalidFacetValue = errors.New("facets: invalid facet value")

// DateBucket restricts results to a publication window.
type DateBucket string

const (
	DateAny   DateBucket = "any"
	DateToday DateBucket = "today"
	DateWeek  DateBucket = "week"
	DateMonth DateBucket = "month"
	DateYear  DateBucket = "year"
)

// PopularityBucket orders results by an engagement signal.
type PopularityBucket string

const (
	PopularityAny      PopularityBucket = "any"
	PopularityViews    PopularityBucket = "views"
	PopularityLikes    PopularityBucket = "likes"
	PopularityComments PopularityBucket = "comments"
)

var dateBuckets = map[DateBucket]struct{}{
	DateAny: {}, DateToday: {}, DateWeek: {}, DateMonth: {}, DateYear: {},
}

var popularityBuckets = map[PopularityBucket]struct{}{
	PopularityAny: {}, PopularityViews: {}, PopularityLikes: {}, PopularityComments: {},
}

// State is a mutable facet selection. Each search bar instance owns its own
// State; it is not safe for concurrent use without external locking.
type State struct {
	categories map[string]struct{}
	authors    map[string]struct{}
	tags       map[string]struct{}
	date       DateBucket
	popularity PopularityBucket
}

// NewState returns a State with every facet at its default.
func NewState() *State {
	return &State{
		categories: make(map[string]struct{}),
		authors:    make(map[string]struct{}),
		tags:       make(map[string]struct{}),
		date:       DateAny,
		popularity: PopularityAny,
	}
}

func toggle(set map[string]struct{}, id string) {
	if _, ok := set[id]; ok {
		delete(set, id)
		return
	}
	set[id] = struct{}{}
}

// ToggleCategory adds the category if absent, removes it if present.
func (s *State) ToggleCategory(id string) { toggle(s.categories, id) }

// ToggleAuthor adds the author if absent, removes it if present.
func (s *State) ToggleAuthor(id string) { toggle(s.authors, id) }

// ToggleTag adds the tag if absent, removes it if present.
func (s *State) ToggleTag(id string) { toggle(s.tags, id) }

// HasCategory reports whether the category is selected.
func (s *State) HasCategory(id string) bool { _, ok := s.categories[id]; return ok }

// HasAuthor reports whether the author is selected.
func (s *State) HasAuthor(id string) bool { _, ok := s.authors[id]; return ok }

// HasTag reports whether the tag is selected.
func (s *State) HasTag(id string) bool { _, ok := s.tags[id]; return ok }

// SetDateBucket replaces the date bucket. Unknown values are rejected.
func (s *State) SetDateBucket(v DateBucket) error {
	if _, ok := dateBuckets[v]; !ok {
		return ErrInvalidFacetValue
	}
	s.date = v
	return nil
}

// SetPopularityBucket replaces the popularity bucket. Unknown values are rejected.
func (s *State) SetPopularityBucket(v PopularityBucket) error {
	if _, ok := popularityBuckets[v]; !ok {
		return ErrInvalidFacetValue
	}
	s.popularity = v
	return nil
}

// DateBucket returns the current date bucket.
func (s *State) DateBucket() DateBucket { return s.date }

// PopularityBucket returns the current popularity bucket.
func (s *State) PopularityBucket() PopularityBucket { return s.popularity }

// ActiveCount is recomputed on every call, never cached:
// selected set members plus one for each bucket away from its default.
func (s *State) ActiveCount() int {
	count := len(s.categories) + len(s.authors) + len(s.tags)
	if s.date != DateAny {
		count++
	}
	if s.popularity != PopularityAny {
		count++
	}
	return count
}

// Reset restores every facet to its default.
func (s *State) Reset() {
	s.categories = make(map[string]struct{})
	s.authors = make(map[string]struct{})
	s.tags = make(map[string]struct{})
	s.date = DateAny
	s.popularity = PopularityAny
}

// Snapshot is an immutable copy of a State, the form facets take when
// delivered to the host alongside a submitted query.
type Snapshot struct {
	Categories []string         `json:"categories"`
	Authors    []string         `json:"authors"`
	Tags       []string         `json:"tags"`
	Date       DateBucket       `json:"date"`
	Popularity PopularityBucket `json:"popularity"`
}

// Snapshot copies the current selection. Set members are sorted so equal
// selections always compare equal.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Categories: sortedKeys(s.categories),
		Authors:    sortedKeys(s.authors),
		Tags:       sortedKeys(s.tags),
		Date:       s.date,
		Popularity: s.popularity,
	}
}

// DefaultSnapshot is the snapshot of a fresh State. Delivered when advanced
// search is disabled on the bar.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Categories: []string{},
		Authors:    []string{},
		Tags:       []string{},
		Date:       DateAny,
		Popularity: PopularityAny,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
