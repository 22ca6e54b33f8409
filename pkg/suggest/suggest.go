// Package suggest is the core of searchkit: it turns a typed query into an
// ordered, capped list of typed suggestions drawn from the recent-search
// journal and a catalog source.
package suggest

// Kind tags a suggestion so hosts can pick an icon or badge for it.
type Kind string

const (
	KindQuery  Kind = "query"
	KindPost   Kind = "post"
	KindAuthor Kind = "author"
	KindTag    Kind = "tag"
)

// Metadata decorates a suggestion. Views and Author are only meaningful for
// post suggestions; Trending renders a badge on any kind.
type Metadata struct {
	Views    int    `json:"views,omitempty"`
	Trending bool   `json:"trending,omitempty"`
	Author   string `json:"author,omitempty"`
}

// Suggestion is a single ranked candidate. Produced fresh on every lookup
// pass, never mutated in place.
type Suggestion struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	Kind     Kind      `json:"kind"`
	Category string    `json:"category,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Source supplies catalog candidates for a query. Implementations must keep
// a stable order between calls for the same catalog: the engine does no
// scoring beyond placing recent searches first.
type Source interface {
	Lookup(query string, limit int) []Suggestion
}

// Recents exposes the recent-search texts the engine merges ahead of
// catalog matches. *journal.Journal satisfies it.
type Recents interface {
	Entries() []string
}
