package suggest

import (
	"fmt"

	"github.com/quillboard/searchkit/internal/utils"
)

// DefaultLimit caps the combined suggestion list.
const DefaultLimit = 8

// Engine merges recent-search matches with catalog matches. Recents come
// first in recency order, catalog entries after in source order; the
// combined list is truncated to the limit. There is no further scoring.
type Engine struct {
	source  Source
	recents Recents
	limit   int
}

// NewEngine builds an engine over a catalog source and an optional recents
// provider. A limit <= 0 falls back to DefaultLimit.
func NewEngine(source Source, recents Recents, limit int) *Engine {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Engine{source: source, recents: recents, limit: limit}
}

// Limit returns the configured cap.
func (e *Engine) Limit() int { return e.limit }

// Lookup returns the ordered suggestion list for query. An empty query
// (after trimming) yields nil, which callers treat as "close the panel" as
// opposed to a non-empty query with no matches.
func (e *Engine) Lookup(query string) []Suggestion {
	q := utils.CleanQuery(query)
	if q == "" {
		return nil
	}

	var out []Suggestion
	if e.recents != nil {
		for i, recent := range e.recents.Entries() {
			if !utils.ContainsFold(recent, q) {
				continue
			}
			out = append(out, Suggestion{
				ID:   fmt.Sprintf("recent-%d", i),
				Text: recent,
				Kind: KindQuery,
			})
		}
	}
	if e.source != nil {
		out = append(out, e.source.Lookup(q, e.limit)...)
	}
	if len(out) > e.limit {
		out = out[:e.limit]
	}
	return out
}
