// Package searchbar composes the query input controller: it owns the
// visible text, debounces keystrokes into suggestion lookups, applies only
// the most recently initiated lookup's result, and delivers submitted
// queries to the host exactly once together with the facet selection.
package searchbar

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quillboard/searchkit/internal/logger"
	"github.com/quillboard/searchkit/internal/utils"
	"github.com/quillboard/searchkit/pkg/facets"
	"github.com/quillboard/searchkit/pkg/journal"
	"github.com/quillboard/searchkit/pkg/suggest"
)

const (
	// DefaultDebounce is the quiet period after the last keystroke before a
	// suggestion lookup runs.
	DefaultDebounce = 300 * time.Millisecond

	// DefaultLatency simulates the backend round trip of a lookup pass.
	DefaultLatency = 300 * time.Millisecond
)

// Options configures a Bar. Use DefaultOptions as the starting point.
type Options struct {
	Debounce             time.Duration
	Latency              time.Duration
	EnableAdvancedSearch bool

	// OnSearch is the host callback, fired exactly once per explicit submit
	// or suggestion selection, never for debounce-only lookup passes.
	OnSearch func(query string, filters facets.Snapshot)
}

// DefaultOptions mirrors the hosted client's defaults.
func DefaultOptions() Options {
	return Options{
		Debounce:             DefaultDebounce,
		Latency:              DefaultLatency,
		EnableAdvancedSearch: true,
	}
}

// Bar is one search bar instance. All state is instance-scoped; two bars on
// the same page never share anything but the injected store and catalog.
type Bar struct {
	mu      sync.Mutex
	opts    Options
	engine  *suggest.Engine
	journal *journal.Journal
	facets  *facets.State
	log     *log.Logger

	text        string
	timer       *time.Timer
	gen         uint64
	seq         uint64
	searching   bool
	open        bool
	suggestions []suggest.Suggestion
}

// New builds a Bar and loads the journal once. Both engine and jr may be
// nil for a bare controller, though a useful bar has both.
func New(engine *suggest.Engine, jr *journal.Journal, opts Options) *Bar {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Latency < 0 {
		opts.Latency = 0
	}
	b := &Bar{
		opts:    opts,
		engine:  engine,
		journal: jr,
		facets:  facets.NewState(),
		log:     logger.New("searchbar"),
	}
	if jr != nil {
		jr.Load()
	}
	return b
}

// SetText stores the new text immediately and schedules a debounced lookup.
// Each call replaces the pending timer, so only the last keystroke in a
// burst triggers a lookup.
func (b *Bar) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
	if b.timer != nil {
		b.timer.Stop()
	}
	b.gen++
	gen := b.gen
	b.timer = time.AfterFunc(b.opts.Debounce, func() {
		b.lookup(text, gen)
	})
}

// lookup starts a suggestion pass for text. The pass is tagged with a
// sequence number at initiation; only the highest-numbered pass may apply
// its result.
func (b *Bar) lookup(text string, gen uint64) {
	q := utils.CleanQuery(text)
	b.mu.Lock()
	if gen != b.gen {
		// Stop on an already fired timer cannot retract its callback; a pass
		// whose scheduling keystroke has been superseded, submitted or
		// cleared must not run at all.
		b.mu.Unlock()
		return
	}
	if q == "" {
		// Empty query closes the panel outright, which is a different state
		// from a non-empty query with zero matches. The empty pass is itself
		// the latest pass, so any older lookup still in flight is now stale.
		b.seq++
		b.suggestions = nil
		b.open = false
		b.searching = false
		b.mu.Unlock()
		return
	}
	b.seq++
	seq := b.seq
	b.searching = true
	b.mu.Unlock()

	go b.resolve(seq, q)
}

func (b *Bar) resolve(seq uint64, q string) {
	if b.opts.Latency > 0 {
		time.Sleep(b.opts.Latency)
	}
	var results []suggest.Suggestion
	if b.engine != nil {
		results = b.engine.Lookup(q)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.seq {
		b.log.Debugf("dropping stale lookup %d, latest is %d", seq, b.seq)
		return
	}
	b.suggestions = results
	b.open = true
	b.searching = false
}

// Submit cancels any pending debounce, records the current text to the
// journal and delivers it to the host. Empty trimmed text is a no-op.
// Returns whether a search was delivered.
func (b *Bar) Submit() bool {
	b.mu.Lock()
	q := utils.CleanQuery(b.text)
	if q == "" {
		b.mu.Unlock()
		return false
	}
	b.finishInteraction()
	if b.journal != nil {
		b.journal.Record(q)
	}
	cb := b.opts.OnSearch
	snap := b.snapshotLocked()
	b.mu.Unlock()

	if cb != nil {
		cb(q, snap)
	}
	return true
}

// Select adopts a suggestion as the submitted query: the text becomes the
// suggestion's text, the journal records it, and the host is notified once.
func (b *Bar) Select(s suggest.Suggestion) {
	b.mu.Lock()
	b.text = s.Text
	b.finishInteraction()
	if b.journal != nil {
		b.journal.Record(s.Text)
	}
	cb := b.opts.OnSearch
	snap := b.snapshotLocked()
	b.mu.Unlock()

	if cb != nil {
		cb(s.Text, snap)
	}
}

// Clear resets the text and suggestion panel. Facets are untouched.
func (b *Bar) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = ""
	b.suggestions = nil
	b.finishInteraction()
}

// finishInteraction closes the panel and invalidates any pending or
// in-flight lookup. Bumping gen stops a scheduled pass from ever starting;
// bumping seq means a pass already started can no longer apply its result.
// Callers hold b.mu.
func (b *Bar) finishInteraction() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.gen++
	b.seq++
	b.open = false
	b.searching = false
}

func (b *Bar) snapshotLocked() facets.Snapshot {
	if !b.opts.EnableAdvancedSearch {
		// Facet UI is not mounted; the host still receives a (default)
		// selection on every search for interface consistency.
		return facets.DefaultSnapshot()
	}
	return b.facets.Snapshot()
}

// Text returns the current input text.
func (b *Bar) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Suggestions returns a copy of the visible suggestion list.
func (b *Bar) Suggestions() []suggest.Suggestion {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]suggest.Suggestion, len(b.suggestions))
	copy(out, b.suggestions)
	return out
}

// Searching reports whether a lookup pass is in flight.
func (b *Bar) Searching() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.searching
}

// PanelOpen reports whether the suggestion panel is visible.
func (b *Bar) PanelOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// EmptyState reports whether the panel should show the "no results" message:
// open, resolved, and nothing matched a non-empty query.
func (b *Bar) EmptyState() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open && !b.searching && len(b.suggestions) == 0
}

// RecentSearches returns up to n journal entries for the shortcut list shown
// under an empty input.
func (b *Bar) RecentSearches(n int) []string {
	if b.journal == nil {
		return nil
	}
	return b.journal.Head(n)
}

// Facets exposes the facet store. Hosts mutate it from their event loop;
// the bar itself only reads it when snapshotting a submission.
func (b *Bar) Facets() *facets.State { return b.facets }

// AdvancedSearchEnabled reports whether the facet affordance is mounted.
func (b *Bar) AdvancedSearchEnabled() bool { return b.opts.EnableAdvancedSearch }
