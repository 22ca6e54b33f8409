package searchbar

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillboard/searchkit/internal/storage"
	"github.com/quillboard/searchkit/pkg/facets"
	"github.com/quillboard/searchkit/pkg/journal"
	"github.com/quillboard/searchkit/pkg/suggest"
)

const (
	testDebounce = 40 * time.Millisecond
	waitFor      = 3 * time.Second
	tick         = 5 * time.Millisecond
)

// countingSource records every lookup it serves and answers with a single
// suggestion echoing the query.
type countingSource struct {
	mu      sync.Mutex
	queries []string
}

func (c *countingSource) Lookup(q string, limit int) []suggest.Suggestion {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries = append(c.queries, q)
	return []suggest.Suggestion{{ID: "echo", Text: q, Kind: suggest.KindQuery}}
}

func (c *countingSource) served() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.queries))
	copy(out, c.queries)
	return out
}

// gatedSource blocks each lookup until its per-query gate is released, so a
// test can decide resolution order independent of initiation order.
type gatedSource struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started []string
}

func newGatedSource(queries ...string) *gatedSource {
	g := &gatedSource{gates: make(map[string]chan struct{})}
	for _, q := range queries {
		g.gates[q] = make(chan struct{})
	}
	return g
}

func (g *gatedSource) Lookup(q string, limit int) []suggest.Suggestion {
	g.mu.Lock()
	g.started = append(g.started, q)
	gate := g.gates[q]
	g.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return []suggest.Suggestion{{ID: q, Text: q, Kind: suggest.KindQuery}}
}

func (g *gatedSource) startedQueries() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.started))
	copy(out, g.started)
	return out
}

func (g *gatedSource) release(q string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	close(g.gates[q])
}

type call struct {
	query   string
	filters facets.Snapshot
}

func testOptions(calls *[]call) Options {
	opts := DefaultOptions()
	opts.Debounce = testDebounce
	opts.Latency = 0
	opts.OnSearch = func(q string, f facets.Snapshot) {
		*calls = append(*calls, call{query: q, filters: f})
	}
	return opts
}

func newTestBar(source suggest.Source, calls *[]call) (*Bar, *journal.Journal) {
	jr := journal.New(storage.NewMemStore())
	engine := suggest.NewEngine(source, jr, 0)
	return New(engine, jr, testOptions(calls)), jr
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func TestDebounceCollapsesBursts(t *testing.T) {
	source := &countingSource{}
	var calls []call
	bar, _ := newTestBar(source, &calls)

	bar.SetText("r")
	bar.SetText("re")
	bar.SetText("rea")

	require.Eventually(t, func() bool {
		s := bar.Suggestions()
		return bar.PanelOpen() && len(s) == 1 && s[0].Text == "rea"
	}, waitFor, tick)

	assert.Equal(t, []string{"rea"}, source.served(),
		"a burst of keystrokes must produce exactly one lookup, with the last text")
	assert.Empty(t, calls, "debounce-only passes never reach the host")
}

func TestLastInitiatedWins(t *testing.T) {
	source := newGatedSource("aa", "bb")
	var calls []call
	bar, _ := newTestBar(source, &calls)

	bar.SetText("aa")
	require.Eventually(t, func() bool {
		return contains(source.startedQueries(), "aa")
	}, waitFor, tick)

	bar.SetText("bb")
	require.Eventually(t, func() bool {
		return contains(source.startedQueries(), "bb")
	}, waitFor, tick)

	// The newer pass resolves first and is applied.
	source.release("bb")
	require.Eventually(t, func() bool {
		s := bar.Suggestions()
		return len(s) == 1 && s[0].Text == "bb" && !bar.Searching()
	}, waitFor, tick)

	// The older pass resolves later and must be discarded.
	source.release("aa")
	time.Sleep(4 * testDebounce)
	s := bar.Suggestions()
	require.Len(t, s, 1)
	assert.Equal(t, "bb", s[0].Text)
}

func TestSubmitInvalidatesInFlightLookup(t *testing.T) {
	source := newGatedSource("aa")
	var calls []call
	bar, _ := newTestBar(source, &calls)

	bar.SetText("aa")
	require.Eventually(t, func() bool {
		return contains(source.startedQueries(), "aa")
	}, waitFor, tick)

	require.True(t, bar.Submit())
	assert.False(t, bar.PanelOpen())

	// A stale lookup resolving after submit must not reopen the panel.
	source.release("aa")
	time.Sleep(4 * testDebounce)
	assert.False(t, bar.PanelOpen())
	assert.Empty(t, bar.Suggestions())
}

func TestDeleteToEmptyInvalidatesInFlightLookup(t *testing.T) {
	source := newGatedSource("blog")
	var calls []call
	bar, _ := newTestBar(source, &calls)

	bar.SetText("blog")
	require.Eventually(t, func() bool {
		return contains(source.startedQueries(), "blog")
	}, waitFor, tick)

	bar.SetText("")
	require.Eventually(t, func() bool {
		return !bar.PanelOpen() && !bar.Searching()
	}, waitFor, tick)

	// The older lookup resolves after the empty pass closed the panel and
	// must be discarded, not reopen it.
	source.release("blog")
	time.Sleep(4 * testDebounce)
	assert.False(t, bar.PanelOpen())
	assert.Empty(t, bar.Suggestions())
}

func TestSubmitCancelsFiredButUnrunDebounce(t *testing.T) {
	source := &countingSource{}
	var calls []call
	opts := testOptions(&calls)
	// A tiny debounce makes the timer fire around the submit, covering both
	// orderings of the callback and the submission.
	opts.Debounce = time.Nanosecond

	const rounds = 50
	for i := 0; i < rounds; i++ {
		jr := journal.New(storage.NewMemStore())
		bar := New(suggest.NewEngine(source, jr, 0), jr, opts)

		bar.SetText("blog")
		require.True(t, bar.Submit())

		time.Sleep(2 * time.Millisecond)
		assert.False(t, bar.PanelOpen(),
			"a debounce pass scheduled before submit must not reopen the panel")
		assert.Empty(t, bar.Suggestions())
	}
	assert.Len(t, calls, rounds)
}

func TestSubmitDeliversOnceAndRecords(t *testing.T) {
	var calls []call
	bar, jr := newTestBar(&countingSource{}, &calls)

	bar.SetText("react hooks")
	require.True(t, bar.Submit())

	require.Len(t, calls, 1)
	assert.Equal(t, "react hooks", calls[0].query)
	assert.Equal(t, facets.DefaultSnapshot(), calls[0].filters)
	assert.Equal(t, []string{"react hooks"}, jr.Entries())
}

func TestSubmitEmptyIsNoOp(t *testing.T) {
	var calls []call
	bar, jr := newTestBar(&countingSource{}, &calls)

	bar.SetText("   ")
	assert.False(t, bar.Submit())

	assert.Empty(t, calls)
	assert.Zero(t, jr.Len())
}

func TestSelectAdoptsSuggestion(t *testing.T) {
	catalog := suggest.NewCatalog([]suggest.Suggestion{
		{ID: "p1", Text: "Getting Started with React Hooks", Kind: suggest.KindPost},
	})
	var calls []call
	bar, jr := newTestBar(catalog, &calls)

	bar.SetText("react hooks")
	require.Eventually(t, func() bool {
		s := bar.Suggestions()
		return len(s) == 1 && s[0].ID == "p1"
	}, waitFor, tick)

	bar.Select(bar.Suggestions()[0])

	assert.Equal(t, "Getting Started with React Hooks", bar.Text())
	assert.False(t, bar.PanelOpen())
	require.Len(t, calls, 1)
	assert.Equal(t, "Getting Started with React Hooks", calls[0].query)
	assert.Equal(t, facets.DefaultSnapshot(), calls[0].filters)
	assert.Equal(t, []string{"Getting Started with React Hooks"}, jr.Entries())
}

func TestSubmittedFacetsReachTheHost(t *testing.T) {
	var calls []call
	bar, _ := newTestBar(&countingSource{}, &calls)

	bar.Facets().ToggleCategory("technology")
	bar.Facets().ToggleTag("SEO")
	require.NoError(t, bar.Facets().SetDateBucket(facets.DateWeek))

	bar.SetText("ai")
	require.True(t, bar.Submit())

	require.Len(t, calls, 1)
	assert.Equal(t, []string{"technology"}, calls[0].filters.Categories)
	assert.Equal(t, []string{"SEO"}, calls[0].filters.Tags)
	assert.Equal(t, facets.DateWeek, calls[0].filters.Date)
	assert.Equal(t, 3, bar.Facets().ActiveCount())
}

func TestDisabledAdvancedSearchDeliversDefaults(t *testing.T) {
	source := &countingSource{}
	var calls []call
	opts := testOptions(&calls)
	opts.EnableAdvancedSearch = false

	jr := journal.New(storage.NewMemStore())
	bar := New(suggest.NewEngine(source, jr, 0), jr, opts)

	// Even a mutated store must not leak through when the affordance is off.
	bar.Facets().ToggleCategory("travel")
	bar.SetText("blog")
	require.True(t, bar.Submit())

	require.Len(t, calls, 1)
	assert.Equal(t, facets.DefaultSnapshot(), calls[0].filters)
	assert.False(t, bar.AdvancedSearchEnabled())
}

func TestClearResetsPanelNotFacets(t *testing.T) {
	var calls []call
	bar, _ := newTestBar(&countingSource{}, &calls)
	bar.Facets().ToggleAuthor("Sarah Chen")

	bar.SetText("blog")
	require.Eventually(t, bar.PanelOpen, waitFor, tick)

	bar.Clear()

	assert.Empty(t, bar.Text())
	assert.Empty(t, bar.Suggestions())
	assert.False(t, bar.PanelOpen())
	assert.True(t, bar.Facets().HasAuthor("Sarah Chen"))
}

func TestEmptyQueryClosesPanel(t *testing.T) {
	var calls []call
	bar, _ := newTestBar(&countingSource{}, &calls)

	bar.SetText("blog")
	require.Eventually(t, bar.PanelOpen, waitFor, tick)

	bar.SetText("")
	require.Eventually(t, func() bool {
		return !bar.PanelOpen() && len(bar.Suggestions()) == 0
	}, waitFor, tick)
	assert.False(t, bar.EmptyState())
}

func TestNoMatchesShowsEmptyState(t *testing.T) {
	catalog := suggest.NewCatalog(nil)
	var calls []call
	bar, _ := newTestBar(catalog, &calls)

	bar.SetText("xyzzy")
	require.Eventually(t, bar.EmptyState, waitFor, tick)
	assert.True(t, bar.PanelOpen())
}

func TestRecentSearchesShortcut(t *testing.T) {
	var calls []call
	bar, _ := newTestBar(&countingSource{}, &calls)

	for _, q := range []string{"one", "two", "three", "four"} {
		bar.SetText(q)
		require.True(t, bar.Submit())
	}

	assert.Equal(t, []string{"four", "three", "two"}, bar.RecentSearches(3))
}

func TestJournalLoadsOnConstruction(t *testing.T) {
	store := storage.NewMemStore()
	require.NoError(t, store.Set(journal.DefaultKey, `["persisted query"]`))

	jr := journal.New(store)
	var calls []call
	bar := New(suggest.NewEngine(suggest.NewCatalog(nil), jr, 0), jr, testOptions(&calls))

	assert.Equal(t, []string{"persisted query"}, bar.RecentSearches(5))
}
