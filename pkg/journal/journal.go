// Package journal keeps the capped, deduplicated history of submitted
// queries. Entries persist across sessions through a pluggable store; every
// storage failure is absorbed here so the in-memory list stays authoritative.
package journal

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/quillboard/searchkit/internal/logger"
)

// Store is the durable key-value contract the journal persists through.
// Get reports whether the key exists; a missing key is not an error.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

const (
	// DefaultKey matches the storage key the original web client used, so a
	// migrated payload loads unchanged.
	DefaultKey = "recentSearches"

	// DefaultCap bounds the journal; the oldest entry is evicted at capacity.
	DefaultCap = 5
)

// Journal is a most-recent-first list of submitted query texts.
// Not safe for concurrent use; the owning search bar serializes access.
type Journal struct {
	store   Store
	key     string
	cap     int
	loaded  bool
	entries []string
	log     *log.Logger
}

// New creates a journal over store. A nil store degrades to session-only
// operation. Call Load before first use to pull persisted entries.
func New(store Store) *Journal {
	return &Journal{
		store: store,
		key:   DefaultKey,
		cap:   DefaultCap,
		log:   logger.New("journal"),
	}
}

// NewWithCap creates a journal with a custom capacity, min 1.
func NewWithCap(store Store, cap int) *Journal {
	j := New(store)
	if cap > 0 {
		j.cap = cap
	}
	return j
}

// Load populates the journal from the store once; later calls are no-ops, so
// the owning component and the process wiring may both call it at mount.
// Missing or corrupt payloads silently leave the journal empty; the component
// never fails to start over bad history data.
func (j *Journal) Load() {
	if j.loaded {
		return
	}
	j.loaded = true
	if j.store == nil {
		return
	}
	raw, ok, err := j.store.Get(j.key)
	if err != nil {
		j.log.Warnf("loading recent searches: %v", err)
		return
	}
	if !ok || raw == "" {
		return
	}
	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		j.log.Warnf("discarding corrupt recent searches payload: %v", err)
		return
	}
	if len(entries) > j.cap {
		entries = entries[:j.cap]
	}
	j.entries = entries
}

// Record trims text and inserts it at the front. A duplicate (case
// sensitive) moves to the front instead of appearing twice; the tail is
// evicted past capacity. Empty text after trimming is a no-op.
// Returns whether an entry was recorded.
func (j *Journal) Record(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	next := make([]string, 0, len(j.entries)+1)
	next = append(next, text)
	for _, e := range j.entries {
		if e != text {
			next = append(next, e)
		}
	}
	if len(next) > j.cap {
		next = next[:j.cap]
	}
	j.entries = next
	j.persist()
	return true
}

// persist writes the whole list back. Failures are logged and swallowed:
// durable history is best-effort, the session keeps its in-memory copy.
func (j *Journal) persist() {
	if j.store == nil {
		return
	}
	data, err := json.Marshal(j.entries)
	if err != nil {
		j.log.Warnf("encoding recent searches: %v", err)
		return
	}
	if err := j.store.Set(j.key, string(data)); err != nil {
		j.log.Warnf("persisting recent searches: %v", err)
	}
}

// Entries returns a copy of the journal, most recent first.
func (j *Journal) Entries() []string {
	out := make([]string, len(j.entries))
	copy(out, j.entries)
	return out
}

// Head returns at most n entries from the front. The shortcut list shown
// under an empty input uses this.
func (j *Journal) Head(n int) []string {
	if n > len(j.entries) {
		n = len(j.entries)
	}
	if n < 0 {
		n = 0
	}
	out := make([]string, n)
	copy(out, j.entries[:n])
	return out
}

// Len returns the number of recorded entries.
func (j *Journal) Len() int { return len(j.entries) }
