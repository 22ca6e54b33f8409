// Package cli is a line-based interface for testing the suggestion pipeline
// without a host UI.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/quillboard/searchkit/pkg/facets"
	"github.com/quillboard/searchkit/pkg/journal"
	"github.com/quillboard/searchkit/pkg/suggest"
)

// InputHandler reads queries from stdin and prints ranked suggestions.
// Typing a bare number selects the suggestion at that position from the
// previous lookup, which records it to the journal the way a click would.
type InputHandler struct {
	engine  *suggest.Engine
	journal *journal.Journal
	state   *facets.State
	last    []suggest.Suggestion
}

// NewInputHandler wires the CLI over an engine and journal.
func NewInputHandler(engine *suggest.Engine, jr *journal.Journal) *InputHandler {
	return &InputHandler{
		engine:  engine,
		journal: jr,
		state:   facets.NewState(),
	}
}

// Start begins the interface loop. Terminates when stdin closes.
func (h *InputHandler) Start() error {
	log.Print("searchkit CLI")
	log.Print("type a query and press Enter; a bare number selects that suggestion")
	log.Print("commands: :recents  :filters  :submit <text>  (Ctrl+C to exit)")
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Fprint(os.Stderr, "> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			h.printRecents()
			continue
		}
		h.handleInput(line)
	}
}

func (h *InputHandler) handleInput(line string) {
	switch {
	case line == ":recents":
		h.printRecents()
	case line == ":filters":
		snap := h.state.Snapshot()
		log.Print("active filters",
			"count", h.state.ActiveCount(),
			"categories", snap.Categories,
			"authors", snap.Authors,
			"tags", snap.Tags,
			"date", snap.Date,
			"popularity", snap.Popularity)
	case strings.HasPrefix(line, ":submit "):
		h.deliver(strings.TrimPrefix(line, ":submit "))
	default:
		if idx, err := strconv.Atoi(line); err == nil {
			h.selectSuggestion(idx)
			return
		}
		h.lookup(line)
	}
}

func (h *InputHandler) lookup(query string) {
	h.last = h.engine.Lookup(query)
	if len(h.last) == 0 {
		log.Infof("No results found for %q", query)
		return
	}
	for i, s := range h.last {
		line := fmt.Sprintf("%2d. [%s] %s", i+1, s.Kind, s.Text)
		if s.Metadata != nil && s.Metadata.Trending {
			line += "  (trending)"
		}
		if s.Kind == suggest.KindPost && s.Metadata != nil {
			line += fmt.Sprintf("  %s, %d views, by %s", s.Category, s.Metadata.Views, s.Metadata.Author)
		}
		log.Print(line)
	}
}

func (h *InputHandler) selectSuggestion(idx int) {
	if idx < 1 || idx > len(h.last) {
		log.Errorf("no suggestion %d on the last lookup", idx)
		return
	}
	h.deliver(h.last[idx-1].Text)
}

// deliver plays the role of the host's onSearch callback.
func (h *InputHandler) deliver(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	h.journal.Record(text)
	log.Print("search delivered", "query", text, "activeFilters", h.state.ActiveCount())
}

func (h *InputHandler) printRecents() {
	entries := h.journal.Entries()
	if len(entries) == 0 {
		log.Print("no recent searches")
		return
	}
	for i, e := range entries {
		log.Printf("%2d. %s", i+1, e)
	}
}
