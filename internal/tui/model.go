// Package tui is an interactive terminal host for the search bar, used to
// exercise the debounce and suggestion pipeline against a live keyboard.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillboard/searchkit/pkg/facets"
	"github.com/quillboard/searchkit/pkg/journal"
	"github.com/quillboard/searchkit/pkg/searchbar"
	"github.com/quillboard/searchkit/pkg/suggest"
)

// refreshMsg redraws the view so asynchronously resolved lookups show up.
type refreshMsg time.Time

const refreshEvery = 80 * time.Millisecond

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	kindStyle     = lipgloss.NewStyle().Faint(true).Italic(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	trendingStyle = lipgloss.NewStyle().Bold(true)
)

// delivered captures the host callback payload so the view can show the
// last search that left the bar.
type delivered struct {
	query   string
	filters facets.Snapshot
	ok      bool
}

// Model drives one search bar instance.
type Model struct {
	bar    *searchbar.Bar
	input  textinput.Model
	cursor int // 0 = the input itself, 1..n = suggestion rows
	sink   *delivered
}

// NewModel builds the demo host over an engine and journal.
func NewModel(engine *suggest.Engine, jr *journal.Journal, opts searchbar.Options) Model {
	sink := &delivered{}
	opts.OnSearch = func(q string, f facets.Snapshot) {
		sink.query = q
		sink.filters = f
		sink.ok = true
	}

	input := textinput.New()
	input.Placeholder = "Search topics, posts, authors..."
	input.Focus()

	return Model{
		bar:   searchbar.New(engine, jr, opts),
		input: input,
		sink:  sink,
	}
}

// Init starts the cursor blink and the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, refreshTick())
}

func refreshTick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// Update handles keys and the refresh ticker.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		return m, refreshTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.bar.Suggestions()) {
				m.cursor++
			}
			return m, nil
		case "enter":
			suggestions := m.bar.Suggestions()
			if m.cursor > 0 && m.cursor <= len(suggestions) {
				m.bar.Select(suggestions[m.cursor-1])
				m.input.SetValue(m.bar.Text())
			} else {
				m.bar.Submit()
			}
			m.cursor = 0
			return m, nil
		case "ctrl+x":
			m.bar.Clear()
			m.input.SetValue("")
			m.cursor = 0
			return m, nil
		case "ctrl+d":
			m.cycleDateBucket()
			return m, nil
		case "ctrl+r":
			m.bar.Facets().Reset()
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.bar.SetText(m.input.Value())
		m.cursor = 0
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) cycleDateBucket() {
	order := []facets.DateBucket{
		facets.DateAny, facets.DateToday, facets.DateWeek, facets.DateMonth, facets.DateYear,
	}
	current := m.bar.Facets().DateBucket()
	for i, b := range order {
		if b == current {
			_ = m.bar.Facets().SetDateBucket(order[(i+1)%len(order)])
			return
		}
	}
}

// View renders the bar, the suggestion panel and the last delivered search.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("searchkit") + "\n\n")
	sb.WriteString(m.input.View() + "\n")

	status := fmt.Sprintf("filters: %d  (ctrl+d date: %s, ctrl+r reset, ctrl+x clear, esc quit)",
		m.bar.Facets().ActiveCount(), m.bar.Facets().DateBucket())
	sb.WriteString(dimStyle.Render(status) + "\n\n")

	switch {
	case m.bar.Searching():
		sb.WriteString(dimStyle.Render("Searching...") + "\n")
	case m.bar.EmptyState():
		sb.WriteString(dimStyle.Render(fmt.Sprintf("No results found for %q", m.bar.Text())) + "\n")
	case m.bar.PanelOpen():
		for i, s := range m.bar.Suggestions() {
			line := fmt.Sprintf("  %s %s", s.Text, kindStyle.Render(string(s.Kind)))
			if s.Metadata != nil && s.Metadata.Trending {
				line += " " + trendingStyle.Render("↑ trending")
			}
			if s.Kind == suggest.KindPost && s.Metadata != nil {
				line += dimStyle.Render(fmt.Sprintf("  %s · %d views · by %s",
					s.Category, s.Metadata.Views, s.Metadata.Author))
			}
			if m.cursor == i+1 {
				line = cursorStyle.Render(line)
			}
			sb.WriteString(line + "\n")
		}
	case strings.TrimSpace(m.input.Value()) == "":
		if recents := m.bar.RecentSearches(3); len(recents) > 0 {
			sb.WriteString(dimStyle.Render("Recent searches") + "\n")
			for _, r := range recents {
				sb.WriteString("  " + r + "\n")
			}
		}
	}

	if m.sink.ok {
		sb.WriteString("\n" + dimStyle.Render(fmt.Sprintf("last search: %q (filters: %d)",
			m.sink.query,
			len(m.sink.filters.Categories)+len(m.sink.filters.Authors)+len(m.sink.filters.Tags))) + "\n")
	}
	return sb.String()
}

// Run starts the program in the alternate screen.
func Run(engine *suggest.Engine, jr *journal.Journal, opts searchbar.Options) error {
	p := tea.NewProgram(NewModel(engine, jr, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
