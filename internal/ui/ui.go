package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/ktv/internal/catalog"
	"github.com/desertthunder/ktv/internal/matcher"
	"github.com/desertthunder/ktv/internal/player"
	"github.com/desertthunder/ktv/internal/queue"
	"github.com/desertthunder/ktv/internal/shared"
)

// Focus represents the pane receiving key presses.
type Focus int

const (
	SearchFocus Focus = iota
	ResultsFocus
	QueueFocus
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	scanner *catalog.Scanner
	matcher *matcher.Matcher
	queue   *queue.PlaybackQueue
	sink    player.Sink
	logger  *log.Logger

	focus    Focus
	input    textinput.Model
	results  list.Model
	queued   list.Model
	query    string
	searched bool
	nResults int
	err      error
	width    int
	height   int
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, scanner *catalog.Scanner, m *matcher.Matcher, sink player.Sink, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	input := textinput.New()
	input.Placeholder = "Song title"
	input.Prompt = "Search: "
	input.Focus()

	return &Model{
		ctx:     ctx,
		scanner: scanner,
		matcher: m,
		queue:   queue.New(),
		sink:    sink,
		logger:  shared.WithLogger(logger, "component", "tui"),
		focus:   SearchFocus,
		input:   input,
		results: newList(nil),
		queued:  newList(nil),
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init starts the cursor blinking in the search box.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		paneWidth := max(msg.Width/2-4, 20)
		paneHeight := max(msg.Height-10, 5)
		m.results.SetSize(paneWidth, paneHeight)
		m.queued.SetSize(paneWidth, paneHeight)
		m.input.Width = paneWidth - len(m.input.Prompt)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	if m.focus == SearchFocus {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSearchDone:
		res := msg.data.(searchResult)
		if res.err != nil {
			m.err = res.err
			return m, nil
		}
		m.err = nil
		m.query = res.query
		m.searched = res.query != ""
		m.nResults = len(res.results)
		items := make([]list.Item, len(res.results))
		for i, r := range res.results {
			items[i] = resultItem{result: r}
		}
		m.results.SetItems(items)
		m.results.ResetSelected()
		if len(items) > 0 {
			m.setFocus(ResultsFocus)
		}
		m.logger.Debug("matched songs", "query", res.query, "matches", matcher.Strings(res.results))

	case MsgPlaybackStarted:
		res := msg.data.(playbackResult)
		m.err = res.err
		if res.err != nil {
			m.logger.Error("playback failed", "file", res.filename, "error", res.err)
		}
	}
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.focus == SearchFocus {
		switch msg.String() {
		case "enter":
			return m, m.search(strings.TrimSpace(m.input.Value()))
		case "esc", "tab":
			m.setFocus(ResultsFocus)
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.focus):
		if m.focus == ResultsFocus {
			m.setFocus(QueueFocus)
		} else {
			m.setFocus(SearchFocus)
		}
		return m, nil
	case key.Matches(msg, m.keys.search):
		m.setFocus(SearchFocus)
		return m, nil
	case key.Matches(msg, m.keys.next):
		return m, m.next()
	case m.focus == ResultsFocus && key.Matches(msg, m.keys.reserve):
		return m, m.reserve()
	case m.focus == QueueFocus && key.Matches(msg, m.keys.remove):
		m.remove()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case ResultsFocus:
		m.results, cmd = m.results.Update(msg)
	case QueueFocus:
		m.queued, cmd = m.queued.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == SearchFocus {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// search rescans the media directory and matches query against it.
func (m *Model) search(query string) tea.Cmd {
	return func() tea.Msg {
		if query == "" {
			return searchDoneMsg("", nil, nil)
		}
		cat, err := m.scanner.Scan(m.ctx)
		if err != nil {
			return searchDoneMsg(query, nil, err)
		}
		return searchDoneMsg(query, m.matcher.Match(query, cat.Candidates()), nil)
	}
}

// reserve queues the selected result and starts playback when the queue was idle.
func (m *Model) reserve() tea.Cmd {
	item, ok := m.results.SelectedItem().(resultItem)
	if !ok {
		return nil
	}
	filename := item.result.Candidate
	m.logger.Info("adding song to queue", "file", filename)
	m.queue.Enqueue(filename)

	var cmd tea.Cmd
	if m.queue.Fill() {
		cmd = m.playCurrent()
	}
	m.refreshQueue()
	return cmd
}

func (m *Model) next() tea.Cmd {
	var cmd tea.Cmd
	if m.queue.Next() {
		cmd = m.playCurrent()
	} else {
		m.logger.Info("queue finished")
	}
	m.refreshQueue()
	return cmd
}

func (m *Model) remove() {
	item, ok := m.queued.SelectedItem().(queueItem)
	if !ok {
		return
	}
	if !m.queue.Remove(item.entry.Token) {
		m.logger.Debug("ignored stale reservation token", "token", item.entry.Token)
	}
	m.refreshQueue()
}

func (m *Model) refreshQueue() {
	entries := m.queue.Entries()
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = queueItem{position: i + 1, entry: e}
	}
	m.queued.SetItems(items)
	m.logger.Debug("queue", "entries", entries)
}

func (m *Model) playCurrent() tea.Cmd {
	cur, ok := m.queue.Current()
	if !ok {
		return nil
	}
	m.logger.Info("now playing", "file", cur.Filename)
	return func() tea.Msg {
		path, err := m.scanner.Path(cur.Filename)
		if err == nil {
			err = m.sink.Play(m.ctx, path)
		}
		return playbackStartedMsg(cur.Filename, err)
	}
}

// View renders the now playing banner above the search and queue panes.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Karaoke"))
	b.WriteString("\n")

	if cur, ok := m.queue.Current(); ok {
		b.WriteString(styles.playing.Render("Now playing: " + cur.Title()))
	} else {
		b.WriteString(styles.muted.Render("Nothing playing!"))
	}
	b.WriteString("\n\n")

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.pane.Render(m.renderSearch()),
		styles.pane.Render(m.renderQueue()),
	)
	b.WriteString(columns)

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.contextKeys()))
	return b.String()
}

func (m *Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(m.heading("Search", m.focus == SearchFocus || m.focus == ResultsFocus))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case !m.searched:
		b.WriteString(styles.muted.Render("Nothing searched yet!"))
	case m.nResults == 0:
		b.WriteString(styles.muted.Render(fmt.Sprintf("No songs match '%s'!", m.query)))
	default:
		b.WriteString(m.results.View())
	}
	return b.String()
}

func (m *Model) renderQueue() string {
	var b strings.Builder
	b.WriteString(m.heading(fmt.Sprintf("Queue (%d)", m.queue.Len()), m.focus == QueueFocus))
	b.WriteString("\n")
	if m.queue.Len() == 0 {
		b.WriteString(styles.muted.Render("No songs queued!"))
	} else {
		b.WriteString(m.queued.View())
	}
	return b.String()
}

func (m *Model) heading(s string, focused bool) string {
	if focused {
		return styles.focused.Render(s)
	}
	return s
}

func (m *Model) contextKeys() []key.Binding {
	switch m.focus {
	case SearchFocus:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
			m.keys.back,
		}
	case ResultsFocus:
		return []key.Binding{m.keys.up, m.keys.down, m.keys.reserve, m.keys.next, m.keys.focus, m.keys.search, m.keys.quit}
	default:
		return []key.Binding{m.keys.up, m.keys.down, m.keys.remove, m.keys.next, m.keys.focus, m.keys.quit}
	}
}
