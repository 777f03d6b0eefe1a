package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/ktv/internal/matcher"
	"github.com/desertthunder/ktv/internal/models"
)

var (
	_ list.Item = resultItem{}
	_ list.Item = queueItem{}
)

// resultItem wraps a [matcher.Result] to implement [list.Item].
type resultItem struct {
	result matcher.Result
}

func (i resultItem) FilterValue() string { return i.result.Candidate }
func (i resultItem) Title() string       { return models.DisplayTitle(i.result.Candidate) }
func (i resultItem) Description() string { return fmt.Sprintf("score %d", i.result.Score) }

// queueItem wraps a [models.QueueEntry] with its 1-based position to implement [list.Item].
type queueItem struct {
	position int
	entry    models.QueueEntry
}

func (i queueItem) FilterValue() string { return i.entry.Filename }
func (i queueItem) Title() string       { return fmt.Sprintf("[%d] %s", i.position, i.entry.Title()) }
func (i queueItem) Description() string { return i.entry.Filename }

func newList(items []list.Item) list.Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)

	l := list.New(items, d, 40, 10)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}
