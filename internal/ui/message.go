package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ktv/internal/matcher"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible asynchronous results in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSearchDone MsgKind = iota
	MsgPlaybackStarted
)

type searchResult struct {
	query   string
	results []matcher.Result
	err     error
}

type playbackResult struct {
	filename string
	err      error
}

// searchDoneMsg is the constructor for [MsgSearchDone]
func searchDoneMsg(query string, results []matcher.Result, err error) Msg {
	return Msg{kind: MsgSearchDone, data: searchResult{query, results, err}}
}

// playbackStartedMsg is the constructor for [MsgPlaybackStarted]
func playbackStartedMsg(filename string, err error) Msg {
	return Msg{kind: MsgPlaybackStarted, data: playbackResult{filename, err}}
}
