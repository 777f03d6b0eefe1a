// Package ui implements the terminal karaoke console using bubbletea's Elm architecture.
//
// The screen has three panes that share one [queue.PlaybackQueue]:
//  1. [SearchFocus] : type a title and press enter to match it against the media directory
//  2. [ResultsFocus] : reserve a match with enter
//  3. [QueueFocus] : review upcoming songs and remove one with x
//
// Reserving into an idle queue starts playback immediately, n skips to the next song.
// Playback is handed to a [player.Sink], normally an external video player.
//
// Keyboard navigation uses vim-style bindings (j/k, tab, enter, n, x, q) with contextual help
// displayed via charmbracelet/bubbles/help.
package ui
