// package models defines the data model for the karaoke queue
package models

import (
	"errors"
	"fmt"
	"strings"
)

const (
	TagOpen  = "["
	TagClose = "]"
)

// ErrMissingDelimiter is returned for filenames that do not contain [TagOpen].
var ErrMissingDelimiter = errors.New("filename has no tag delimiter")

// MediaEntry is a playable file in the catalog.
type MediaEntry struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Tag      string `json:"tag"`
}

// QueueEntry is a single reservation in a playback queue.
//
// Token is assigned at enqueue time and is unique per reservation, so the same
// filename may be queued more than once and each copy can be removed on its own.
type QueueEntry struct {
	Token    string `json:"token"`
	Filename string `json:"filename"`
}

// Title returns the display title of the queued file, or the filename itself if it does not parse.
func (e QueueEntry) Title() string {
	return DisplayTitle(e.Filename)
}

// TitleOf returns the text strictly before the first "[" in filename.
func TitleOf(filename string) (string, error) {
	i := strings.Index(filename, TagOpen)
	if i < 0 {
		return "", fmt.Errorf("%w: %q", ErrMissingDelimiter, filename)
	}
	return filename[:i], nil
}

// DisplayTitle is [TitleOf] for rendering: non-conforming names fall back to the raw filename.
func DisplayTitle(filename string) string {
	title, err := TitleOf(filename)
	if err != nil {
		return filename
	}
	return title
}

// ParseFilename validates filename against the "<title>[<tag>]" grammar.
//
// The tag is empty when no closing "]" follows the opening "[".
func ParseFilename(filename string) (MediaEntry, error) {
	title, err := TitleOf(filename)
	if err != nil {
		return MediaEntry{}, err
	}

	rest := filename[len(title)+len(TagOpen):]
	tag := ""
	if j := strings.Index(rest, TagClose); j >= 0 {
		tag = rest[:j]
	}

	return MediaEntry{Filename: filename, Title: title, Tag: tag}, nil
}
