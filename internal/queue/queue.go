// Package queue implements the playback queue: an ordered list of reservations plus the
// entry currently playing.
//
// Entries are normally addressed by the token handed out by [PlaybackQueue.Enqueue].
// Positional removal is kept for callers that hold a fresh index, and treats a stale one as
// a benign no-op.
package queue

import (
	"errors"
	"fmt"
	"slices"

	"github.com/desertthunder/ktv/internal/models"
	"github.com/desertthunder/ktv/internal/shared"
)

// ErrIndexOutOfRange is returned by [PlaybackQueue.RemoveAt] for positions past the end of the queue.
// Callers are expected to ignore it.
var ErrIndexOutOfRange = errors.New("queue index out of range")

// Snapshot is a copy of the queue state, safe to render or encode.
type Snapshot struct {
	Current *models.QueueEntry  `json:"current"`
	Queue   []models.QueueEntry `json:"queue"`
}

// PlaybackQueue holds the current entry and the entries waiting behind it.
//
// The zero value is an empty queue with nothing playing. It is not safe for concurrent use;
// [session.Session] serialises access.
type PlaybackQueue struct {
	current *models.QueueEntry
	entries []models.QueueEntry
	newID   func() string
}

// New creates an empty [PlaybackQueue].
func New() *PlaybackQueue {
	return &PlaybackQueue{}
}

// Enqueue appends filename at the tail and returns the reservation with its token.
// Duplicates are allowed.
func (q *PlaybackQueue) Enqueue(filename string) models.QueueEntry {
	gen := q.newID
	if gen == nil {
		gen = shared.GenerateID
	}
	entry := models.QueueEntry{Token: gen(), Filename: filename}
	q.entries = append(q.entries, entry)
	return entry
}

// Next pops the head of the queue into the current slot. With an empty queue the current
// slot is cleared instead. It reports whether something is playing afterwards.
func (q *PlaybackQueue) Next() bool {
	if len(q.entries) == 0 {
		q.current = nil
		return false
	}
	head := q.entries[0]
	q.entries = slices.Delete(q.entries, 0, 1)
	q.current = &head
	return true
}

// Fill advances only when nothing is playing and something is queued.
// It reports whether it advanced.
func (q *PlaybackQueue) Fill() bool {
	if q.current != nil || len(q.entries) == 0 {
		return false
	}
	return q.Next()
}

// RemoveAt removes the entry at position index, keeping the order of the rest.
func (q *PlaybackQueue) RemoveAt(index int) error {
	if index < 0 || index >= len(q.entries) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(q.entries))
	}
	q.entries = slices.Delete(q.entries, index, index+1)
	return nil
}

// Remove removes the entry holding token. Unknown tokens leave the queue unchanged.
func (q *PlaybackQueue) Remove(token string) bool {
	i := slices.IndexFunc(q.entries, func(e models.QueueEntry) bool { return e.Token == token })
	if i < 0 {
		return false
	}
	q.entries = slices.Delete(q.entries, i, i+1)
	return true
}

// Current returns the entry playing now.
func (q *PlaybackQueue) Current() (models.QueueEntry, bool) {
	if q.current == nil {
		return models.QueueEntry{}, false
	}
	return *q.current, true
}

// Entries returns a copy of the waiting entries, head first.
func (q *PlaybackQueue) Entries() []models.QueueEntry {
	return slices.Clone(q.entries)
}

// Len returns the number of waiting entries.
func (q *PlaybackQueue) Len() int {
	return len(q.entries)
}

// Snapshot copies the queue state.
func (q *PlaybackQueue) Snapshot() Snapshot {
	s := Snapshot{Queue: q.Entries()}
	if s.Queue == nil {
		s.Queue = []models.QueueEntry{}
	}
	if cur, ok := q.Current(); ok {
		s.Current = &cur
	}
	return s
}
