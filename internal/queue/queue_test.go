package queue

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

func newTestQueue(filenames ...string) *PlaybackQueue {
	q := &PlaybackQueue{newID: sequentialIDs()}
	for _, f := range filenames {
		q.Enqueue(f)
	}
	return q
}

func filenames(q *PlaybackQueue) []string {
	out := []string{}
	for _, e := range q.Entries() {
		out = append(out, e.Filename)
	}
	return out
}

func current(q *PlaybackQueue) string {
	cur, _ := q.Current()
	return cur.Filename
}

func TestPlaybackQueue(t *testing.T) {
	t.Run("starts empty", func(t *testing.T) {
		q := New()
		if _, ok := q.Current(); ok {
			t.Error("expected nothing playing")
		}
		if q.Len() != 0 {
			t.Errorf("expected empty queue, got %d", q.Len())
		}
	})

	t.Run("FIFO advance", func(t *testing.T) {
		q := newTestQueue("a", "b")

		if !q.Next() {
			t.Fatal("expected Next to start playback")
		}
		if current(q) != "a" || !reflect.DeepEqual(filenames(q), []string{"b"}) {
			t.Fatalf("after first Next: current=%q queue=%v", current(q), filenames(q))
		}

		q.Next()
		if current(q) != "b" || len(filenames(q)) != 0 {
			t.Fatalf("after second Next: current=%q queue=%v", current(q), filenames(q))
		}

		if q.Next() {
			t.Error("expected Next on an empty queue to stop playback")
		}
		if _, ok := q.Current(); ok {
			t.Error("expected current to be cleared")
		}
	})

	t.Run("Next on empty state is a no-op", func(t *testing.T) {
		q := New()
		before := q.Snapshot()
		q.Next()
		if !reflect.DeepEqual(before, q.Snapshot()) {
			t.Errorf("state changed: %+v -> %+v", before, q.Snapshot())
		}
	})

	t.Run("Fill only advances when idle", func(t *testing.T) {
		q := newTestQueue("a", "b")
		if !q.Fill() || current(q) != "a" {
			t.Fatalf("expected Fill to start a, current=%q", current(q))
		}
		if q.Fill() {
			t.Error("Fill should not skip the playing entry")
		}
		if current(q) != "a" || q.Len() != 1 {
			t.Errorf("unexpected state: current=%q len=%d", current(q), q.Len())
		}
		if New().Fill() {
			t.Error("Fill on empty queue should do nothing")
		}
	})

	t.Run("duplicates allowed", func(t *testing.T) {
		q := newTestQueue("a", "a")
		entries := q.Entries()
		if len(entries) != 2 || entries[0].Token == entries[1].Token {
			t.Errorf("expected two distinct reservations, got %+v", entries)
		}
	})

	t.Run("default tokens are unique", func(t *testing.T) {
		q := New()
		a, b := q.Enqueue("x"), q.Enqueue("x")
		if a.Token == "" || a.Token == b.Token {
			t.Errorf("expected unique tokens, got %q and %q", a.Token, b.Token)
		}
	})
}

func TestRemoveAt(t *testing.T) {
	t.Run("removes exactly one position", func(t *testing.T) {
		q := newTestQueue("a", "b", "c")
		if err := q.RemoveAt(1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := filenames(q); !reflect.DeepEqual(got, []string{"a", "c"}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("out of range is benign", func(t *testing.T) {
		for _, idx := range []int{3, 10, -1} {
			q := newTestQueue("a", "b", "c")
			err := q.RemoveAt(idx)
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("RemoveAt(%d): expected ErrIndexOutOfRange, got %v", idx, err)
			}
			if got := filenames(q); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
				t.Errorf("RemoveAt(%d) changed the queue: %v", idx, got)
			}
		}
	})
}

func TestRemove(t *testing.T) {
	t.Run("by token", func(t *testing.T) {
		q := newTestQueue("a", "b", "a")
		entries := q.Entries()
		if !q.Remove(entries[2].Token) {
			t.Fatal("expected removal")
		}
		got := q.Entries()
		if len(got) != 2 || got[0] != entries[0] || got[1] != entries[1] {
			t.Errorf("removed the wrong copy: %+v", got)
		}
	})

	t.Run("stale token after the queue shifted", func(t *testing.T) {
		q := newTestQueue("a", "b", "c")
		stale := q.Entries()[0].Token
		q.Next()

		if q.Remove(stale) {
			t.Error("token of the now playing entry should not match the queue")
		}
		if got := filenames(q); !reflect.DeepEqual(got, []string{"b", "c"}) {
			t.Errorf("queue changed: %v", got)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		q := newTestQueue("a")
		if q.Remove("nope") {
			t.Error("expected no removal")
		}
	})
}

func TestSnapshot(t *testing.T) {
	q := newTestQueue("a", "b")
	q.Next()
	snap := q.Snapshot()

	if snap.Current == nil || snap.Current.Filename != "a" {
		t.Fatalf("unexpected current: %+v", snap.Current)
	}
	if len(snap.Queue) != 1 || snap.Queue[0].Filename != "b" {
		t.Fatalf("unexpected queue: %+v", snap.Queue)
	}

	snap.Queue[0].Filename = "mutated"
	if filenames(q)[0] != "b" {
		t.Error("snapshot should not alias queue storage")
	}

	if empty := New().Snapshot(); empty.Current != nil || empty.Queue == nil {
		t.Errorf("expected non-nil empty queue slice, got %+v", empty)
	}
}
