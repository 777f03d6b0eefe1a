package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/ktv/internal/queue"
	"github.com/desertthunder/ktv/internal/shared"
)

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	onRead func() // called after each Now, outside the clock lock
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	now, hook := c.now, c.onRead
	c.onRead = nil
	c.mu.Unlock()
	if hook != nil {
		hook()
	}
	return now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(idle time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)}
	st := NewStore(idle, shared.NewLogger(io.Discard))
	st.now = clock.Now
	return st, clock
}

func TestStore(t *testing.T) {
	t.Run("create and get", func(t *testing.T) {
		st, _ := newTestStore(time.Hour)
		s := st.Create()

		got, err := st.Get(s.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != s {
			t.Error("expected the same session")
		}
		if snap := got.Snapshot(); snap.Current != nil || len(snap.Queue) != 0 {
			t.Errorf("new session should be empty, got %+v", snap)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		st, _ := newTestStore(time.Hour)
		if _, err := st.Get("missing"); !errors.Is(err, shared.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("end tears down", func(t *testing.T) {
		st, _ := newTestStore(time.Hour)
		s := st.Create()
		if !st.End(s.ID) {
			t.Fatal("expected End to report an existing session")
		}
		if st.End(s.ID) {
			t.Error("second End should report false")
		}
		if _, err := st.Get(s.ID); !errors.Is(err, shared.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound after End, got %v", err)
		}
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		st, _ := newTestStore(time.Hour)
		a, b := st.Create(), st.Create()
		a.Do(func(q *queue.PlaybackQueue) { q.Enqueue("Alpha [1].mp4") })

		if got := b.Snapshot(); len(got.Queue) != 0 {
			t.Errorf("session b saw session a's queue: %+v", got)
		}
	})

	t.Run("sweep ends idle sessions only", func(t *testing.T) {
		st, clock := newTestStore(time.Hour)
		idle := st.Create()
		active := st.Create()

		clock.Advance(50 * time.Minute)
		if _, err := st.Get(active.ID); err != nil {
			t.Fatal(err)
		}
		clock.Advance(20 * time.Minute)

		if n := st.Sweep(); n != 1 {
			t.Fatalf("expected 1 expired session, got %d", n)
		}
		if _, err := st.Get(idle.ID); err == nil {
			t.Error("idle session should be gone")
		}
		if _, err := st.Get(active.ID); err != nil {
			t.Errorf("active session should survive: %v", err)
		}
		if st.Len() != 1 {
			t.Errorf("expected 1 live session, got %d", st.Len())
		}
	})

	t.Run("get never returns a swept session", func(t *testing.T) {
		st, clock := newTestStore(time.Hour)
		idle := st.Create()
		clock.Advance(2 * time.Hour)

		clock.mu.Lock()
		clock.onRead = func() { st.Sweep() }
		clock.mu.Unlock()

		s, err := st.Get(idle.ID)
		if !errors.Is(err, shared.ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound for a session swept during Get, got %v (session %v)", err, s)
		}
		if st.Len() != 0 {
			t.Errorf("expected no live sessions, got %d", st.Len())
		}
	})

	t.Run("run stops with context", func(t *testing.T) {
		st, _ := newTestStore(time.Hour)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			st.Run(ctx, time.Millisecond)
			close(done)
		}()
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Run did not return after cancel")
		}
	})
}

func TestSessionConcurrentActions(t *testing.T) {
	s := New("s", time.Now())

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do(func(q *queue.PlaybackQueue) {
				e := q.Enqueue("Song [x].mp4")
				q.Remove(e.Token)
				q.Enqueue("Song [y].mp4")
			})
		}()
	}
	wg.Wait()

	if got := s.Snapshot(); len(got.Queue) != 50 {
		t.Errorf("expected 50 queued entries, got %d", len(got.Queue))
	}
}
