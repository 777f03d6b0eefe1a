// Package session owns per-browser playback state.
//
// A [Session] wraps one [queue.PlaybackQueue] and serialises every action on it. The [Store]
// creates sessions, hands them to request handlers by ID and ends them once they have been
// idle for longer than the configured timeout. Nothing outlives the process.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ktv/internal/queue"
	"github.com/desertthunder/ktv/internal/shared"
)

// Session is the mutable state of one user interaction session.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	queue    *queue.PlaybackQueue
}

// New creates an empty session. Sessions are normally obtained from a [Store].
func New(id string, now time.Time) *Session {
	return &Session{ID: id, CreatedAt: now, lastSeen: now, queue: queue.New()}
}

// Do runs fn with exclusive access to the session's queue.
func (s *Session) Do(fn func(q *queue.PlaybackQueue)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.queue)
}

// Snapshot copies the queue state under the session lock.
func (s *Session) Snapshot() queue.Snapshot {
	var snap queue.Snapshot
	s.Do(func(q *queue.PlaybackQueue) { snap = q.Snapshot() })
	return snap
}

// LastSeen returns the time of the most recent [Store.Get] for this session.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// Store tracks live sessions by ID.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idle     time.Duration
	now      func() time.Time
	logger   *log.Logger
}

// NewStore creates a [Store] that ends sessions idle for longer than idle.
func NewStore(idle time.Duration, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{
		sessions: make(map[string]*Session),
		idle:     idle,
		now:      time.Now,
		logger:   shared.WithLogger(logger, "component", "session"),
	}
}

// Create starts a new empty session.
func (st *Store) Create() *Session {
	s := New(shared.GenerateID(), st.now())

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	st.logger.Debug("session started", "id", s.ID)
	return s
}

// Get returns the live session with id and marks it as seen.
//
// The lookup and the touch happen under the store lock, so a concurrent [Store.Sweep]
// either removes the session first or sees it as active.
func (st *Store) Get(id string) (*Session, error) {
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrSessionNotFound, id)
	}
	s.touch(now)
	return s, nil
}

// End tears the session down. It reports whether the session existed.
func (st *Store) End(id string) bool {
	st.mu.Lock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if ok {
		st.logger.Debug("session ended", "id", id)
	}
	return ok
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep ends every session whose last activity is older than the idle timeout and returns how many were ended.
func (st *Store) Sweep() int {
	deadline := st.now().Add(-st.idle)

	st.mu.Lock()
	var expired []string
	for id, s := range st.sessions {
		if s.LastSeen().Before(deadline) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(st.sessions, id)
	}
	st.mu.Unlock()

	if len(expired) > 0 {
		st.logger.Info("expired idle sessions", "count", len(expired))
	}
	return len(expired)
}

// Run sweeps every interval until ctx is canceled.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}
