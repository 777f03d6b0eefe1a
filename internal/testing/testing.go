// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// MustWriteMedia creates empty placeholder media files named names inside dir.
func MustWriteMedia(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("fake media: "+name), 0o644); err != nil {
			t.Fatalf("Failed to write media file %s: %v", name, err)
		}
	}
}

// MustMediaDir returns a temporary media directory containing names.
func MustMediaDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	MustWriteMedia(t, dir, names...)
	return dir
}

// RecordingSink is a test double for [player.Sink] that remembers what it was asked to play.
type RecordingSink struct {
	mu     sync.Mutex
	played []string
	Err    error
}

func (r *RecordingSink) Play(ctx context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.played = append(r.played, path)
	return nil
}

// Played returns a copy of the paths passed to Play.
func (r *RecordingSink) Played() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.played))
	copy(out, r.played)
	return out
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
