// Package player hands media files to whatever renders them.
//
// In the browser the video element is the player and [Stream] serves the bytes. The TUI has
// no video surface, so it hands the full path to an external program through a [Sink].
package player

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ktv/internal/shared"
)

// Sink plays the file at path.
type Sink interface {
	Play(ctx context.Context, path string) error
}

// CommandSink starts an external player process per file and does not wait for it to exit.
type CommandSink struct {
	name   string
	args   []string
	logger *log.Logger
	start  func(*exec.Cmd) error
}

// NewCommandSink builds a [CommandSink] from a command line such as "mpv --fs".
// An empty command line uses the platform opener from [shared.OpenerCommand].
func NewCommandSink(commandLine string, logger *log.Logger) *CommandSink {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	fields := strings.Fields(commandLine)
	s := &CommandSink{logger: shared.WithLogger(logger, "component", "player"), start: (*exec.Cmd).Start}
	if len(fields) > 0 {
		s.name, s.args = fields[0], fields[1:]
	}
	return s
}

// Command returns the program and arguments that would play path.
func (s *CommandSink) Command(path string) (string, []string, error) {
	if s.name == "" {
		return shared.OpenerCommand(path)
	}
	args := append(append([]string{}, s.args...), path)
	return s.name, args, nil
}

func (s *CommandSink) Play(ctx context.Context, path string) error {
	name, args, err := s.Command(path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPlaybackFailed, err)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if err := s.start(cmd); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPlaybackFailed, err)
	}

	s.logger.Info("playing", "path", path, "player", name)
	if cmd.Process != nil {
		go func() { _ = cmd.Wait() }()
	}
	return nil
}

// Stream writes the file at path to w, honouring range and conditional requests.
func Stream(w http.ResponseWriter, r *http.Request, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", shared.ErrInvalidInput, path)
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return nil
}
