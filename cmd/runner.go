package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ktv/internal/matcher"
	"github.com/desertthunder/ktv/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A non-nil Config is used as-is; otherwise each command loads the file named by --config.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, tuiCommand, searchCommand, catalogCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by subsequent actions.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// prepare resolves the configuration for cmd: the config file (or defaults when it is
// missing), then any overriding flags, then validation.
func (r *Runner) prepare(cmd *cli.Command) (*shared.Config, error) {
	if cmd.Bool("debug") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	config := r.config
	if config == nil {
		var err error
		if config, err = r.loadConfig(cmd.String("config"), cmd.IsSet("config")); err != nil {
			return nil, err
		}
	}

	if cmd.IsSet("media") {
		config.Media.Path = cmd.String("media")
	}
	if cmd.IsSet("player") {
		config.Media.Player = cmd.String("player")
	}
	if cmd.IsSet("limit") {
		config.Search.Limit = int(cmd.Int("limit"))
	}
	if cmd.IsSet("cutoff") {
		config.Search.Cutoff = int(cmd.Int("cutoff"))
	}
	if cmd.IsSet("scorer") {
		config.Search.Scorer = cmd.String("scorer")
	}
	if cmd.IsSet("host") {
		config.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		config.Server.Port = int(cmd.Int("port"))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// loadConfig reads path, falling back to defaults when the implicit config.toml is absent.
// A file named explicitly with --config must exist.
func (r *Runner) loadConfig(path string, explicit bool) (*shared.Config, error) {
	if path == "" {
		return shared.DefaultConfig(), nil
	}
	if _, err := os.Stat(path); err != nil {
		if explicit {
			return nil, fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
		}
		r.logger.Debug("config file not found, using defaults", "path", path)
		return shared.DefaultConfig(), nil
	}
	config, err := shared.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("loaded config", "path", path)
	return config, nil
}

// matcherFor builds the configured [matcher.Matcher].
func (r *Runner) matcherFor(config *shared.Config) (*matcher.Matcher, error) {
	scorer, err := matcher.ScorerByName(config.Search.Scorer)
	if err != nil {
		return nil, fmt.Errorf("%w: --scorer", err)
	}
	return matcher.New(scorer, config.Search.Limit, config.Search.Cutoff), nil
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
