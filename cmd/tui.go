package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ktv/internal/catalog"
	"github.com/desertthunder/ktv/internal/player"
	"github.com/desertthunder/ktv/internal/shared"
	"github.com/desertthunder/ktv/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal karaoke console.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	config, err := r.prepare(cmd)
	if err != nil {
		return err
	}
	m, err := r.matcherFor(config)
	if err != nil {
		return err
	}

	scanner := catalog.NewScanner(config.Media.Path, r.logger)
	if _, err := scanner.Scan(ctx); err != nil {
		return err
	}

	sink := player.NewCommandSink(config.Media.Player, r.logger)
	model := ui.NewModel(ctx, scanner, m, sink, r.logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
