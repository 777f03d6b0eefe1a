package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ktv/internal/catalog"
	"github.com/desertthunder/ktv/internal/formatter"
	"github.com/desertthunder/ktv/internal/shared"
	"github.com/urfave/cli/v3"
)

func outputFormat(cmd *cli.Command) (formatter.Format, error) {
	if cmd.Bool("json") {
		return formatter.JSON, nil
	}
	return formatter.ParseFormat(cmd.String("format"))
}

// Search scans the media directory and prints the best matches for the query argument.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	config, err := r.prepare(cmd)
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	m, err := r.matcherFor(config)
	if err != nil {
		return err
	}

	cat, err := catalog.NewScanner(config.Media.Path, r.logger).Scan(ctx)
	if err != nil {
		return err
	}

	results := m.Match(query, cat.Candidates())
	r.logger.Debug("matched songs", "query", query, "count", len(results))

	data, err := formatter.RenderResults(query, results, format)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

// Catalog prints the media directory, including quarantined files.
func (r *Runner) Catalog(ctx context.Context, cmd *cli.Command) error {
	config, err := r.prepare(cmd)
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	cat, err := catalog.NewScanner(config.Media.Path, r.logger).Scan(ctx)
	if err != nil {
		return err
	}

	data, err := formatter.RenderCatalog(cat, format)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}
