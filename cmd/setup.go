package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ktv/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the embedded example configuration to --config.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if path == "" {
		return fmt.Errorf("%w: --config", shared.ErrMissingArgument)
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", path)

	if err := r.writePlain("✓ Configuration written to %s\n", path); err != nil {
		return err
	}
	return r.writePlain("Point media.path at your karaoke folder, then run 'ktv serve -c %s'\n", path)
}
