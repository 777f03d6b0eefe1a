package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/ktv/internal/catalog"
	"github.com/desertthunder/ktv/internal/server"
	"github.com/desertthunder/ktv/internal/session"
	"github.com/desertthunder/ktv/internal/shared"
	"github.com/desertthunder/ktv/internal/web"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

// Serve runs the web interface until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.prepare(cmd)
	if err != nil {
		return err
	}
	m, err := r.matcherFor(config)
	if err != nil {
		return err
	}

	scanner := catalog.NewScanner(config.Media.Path, r.logger)
	cat, err := scanner.Scan(ctx)
	if err != nil {
		return err
	}
	r.logger.Info("media catalog ready", "path", config.Media.Path, "songs", len(cat.Entries), "rejected", len(cat.Rejected))

	store := session.NewStore(config.Session.IdleTimeout.Duration, r.logger)
	app, err := web.New(web.Options{
		Scanner:    scanner,
		Matcher:    m,
		Sessions:   store,
		CookieName: config.Session.CookieName,
		Limiter:    rate.NewLimiter(rate.Limit(config.Server.RateLimit), config.Server.RateBurst),
		Logger:     r.logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go store.Run(ctx, config.Session.SweepInterval.Duration)

	srv := server.NewHTTPServer(config.Server.Addr(), app.Router())
	return server.ListenAndServe(ctx, srv, r.logger, func(addr string) {
		url := "http://" + addr
		if err := r.writePlain("Karaoke is up at %s\n", url); err != nil {
			r.logger.Warn("failed to print server address", "url", url, "error", err)
		}
		if cmd.Bool("open") {
			if err := shared.OpenBrowser(url); err != nil {
				r.logger.Warn("failed to open browser", "url", url, "error", err)
			}
		}
	})
}
