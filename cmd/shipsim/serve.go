package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/behave/internal/core/observability/log"
	"github.com/zeusync/behave/internal/injector"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the simulation in real time and expose it over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Server.Addr = addr
			}

			app, err := injector.InitializeApp(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = app.Logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, app)
		},
	}
	cmd.Flags().String("addr", "", "Override the configured listen address")
	return cmd
}

// serve runs the world loop and the HTTP server until ctx is done or either fails.
func serve(ctx context.Context, app *injector.App) error {
	app.Logger.Info("shipsim starting",
		log.String("addr", app.Config.Server.Addr),
		log.Int("tick_rate", app.Config.TickRate),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.World.Run(ctx) })
	g.Go(func() error { return app.Server.Serve(ctx) })

	err := g.Wait()
	app.Logger.Info("shipsim stopped", log.Uint64("steps", app.World.Steps()))
	return err
}
