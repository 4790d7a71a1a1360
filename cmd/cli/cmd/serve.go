package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpadapter "tradecalc/adapters/http"
	"tradecalc/internal/config"
	"tradecalc/internal/errors"
	"tradecalc/internal/logging"
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Get()
			if err := logging.Initialize(settings.Logging.WithDefaultLevel("info")); err != nil {
				return errors.Config("logging", err)
			}

			cfg := httpadapter.FromSettings(settings, Version)
			if addr != "" {
				cfg.Address = addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			defer logging.Sync()
			return httpadapter.New(opts.registry, cfg, logging.Named("http")).ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "address to listen on (overrides config)")

	return cmd
}
