package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ymjo140/rendezvous-merchant-sub000/config"
	"github.com/ymjo140/rendezvous-merchant-sub000/di"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/logger"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "worker",
		Short:        "Consume reservation change events",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Get()
			logger.Configure(cfg)

			if err := cfg.Validate(); err != nil {
				return err //nolint:wrapcheck
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return di.InitializeConsumer().Run(ctx)
		},
	}
}

func main() {
	logger.InitLogger()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.ErrorWithStack(err)
		os.Exit(1)
	}
}
