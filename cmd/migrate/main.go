package main

import (
	"os"

	"github.com/ymjo140/rendezvous-merchant-sub000/config"
	"github.com/ymjo140/rendezvous-merchant-sub000/helper"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/logger"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply or roll back the postgres schema in migrations/postgres",
		SilenceUsage: true,
	}

	for _, direction := range []struct {
		use   string
		short string
		run   func(*config.Config) error
	}{
		{"up", "Apply every pending migration", helper.Up},
		{"down", "Roll back the latest migration", helper.Down},
		{"step-up", "Apply the next pending migration", helper.StepUp},
		{"drop", "Roll back every migration", helper.Drop},
	} {
		root.AddCommand(&cobra.Command{
			Use:   direction.use,
			Short: direction.short,
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return direction.run(config.Get())
			},
		})
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			version, dirty, err := helper.Version(config.Get())
			if err != nil {
				return err
			}

			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("schema version")

			return nil
		},
	})

	return root
}

func main() {
	logger.InitLogger()

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(1)
	}
}
