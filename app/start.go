package app

import (
	"github.com/spf13/cobra"

	"github.com/folio-admin/folio-admin/internal/daemon"
	"github.com/folio-admin/folio-admin/internal/logger"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(startCmd)
}

var (
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the folio-admin web service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return readConfig(devMode)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			d, err := daemon.New(&cfg)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}
)

func initLogger() error {
	return logger.Init(cfg.Log)
}
