// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/folio-admin/folio-admin/internal/config"
)

var (
	configPath string // directory holding main.toml

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "folio-admin",
	Short: "folio-admin is the backend of a personal portfolio site",
	Long: `folio-admin serves the json api behind a portfolio site and its admin panel:
achievements, testimonials, social links, admin users and site settings.`,
	Args: cobra.OnlyValidArgs,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config directory containing main.toml (default ./etc/)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// readConfig loads the config and initializes the global logger.
func readConfig(devMode bool) error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	if devMode {
		cfg.DevMode = true
	}

	return initLogger()
}
