// Package app implements the command-line commands.
package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ik-mouad/iorecycling-sub000/internal/config"
	"github.com/ik-mouad/iorecycling-sub000/internal/daemon"
	"github.com/ik-mouad/iorecycling-sub000/internal/logger"
)

var (
	cfg        config.Config
	configPath string
	devMode    bool

	rootCmd = &cobra.Command{
		Use:   "iorecycling",
		Short: "iorecycling is the command-line client for the recycling catalogue",
		Long: `iorecycling signs in against the Keycloak realm, stores the credential
locally and talks to the recycling backend with it. Access to catalogue
operations follows the role of the signed-in user.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc", "Path to the configuration directory")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Enable dev mode")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads the configuration and initializes logging. Every command
// runs it as PreRunE.
func setup(_ *cobra.Command, _ []string) error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	if devMode {
		cfg.DevMode = true
	}

	return logger.Init(cfg.Log)
}

func newDaemon(ctx context.Context) (*daemon.Daemon, error) {
	return daemon.New(ctx, &cfg)
}
