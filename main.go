package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rpupo63/devfolio-backend/config"
)

// cfg is filled by the root command before any subcommand runs.
var cfg map[string]string

var rootCmd = &cobra.Command{
	Use:           "devfolio",
	Short:         "Portfolio backend for developers, projects and technologies",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load environment variables from .env file
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}

		cfg = config.New()

		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = config.GetString(cfg, "CONFIG_FILE", "")
		}
		if path != "" {
			if err := config.LoadFile(cfg, path); err != nil {
				return err
			}
		}

		config.SetupLogger(cfg)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "TOML config file (environment variables take precedence)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
