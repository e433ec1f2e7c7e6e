package cmd

import (
	"fmt"
	"os"

	"data-correlator/core/config"
	"data-correlator/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// envDir is where the .env file is read from.
var envDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "data-correlator",
	Short: "Data Correlator Service",
	Long: `Data Correlator matches the records of two data sets through funnels of
correlation and disambiguation strategies.

Sets are read from database tables or from JSON and YAML exports in S3
storage. Runs are served over HTTP (start) or executed once (correlate).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// debug gives ISO8601 timestamps on the console.
		l, logErr := logger.Console("debug")
		if logErr != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		l.Error("command failed", zap.Error(err))
		_ = l.Sync()
		os.Exit(1)
	}
}

// loadConfig reads the configuration from the --env-dir directory.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(envDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func init() {
	RootCmd.PersistentFlags().StringVar(&envDir, "env-dir", ".", "Directory holding the .env file")
}
