package cmd

import (
	"context"
	"fmt"
	"strings"

	"data-correlator/core/config"
	"data-correlator/core/database"
	"data-correlator/core/logger"
	"data-correlator/core/storage"
	"data-correlator/feature/correlation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// Flags for the correlate command
	sourceA     string
	sourceB     string
	runMode     string
	strategies  []string
	continueOn  string
	reporterA   string
	reporterB   string
	workers     int
	format      string
	storeReport string
)

// correlateCmd runs a single correlation and prints its report.
var correlateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Correlate two record sets and print the report",
	Long: `Correlate two record sets through a funnel of named strategies.

Sources are "db:<table>" or "storage:<object>". A bare "db" or "storage"
uses the configured people table or object.

Examples:
  # Match a table against an export by id, then keep the latest record
  correlate --a db:people --b storage:exports/people.json \
    --mode quick --strategies same_id,pick_last_created_at

  # Run every stage and print YAML
  correlate --a db --b storage --mode deep_disambiguation \
    --strategies same_email_fold,same_name --reporter-a id_and_email --format yaml

  # Keep a copy of the report in the bucket
  correlate --a db --b storage --mode quick --strategies same_id \
    --store-report nightly/2024-05-01.json`,
	RunE: runCorrelate,
}

// strategiesCmd prints the registered strategy and reporter names.
var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the strategies and reporters runs can name",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := correlation.NewService(nil, nil, storage.Config{}, config.Correlation{}, nil)
		return correlation.Render(cmd.OutOrStdout(), svc.Catalog(), format)
	},
}

func init() {
	f := correlateCmd.Flags()
	f.StringVar(&sourceA, "a", "", "Source of set A (db:<table> or storage:<object>)")
	f.StringVar(&sourceB, "b", "", "Source of set B (db:<table> or storage:<object>)")
	f.StringVar(&runMode, "mode", correlation.ModeQuick, "Funnel mode: deep_correlation, deep_disambiguation or quick")
	f.StringSliceVar(&strategies, "strategies", nil, "Comma separated strategy names, in stage order")
	f.StringVar(&continueOn, "continue", "", "Override the mode's continuation: always or ambiguous")
	f.StringVar(&reporterA, "reporter-a", "", "Reporter projecting set A (default from config)")
	f.StringVar(&reporterB, "reporter-b", "", "Reporter projecting set B (default from config)")
	f.IntVar(&workers, "workers", 0, "Goroutines per run (default from config)")
	f.StringVar(&storeReport, "store-report", "", "Also upload the report under this object name")
	_ = correlateCmd.MarkFlagRequired("a")
	_ = correlateCmd.MarkFlagRequired("b")
	_ = correlateCmd.MarkFlagRequired("strategies")

	for _, c := range []*cobra.Command{correlateCmd, strategiesCmd} {
		c.Flags().StringVar(&format, "format", correlation.FormatJSON, "Output format: json or yaml")
	}

	RootCmd.AddCommand(correlateCmd)
	RootCmd.AddCommand(strategiesCmd)
}

func runCorrelate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Logs go to stderr, stdout carries the report.
	l, err := logger.Console(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	// Only connect to what the run touches.
	var db *gorm.DB
	if uses(sourceA, sourceB, "db") {
		if db, err = database.Connect(cfg.Database); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	var client storage.Client
	if uses(sourceA, sourceB, "storage") || storeReport != "" {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	svc := correlation.NewService(db, client, cfg.Storage, cfg.Correlation, l)
	result, err := svc.Run(ctx, correlation.RunRequest{
		A:          sourceA,
		B:          sourceB,
		Mode:       runMode,
		Strategies: strategies,
		Continue:   continueOn,
		ReporterA:  reporterA,
		ReporterB:  reporterB,
		Workers:    workers,
		Store:      storeReport,
	})
	if err != nil {
		return err
	}

	if result.StoredAs != "" {
		l.Info("Report stored", zap.String("bucket", cfg.Storage.Bucket), zap.String("object", result.StoredAs))
	}
	return correlation.Render(cmd.OutOrStdout(), result, format)
}

// uses reports whether either source reference is of the given kind.
func uses(a, b, kind string) bool {
	for _, ref := range []string{a, b} {
		k, _, _ := strings.Cut(strings.TrimSpace(ref), ":")
		if k == kind {
			return true
		}
	}
	return false
}
