package commands

import (
	"fmt"
	"context"
	"log/slog"
	"time"

	"courtlinks/internal/components/chrono"
	"courtlinks/internal/components/telemetry"
	"courtlinks/internal/harvest"
	"courtlinks/internal/scrapers/haestirettur"
	"courtlinks/internal/store"
	"courtlinks/lib/restyutil"
	libtelemetry "courtlinks/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	harvestMirror bool
	harvestDump   string
)

func init() {
	harvestCmd.Flags().BoolVar(&harvestMirror, "sqlite", false, "Also mirror the merged dataset into the sqlite database.")
	harvestCmd.Flags().StringVar(&harvestDump, "dump-http", "", "Write every request and response to files in this directory.")
	rootCmd.AddCommand(harvestCmd)
}

// setupTelemetry prefers the telemetry section of the config, a
// telemetry.json5 found above the working directory is used otherwise.
func setupTelemetry(ctx context.Context, cfg Config) (libtelemetry.Telemetry, error) {
	if cfg.Telemetry.Enabled() {
		return libtelemetry.Setup(ctx, "courtlinks", cfg.Telemetry)
	}
	return libtelemetry.SetupFromEnv(ctx, "courtlinks")
}

var harvestCmd = &cobra.Command{
	Use:   "harvest [--sqlite] [--dump-http <dir>]",
	Short: "Harvests new verdicts and decisions, then rebuilds the index and the last updated line.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		t, err := setupTelemetry(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to setup telemetry: %w", err)
		}
		defer t.Shutdown(context.Background())

		tel := telemetry.NewSlogAPI(slog.Default())

		opts := cfg.ClientOptions()
		if harvestDump != "" {
			dump, err := restyutil.NewFilesystemOutput(harvestDump)
			if err != nil {
				return fmt.Errorf("failed to prepare http dump directory: %w", err)
			}
			opts.Dump = dump
		}

		client, err := haestirettur.NewClient(opts, tel)
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		harvestCfg := harvest.Config{Paths: cfg.Paths()}
		if harvestMirror {
			mirror, err := store.Open(cfg.SqlitePath)
			if err != nil {
				return fmt.Errorf("failed to open sqlite mirror: %w", err)
			}
			defer mirror.Close()
			harvestCfg.Mirror = mirror
		}

		harvester := harvest.NewHarvester(client, chrono.NewStandardImpl(), tel, harvestCfg)

		t1 := time.Now()
		result, err := harvester.Run(ctx)
		if err != nil {
			return fmt.Errorf("harvest failed: %w", err)
		}
		t2 := time.Now()

		slog.Info(
			"harvest finished",
			"discovered", result.Discovered,
			"assembled", result.Assembled,
			"skipped", result.Skipped,
			"total_rows", result.Merge.Total,
			"new_rows", result.Merge.Added,
			"index_links", result.IndexLinks,
			"seconds", t2.Sub(t1).Seconds(),
		)
		return nil
	},
}
