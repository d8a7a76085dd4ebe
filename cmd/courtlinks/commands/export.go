package commands

import (
	"fmt"
	"log/slog"

	"courtlinks/internal/dataset"
	"courtlinks/internal/store"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export-sqlite",
	Short: "Mirrors the dataset into the sqlite database.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		records, err := dataset.Load(cfg.DatasetPath)
		if err != nil {
			return fmt.Errorf("failed to load dataset: %w", err)
		}

		out, err := store.Open(cfg.SqlitePath)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer out.Close()

		if err := out.Replace(cmd.Context(), records); err != nil {
			return fmt.Errorf("failed to write db: %w", err)
		}
		slog.Info("exported dataset", "path", cfg.SqlitePath, "rows", len(records))
		return nil
	},
}
