package commands

import (
	"fmt"
	"log/slog"

	"courtlinks/internal/dataset"
	"courtlinks/internal/index"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuilds the lookup index from the dataset without harvesting.",
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
		if records == nil {
			slog.Warn("no dataset found, writing an empty index", "path", cfg.DatasetPath)
		}

		idx := index.Build(records)
		if err := index.Write(cfg.IndexPath, idx); err != nil {
			return fmt.Errorf("failed to write index: %w", err)
		}
		slog.Info("wrote index", "path", cfg.IndexPath, "cases", len(idx), "links", idx.LinkCount())
		return nil
	},
}
