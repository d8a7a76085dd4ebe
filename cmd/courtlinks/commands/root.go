package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"courtlinks/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "courtlinks",
	Short: "courtlinks links supreme court decisions to the appeals court cases they review.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		serviceutil.InitSlog(os.Stderr, verbose)
		return serviceutil.LoadDotEnv(".env")
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitStatus ends the process with a non-zero code without an error message,
// commands return it so that their deferred cleanups still run.
type exitStatus int

func (e exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "courtlinks.json5", "The config file to read, a <name>.local.json5 next to it takes priority.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging.")
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	var status exitStatus
	if errors.As(err, &status) {
		os.Exit(int(status))
	}
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
