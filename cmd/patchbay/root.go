package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/patchbay/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "patchbay",
	Short: "Patchbay classifies routing endpoints into connection-matrix groups",
	Long: `Patchbay gathers every port a session can reach (routes, processors,
hardware, external programs) and aggregates them into named bundles and
groups, the way a patching matrix presents its rows and columns.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		slog.SetDefault(logging.New(logging.Level(debug)))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("session", "s", "", "Path to a session file (YAML or JSON)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
