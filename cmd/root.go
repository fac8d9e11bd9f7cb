package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/multiplier/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "multiplier [config-file]",
	Short: "Adaptive multiplication drill",
	Long: "Multiplier drills multiplication until you answer a run of problems fast and correctly.\n" +
		"Problems you get wrong or answer slowly come back until they are fixed.",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDrill(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (.toml, or legacy .cfg)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite history database (overrides MULTIPLIER_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Diagnostic log level (trace, debug, info, warn, error)")

	addDrillFlags(rootCmd)

	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then MULTIPLIER_DB env var, then the default XDG
// path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
