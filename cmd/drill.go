package cmd

import (
	"github.com/spf13/cobra"
)

var drillCmd = &cobra.Command{
	Use:   "drill [config-file]",
	Short: "Start a drill session (default command)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDrill(cmd, args)
	},
}

func init() {
	addDrillFlags(drillCmd)
}

func addDrillFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int64("seed", 0, "Random seed (0 = time-seeded)")
	f.Int("digits1", 0, "Digits of the first operand")
	f.Int("digits2", 0, "Digits of the second operand")
	f.Float64("apm", 0, "Required answers per minute")
	f.Int("streak", 0, "Required consecutive successes (window size for --termination=rate)")
	f.String("timing", "", "Timing policy: complexity or flat")
	f.String("termination", "", "Termination policy: streak or rate")
	f.String("answers-file", "", "Write the answer log to this file")
	f.Bool("no-history", false, "Do not record the session in the history database")
}
