// Command regatta is an exact solver for progressive party timetables:
// given a fleet of boats with crews and capacities, it finds the minimum
// number of host boats and a full visiting schedule, or proves that none
// exists.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "regatta",
		Short: "Exact solver for progressive party timetables",
		Long: `Regatta schedules a progressive boat party: host boats stay put while
every other crew visits a different host each period, nobody exceeds a
boat's capacity, and no two crews meet more than once.

The solver proves the minimum number of hosts by exhaustive search over
host counts. Fleets are plain JSON files; see "regatta generate" for a
quick way to produce one.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging on stderr")
}

// fail prints a styled error and exits. Solver verdicts (infeasible,
// budget exhausted) are reports, not failures; this is for broken input
// and I/O only.
func fail(err error) {
	fmt.Fprintln(os.Stderr, Styles.Error.Render("error:")+" "+err.Error())
	os.Exit(1)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
