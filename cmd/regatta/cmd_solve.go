package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gitrdm/regatta/internal/fleetio"
	"github.com/gitrdm/regatta/pkg/party"
)

var (
	solveFleetPath string
	solveWorkers   int
	solveTimeLimit time.Duration
	solveNodeLimit int64
	solveJSON      bool
	solveOutPath   string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Find the minimum host count and a full schedule for a fleet",
	Long: `Solve reads a fleet file and searches host counts from one upward until
a count admits a complete timetable. The first feasible count is the
proven minimum; if no count works, the fleet is reported infeasible.

Budgets make long runs safe to script: with --time-limit or --node-limit
set, a truncated run reports how many host counts were proven infeasible
before the budget ran out.

Examples:
  regatta solve --fleet fleet.json
  regatta solve -f fleet.json -w 8 --time-limit 30s
  regatta solve -f fleet.json --json -o schedule.json`,
	Run: runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&solveFleetPath, "fleet", "f", "",
		"Fleet description file (JSON)")
	solveCmd.MarkFlagRequired("fleet")
	solveCmd.Flags().IntVarP(&solveWorkers, "workers", "w", runtime.NumCPU(),
		"Concurrent candidate searches per host count")
	solveCmd.Flags().DurationVar(&solveTimeLimit, "time-limit", 0,
		"Wall-clock budget for the whole solve, 0 for none")
	solveCmd.Flags().Int64Var(&solveNodeLimit, "node-limit", 0,
		"Total search-node budget, 0 for none")
	solveCmd.Flags().BoolVar(&solveJSON, "json", false,
		"Print the schedule as JSON instead of a table")
	solveCmd.Flags().StringVarP(&solveOutPath, "out", "o", "",
		"Write the schedule as JSON to this file")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) {
	inst, err := fleetio.ReadFleet(solveFleetPath)
	if err != nil {
		fail(err)
	}

	runID := uuid.NewString()
	logger := slog.Default().With("run_id", runID)
	logger.Info("solving fleet",
		"fleet", solveFleetPath,
		"boats", inst.BoatCount(),
		"periods", inst.Periods(),
		"workers", solveWorkers)

	opts := []party.Option{
		party.WithWorkers(solveWorkers),
		party.WithLogger(logger),
	}
	if solveTimeLimit > 0 {
		opts = append(opts, party.WithTimeLimit(solveTimeLimit))
	}
	if solveNodeLimit > 0 {
		opts = append(opts, party.WithNodeLimit(solveNodeLimit))
	}

	res, err := party.Solve(cmd.Context(), inst, opts...)
	var budget *party.BudgetError
	switch {
	case errors.Is(err, party.ErrInfeasible):
		fmt.Println(renderInfeasible(err))
		return
	case errors.As(err, &budget):
		fmt.Println(renderBudget(budget))
		return
	case err != nil:
		fail(err)
	}

	if solveOutPath != "" {
		if err := fleetio.WriteSchedule(solveOutPath, res, runID); err != nil {
			fail(err)
		}
		fmt.Println(Styles.Success.Render("schedule written:") + " " + solveOutPath)
		fmt.Println(Styles.Muted.Render(res.Stats.String()))
		return
	}
	if solveJSON {
		data, err := json.MarshalIndent(fleetio.ScheduleFrom(res, runID), "", "  ")
		if err != nil {
			fail(err)
		}
		fmt.Println(string(data))
		return
	}
	fmt.Print(renderSchedule(inst, res))
}
