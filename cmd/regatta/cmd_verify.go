package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitrdm/regatta/internal/fleetio"
	"github.com/gitrdm/regatta/pkg/party"
)

var (
	verifyFleetPath    string
	verifySchedulePath string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a schedule file against its fleet",
	Long: `Verify replays every party rule against a schedule produced by solve:
hosts stay put, every guest visits a distinct host each period, no boat
exceeds its capacity, and no two crews meet twice.

The exit status is 0 for a valid schedule and 1 for any violation, so
verify slots into CI pipelines directly.

Example:
  regatta verify --fleet fleet.json --schedule schedule.json`,
	Run: runVerify,
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyFleetPath, "fleet", "f", "",
		"Fleet description file (JSON)")
	verifyCmd.MarkFlagRequired("fleet")
	verifyCmd.Flags().StringVarP(&verifySchedulePath, "schedule", "s", "",
		"Schedule file to check (JSON)")
	verifyCmd.MarkFlagRequired("schedule")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) {
	inst, err := fleetio.ReadFleet(verifyFleetPath)
	if err != nil {
		fail(err)
	}
	res, err := fleetio.ReadSchedule(verifySchedulePath)
	if err != nil {
		fail(err)
	}

	if err := party.Verify(inst, res); err != nil {
		fmt.Println(Styles.Error.Render("invalid schedule:") + " " + err.Error())
		os.Exit(1)
	}
	fmt.Println(Styles.Success.Render("schedule is valid"))
	fmt.Println(Styles.Muted.Render(fmt.Sprintf("%d hosts, %d guests, %d periods",
		res.HostCount, len(res.Itineraries), inst.Periods())))
}
