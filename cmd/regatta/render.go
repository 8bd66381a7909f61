package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/gitrdm/regatta/pkg/party"
)

// Semantic colors for terminal output.
var (
	ColorHost    = lipgloss.Color("#E74C3C") // Red - host boats stay put
	ColorGuest   = lipgloss.Color("#3498DB") // Blue - guest crews move
	ColorSuccess = lipgloss.Color("#2ECC71") // Green - verdicts and confirmations
	ColorWarning = lipgloss.Color("#F4D03F") // Gold - truncated solves
	ColorMuted   = lipgloss.Color("#7F8C8D") // Grey - loads and statistics
)

// Styles holds the pre-configured text styles used by every subcommand.
var Styles = struct {
	Heading lipgloss.Style
	Host    lipgloss.Style
	Guest   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}{
	Heading: lipgloss.NewStyle().Bold(true),
	Host:    lipgloss.NewStyle().Bold(true).Foreground(ColorHost),
	Guest:   lipgloss.NewStyle().Foreground(ColorGuest),
	Success: lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess),
	Warning: lipgloss.NewStyle().Bold(true).Foreground(ColorWarning),
	Error:   lipgloss.NewStyle().Bold(true).Foreground(ColorHost),
	Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
}

// renderSchedule lays the timetable out one period at a time, showing each
// host with its load and the guests aboard.
func renderSchedule(inst *party.Instance, res *party.Result) string {
	var b strings.Builder

	hosts := lo.Map(res.Hosts, func(id int, _ int) string {
		return Styles.Host.Render(strconv.Itoa(id))
	})
	b.WriteString(Styles.Heading.Render(fmt.Sprintf("hosts (%d):", res.HostCount)))
	b.WriteString(" " + strings.Join(hosts, " ") + "\n")

	for p := 0; p < inst.Periods(); p++ {
		b.WriteString("\n" + Styles.Heading.Render(fmt.Sprintf("period %d", p)) + "\n")
		for _, id := range res.Hosts {
			host, _ := inst.BoatByID(id)
			load := host.Crew
			var guests []string
			for _, it := range res.Itineraries {
				if it.Hosts[p] != id {
					continue
				}
				crew, _ := inst.BoatByID(it.Guest)
				load += crew.Crew
				guests = append(guests, Styles.Guest.Render(strconv.Itoa(it.Guest)))
			}
			b.WriteString(fmt.Sprintf("  %s %s",
				Styles.Host.Render(fmt.Sprintf("host %d", id)),
				Styles.Muted.Render(fmt.Sprintf("(%d/%d aboard)", load, host.Capacity))))
			if len(guests) > 0 {
				b.WriteString("  guests " + strings.Join(guests, " "))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + Styles.Muted.Render(res.Stats.String()) + "\n")
	return b.String()
}

func renderInfeasible(err error) string {
	return Styles.Heading.Render("verdict:") + " " + Styles.Error.Render("infeasible") +
		"\n" + Styles.Muted.Render(err.Error())
}

func renderBudget(b *party.BudgetError) string {
	var detail string
	if b.Proven < 1 {
		detail = "no host count was settled before the budget ran out"
	} else {
		detail = fmt.Sprintf("host counts 1..%d are proven infeasible; the minimum, if any, is above %d",
			b.Proven, b.Proven)
	}
	return Styles.Warning.Render("budget exhausted") + "\n" +
		Styles.Muted.Render(detail) + "\n" +
		Styles.Muted.Render("cause: "+b.Cause.Error())
}
