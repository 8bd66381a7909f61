// Package fleetio reads and writes the JSON file formats of the command
// line tool: fleet descriptions going into the solver and solved
// schedules coming out.
package fleetio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/gitrdm/regatta/pkg/party"
)

// FleetFile is the on-disk description of a solve input.
type FleetFile struct {
	Periods int          `json:"periods" mapstructure:"periods"`
	Boats   []BoatRecord `json:"boats" mapstructure:"boats"`
}

// BoatRecord mirrors party.Boat for serialization.
type BoatRecord struct {
	ID       int `json:"id" mapstructure:"id"`
	Crew     int `json:"crew" mapstructure:"crew"`
	Capacity int `json:"capacity" mapstructure:"capacity"`
}

// ReadFleet loads and validates a fleet file. Structural problems in the
// fleet surface as party.ErrMalformedInstance, file and syntax problems
// as plain errors.
func ReadFleet(path string) (*party.Instance, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fleet: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse fleet %s: %w", path, err)
	}
	var file FleetFile
	if err := mapstructure.Decode(doc, &file); err != nil {
		return nil, fmt.Errorf("decode fleet %s: %w", path, err)
	}
	boats := make([]party.Boat, len(file.Boats))
	for i, r := range file.Boats {
		boats[i] = party.Boat{ID: r.ID, Crew: r.Crew, Capacity: r.Capacity}
	}
	return party.NewInstance(boats, file.Periods)
}

// WriteFleet saves an instance as a fleet file.
func WriteFleet(path string, inst *party.Instance) error {
	if inst == nil {
		return fmt.Errorf("write fleet: nil instance")
	}
	file := FleetFile{Periods: inst.Periods()}
	for _, b := range inst.Boats() {
		file.Boats = append(file.Boats, BoatRecord{ID: b.ID, Crew: b.Crew, Capacity: b.Capacity})
	}
	raw, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode fleet: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write fleet: %w", err)
	}
	return nil
}

// ScheduleFile is the on-disk form of a solved timetable.
type ScheduleFile struct {
	RunID     string          `json:"run_id,omitempty" mapstructure:"run_id"`
	HostCount int             `json:"host_count" mapstructure:"host_count"`
	Hosts     []int           `json:"hosts" mapstructure:"hosts"`
	Guests    []GuestSchedule `json:"guests" mapstructure:"guests"`
}

// GuestSchedule is one guest's visiting sequence, hosts by period.
type GuestSchedule struct {
	Guest int   `json:"guest" mapstructure:"guest"`
	Hosts []int `json:"hosts" mapstructure:"hosts"`
}

// ScheduleFrom converts a solver result for serialization. The run
// identifier is optional and kept verbatim.
func ScheduleFrom(res *party.Result, runID string) ScheduleFile {
	file := ScheduleFile{
		RunID:     runID,
		HostCount: res.HostCount,
		Hosts:     append([]int(nil), res.Hosts...),
	}
	for _, it := range res.Itineraries {
		file.Guests = append(file.Guests, GuestSchedule{
			Guest: it.Guest,
			Hosts: append([]int(nil), it.Hosts...),
		})
	}
	return file
}

// Result converts the file back into the solver's result form. Solve
// statistics do not round-trip.
func (s ScheduleFile) Result() *party.Result {
	res := &party.Result{
		HostCount: s.HostCount,
		Hosts:     append([]int(nil), s.Hosts...),
	}
	for _, g := range s.Guests {
		res.Itineraries = append(res.Itineraries, party.Itinerary{
			Guest: g.Guest,
			Hosts: append([]int(nil), g.Hosts...),
		})
	}
	return res
}

// ReadSchedule loads a schedule file.
func ReadSchedule(path string) (*party.Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse schedule %s: %w", path, err)
	}
	var file ScheduleFile
	if err := mapstructure.Decode(doc, &file); err != nil {
		return nil, fmt.Errorf("decode schedule %s: %w", path, err)
	}
	return file.Result(), nil
}

// WriteSchedule saves a solver result as a schedule file.
func WriteSchedule(path string, res *party.Result, runID string) error {
	if res == nil {
		return fmt.Errorf("write schedule: nil result")
	}
	raw, err := json.MarshalIndent(ScheduleFrom(res, runID), "", "  ")
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}
	return nil
}
