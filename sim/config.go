package sim

import "fmt"

// CalendarConfig groups the DC opening-window parameters.
type CalendarConfig struct {
	OpenHour    int            `yaml:"open_hour"`  // base daily open, 0-23
	CloseHour   int            `yaml:"close_hour"` // base daily close, 1-24
	Day1Weekday int            `yaml:"day1_weekday"`
	Overrides   []OverrideRule `yaml:"overrides"`
}

// LaborConfig groups the FTE-to-throughput parameters.
type LaborConfig struct {
	// BaselineFTE is the staffed headcount per flow and direction at the
	// baseline opening window.
	BaselineFTE map[Flow]map[Direction]float64 `yaml:"baseline_fte"`
	// Efficiency is pallets per FTE per month, per flow.
	Efficiency map[Flow]float64 `yaml:"efficiency"`
	// HoursPerMonth converts monthly efficiency into an hourly rate.
	// Defaults to 176 (22 working days x 8h).
	HoursPerMonth float64 `yaml:"hours_per_month"`
	// BaselineHours is the opening-window length the baseline FTE staffing
	// assumes. Defaults to 18 (06:00-24:00).
	BaselineHours float64 `yaml:"baseline_hours"`
	// Coefficient is the manually tunable opening-hour coefficient applied
	// to every capacity draw. Defaults to 1.
	Coefficient float64 `yaml:"coefficient"`
	// Alpha is the power-law elasticity exponent of throughput vs. opening
	// hours: multiplier = (operating/baseline)^(alpha-1). Alpha 1 (the
	// default) means no elasticity effect.
	Alpha float64 `yaml:"alpha"`
}

// DockConfig is the hourly dock-timeslot table: per flow and direction, the
// slot count for each hour of day (24 entries). The table is static
// configuration; the capacity manager re-reads it every simulated hour and
// zeroes it outside open windows.
type DockConfig map[Flow]map[Direction][]int

// ScenarioConfig is everything a single simulation run needs besides the
// order feed and the seed.
type ScenarioConfig struct {
	Name     string         `yaml:"name"`
	Calendar CalendarConfig `yaml:"calendar"`
	Labor    LaborConfig    `yaml:"labor"`
	Docks    DockConfig     `yaml:"docks"`
	// PrepWorkers is the number of outbound preparation teams that can work
	// orders concurrently. Defaults to 1.
	PrepWorkers int `yaml:"prep_workers"`
}

// Validate checks the configuration for structural errors and fills
// defaults. It must be called (it is, by NewSimulator) before the config is
// used.
func (c *ScenarioConfig) Validate() error {
	cal := &c.Calendar
	if cal.OpenHour < 0 || cal.OpenHour > 23 {
		return fmt.Errorf("open_hour %d out of range [0,23]", cal.OpenHour)
	}
	if cal.CloseHour <= cal.OpenHour || cal.CloseHour > 24 {
		return fmt.Errorf("close_hour %d must be in (%d,24]", cal.CloseHour, cal.OpenHour)
	}
	if cal.Day1Weekday < 0 || cal.Day1Weekday > 6 {
		return fmt.Errorf("day1_weekday %d out of range [0,6]", cal.Day1Weekday)
	}
	for i, r := range cal.Overrides {
		if r.Weekday < 0 || r.Weekday > 6 {
			return fmt.Errorf("override %d: weekday %d out of range [0,6]", i, r.Weekday)
		}
		if r.ToHour <= r.FromHour {
			return fmt.Errorf("override %d: empty interval [%d,%d)", i, r.FromHour, r.ToHour)
		}
	}

	l := &c.Labor
	if l.HoursPerMonth == 0 {
		l.HoursPerMonth = 176
	}
	if l.BaselineHours == 0 {
		l.BaselineHours = 18
	}
	if l.Coefficient == 0 {
		l.Coefficient = 1
	}
	if l.Alpha == 0 {
		l.Alpha = 1
	}
	for _, flow := range Flows {
		if l.Efficiency[flow] <= 0 {
			return fmt.Errorf("labor efficiency missing for flow %s", flow)
		}
		for _, dir := range Directions {
			if l.BaselineFTE[flow][dir] <= 0 {
				return fmt.Errorf("baseline FTE missing for %s %s", flow, dir)
			}
		}
	}

	for _, flow := range Flows {
		for _, dir := range Directions {
			table, ok := c.Docks[flow][dir]
			if !ok {
				return fmt.Errorf("dock table missing for %s %s", flow, dir)
			}
			if len(table) != 24 {
				return fmt.Errorf("dock table for %s %s has %d entries, want 24", flow, dir, len(table))
			}
			for h, n := range table {
				if n < 0 {
					return fmt.Errorf("dock table for %s %s hour %d is negative", flow, dir, h)
				}
			}
		}
	}

	if c.PrepWorkers == 0 {
		c.PrepWorkers = 1
	}
	if c.PrepWorkers < 0 {
		return fmt.Errorf("prep_workers must be positive, got %d", c.PrepWorkers)
	}
	return nil
}
