// Calendar logic: the DC's daily open window, weekly/biweekly override rules
// that cut shifts out of specific days, and the derived open-interval algebra
// every suspension point queries.

package sim

import (
	"fmt"
	"math"
)

// rescheduleWindowDays bounds every forward search over the calendar. A scan
// that finds nothing within this window indicates an inconsistent
// configuration and fails closed instead of looping.
const rescheduleWindowDays = 30

// Interval is a half-open [Start,End) range of hours within one day.
type Interval struct {
	Start int
	End   int
}

// OverrideRule removes a sub-interval of hours from the open window of a
// recurring day-of-week. Weekday is relative to the configured day-1
// weekday; StartWeek and StrideWeeks select which weeks of the run the rule
// fires on (e.g. Weekday=Friday, StartWeek=1, StrideWeeks=2 cancels the
// given shift on every second Friday starting from the second week).
type OverrideRule struct {
	Weekday     int `yaml:"weekday"`
	StartWeek   int `yaml:"start_week"`
	StrideWeeks int `yaml:"stride_weeks"`
	FromHour    int `yaml:"from_hour"`
	ToHour      int `yaml:"to_hour"`
}

func (r OverrideRule) appliesTo(weekday, week int) bool {
	if weekday != r.Weekday || week < r.StartWeek {
		return false
	}
	stride := r.StrideWeeks
	if stride <= 0 {
		stride = 1
	}
	return (week-r.StartWeek)%stride == 0
}

// Calendar is process-wide configuration: loaded once at scenario start,
// immutable during a run.
type Calendar struct {
	openHour    int
	closeHour   int
	day1Weekday int
	overrides   []OverrideRule
}

func NewCalendar(cfg CalendarConfig) *Calendar {
	return &Calendar{
		openHour:    cfg.OpenHour,
		closeHour:   cfg.CloseHour,
		day1Weekday: cfg.Day1Weekday,
		overrides:   cfg.Overrides,
	}
}

// OperatingHours is the length of the base daily window, before overrides.
func (c *Calendar) OperatingHours() float64 {
	return float64(c.closeHour - c.openHour)
}

// OpenWindows returns the open intervals for the given 0-based day index:
// the base window minus the union of all matching override intervals,
// as disjoint sorted [start,end) pairs. Pure function of the day index.
func (c *Calendar) OpenWindows(day int) []Interval {
	windows := []Interval{{Start: c.openHour, End: c.closeHour}}
	if day < 0 {
		return windows
	}
	weekday := (c.day1Weekday + day) % 7
	week := day / 7
	for _, rule := range c.overrides {
		if rule.appliesTo(weekday, week) {
			windows = subtract(windows, Interval{Start: rule.FromHour, End: rule.ToHour})
		}
	}
	return windows
}

// subtract removes cut from every interval in ws, keeping the result
// disjoint and sorted.
func subtract(ws []Interval, cut Interval) []Interval {
	if cut.End <= cut.Start {
		return ws
	}
	out := make([]Interval, 0, len(ws)+1)
	for _, w := range ws {
		if cut.End <= w.Start || cut.Start >= w.End {
			out = append(out, w)
			continue
		}
		if cut.Start > w.Start {
			out = append(out, Interval{Start: w.Start, End: cut.Start})
		}
		if cut.End < w.End {
			out = append(out, Interval{Start: cut.End, End: w.End})
		}
	}
	return out
}

// IsOpen reports whether the DC is open at the given absolute hour.
// Times before simulation start count as closed.
func (c *Calendar) IsOpen(t float64) bool {
	if t < 0 {
		return false
	}
	day := int(t / 24)
	hourOfDay := t - float64(day)*24
	for _, w := range c.OpenWindows(day) {
		if float64(w.Start) <= hourOfDay && hourOfDay < float64(w.End) {
			return true
		}
	}
	return false
}

// HoursUntilClose returns the remaining open time at t, or 0 if closed.
func (c *Calendar) HoursUntilClose(t float64) float64 {
	if t < 0 {
		return 0
	}
	day := int(t / 24)
	hourOfDay := t - float64(day)*24
	for _, w := range c.OpenWindows(day) {
		if float64(w.Start) <= hourOfDay && hourOfDay < float64(w.End) {
			return float64(w.End) - hourOfDay
		}
	}
	return 0
}

// NextOpen returns the earliest time >= t at which the DC is open. The
// search is bounded by the reschedule window; exhausting it means the
// calendar can never open again and is a configuration fault.
func (c *Calendar) NextOpen(t float64) (float64, error) {
	if t < 0 {
		t = 0
	}
	if c.IsOpen(t) {
		return t, nil
	}
	startDay := int(math.Floor(t / 24))
	for day := startDay; day <= startDay+rescheduleWindowDays; day++ {
		for _, w := range c.OpenWindows(day) {
			open := float64(day)*24 + float64(w.Start)
			if open >= t {
				return open, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: no open hour within %d days after %.2fh", ErrNoFeasibleSlot, rescheduleWindowDays, t)
}
