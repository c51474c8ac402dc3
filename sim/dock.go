// Dock timeslot capacity manager. At the start of every simulated hour it
// publishes the available slot count for each (flow, direction) key -- zero
// whenever the calendar says the DC is closed -- and resets the per-key used
// counter, emitting a utilization record for the hour that just ended.
// Callers obtain a slot through TryReserve's check-then-increment; a failed
// attempt means retry after the next hour boundary. No reservation persists
// across an hour boundary.

package sim

import (
	"github.com/sirupsen/logrus"
)

// DockManager owns the only mutable shared state in the engine besides the
// KPI lists: the per-(flow,direction) used counters for the current hour.
type DockManager struct {
	table    DockConfig
	calendar *Calendar
	kpi      *Aggregator

	available map[Flow]map[Direction]int
	used      map[Flow]map[Direction]int
	hour      int // current absolute hour, -1 before the first refresh
}

func NewDockManager(table DockConfig, cal *Calendar, kpi *Aggregator) *DockManager {
	avail := make(map[Flow]map[Direction]int, len(Flows))
	used := make(map[Flow]map[Direction]int, len(Flows))
	for _, f := range Flows {
		avail[f] = make(map[Direction]int, len(Directions))
		used[f] = make(map[Direction]int, len(Directions))
	}
	return &DockManager{
		table:     table,
		calendar:  cal,
		kpi:       kpi,
		available: avail,
		used:      used,
		hour:      -1,
	}
}

// ScheduleRefresh arms the hourly refresh event. It runs in the capacity
// class, ahead of every other event scheduled for the same hour.
func (d *DockManager) ScheduleRefresh(s *Simulator, hour int) {
	s.After(float64(hour), ClassCapacity, func(sim *Simulator) {
		d.refresh(sim, hour)
	})
}

// refresh publishes the new hour's capacity. Immediately before resetting
// the used counters it records the finished hour's utilization.
func (d *DockManager) refresh(s *Simulator, hour int) {
	if d.hour >= 0 {
		for _, f := range Flows {
			for _, dir := range Directions {
				d.kpi.RecordDockUsage(DockUsageRecord{
					Hour:      d.hour,
					Flow:      f,
					Direction: dir,
					Used:      d.used[f][dir],
					Available: d.available[f][dir],
				})
			}
		}
	}

	open := d.calendar.IsOpen(float64(hour))
	for _, f := range Flows {
		for _, dir := range Directions {
			d.used[f][dir] = 0
			if open {
				d.available[f][dir] = d.table[f][dir][hour%24]
			} else {
				d.available[f][dir] = 0
			}
		}
	}
	d.hour = hour
	logrus.Debugf("[%08.2fh] dock capacity refreshed (open=%v)", s.Clock, open)

	if float64(hour+1) <= s.Horizon {
		d.ScheduleRefresh(s, hour+1)
	}
}

// TryReserve is the atomic check-then-increment against the current hour's
// used counter. It either grants a slot for this hour or reports that the
// caller must retry after the next hour boundary.
func (d *DockManager) TryReserve(flow Flow, dir Direction) bool {
	if d.used[flow][dir] < d.available[flow][dir] {
		d.used[flow][dir]++
		return true
	}
	return false
}

// CapacityAt reads the static table for an absolute hour, ignoring the
// calendar. The reschedule search combines it with Calendar.IsOpen.
func (d *DockManager) CapacityAt(flow Flow, dir Direction, absHour int) int {
	return d.table[flow][dir][((absHour%24)+24)%24]
}

// Available exposes the published slot count for the current hour.
func (d *DockManager) Available(flow Flow, dir Direction) int {
	return d.available[flow][dir]
}

// Used exposes the used counter for the current hour.
func (d *DockManager) Used(flow Flow, dir Direction) int {
	return d.used[flow][dir]
}
