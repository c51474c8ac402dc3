// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"
)

// eventEntry pairs an event with the sequence number assigned at schedule
// time. The sequence is the final tie-breaker, making the run order fully
// deterministic.
type eventEntry struct {
	ev  Event
	seq uint64
}

// EventQueue implements heap.Interface with deterministic ordering:
// time, then event class, then schedule sequence.
type EventQueue []eventEntry

func (eq EventQueue) Len() int { return len(eq) }

func (eq EventQueue) Less(i, j int) bool {
	ei, ej := eq[i], eq[j]
	if ei.ev.Time() != ej.ev.Time() {
		return ei.ev.Time() < ej.ev.Time()
	}
	if ei.ev.Class() != ej.ev.Class() {
		return ei.ev.Class() < ej.ev.Class()
	}
	return ei.seq < ej.seq
}

func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(eventEntry))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Simulator is the core object that holds simulation time, system state, and
// the event loop. All order "processes" are state machines advanced by
// events on one shared clock; only one of them runs at any simulated
// instant, so there is no shared-state race by construction.
type Simulator struct {
	Clock   float64
	Horizon float64 // hours

	Calendar  *Calendar
	Docks     *DockManager
	Labor     *LaborModel
	Scheduler *OutboundScheduler
	KPI       *Aggregator

	Orders []*Order

	events EventQueue
	seq    uint64
	err    error
}

// NewSimulator wires a scenario configuration and a pre-loaded order set
// into a ready-to-run simulator. The master seed drives every random draw
// through the partitioned RNG, so identical (config, orders, seed) inputs
// produce identical per-order outcomes.
func NewSimulator(cfg *ScenarioConfig, orders []*Order, seed int64, horizonDays int) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scenario config: %w", err)
	}
	if horizonDays <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d days", horizonDays)
	}

	rng := NewPartitionedRNG(NewSimulationKey(seed))
	cal := NewCalendar(cfg.Calendar)
	kpi := NewAggregator()

	s := &Simulator{
		Horizon:  float64(horizonDays) * 24,
		Calendar: cal,
		Labor:    NewLaborModel(cfg.Labor, cal.OperatingHours(), rng),
		Docks:    NewDockManager(cfg.Docks, cal, kpi),
		KPI:      kpi,
		Orders:   orders,
		events:   make(EventQueue, 0),
	}
	s.Scheduler = NewOutboundScheduler(s, cfg.PrepWorkers)

	s.Docks.ScheduleRefresh(s, 0)
	s.admitOrders()
	return s, nil
}

// Schedule pushes an event onto the simulator's event queue.
func (s *Simulator) Schedule(ev Event) {
	s.seq++
	heap.Push(&s.events, eventEntry{ev: ev, seq: s.seq})
}

// After is the common scheduling helper: run fn at the given absolute hour
// with the given same-instant class.
func (s *Simulator) After(at float64, class EventClass, fn func(*Simulator)) {
	s.Schedule(&funcEvent{at: at, class: class, fn: fn})
}

// Fail records the first hard error and stops the run. Only configuration
// inconsistencies surface this way; every business condition is folded into
// KPI counters instead.
func (s *Simulator) Fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Run drives the event loop until the horizon is reached, the queue drains,
// or a hard error occurs.
func (s *Simulator) Run() error {
	for len(s.events) > 0 && s.err == nil {
		entry := heap.Pop(&s.events).(eventEntry)
		if entry.ev.Time() > s.Horizon {
			break
		}
		s.Clock = entry.ev.Time()
		logrus.Debugf("[%08.2fh] executing class=%d event", s.Clock, entry.ev.Class())
		entry.ev.Execute(s)
	}
	if s.err != nil {
		return s.err
	}
	s.KPI.SimEndedTime = min(s.Clock, s.Horizon)
	logrus.Infof("[%08.2fh] simulation ended", s.Clock)
	return nil
}

// Summary builds the per-scenario KPI aggregates over the order set.
func (s *Simulator) Summary() *Summary {
	return s.KPI.Summarize(s.Orders, s.Horizon, s.Calendar, s.Labor)
}

// admitOrders schedules the admission and arrival events for every loaded
// order. Outbound orders enter the dynamic-priority scheduler at their
// creation time (clamped to simulation start when the origin lies on the
// previous day) and their loading process at the scheduled timeslot.
// Inbound orders go straight to the receiving pipeline at their timeslot.
func (s *Simulator) admitOrders() {
	for _, o := range s.Orders {
		o := o
		switch o.Direction {
		case Outbound:
			admitAt := max(o.CreationTime, 0)
			s.After(admitAt, ClassScheduler, func(sim *Simulator) {
				sim.Scheduler.Admit(o)
			})
			lp := &loadProcess{order: o}
			arriveAt := max(float64(o.ScheduledSlot), admitAt)
			s.After(arriveAt, ClassOrder, lp.arrive)
		case Inbound:
			rp := &receiveProcess{order: o}
			s.After(max(float64(o.ScheduledSlot), 0), ClassOrder, rp.arrive)
		}
	}
}
