// Outbound loading. An order shows up at its scheduled dock timeslot; if its
// pallets are staged and a slot is free it loads for one hour and is done.
// Anything else makes the order late: it waits for preparation to finish,
// then hunts forward for the next hour that is both inside an open window
// and has dock capacity in the static table. The hunt is bounded; an
// exhausted search is a configuration fault, not an infinite wait.

package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// nextFeasibleSlot scans forward from fromHour for the first hour that is
// open and has a nonzero slot count for the team. It ignores current-hour
// contention; the caller still has to win TryReserve when the hour arrives.
func nextFeasibleSlot(s *Simulator, flow Flow, dir Direction, fromHour int) (int, error) {
	limit := fromHour + rescheduleWindowDays*24
	for h := fromHour; h <= limit; h++ {
		if s.Calendar.IsOpen(float64(h)) && s.Docks.CapacityAt(flow, dir, h) > 0 {
			return h, nil
		}
	}
	return 0, fmt.Errorf("%w: no open hour with %s %s dock capacity within %d days after hour %d",
		ErrNoFeasibleSlot, flow, dir, rescheduleWindowDays, fromHour)
}

// loadProcess is the state machine for one outbound order's dock phase.
type loadProcess struct {
	order *Order
}

// arrive fires at the scheduled timeslot (or at admission, when the order
// was admitted after its slot had already passed).
func (p *loadProcess) arrive(s *Simulator) {
	if !p.order.PrepComplete {
		p.order.MarkLate()
		logrus.Debugf("[%08.2fh] %s not prepared at slot, waiting", s.Clock, p.order)
		p.waitPrep(s)
		return
	}
	p.attempt(s)
}

// waitPrep polls each hour boundary until preparation hands over a complete
// order. It runs in the order class, after any same-instant preparation
// step, so a chunk finishing exactly on the boundary is seen immediately.
func (p *loadProcess) waitPrep(s *Simulator) {
	if p.order.PrepComplete {
		p.attempt(s)
		return
	}
	s.After(math.Floor(s.Clock)+1, ClassOrder, p.waitPrep)
}

// attempt tries to take a dock slot right now; failure reschedules.
func (p *loadProcess) attempt(s *Simulator) {
	o := p.order
	if s.Calendar.IsOpen(s.Clock) && s.Docks.TryReserve(o.Flow, Outbound) {
		p.load(s)
		return
	}

	o.MarkLate()
	target, err := nextFeasibleSlot(s, o.Flow, Outbound, int(s.Clock)+1)
	if err != nil {
		s.Fail(err)
		return
	}
	logrus.Debugf("[%08.2fh] %s rescheduled to hour %d", s.Clock, o, target)
	s.After(float64(target), ClassOrder, p.attempt)
}

// load occupies the reserved slot for one hour.
func (p *loadProcess) load(s *Simulator) {
	o := p.order
	o.ActualSlot = int(s.Clock)
	if o.ActualSlot != o.ScheduledSlot {
		o.MarkLate()
		o.DelayHours = o.ActualSlot - o.ScheduledSlot
	}
	o.ProcessingStart = s.Clock
	s.After(s.Clock+1, ClassOrder, p.complete)
}

func (p *loadProcess) complete(s *Simulator) {
	o := p.order
	o.ProcessingEnd = s.Clock
	o.Completed = true
	s.KPI.RecordOutbound(OutboundRecord{
		OrderID:       o.ID,
		Flow:          o.Flow,
		Region:        o.Region,
		Pallets:       o.Pallets,
		ScheduledSlot: o.ScheduledSlot,
		ActualSlot:    o.ActualSlot,
		DelayHours:    o.DelayHours,
		OnTime:        o.OnTime,
		CompletedAt:   o.ProcessingEnd,
	})
	logrus.Debugf("[%08.2fh] %s loaded (on_time=%v, delay=%dh)", s.Clock, o, o.OnTime, o.DelayHours)
}
