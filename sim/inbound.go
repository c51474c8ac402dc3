// Inbound receiving. A truck takes a dock slot at its scheduled timeslot,
// unloads for one hour, and the goods then go through putaway at the inbound
// team's hourly rate with a 24-hour service target. Putaway past the target
// is not abandoned; the order finishes best-effort and carries a deadline
// flag for the KPI side.

package sim

import (
	"github.com/sirupsen/logrus"
)

// receiveProcess is the state machine for one inbound order.
type receiveProcess struct {
	order *Order
	rate  float64 // pallets/hour, drawn once at unload
}

// arrive fires at the scheduled timeslot and tries for a dock slot.
func (p *receiveProcess) arrive(s *Simulator) {
	o := p.order
	if s.Calendar.IsOpen(s.Clock) && s.Docks.TryReserve(o.Flow, Inbound) {
		p.unload(s)
		return
	}

	o.MarkLate()
	target, err := nextFeasibleSlot(s, o.Flow, Inbound, int(s.Clock)+1)
	if err != nil {
		s.Fail(err)
		return
	}
	logrus.Debugf("[%08.2fh] %s dock full, retrying at hour %d", s.Clock, o, target)
	s.After(float64(target), ClassOrder, p.arrive)
}

// unload occupies the reserved slot for one hour, then starts putaway.
func (p *receiveProcess) unload(s *Simulator) {
	o := p.order
	o.ActualSlot = int(s.Clock)
	if o.ActualSlot != o.ScheduledSlot {
		o.MarkLate()
		o.DelayHours = o.ActualSlot - o.ScheduledSlot
	}
	o.ProcessingStart = s.Clock
	// Service target runs from arrival, not from the end of unloading, and
	// keeps ticking while the DC is closed.
	o.ProcessingDeadline = s.Clock + 24
	s.After(s.Clock+1, ClassOrder, func(sim *Simulator) {
		p.rate = sim.Labor.DrawHourlyCapacity(o.Flow, Inbound)
		p.putaway(sim)
	})
}

// putaway chunks through the remaining pallets, pausing across closures the
// same way preparation does. The deadline flag flips the first time work
// continues past the service target.
func (p *receiveProcess) putaway(s *Simulator) {
	o := p.order
	now := s.Clock

	if now > o.ProcessingDeadline {
		o.DeadlineExceeded = true
	}

	remaining := float64(o.Pallets) - o.PrepDone
	if remaining <= palletEpsilon {
		p.finish(s)
		return
	}

	if !s.Calendar.IsOpen(now) {
		open, err := s.Calendar.NextOpen(now)
		if err != nil {
			s.Fail(err)
			return
		}
		s.After(open, ClassOrder, p.putaway)
		return
	}

	chunk := remaining / p.rate
	if untilClose := s.Calendar.HoursUntilClose(now); untilClose < chunk {
		chunk = untilClose
	}

	o.PrepDone += chunk * p.rate
	s.Labor.RecordBusy(o.Flow, Inbound, chunk)
	s.After(now+chunk, ClassOrder, p.putaway)
}

func (p *receiveProcess) finish(s *Simulator) {
	o := p.order
	o.PrepDone = float64(o.Pallets)
	o.ProcessingEnd = s.Clock
	o.Completed = true
	if o.ProcessingEnd > o.ProcessingDeadline {
		o.DeadlineExceeded = true
	}
	s.KPI.RecordInbound(InboundRecord{
		OrderID:          o.ID,
		Flow:             o.Flow,
		Pallets:          o.Pallets,
		ScheduledSlot:    o.ScheduledSlot,
		ActualSlot:       o.ActualSlot,
		DelayHours:       o.DelayHours,
		OnTime:           o.OnTime,
		CompletedAt:      o.ProcessingEnd,
		DeadlineExceeded: o.DeadlineExceeded,
	})
	logrus.Debugf("[%08.2fh] %s received (deadline_exceeded=%v)", s.Clock, o, o.DeadlineExceeded)
}
