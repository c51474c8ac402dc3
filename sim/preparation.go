// Outbound preparation. A dispatched order occupies one preparation worker
// until every pallet is picked and staged, working only during open hours
// and pausing across closures. Preparation does not stop when the scheduled
// timeslot passes: an order caught mid-preparation at its slot keeps its
// worker and finishes, then goes through the reschedule path.

package sim

const palletEpsilon = 1e-9

// prepProcess is the state machine for one order's preparation. The noisy
// hourly rate is drawn once when work starts and held for the whole order.
type prepProcess struct {
	order     *Order
	scheduler *OutboundScheduler
	rate      float64 // pallets/hour
}

// start draws the order's working rate and begins chunking.
func (p *prepProcess) start(s *Simulator) {
	p.rate = s.Labor.DrawHourlyCapacity(p.order.Flow, Outbound)
	p.step(s)
}

// step works one contiguous stretch and re-arms itself at the stretch's end.
// A stretch is bounded by whichever comes first: the work remaining, the
// close of the current open window, or the order's scheduled slot. Splitting
// at the slot keeps PrepDone current at the instant the loading process
// first inspects it.
func (p *prepProcess) step(s *Simulator) {
	o := p.order
	now := s.Clock

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
		s.After(open, ClassPreparation, p.step)
		return
	}

	chunk := remaining / p.rate
	if untilClose := s.Calendar.HoursUntilClose(now); untilClose < chunk {
		chunk = untilClose
	}
	if slot := float64(o.ScheduledSlot); now < slot && slot-now < chunk {
		chunk = slot - now
	}

	o.PrepDone += chunk * p.rate
	s.Labor.RecordBusy(o.Flow, Outbound, chunk)
	s.After(now+chunk, ClassPreparation, p.step)
}

// finish marks the order prepared and hands the worker back.
func (p *prepProcess) finish(s *Simulator) {
	o := p.order
	o.PrepDone = float64(o.Pallets)
	o.PrepComplete = true
	p.scheduler.WorkerFreed()
}
