// Outbound order scheduler. Orders are admitted when their creation time
// arrives -- the DC cannot see an order before it exists -- and wait in a
// min-priority structure keyed by latest start time: the last moment
// preparation can begin and still finish by the scheduled timeslot at the
// capacity estimate frozen at admission. Whenever a preparation worker is
// free, the scheduler dispatches exactly the order with the smallest latest
// start time; ties fall back to admission sequence, so a run is fully
// deterministic.

package sim

import (
	"container/heap"

	"github.com/sirupsen/logrus"
)

type readyEntry struct {
	latestStart float64
	seq         int
	order       *Order
}

// readyQueue implements heap.Interface ordered by (latestStart, admission
// sequence).
type readyQueue []readyEntry

func (q readyQueue) Len() int { return len(q) }

func (q readyQueue) Less(i, j int) bool {
	if q[i].latestStart != q[j].latestStart {
		return q[i].latestStart < q[j].latestStart
	}
	return q[i].seq < q[j].seq
}

func (q readyQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *readyQueue) Push(x any) {
	*q = append(*q, x.(readyEntry))
}

func (q *readyQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// OutboundScheduler admits outbound orders over time and hands them to
// preparation workers in deadline-slack order.
type OutboundScheduler struct {
	sim         *Simulator
	ready       readyQueue
	freeWorkers int
	admitted    int

	dispatchPending bool
}

func NewOutboundScheduler(s *Simulator, workers int) *OutboundScheduler {
	return &OutboundScheduler{
		sim:         s,
		ready:       make(readyQueue, 0),
		freeWorkers: workers,
	}
}

// Admit pushes an order into the ready queue with its priority frozen at
// admission time. The preparation-time estimate uses the deterministic base
// capacity; a later redraw of the noisy hourly rate never reshuffles
// already-admitted orders. Admission never dispatches directly: a
// same-instant dispatch pass runs after every admission for that instant
// has been pushed, so simultaneously created orders compete on latest
// start time rather than admission order.
func (s *OutboundScheduler) Admit(o *Order) {
	capacity := s.sim.Labor.BaseHourlyCapacity(o.Flow, Outbound)
	estPrep := float64(o.Pallets) / capacity
	latestStart := float64(o.ScheduledSlot) - estPrep

	heap.Push(&s.ready, readyEntry{latestStart: latestStart, seq: s.admitted, order: o})
	s.admitted++
	logrus.Debugf("[%08.2fh] admitted %s, latest start %.2fh, queue=%d",
		s.sim.Clock, o, latestStart, s.ready.Len())

	s.requestDispatch()
}

// WorkerFreed returns a preparation worker to the pool and arms a dispatch
// pass for the next waiting order, if any.
func (s *OutboundScheduler) WorkerFreed() {
	s.freeWorkers++
	s.requestDispatch()
}

// requestDispatch arms at most one dispatch event per simulated instant.
// Admission events sort before the dispatch class, so by the time the pass
// runs the ready queue holds every order admitted at this instant.
func (s *OutboundScheduler) requestDispatch() {
	if s.dispatchPending {
		return
	}
	s.dispatchPending = true
	s.sim.After(s.sim.Clock, ClassDispatch, func(sim *Simulator) {
		s.dispatchPending = false
		s.dispatch()
	})
}

// QueueLen reports how many admitted orders are waiting for a worker.
func (s *OutboundScheduler) QueueLen() int {
	return s.ready.Len()
}

// dispatch starts preparation for the best candidate per free worker.
func (s *OutboundScheduler) dispatch() {
	for s.freeWorkers > 0 && s.ready.Len() > 0 {
		entry := heap.Pop(&s.ready).(readyEntry)
		s.freeWorkers--
		logrus.Debugf("[%08.2fh] dispatching %s (latest start %.2fh)",
			s.sim.Clock, entry.order, entry.latestStart)
		p := &prepProcess{order: entry.order, scheduler: s}
		p.start(s.sim)
	}
}
