package sim

// Event is a single suspension point on the simulated clock. Each event has
// an absolute time in hours and a class that fixes execution order among
// events scheduled for the same instant.
type Event interface {
	Time() float64
	Class() EventClass
	Execute(*Simulator)
}

// EventClass orders same-instant events. Lower values run first, so the
// capacity refresh always publishes the new hour's slots before the
// scheduler or any order process acts on them, every admission lands in the
// ready queue before the dispatch pass pops the best candidate, and
// preparation progress is up to date before a loading process inspects it.
type EventClass int

const (
	ClassCapacity EventClass = iota
	ClassScheduler
	ClassDispatch
	ClassPreparation
	ClassOrder
)

// funcEvent is the concrete event used throughout the engine: a wake-up
// time, a class, and the continuation to run. Order processes keep their
// state on their process structs, so an event only needs to name the next
// step.
type funcEvent struct {
	at    float64
	class EventClass
	fn    func(*Simulator)
}

func (e *funcEvent) Time() float64     { return e.at }
func (e *funcEvent) Class() EventClass { return e.class }

func (e *funcEvent) Execute(s *Simulator) {
	e.fn(s)
}
