package sim

import "fmt"

// Flow identifies the goods stream an order belongs to.
type Flow string

// Direction identifies whether an order moves goods into or out of the DC.
type Direction string

const (
	FlowFG Flow = "FG"
	FlowRP Flow = "R&P"

	Inbound  Direction = "Inbound"
	Outbound Direction = "Outbound"
)

// Flows and Directions fix the iteration order over the four (flow,
// direction) teams; map iteration would break run-to-run determinism.
var (
	Flows      = []Flow{FlowFG, FlowRP}
	Directions = []Direction{Inbound, Outbound}
)

// Region labels an outbound order's delivery promise class.
type Region string

const (
	RegionG2SameDay Region = "G2_same_day"
	RegionG2NextDay Region = "G2_next_day"
	RegionROWNxtDay Region = "ROW_next_day"
)

// Order is one unit of work flowing through the DC. The scheduling inputs
// (Flow, Direction, Pallets, Region, CreationTime, ScheduledSlot) come from
// the order feed; everything else is filled in as the run progresses and
// read back by the KPI aggregation.
type Order struct {
	ID        int
	Flow      Flow
	Direction Direction
	Pallets   int
	Region    Region

	// CreationTime is the absolute hour the order becomes visible to the
	// scheduler. It may be negative for orders created the day before the
	// simulated month starts; those are admitted at hour 0.
	CreationTime float64
	// ScheduledSlot is the absolute hour of the originally booked dock
	// timeslot.
	ScheduledSlot int

	// PrepDone counts pallets worked so far: picking and staging for
	// outbound, putaway for inbound. PrepComplete is outbound-only.
	PrepDone     float64
	PrepComplete bool

	// ActualSlot is the absolute hour of the dock slot the order really
	// used, -1 until a slot is secured.
	ActualSlot int
	// OnTime is true until the order first misses its scheduled slot; the
	// flip is monotonic and never reverts.
	OnTime     bool
	DelayHours int

	ProcessingStart float64
	ProcessingEnd   float64
	Completed       bool

	// Inbound receiving deadline bookkeeping.
	ProcessingDeadline float64
	DeadlineExceeded   bool
}

// MarkLate flips the on-time flag. Once late, always late.
func (o *Order) MarkLate() {
	o.OnTime = false
}

func (o *Order) String() string {
	return fmt.Sprintf("order %d [%s %s, %d pallets, slot %dh]",
		o.ID, o.Flow, o.Direction, o.Pallets, o.ScheduledSlot)
}
