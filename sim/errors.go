package sim

import "errors"

// ErrNoFeasibleSlot is the only hard error the engine surfaces: a forward
// search over the calendar and dock tables found no hour with the DC open
// and positive capacity inside the bounded window. Everything else is a
// recoverable business event recorded in the KPI aggregator.
var ErrNoFeasibleSlot = errors.New("no feasible timeslot within search window")
