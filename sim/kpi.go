// KPI collection. Processes append flat per-order and per-hour records as
// they complete; nothing is aggregated during the run. Summarize folds the
// records and the final order states into the scenario summary after the
// event loop stops.

package sim

// DockUsageRecord is one (hour, team) utilization sample, emitted by the
// capacity manager just before it resets the hour's counters.
type DockUsageRecord struct {
	Hour      int       `json:"hour"`
	Flow      Flow      `json:"flow"`
	Direction Direction `json:"direction"`
	Used      int       `json:"used"`
	Available int       `json:"available"`
}

// OutboundRecord is the completion trace of one outbound order.
type OutboundRecord struct {
	OrderID       int     `json:"order_id"`
	Flow          Flow    `json:"flow"`
	Region        Region  `json:"region"`
	Pallets       int     `json:"pallets"`
	ScheduledSlot int     `json:"scheduled_slot"`
	ActualSlot    int     `json:"actual_slot"`
	DelayHours    int     `json:"delay_hours"`
	OnTime        bool    `json:"on_time"`
	CompletedAt   float64 `json:"completed_at"`
}

// InboundRecord is the completion trace of one inbound order.
type InboundRecord struct {
	OrderID          int     `json:"order_id"`
	Flow             Flow    `json:"flow"`
	Pallets          int     `json:"pallets"`
	ScheduledSlot    int     `json:"scheduled_slot"`
	ActualSlot       int     `json:"actual_slot"`
	DelayHours       int     `json:"delay_hours"`
	OnTime           bool    `json:"on_time"`
	CompletedAt      float64 `json:"completed_at"`
	DeadlineExceeded bool    `json:"deadline_exceeded"`
}

// Aggregator accumulates the raw record streams during a run.
type Aggregator struct {
	DockUsage []DockUsageRecord
	Outbound  []OutboundRecord
	Inbound   []InboundRecord

	// SimEndedTime is the clock value when the event loop stopped, set by
	// the simulator.
	SimEndedTime float64
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

func (a *Aggregator) RecordDockUsage(r DockUsageRecord) {
	a.DockUsage = append(a.DockUsage, r)
}

func (a *Aggregator) RecordOutbound(r OutboundRecord) {
	a.Outbound = append(a.Outbound, r)
}

func (a *Aggregator) RecordInbound(r InboundRecord) {
	a.Inbound = append(a.Inbound, r)
}

// TeamSummary is the per-(flow, direction) KPI block.
type TeamSummary struct {
	Orders           int     `json:"orders"`
	Completed        int     `json:"completed"`
	OnTime           int     `json:"on_time"`
	CompletionRate   float64 `json:"completion_rate"`
	OnTimeRate       float64 `json:"on_time_rate"`
	AvgDelayHours    float64 `json:"avg_delay_hours"`
	DockUtilization  float64 `json:"dock_utilization"`
	LaborUtilization float64 `json:"labor_utilization"`
}

// RegionSummary is the per-delivery-region KPI block for outbound orders.
type RegionSummary struct {
	Orders         int     `json:"orders"`
	Completed      int     `json:"completed"`
	OnTime         int     `json:"on_time"`
	OnTimeRate     float64 `json:"on_time_rate"`
	CompletionRate float64 `json:"completion_rate"`
}

// Summary is the full scenario result, serialized as the run's output.
type Summary struct {
	SimEndedHours float64 `json:"sim_ended_hours"`

	TotalOrders     int `json:"total_orders"`
	CompletedOrders int `json:"completed_orders"`
	// CompletionRate is scoped to orders whose scheduled slot lies inside
	// the horizon; orders booked beyond the end of the run cannot complete
	// and must not drag the rate down.
	CompletionRate float64 `json:"completion_rate"`

	OnTimeRateAll       float64 `json:"on_time_rate_all"`
	OnTimeRateCompleted float64 `json:"on_time_rate_completed"`

	// NextDayReschedules counts completed orders whose actual slot fell on
	// a later day than the scheduled one; the rate is over completed orders.
	NextDayReschedules    int     `json:"next_day_reschedules"`
	NextDayRescheduleRate float64 `json:"next_day_reschedule_rate"`
	// AvgDelayHours averages over completed orders that were delayed;
	// MaxDelayHours is the worst single delay.
	AvgDelayHours float64 `json:"avg_delay_hours"`
	MaxDelayHours int     `json:"max_delay_hours"`

	DeadlineExceeded int `json:"inbound_deadline_exceeded"`

	ByTeam   map[Flow]map[Direction]*TeamSummary `json:"by_team"`
	ByRegion map[string]*RegionSummary           `json:"by_region"`

	DockUtilization            float64               `json:"dock_utilization"`
	DockUtilizationByFlow      map[Flow]float64      `json:"dock_utilization_by_flow"`
	DockUtilizationByDirection map[Direction]float64 `json:"dock_utilization_by_direction"`
	// DockHourlyProfile is utilization per hour of day, folded across the
	// whole run.
	DockHourlyProfile []float64 `json:"dock_hourly_profile"`
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// regionGroup folds the delivery regions into their market prefix, G2 or
// ROW, plus the full label, so the summary reports both granularities.
func regionGroup(r Region) string {
	switch r {
	case RegionG2SameDay, RegionG2NextDay:
		return "G2"
	default:
		return "ROW"
	}
}

// Summarize folds the run into a Summary. Orders are the source of truth for
// per-order outcomes; the dock usage records drive utilization; the labor
// model's busy-hour counters and the calendar's open hours drive labor
// utilization.
func (a *Aggregator) Summarize(orders []*Order, horizon float64, cal *Calendar, labor *LaborModel) *Summary {
	sum := &Summary{
		SimEndedHours: a.SimEndedTime,
		TotalOrders:   len(orders),
		ByTeam:        make(map[Flow]map[Direction]*TeamSummary, len(Flows)),
		ByRegion:      make(map[string]*RegionSummary),
	}
	for _, f := range Flows {
		sum.ByTeam[f] = make(map[Direction]*TeamSummary, len(Directions))
		for _, d := range Directions {
			sum.ByTeam[f][d] = &TeamSummary{}
		}
	}

	inScope, inScopeCompleted := 0, 0
	onTimeAll, onTimeCompleted := 0, 0
	delayed, delayedHours := 0, 0
	teamDelayed := map[Flow]map[Direction]int{}
	for _, f := range Flows {
		teamDelayed[f] = map[Direction]int{}
	}

	for _, o := range orders {
		team := sum.ByTeam[o.Flow][o.Direction]
		team.Orders++
		if o.OnTime {
			onTimeAll++
		}
		if 0 <= o.ScheduledSlot && float64(o.ScheduledSlot) < horizon {
			inScope++
			if o.Completed {
				inScopeCompleted++
			}
		}
		if o.Completed {
			sum.CompletedOrders++
			team.Completed++
			if o.OnTime {
				onTimeCompleted++
				team.OnTime++
			}
			if o.DelayHours > 0 {
				delayed++
				delayedHours += o.DelayHours
				teamDelayed[o.Flow][o.Direction]++
				if o.DelayHours > sum.MaxDelayHours {
					sum.MaxDelayHours = o.DelayHours
				}
			}
			if o.ActualSlot/24 > o.ScheduledSlot/24 {
				sum.NextDayReschedules++
			}
		}
		if o.DeadlineExceeded {
			sum.DeadlineExceeded++
		}
		if o.Direction == Outbound {
			key := regionGroup(o.Region)
			for _, k := range []string{key, string(o.Region)} {
				rs := sum.ByRegion[k]
				if rs == nil {
					rs = &RegionSummary{}
					sum.ByRegion[k] = rs
				}
				rs.Orders++
				if o.Completed {
					rs.Completed++
				}
				if o.OnTime {
					rs.OnTime++
				}
			}
		}
	}

	sum.CompletionRate = ratio(inScopeCompleted, inScope)
	sum.OnTimeRateAll = ratio(onTimeAll, len(orders))
	sum.OnTimeRateCompleted = ratio(onTimeCompleted, sum.CompletedOrders)
	sum.NextDayRescheduleRate = ratio(sum.NextDayReschedules, sum.CompletedOrders)
	if delayed > 0 {
		sum.AvgDelayHours = float64(delayedHours) / float64(delayed)
	}
	for _, rs := range sum.ByRegion {
		rs.OnTimeRate = ratio(rs.OnTime, rs.Orders)
		rs.CompletionRate = ratio(rs.Completed, rs.Orders)
	}

	// Dock utilization: used over available, counting only hours where the
	// team had slots published at all.
	totUsed, totAvail := 0, 0
	teamUsed := map[Flow]map[Direction][2]int{}
	flowUsed := map[Flow][2]int{}
	dirUsed := map[Direction][2]int{}
	hourUsed := make([][2]int, 24)
	for _, f := range Flows {
		teamUsed[f] = map[Direction][2]int{}
	}
	for _, r := range a.DockUsage {
		if r.Available == 0 {
			continue
		}
		totUsed += r.Used
		totAvail += r.Available
		acc := teamUsed[r.Flow][r.Direction]
		teamUsed[r.Flow][r.Direction] = [2]int{acc[0] + r.Used, acc[1] + r.Available}
		fa := flowUsed[r.Flow]
		flowUsed[r.Flow] = [2]int{fa[0] + r.Used, fa[1] + r.Available}
		da := dirUsed[r.Direction]
		dirUsed[r.Direction] = [2]int{da[0] + r.Used, da[1] + r.Available}
		h := ((r.Hour % 24) + 24) % 24
		hourUsed[h] = [2]int{hourUsed[h][0] + r.Used, hourUsed[h][1] + r.Available}
	}
	sum.DockUtilization = ratio(totUsed, totAvail)
	sum.DockUtilizationByFlow = make(map[Flow]float64, len(Flows))
	sum.DockUtilizationByDirection = make(map[Direction]float64, len(Directions))
	for _, f := range Flows {
		sum.DockUtilizationByFlow[f] = ratio(flowUsed[f][0], flowUsed[f][1])
	}
	for _, d := range Directions {
		sum.DockUtilizationByDirection[d] = ratio(dirUsed[d][0], dirUsed[d][1])
	}
	sum.DockHourlyProfile = make([]float64, 24)
	for h := range hourUsed {
		sum.DockHourlyProfile[h] = ratio(hourUsed[h][0], hourUsed[h][1])
	}

	openHours := 0.0
	for day := 0; float64(day)*24 < horizon; day++ {
		for _, w := range cal.OpenWindows(day) {
			openHours += float64(w.End - w.Start)
		}
	}

	for _, f := range Flows {
		for _, d := range Directions {
			team := sum.ByTeam[f][d]
			team.CompletionRate = ratio(team.Completed, team.Orders)
			team.OnTimeRate = ratio(team.OnTime, team.Completed)
			if n := teamDelayed[f][d]; n > 0 {
				hours := 0
				for _, o := range orders {
					if o.Flow == f && o.Direction == d && o.Completed && o.DelayHours > 0 {
						hours += o.DelayHours
					}
				}
				team.AvgDelayHours = float64(hours) / float64(n)
			}
			acc := teamUsed[f][d]
			team.DockUtilization = ratio(acc[0], acc[1])
			if openHours > 0 {
				team.LaborUtilization = labor.BusyHours(f, d) / openHours
			}
		}
	}

	return sum
}
