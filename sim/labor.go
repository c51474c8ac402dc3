// Labor capacity model: converts staffed FTE into a pallets/hour throughput
// rate per (flow, direction) team, with the opening-hour coefficient, the
// power-law elasticity of throughput vs. opening hours, and a +/-5% random
// variation per draw.

package sim

import "math"

// LaborModel derives hourly throughput from FTE staffing. Staffing scales
// with the opening window (shorter window, proportionally fewer staffed
// hours), while the elasticity exponent lets shorter windows claw back some
// per-hour throughput.
type LaborModel struct {
	cfg            LaborConfig
	operatingHours float64
	rng            *PartitionedRNG

	// busyHours accumulates worked hours per (flow, direction) for the
	// labor-utilization KPI.
	busyHours map[Flow]map[Direction]float64
}

func NewLaborModel(cfg LaborConfig, operatingHours float64, rng *PartitionedRNG) *LaborModel {
	busy := make(map[Flow]map[Direction]float64, len(Flows))
	for _, f := range Flows {
		busy[f] = make(map[Direction]float64, len(Directions))
	}
	return &LaborModel{
		cfg:            cfg,
		operatingHours: operatingHours,
		rng:            rng,
		busyHours:      busy,
	}
}

// OperatingRatio is opening-window length over the baseline window length.
func (m *LaborModel) OperatingRatio() float64 {
	return m.operatingHours / m.cfg.BaselineHours
}

// AdjustedFTE is the staffed headcount after scaling to the opening window.
func (m *LaborModel) AdjustedFTE(flow Flow, dir Direction) float64 {
	return m.cfg.BaselineFTE[flow][dir] * m.OperatingRatio()
}

// elasticity is (operating/baseline)^(alpha-1). Alpha 1 disables the
// effect; alpha < 1 means a shorter window is partially compensated by
// higher per-hour throughput.
func (m *LaborModel) elasticity() float64 {
	return math.Pow(m.OperatingRatio(), m.cfg.Alpha-1)
}

// BaseHourlyCapacity is the deterministic pallets/hour rate for one team:
// adjusted FTE x efficiency / monthly hours, times the opening-hour
// coefficient and the elasticity multiplier. No random variation; the
// outbound scheduler freezes priority estimates on this value at admission
// time so that priorities are reproducible.
func (m *LaborModel) BaseHourlyCapacity(flow Flow, dir Direction) float64 {
	fte := m.AdjustedFTE(flow, dir)
	base := fte * m.cfg.Efficiency[flow] / m.cfg.HoursPerMonth
	return base * m.cfg.Coefficient * m.elasticity()
}

// DrawHourlyCapacity is BaseHourlyCapacity with the +/-5% uniform variation
// applied, drawn from the team's own RNG stream.
func (m *LaborModel) DrawHourlyCapacity(flow Flow, dir Direction) float64 {
	rng := m.rng.ForSubsystem(SubsystemLabor(flow, dir))
	noise := 0.95 + 0.10*rng.Float64()
	return m.BaseHourlyCapacity(flow, dir) * noise
}

// RecordBusy accumulates worked hours for the labor-utilization KPI.
func (m *LaborModel) RecordBusy(flow Flow, dir Direction, hours float64) {
	m.busyHours[flow][dir] += hours
}

// BusyHours returns the accumulated worked hours for one team.
func (m *LaborModel) BusyHours(flow Flow, dir Direction) float64 {
	return m.busyHours[flow][dir]
}
