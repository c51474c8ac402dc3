package sim

// Shared fixtures for the sim package tests. The base scenario opens the DC
// 06:00-24:00 with no overrides and tunes FTE and efficiency so the
// deterministic outbound base capacity comes out to exactly 50 pallets/hour
// (10 FTE x 880 pallets/FTE/month / 176 h/month).

func testScenario() *ScenarioConfig {
	docks := DockConfig{}
	for _, f := range Flows {
		docks[f] = map[Direction][]int{}
		for _, d := range Directions {
			table := make([]int, 24)
			for h := range table {
				table[h] = 2
			}
			docks[f][d] = table
		}
	}
	return &ScenarioConfig{
		Name: "test",
		Calendar: CalendarConfig{
			OpenHour:  6,
			CloseHour: 24,
		},
		Labor: LaborConfig{
			BaselineFTE: map[Flow]map[Direction]float64{
				FlowFG: {Inbound: 10, Outbound: 10},
				FlowRP: {Inbound: 10, Outbound: 10},
			},
			Efficiency: map[Flow]float64{FlowFG: 880, FlowRP: 880},
		},
		Docks: docks,
	}
}

func outboundOrder(id, pallets, slot int, creation float64) *Order {
	return &Order{
		ID:            id,
		Flow:          FlowFG,
		Direction:     Outbound,
		Pallets:       pallets,
		Region:        RegionG2NextDay,
		CreationTime:  creation,
		ScheduledSlot: slot,
		ActualSlot:    -1,
		OnTime:        true,
	}
}

func inboundOrder(id, pallets, slot int) *Order {
	return &Order{
		ID:            id,
		Flow:          FlowFG,
		Direction:     Inbound,
		Pallets:       pallets,
		CreationTime:  float64(slot),
		ScheduledSlot: slot,
		ActualSlot:    -1,
		OnTime:        true,
	}
}

func runScenario(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, cfg *ScenarioConfig, orders []*Order, seed int64, days int) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg, orders, seed, days)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return s
}
