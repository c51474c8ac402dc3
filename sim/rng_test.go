package sim

import (
	"math"
	"testing"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// Same key+name produces same sequence
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	team := SubsystemLabor(FlowFG, Outbound)
	for i := 0; i < 3; i++ {
		v1 := rng1.ForSubsystem(team).Float64()
		v2 := rng2.ForSubsystem(team).Float64()
		if v1 != v2 {
			t.Errorf("Value %d: got %v and %v, want identical", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// Drawing from one team's stream doesn't affect another's
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	rngB := NewPartitionedRNG(NewSimulationKey(42))

	fgOut := SubsystemLabor(FlowFG, Outbound)
	rpIn := SubsystemLabor(FlowRP, Inbound)

	// Drain 10 values from A's R&P inbound stream; FG outbound must not move.
	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(rpIn).Float64()
	}

	aFirst := rngA.ForSubsystem(fgOut).Float64()
	bFirst := rngB.ForSubsystem(fgOut).Float64()
	if aFirst != bFirst {
		t.Errorf("FG outbound first value = %v vs %v (isolation broken)", aFirst, bFirst)
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	team := SubsystemLabor(FlowFG, Inbound)

	rng1 := rng.ForSubsystem(team)
	rng2 := rng.ForSubsystem(team)

	if rng1 != rng2 {
		t.Error("ForSubsystem returned different instances for same name")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	seed := int64(12345)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	if rng.Key() != SimulationKey(seed) {
		t.Errorf("Key() = %v, want %v", rng.Key(), seed)
	}
}

func TestPartitionedRNG_LazyInitialization(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))

	if len(rng.subsystems) != 0 {
		t.Errorf("New PartitionedRNG has %d subsystems, want 0", len(rng.subsystems))
	}

	rng.ForSubsystem(SubsystemLabor(FlowFG, Outbound))

	if len(rng.subsystems) != 1 {
		t.Errorf("After one ForSubsystem call, have %d subsystems, want 1", len(rng.subsystems))
	}
}

// === fnv1a64 Tests ===

func TestFnv1a64_Deterministic(t *testing.T) {
	input := "labor_FG_Outbound"
	if fnv1a64(input) != fnv1a64(input) {
		t.Errorf("fnv1a64(%q) not deterministic", input)
	}
}

func TestFnv1a64_TeamNamesDistinct(t *testing.T) {
	// All four team subsystem names must hash apart (spot check)
	hashes := make(map[int64]string)
	for _, f := range Flows {
		for _, d := range Directions {
			name := SubsystemLabor(f, d)
			h := fnv1a64(name)
			if existing, ok := hashes[h]; ok {
				t.Errorf("Hash collision: %q and %q both hash to %d", name, existing, h)
			}
			hashes[h] = name
		}
	}
}

// === SubsystemLabor Tests ===

func TestSubsystemLabor(t *testing.T) {
	tests := []struct {
		flow Flow
		dir  Direction
		want string
	}{
		{FlowFG, Outbound, "labor_FG_Outbound"},
		{FlowFG, Inbound, "labor_FG_Inbound"},
		{FlowRP, Outbound, "labor_R&P_Outbound"},
		{FlowRP, Inbound, "labor_R&P_Inbound"},
	}

	for _, tt := range tests {
		got := SubsystemLabor(tt.flow, tt.dir)
		if got != tt.want {
			t.Errorf("SubsystemLabor(%s, %s) = %q, want %q", tt.flow, tt.dir, got, tt.want)
		}
	}
}
