package sim

import (
	"errors"
	"testing"
)

func TestCalendar_OpenWindows_BaseWindow(t *testing.T) {
	cal := NewCalendar(CalendarConfig{OpenHour: 6, CloseHour: 24})

	for day := 0; day < 14; day++ {
		windows := cal.OpenWindows(day)
		if len(windows) != 1 || windows[0] != (Interval{Start: 6, End: 24}) {
			t.Errorf("day %d: got %v, want [{6 24}]", day, windows)
		}
	}
}

func TestCalendar_OpenWindows_OverrideSplitsWindow(t *testing.T) {
	// Cancel 12:00-16:00 every Wednesday (day-1 weekday = Monday = 0,
	// so Wednesday is weekday 2).
	cal := NewCalendar(CalendarConfig{
		OpenHour: 6, CloseHour: 24, Day1Weekday: 0,
		Overrides: []OverrideRule{
			{Weekday: 2, StrideWeeks: 1, FromHour: 12, ToHour: 16},
		},
	})

	got := cal.OpenWindows(2) // day index 2 = Wednesday
	want := []Interval{{Start: 6, End: 12}, {Start: 16, End: 24}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Wednesday windows = %v, want %v", got, want)
	}

	// The neighboring days are untouched.
	for _, day := range []int{1, 3} {
		if w := cal.OpenWindows(day); len(w) != 1 || w[0] != (Interval{Start: 6, End: 24}) {
			t.Errorf("day %d windows = %v, want base window", day, w)
		}
	}
}

func TestCalendar_OverrideStride_EverySecondWeek(t *testing.T) {
	// Cancel the 18:00-24:00 shift on every second Friday starting from the
	// second week. Day 1 is a Monday, so Fridays fall on day indexes 4, 11,
	// 18, 25.
	cal := NewCalendar(CalendarConfig{
		OpenHour: 6, CloseHour: 24, Day1Weekday: 0,
		Overrides: []OverrideRule{
			{Weekday: 4, StartWeek: 1, StrideWeeks: 2, FromHour: 18, ToHour: 24},
		},
	})

	tests := []struct {
		day     int
		trimmed bool
	}{
		{4, false},  // week 0: before start week
		{11, true},  // week 1: first firing
		{18, false}, // week 2: off-stride
		{25, true},  // week 3
	}
	for _, tt := range tests {
		got := cal.OpenWindows(tt.day)
		if tt.trimmed {
			if len(got) != 1 || got[0] != (Interval{Start: 6, End: 18}) {
				t.Errorf("day %d: got %v, want [{6 18}]", tt.day, got)
			}
		} else {
			if len(got) != 1 || got[0] != (Interval{Start: 6, End: 24}) {
				t.Errorf("day %d: got %v, want [{6 24}]", tt.day, got)
			}
		}
	}
}

func TestCalendar_IsOpen(t *testing.T) {
	cal := NewCalendar(CalendarConfig{OpenHour: 6, CloseHour: 22})

	tests := []struct {
		at   float64
		want bool
	}{
		{-1, false}, // before simulation start counts as closed
		{0, false},
		{5.99, false},
		{6, true},
		{21.99, true},
		{22, false}, // half-open interval
		{30, true},  // 06:00 on day 1
		{46, false}, // 22:00 on day 1
	}
	for _, tt := range tests {
		if got := cal.IsOpen(tt.at); got != tt.want {
			t.Errorf("IsOpen(%.2f) = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestCalendar_HoursUntilClose(t *testing.T) {
	cal := NewCalendar(CalendarConfig{OpenHour: 6, CloseHour: 22})

	if got := cal.HoursUntilClose(20); got != 2 {
		t.Errorf("HoursUntilClose(20) = %v, want 2", got)
	}
	if got := cal.HoursUntilClose(21.5); got != 0.5 {
		t.Errorf("HoursUntilClose(21.5) = %v, want 0.5", got)
	}
	if got := cal.HoursUntilClose(3); got != 0 {
		t.Errorf("HoursUntilClose(3) = %v, want 0 when closed", got)
	}
}

func TestCalendar_NextOpen(t *testing.T) {
	cal := NewCalendar(CalendarConfig{OpenHour: 6, CloseHour: 22})

	tests := []struct {
		at   float64
		want float64
	}{
		{-5, 6},  // clamped to simulation start, then day 0 opening
		{0, 6},   // closed morning rolls to same-day opening
		{10, 10}, // already open returns the input
		{22, 30}, // at close rolls to next day
		{23.5, 30},
	}
	for _, tt := range tests {
		got, err := cal.NextOpen(tt.at)
		if err != nil {
			t.Fatalf("NextOpen(%.2f): %v", tt.at, err)
		}
		if got != tt.want {
			t.Errorf("NextOpen(%.2f) = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestCalendar_NextOpen_FailsClosedWhenNeverOpen(t *testing.T) {
	// Overrides that wipe the full window on every weekday leave a calendar
	// that can never open; the bounded search must report that instead of
	// spinning forever.
	var rules []OverrideRule
	for wd := 0; wd < 7; wd++ {
		rules = append(rules, OverrideRule{Weekday: wd, StrideWeeks: 1, FromHour: 0, ToHour: 24})
	}
	cal := NewCalendar(CalendarConfig{OpenHour: 6, CloseHour: 24, Overrides: rules})

	_, err := cal.NextOpen(0)
	if !errors.Is(err, ErrNoFeasibleSlot) {
		t.Fatalf("NextOpen on never-open calendar: got %v, want ErrNoFeasibleSlot", err)
	}
}

func TestSubtract_Cases(t *testing.T) {
	base := []Interval{{Start: 6, End: 24}}

	tests := []struct {
		name string
		cut  Interval
		want []Interval
	}{
		{"no overlap", Interval{0, 6}, []Interval{{6, 24}}},
		{"middle split", Interval{12, 16}, []Interval{{6, 12}, {16, 24}}},
		{"leading trim", Interval{0, 10}, []Interval{{10, 24}}},
		{"trailing trim", Interval{20, 24}, []Interval{{6, 20}}},
		{"full cover", Interval{0, 24}, nil},
		{"empty cut", Interval{10, 10}, []Interval{{6, 24}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := subtract(base, tt.cut)
			if len(got) != len(tt.want) {
				t.Fatalf("subtract(%v) = %v, want %v", tt.cut, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("subtract(%v)[%d] = %v, want %v", tt.cut, i, got[i], tt.want[i])
				}
			}
		})
	}
}
