package sim

import (
	"container/heap"
	"testing"
)

func TestEventQueue_OrdersByTimeClassSequence(t *testing.T) {
	var q EventQueue
	push := func(at float64, class EventClass, seq uint64) {
		heap.Push(&q, eventEntry{ev: &funcEvent{at: at, class: class}, seq: seq})
	}

	// Shuffled inserts across all three ordering keys.
	push(10, ClassOrder, 1)
	push(10, ClassCapacity, 2)
	push(5, ClassOrder, 3)
	push(10, ClassPreparation, 4)
	push(10, ClassOrder, 0)
	push(10, ClassScheduler, 5)
	push(10, ClassDispatch, 6)

	type key struct {
		at    float64
		class EventClass
		seq   uint64
	}
	want := []key{
		{5, ClassOrder, 3},
		{10, ClassCapacity, 2},    // capacity publishes before consumers
		{10, ClassScheduler, 5},   // admissions before the dispatch pass
		{10, ClassDispatch, 6},    // dispatch before order processes
		{10, ClassPreparation, 4}, // prep progress before loading checks
		{10, ClassOrder, 0},       // same class: schedule order
		{10, ClassOrder, 1},
	}
	for i, w := range want {
		e := heap.Pop(&q).(eventEntry)
		if e.ev.Time() != w.at || e.ev.Class() != w.class || e.seq != w.seq {
			t.Errorf("pop %d: got (%.0f, %d, %d), want (%.0f, %d, %d)",
				i, e.ev.Time(), e.ev.Class(), e.seq, w.at, w.class, w.seq)
		}
	}
}

func TestFuncEvent_RunsContinuation(t *testing.T) {
	ran := false
	e := &funcEvent{at: 7, class: ClassOrder, fn: func(*Simulator) { ran = true }}

	if e.Time() != 7 || e.Class() != ClassOrder {
		t.Errorf("accessors: got (%v, %v), want (7, ClassOrder)", e.Time(), e.Class())
	}
	e.Execute(nil)
	if !ran {
		t.Error("Execute did not run the continuation")
	}
}
