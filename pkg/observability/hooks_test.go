package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopSimulationHooks{}
	s.OnStart(4, 3)
	s.OnTick(TickInfo{Tick: 1, Duration: time.Millisecond})

	o := NoopOutputHooks{}
	o.OnRenderStart(ctx, []string{"svg"})
	o.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	if _, ok := Simulation().(NoopSimulationHooks); !ok {
		t.Error("Simulation() should return NoopSimulationHooks by default")
	}
	if _, ok := Output().(NoopOutputHooks); !ok {
		t.Error("Output() should return NoopOutputHooks by default")
	}

	customSim := &testSimulationHooks{}
	SetSimulationHooks(customSim)
	if Simulation() != customSim {
		t.Error("SetSimulationHooks should set custom hooks")
	}

	customOut := &testOutputHooks{}
	SetOutputHooks(customOut)
	if Output() != customOut {
		t.Error("SetOutputHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Simulation().(NoopSimulationHooks); !ok {
		t.Error("Reset() should restore NoopSimulationHooks")
	}
	if _, ok := Output().(NoopOutputHooks); !ok {
		t.Error("Reset() should restore NoopOutputHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testSimulationHooks{}
	SetSimulationHooks(custom)
	SetSimulationHooks(nil)
	if Simulation() != custom {
		t.Error("SetSimulationHooks(nil) should not replace existing hooks")
	}

	out := &testOutputHooks{}
	SetOutputHooks(out)
	SetOutputHooks(nil)
	if Output() != out {
		t.Error("SetOutputHooks(nil) should not replace existing hooks")
	}
}

func TestMultiSimulationHooks(t *testing.T) {
	a, b := &testSimulationHooks{}, &testSimulationHooks{}
	m := MultiSimulationHooks{a, b}

	m.OnStart(2, 1)
	m.OnTick(TickInfo{Tick: 1})
	m.OnTick(TickInfo{Tick: 2})

	for name, h := range map[string]*testSimulationHooks{"first": a, "second": b} {
		if h.starts != 1 {
			t.Errorf("%s: starts = %d, want 1", name, h.starts)
		}
		if h.lastTick != 2 {
			t.Errorf("%s: lastTick = %d, want 2", name, h.lastTick)
		}
	}
}

// Test implementations

type testSimulationHooks struct {
	starts   int
	lastTick int
}

func (h *testSimulationHooks) OnStart(int, int)     { h.starts++ }
func (h *testSimulationHooks) OnTick(info TickInfo) { h.lastTick = info.Tick }

type testOutputHooks struct {
	NoopOutputHooks
	name string
}
