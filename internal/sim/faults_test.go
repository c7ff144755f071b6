package sim

import (
	"math/rand"
	"testing"
	"time"

	"solarfleet/internal/fleet"
)

// scriptedSource feeds predetermined uniform draws into *rand.Rand.
// Float64 on a value v yields v; values must stay below 1.
type scriptedSource struct {
	values []float64
	idx    int
}

func (s *scriptedSource) Int63() int64 {
	v := s.values[s.idx%len(s.values)]
	s.idx++
	return int64(v * float64(1<<62) * 2)
}

func (s *scriptedSource) Seed(int64) {}

func scriptedContext(now time.Time, values ...float64) *Context {
	return &Context{
		Rand: rand.New(&scriptedSource{values: values}),
		Now:  func() time.Time { return now },
	}
}

func TestMaintenancePersistsUntilEnd(t *testing.T) {
	start := time.Date(2024, time.June, 21, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	ctx := newTestContext(1, start)
	state := &fleet.RuntimeState{Maintenance: true, MaintenanceEnd: end}

	for _, at := range []time.Time{start, start.Add(time.Hour), end.Add(-time.Second)} {
		out := ctx.evaluateStatus(state, at)
		if !out.offline {
			t.Fatalf("at %s: expected offline during maintenance", at)
		}
		if out.systemStatus != SystemOffline || out.inverterStatus != InverterMaintenance {
			t.Fatalf("at %s: got statuses %s/%s", at, out.systemStatus, out.inverterStatus)
		}
		if !state.Maintenance {
			t.Fatalf("at %s: maintenance flag cleared early", at)
		}
	}
}

func TestMaintenanceExitsAtEnd(t *testing.T) {
	start := time.Date(2024, time.June, 21, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	// No fault draw, no maintenance lottery.
	ctx := scriptedContext(end, 0.99, 0.99)
	state := &fleet.RuntimeState{FaultProbability: 0.005, Maintenance: true, MaintenanceEnd: end}

	out := ctx.evaluateStatus(state, end)
	if out.offline {
		t.Fatal("expected normal evaluation at maintenance end")
	}
	if state.Maintenance {
		t.Fatal("maintenance flag not cleared")
	}
	if !state.MaintenanceEnd.IsZero() {
		t.Fatalf("maintenance end not cleared: %s", state.MaintenanceEnd)
	}
	if out.systemStatus != SystemOnline || out.inverterStatus != InverterHealthy {
		t.Fatalf("got statuses %s/%s after maintenance", out.systemStatus, out.inverterStatus)
	}
}

func TestMaintenanceEntryAppliesSameTick(t *testing.T) {
	now := time.Date(2024, time.June, 21, 10, 0, 0, 0, time.UTC)

	// fault draw misses (0.9), maintenance lottery hits (0.0),
	// duration draw 0 -> minimum one hour.
	ctx := scriptedContext(now, 0.9, 0.0, 0.0)
	state := &fleet.RuntimeState{FaultProbability: 0.005}

	out := ctx.evaluateStatus(state, now)
	if !out.offline {
		t.Fatal("expected offline on the maintenance entry tick")
	}
	if !state.Maintenance {
		t.Fatal("maintenance flag not set")
	}
	if got, want := state.MaintenanceEnd, now.Add(time.Hour); !got.Equal(want) {
		t.Fatalf("maintenance end %s, want %s", got, want)
	}
}

func TestMaintenanceDurationBounds(t *testing.T) {
	now := time.Date(2024, time.June, 21, 10, 0, 0, 0, time.UTC)
	ctx := newTestContext(17, now)

	entries := 0
	for i := 0; i < 500000 && entries < 10; i++ {
		state := &fleet.RuntimeState{FaultProbability: 0}
		out := ctx.evaluateStatus(state, now)
		if !state.Maintenance {
			continue
		}
		entries++
		if !out.offline {
			t.Fatal("maintenance entry tick not offline")
		}
		d := state.MaintenanceEnd.Sub(now)
		if d < time.Hour || d > 6*time.Hour {
			t.Fatalf("maintenance duration %s outside [1h,6h]", d)
		}
	}
	if entries == 0 {
		t.Fatal("maintenance never started over 500000 ticks")
	}
}

func TestFaultOutcomesAreMutuallyExclusive(t *testing.T) {
	now := time.Date(2024, time.June, 21, 10, 0, 0, 0, time.UTC)
	ctx := newTestContext(23, now)

	classes := make(map[string]int)
	for i := 0; i < 10000; i++ {
		state := &fleet.RuntimeState{FaultProbability: 1}
		out := ctx.evaluateStatus(state, now)

		switch {
		case out.systemStatus == SystemFault:
			classes["system"]++
			if out.inverterStatus != InverterHealthy || out.stringFaults != 0 {
				t.Fatalf("system fault mixed with other outcomes: %+v", out)
			}
			if out.powerScale != 0.1 {
				t.Fatalf("system fault power scale %f, want 0.1", out.powerScale)
			}
		case out.inverterStatus == InverterFault:
			classes["inverter"]++
			if out.systemStatus != SystemOnline || out.stringFaults != 0 {
				t.Fatalf("inverter fault mixed with other outcomes: %+v", out)
			}
			if out.powerScale != 0.7 {
				t.Fatalf("inverter fault power scale %f, want 0.7", out.powerScale)
			}
		case out.stringFaults > 0:
			classes["string"]++
			if out.stringFaults < 1 || out.stringFaults > 5 {
				t.Fatalf("string fault count %d outside [1,5]", out.stringFaults)
			}
			if out.powerScale < 0.8 || out.powerScale > 0.95 {
				t.Fatalf("string fault power scale %f outside [0.8,0.95]", out.powerScale)
			}
		default:
			t.Fatalf("fault probability 1 produced no outcome: %+v", out)
		}

		if state.Maintenance {
			t.Fatal("maintenance started on a tick with a fault outcome")
		}
	}

	for _, class := range []string{"system", "inverter", "string"} {
		if classes[class] == 0 {
			t.Fatalf("outcome %s never drawn over 10000 ticks", class)
		}
	}
}

func TestFaultsDoNotPersistAcrossTicks(t *testing.T) {
	now := time.Date(2024, time.June, 21, 10, 0, 0, 0, time.UTC)
	ctx := newTestContext(31, now)

	state := &fleet.RuntimeState{FaultProbability: 1}
	out := ctx.evaluateStatus(state, now)
	if out.powerScale == 1 {
		t.Fatal("expected a fault outcome with probability 1")
	}

	// Same state, probability dropped: the previous fault must leave no trace.
	state.FaultProbability = 0
	for i := 0; i < 100; i++ {
		out = ctx.evaluateStatus(state, now)
		if state.Maintenance {
			// Maintenance lottery fired; irrelevant to fault persistence.
			state.Maintenance = false
			state.MaintenanceEnd = time.Time{}
			continue
		}
		if out.systemStatus != SystemOnline || out.inverterStatus != InverterHealthy || out.stringFaults != 0 {
			t.Fatalf("tick %d: fault persisted: %+v", i, out)
		}
	}
}
