package trace

import (
	"testing"
)

func TestSimulationTrace_RecordStep_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for steps
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelSteps})

	// WHEN a step is recorded
	st.RecordStep(StepRecord{Clock: 4, Seq: 9, Process: "Manufacturer", Kind: "timer"})

	// THEN the trace contains one record with correct data
	if len(st.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(st.Steps))
	}
	if st.Steps[0].Process != "Manufacturer" || st.Steps[0].Clock != 4 {
		t.Errorf("unexpected record %+v", st.Steps[0])
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelSteps})

	st.RecordStep(StepRecord{Clock: 0, Seq: 1, Process: "a", Kind: "start"})
	st.RecordStep(StepRecord{Clock: 0, Seq: 2, Process: "b", Kind: "start"})
	st.RecordStep(StepRecord{Clock: 3, Seq: 5, Process: "a", Kind: "timer"})

	if len(st.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(st.Steps))
	}
	for i, want := range []uint64{1, 2, 5} {
		if st.Steps[i].Seq != want {
			t.Errorf("step %d: expected seq %d, got %d", i, want, st.Steps[i].Seq)
		}
	}
}

func TestSimulationTrace_MaxSteps_CountsDropped(t *testing.T) {
	// GIVEN a trace capped at two steps
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelSteps, MaxSteps: 2})

	// WHEN five steps are recorded
	for i := 0; i < 5; i++ {
		st.RecordStep(StepRecord{Clock: int64(i), Seq: uint64(i + 1)})
	}

	// THEN the first two are kept and the rest counted
	if len(st.Steps) != 2 {
		t.Errorf("expected 2 kept steps, got %d", len(st.Steps))
	}
	if st.Dropped != 3 {
		t.Errorf("expected 3 dropped, got %d", st.Dropped)
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"steps", true},
		{"", true}, // empty defaults to none
		{"decisions", false},
		{"foobar", false},
		{"STEPS", false}, // case-sensitive
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.valid {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
			}
		})
	}
}

func TestTraceLevel_Enabled(t *testing.T) {
	if TraceLevelNone.Enabled() || TraceLevel("").Enabled() {
		t.Error("none and empty must not record")
	}
	if !TraceLevelSteps.Enabled() {
		t.Error("steps must record")
	}
}
