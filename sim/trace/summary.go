package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalSteps    int
	Dropped       int
	FirstClock    int64
	LastClock     int64
	Monotonic     bool           // (Clock, Seq) never decreased between consecutive steps
	UniqueOwners  int
	ResumesByProc map[string]int // process name → number of resumptions
	StepsByKind   map[string]int // event kind → count
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		Monotonic:     true,
		ResumesByProc: make(map[string]int),
		StepsByKind:   make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalSteps = len(st.Steps)
	summary.Dropped = st.Dropped
	for i, s := range st.Steps {
		if i == 0 {
			summary.FirstClock = s.Clock
		} else {
			prev := st.Steps[i-1]
			if s.Clock < prev.Clock || (s.Clock == prev.Clock && s.Seq <= prev.Seq) {
				summary.Monotonic = false
			}
		}
		summary.LastClock = s.Clock
		if s.Process != "" {
			summary.ResumesByProc[s.Process]++
		}
		summary.StepsByKind[s.Kind]++
	}

	summary.UniqueOwners = len(summary.ResumesByProc)

	return summary
}
