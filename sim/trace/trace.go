package trace

// TraceLevel controls the verbosity of step tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSteps captures every event the scheduler executes.
	TraceLevelSteps TraceLevel = "steps"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelSteps: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Enabled reports whether the level records anything.
func (l TraceLevel) Enabled() bool {
	return l == TraceLevelSteps
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level    TraceLevel
	MaxSteps int // 0 = unlimited; further steps are counted in Dropped
}

// SimulationTrace collects step records during a simulation run.
type SimulationTrace struct {
	Config  TraceConfig
	Steps   []StepRecord
	Dropped int
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Steps:  make([]StepRecord, 0),
	}
}

// RecordStep appends a step record, honoring MaxSteps.
func (st *SimulationTrace) RecordStep(record StepRecord) {
	if st.Config.MaxSteps > 0 && len(st.Steps) >= st.Config.MaxSteps {
		st.Dropped++
		return
	}
	st.Steps = append(st.Steps, record)
}
