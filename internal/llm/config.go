package llm

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskReport writes the client-facing portfolio narrative.
	TaskReport TaskType = "report"
	// TaskProjectReport writes the narrative for a single project.
	TaskProjectReport TaskType = "project_report"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	// BreakerFailures consecutive failed calls open the circuit for
	// BreakerTimeoutMs.
	BreakerFailures  uint32
	BreakerTimeoutMs int
	Tasks            map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:          false,
		LogCalls:         false,
		Endpoint:         "http://localhost:11434",
		Model:            "llama3.2",
		TimeoutMs:        20000,
		MaxRetries:       1,
		BreakerFailures:  3,
		BreakerTimeoutMs: 60000,
		Tasks: map[TaskType]TaskConfig{
			TaskReport:        {Temperature: 0.3, MaxTokens: 2048, TimeoutMs: 30000},
			TaskProjectReport: {Temperature: 0.3, MaxTokens: 1024, TimeoutMs: 20000},
		},
	}
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
