package llm

import "go.uber.org/zap"

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// ZapObserver logs LLM call events.
type ZapObserver struct {
	logger *zap.Logger
}

// NewZapObserver creates an Observer that logs events at info level, or
// warn level for failed calls.
func NewZapObserver(logger *zap.Logger) *ZapObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapObserver{logger: logger}
}

func (o *ZapObserver) OnCallComplete(event LLMCallEvent) {
	fields := []zap.Field{
		zap.String("task", string(event.Task)),
		zap.String("model", event.Model),
		zap.Int64("latency_ms", event.LatencyMs),
		zap.Int("attempts", event.Attempts),
		zap.Bool("success", event.Success),
	}
	if !event.Success {
		o.logger.Warn("llm_call", append(fields, zap.String("error_code", event.ErrorCode))...)
		return
	}
	o.logger.Info("llm_call", fields...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
