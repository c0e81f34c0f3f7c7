package service

import (
	"context"
	"time"

	"github.com/alexanderramin/triage/internal/logging"
	"go.uber.org/zap"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *zap.Logger
}

// NewLogUseCaseObserver writes service use-case events to the provided logger.
func NewLogUseCaseObserver(logger *zap.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	fields := make([]zap.Field, 0, 4+len(event.Fields))
	fields = append(fields,
		zap.String("use_case", event.Name),
		zap.Int64("duration_ms", event.Duration.Milliseconds()),
		zap.Bool("success", event.Success),
	)
	var projectID, shortID string
	for k, v := range event.Fields {
		switch k {
		case "project_id":
			projectID, _ = v.(string)
		case "short_id":
			shortID, _ = v.(string)
		default:
			fields = append(fields, zap.Any(k, v))
		}
	}
	logger := logging.WithProject(o.logger, projectID, shortID)
	if event.Err != nil {
		fields = append(fields, zap.Error(event.Err))
		logger.Error("service_use_case", fields...)
		return
	}
	logger.Info("service_use_case", fields...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// observe reports a finished use case. Call it deferred with a pointer to
// the named error result.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
