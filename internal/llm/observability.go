package llm

import (
	"io"
	"log/slog"
)

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes one structured line per call.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{logger: slog.New(slog.NewTextHandler(w, nil))}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	attrs := []any{
		"task", string(event.Task),
		"model", event.Model,
		"latency_ms", event.LatencyMs,
	}
	if event.Success {
		o.logger.Info("llm_call", attrs...)
		return
	}
	o.logger.Warn("llm_call", append(attrs, "error_code", event.ErrorCode)...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
