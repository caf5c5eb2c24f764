package formselect

import (
	"context"
	"log/slog"
	"time"
)

// Mutation actions reported to a MutationLogger.
const (
	ActionSelect   = "select"
	ActionDeselect = "deselect"
	ActionSetValue = "set-value"
	ActionClick    = "click"
	ActionActivity = "activity"
)

// MutationLogEvent describes a change applied to selection markers.
type MutationLogEvent struct {
	Action  string
	Select  string
	Value   string
	Cleared []string
	Err     error
}

// MutationLogger records selection mutations.
type MutationLogger interface {
	LogMutation(MutationLogEvent)
}

// MutationLoggerFunc adapts a function to MutationLogger.
type MutationLoggerFunc func(MutationLogEvent)

// LogMutation implements MutationLogger.
func (f MutationLoggerFunc) LogMutation(event MutationLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopMutationLogger struct{}

func (noopMutationLogger) LogMutation(MutationLogEvent) {}

// EvaluatorLogEvent describes a predicate evaluation for logging.
type EvaluatorLogEvent struct {
	Engine   string
	Expr     string
	Select   string
	Matched  int
	Duration time.Duration
	Err      error
}

// EvaluatorLogger records evaluator events.
type EvaluatorLogger interface {
	LogEvaluation(EvaluatorLogEvent)
}

// EvaluatorLoggerFunc adapts a function to EvaluatorLogger.
type EvaluatorLoggerFunc func(EvaluatorLogEvent)

// LogEvaluation implements EvaluatorLogger.
func (f EvaluatorLoggerFunc) LogEvaluation(event EvaluatorLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopEvaluatorLogger struct{}

func (noopEvaluatorLogger) LogEvaluation(EvaluatorLogEvent) {}

// SlogLogger writes mutation and evaluator events to a *slog.Logger. Events
// carrying an error are logged at warn level, everything else at debug.
type SlogLogger struct {
	Logger *slog.Logger
}

// NewSlogLogger returns a SlogLogger writing to logger, or to slog.Default
// when logger is nil.
func NewSlogLogger(logger *slog.Logger) SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return SlogLogger{Logger: logger}
}

// LogMutation implements MutationLogger.
func (l SlogLogger) LogMutation(event MutationLogEvent) {
	if l.Logger == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("action", event.Action),
		slog.String("select", event.Select),
		slog.String("value", event.Value),
	}
	if len(event.Cleared) > 0 {
		attrs = append(attrs, slog.Any("cleared", event.Cleared))
	}
	l.log("selection mutation", event.Err, attrs)
}

// LogEvaluation implements EvaluatorLogger.
func (l SlogLogger) LogEvaluation(event EvaluatorLogEvent) {
	if l.Logger == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("engine", event.Engine),
		slog.String("expr", event.Expr),
		slog.String("select", event.Select),
		slog.Int("matched", event.Matched),
		slog.Duration("duration", event.Duration),
	}
	l.log("option predicate", event.Err, attrs)
}

func (l SlogLogger) log(msg string, err error, attrs []slog.Attr) {
	level := slog.LevelDebug
	if err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.Logger.LogAttrs(context.Background(), level, msg, attrs...)
}
