package formselect

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestSlogLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.LogMutation(MutationLogEvent{Action: ActionSelect, Select: "size", Value: "m", Cleared: []string{"s"}})
	logger.LogEvaluation(EvaluatorLogEvent{Engine: "expr", Expr: "selected", Select: "size", Matched: 1, Duration: time.Millisecond})
	logger.LogMutation(MutationLogEvent{Action: ActionActivity, Value: "option.selected", Err: errors.New("sink down")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "level=DEBUG") || !strings.Contains(lines[0], "action=select") || !strings.Contains(lines[0], "cleared=[s]") {
		t.Fatalf("unexpected mutation line %q", lines[0])
	}
	if !strings.Contains(lines[1], "engine=expr") || !strings.Contains(lines[1], "matched=1") {
		t.Fatalf("unexpected evaluation line %q", lines[1])
	}
	if !strings.Contains(lines[2], "level=WARN") || !strings.Contains(lines[2], `error="sink down"`) {
		t.Fatalf("unexpected failure line %q", lines[2])
	}
}

func TestWithLoggerRoutesBothStreams(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	doc := mustParse(t, abcSelect, WithLogger(logger))
	sel := mustSelect(t, doc, "letter")

	sel.SetValue("b")
	if _, err := sel.OptionsWhere(`selected`); err != nil {
		t.Fatalf("options where: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "action=set-value") {
		t.Fatalf("expected mutation log, got %s", out)
	}
	if !strings.Contains(out, "option predicate") {
		t.Fatalf("expected evaluator log, got %s", out)
	}
}

func TestNilLoggersFallBackToNoop(t *testing.T) {
	doc := mustParse(t, abcSelect, WithMutationLogger(nil), WithEvaluatorLogger(nil))
	sel := mustSelect(t, doc, "letter")
	sel.SetValue("c")
	if _, err := sel.OptionsWhere(`selected`); err != nil {
		t.Fatalf("options where: %v", err)
	}
	var zero SlogLogger
	zero.LogMutation(MutationLogEvent{Action: ActionClick})
}
