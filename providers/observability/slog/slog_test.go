package slog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/leofalp/tavily-mcp/providers/observability"
)

func newTestObserver(level slog.Level) (*Observer, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level}))
	return New(logger), &buf
}

func TestSlogObserver_New(t *testing.T) {
	if obs := New(nil); obs == nil || obs.Logger() == nil {
		t.Fatal("New(nil) should fall back to slog.Default()")
	}
}

func TestSlogObserver_StartSpan(t *testing.T) {
	obs, buf := newTestObserver(slog.LevelDebug)

	ctx, span := obs.StartSpan(context.Background(), "test-span",
		observability.String("key", "value"),
		observability.Int("count", 42),
	)

	if span == nil {
		t.Fatal("StartSpan returned nil span")
	}
	if observability.SpanFromContext(ctx) != span {
		t.Error("expected the returned context to carry the span")
	}

	output := buf.String()
	if !strings.Contains(output, "test-span") || !strings.Contains(output, "span.start") {
		t.Errorf("Expected span start record, got: %s", output)
	}
	if !strings.Contains(output, "count=42") {
		t.Errorf("Expected start attributes in output, got: %s", output)
	}
}

func TestSlogObserver_Span_End(t *testing.T) {
	obs, buf := newTestObserver(slog.LevelInfo)

	_, span := obs.StartSpan(context.Background(), "test-span")
	span.SetAttributes(observability.String(observability.AttrToolName, "tavily-search"))
	span.SetStatus(observability.StatusOK, "")
	span.End()

	output := buf.String()
	if !strings.Contains(output, "level=INFO") {
		t.Errorf("Expected successful span to end at INFO, got: %s", output)
	}
	if !strings.Contains(output, "tool.name=tavily-search") {
		t.Errorf("Expected attributes on span end, got: %s", output)
	}
	if !strings.Contains(output, "status=ok") {
		t.Errorf("Expected status attribute, got: %s", output)
	}
}

func TestSlogObserver_Span_FailedEndsAtWarn(t *testing.T) {
	obs, buf := newTestObserver(slog.LevelInfo)

	_, span := obs.StartSpan(context.Background(), "failing-span")
	span.RecordError(errors.New("usage limit exceeded"))
	span.SetStatus(observability.StatusError, "tavily call failed")
	span.End()

	output := buf.String()
	if !strings.Contains(output, "level=WARN") {
		t.Errorf("Expected failed span to end at WARN, got: %s", output)
	}
	if !strings.Contains(output, "usage limit exceeded") {
		t.Errorf("Expected recorded error in output, got: %s", output)
	}
	if !strings.Contains(output, "status_description=\"tavily call failed\"") {
		t.Errorf("Expected status description, got: %s", output)
	}
}

func TestSlogObserver_Span_RecordNilError(t *testing.T) {
	obs, buf := newTestObserver(slog.LevelInfo)

	_, span := obs.StartSpan(context.Background(), "span")
	span.RecordError(nil)
	span.End()

	if strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("nil error must not mark the span as failed: %s", buf.String())
	}
}

func TestSlogObserver_Span_AddEvent(t *testing.T) {
	obs, buf := newTestObserver(slog.LevelDebug)

	_, span := obs.StartSpan(context.Background(), "span")
	span.AddEvent("http.response.received", observability.Int(observability.AttrHTTPStatusCode, 200))

	output := buf.String()
	if !strings.Contains(output, "http.response.received") || !strings.Contains(output, "http.status_code=200") {
		t.Errorf("Expected event record, got: %s", output)
	}
}

func TestSlogObserver_Logging(t *testing.T) {
	obs, buf := newTestObserver(slog.LevelDebug)
	ctx := context.Background()

	obs.Debug(ctx, "debug message", observability.String("k", "d"))
	obs.Info(ctx, "info message")
	obs.Warn(ctx, "warn message")
	obs.Error(ctx, "error message", observability.Error(errors.New("boom")))

	output := buf.String()
	for _, want := range []string{
		"level=DEBUG msg=\"debug message\" k=d",
		"level=INFO msg=\"info message\"",
		"level=WARN msg=\"warn message\"",
		"level=ERROR msg=\"error message\" error=boom",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{" info ", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLogLevel(tt.input); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger_Formats(t *testing.T) {
	var jsonBuf, textBuf bytes.Buffer

	NewLogger(&jsonBuf, slog.LevelInfo, "json").Info("hello", "k", "v")
	if !strings.HasPrefix(jsonBuf.String(), "{") || !strings.Contains(jsonBuf.String(), `"k":"v"`) {
		t.Errorf("expected JSON output, got: %s", jsonBuf.String())
	}

	NewLogger(&textBuf, slog.LevelWarn, "").Info("filtered")
	if textBuf.Len() != 0 {
		t.Errorf("expected INFO to be filtered at WARN level, got: %s", textBuf.String())
	}
	NewLogger(&textBuf, slog.LevelWarn, "text").Warn("kept")
	if !strings.Contains(textBuf.String(), "msg=kept") {
		t.Errorf("expected text output, got: %s", textBuf.String())
	}
}
