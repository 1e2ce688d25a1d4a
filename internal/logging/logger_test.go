package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerStepPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithStep(context.Background(), "compile-ui")
	WithContext(ctx, logger).Info("compiled", slog.String("input", "mainwindow.ui"))

	out := buf.String()
	if !strings.Contains(out, "compile-ui: compiled") {
		t.Fatalf("expected step prefix, got %q", out)
	}
	if !strings.Contains(out, "input=mainwindow.ui") {
		t.Fatalf("expected attribute, got %q", out)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Warn("tool missing", slog.String("detail", "pyside6-uic not found"))

	if !strings.Contains(buf.String(), `detail="pyside6-uic not found"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("build finished", slog.String("wheel", "numbat-0.0.1-py3-none-any.whl"))

	out := buf.String()
	for _, want := range []string{`"msg":"build finished"`, `"level":"info"`, `"wheel"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("json output %q missing %q", out, want)
		}
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestStepFromContext(t *testing.T) {
	if got := StepFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty step, got %q", got)
	}
	ctx := WithStep(context.Background(), "collect")
	if got := StepFromContext(ctx); got != "collect" {
		t.Fatalf("expected collect, got %q", got)
	}
}
