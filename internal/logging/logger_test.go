package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("classified file", String("hit_type", "WrongCase"), Int("score", 42))

	out := buf.String()
	if !strings.Contains(out, "classified file") {
		t.Errorf("missing message: %q", out)
	}
	if !strings.Contains(out, "hit_type=WrongCase") {
		t.Errorf("missing attr: %q", out)
	}
	if !strings.Contains(out, "score=42") {
		t.Errorf("missing attr: %q", out)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("suppressed")
	logger.Info("fix pass complete")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("debug record should be filtered: %q", out)
	}
	if !strings.Contains(out, `"msg":"fix pass complete"`) {
		t.Errorf("missing JSON record: %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestComponentLoggerNilBase(t *testing.T) {
	logger := NewComponentLogger(nil, "fixer")
	// must not panic and must swallow output
	logger.Info("ignored")
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("renamed", String("file", "Medieval Madness.mp3"))
	if !strings.Contains(buf.String(), `file="Medieval Madness.mp3"`) {
		t.Errorf("expected quoted value: %q", buf.String())
	}
}
