package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLevel_Constants(t *testing.T) {
	if LevelDebug != 0 {
		t.Errorf("LevelDebug = %d, want 0", LevelDebug)
	}
	if LevelInfo != 1 {
		t.Errorf("LevelInfo = %d, want 1", LevelInfo)
	}
	if LevelWarn != 2 {
		t.Errorf("LevelWarn = %d, want 2", LevelWarn)
	}
	if LevelError != 3 {
		t.Errorf("LevelError = %d, want 3", LevelError)
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"invalid", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func captureOutput(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Configure(LoggerConfig{Level: level, Format: "json", Output: &buf})
	t.Cleanup(func() { Configure(DefaultLoggerConfig()) })
	return &buf
}

func TestLogger_WritesKeyValues(t *testing.T) {
	buf := captureOutput(t, "debug")

	New("coordinator").Info("job finished", "job_id", "abc", "duration_ms", 42, "err", errors.New("boom"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["logger"] != "coordinator" {
		t.Errorf("logger = %v, want coordinator", entry["logger"])
	}
	if entry["message"] != "job finished" {
		t.Errorf("message = %v, want job finished", entry["message"])
	}
	if entry["job_id"] != "abc" {
		t.Errorf("job_id = %v, want abc", entry["job_id"])
	}
	if entry["err"] != "boom" {
		t.Errorf("err = %v, want boom", entry["err"])
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	buf := captureOutput(t, "warn")

	logger := New("test")
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("messages below warn should be filtered: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn message missing: %q", buf.String())
	}
}

func TestLogger_WithLevel(t *testing.T) {
	buf := captureOutput(t, "debug")

	logger := New("test").WithLevel(LevelError)
	logger.Info("hidden")

	if buf.Len() != 0 {
		t.Errorf("WithLevel(LevelError) should suppress info, got %q", buf.String())
	}
	if logger.Name() != "test" {
		t.Errorf("name should be preserved: got %v", logger.Name())
	}
}

func TestNop(t *testing.T) {
	buf := captureOutput(t, "debug")

	Nop().Error("nothing")
	var nilLogger *Logger
	nilLogger.Info("nothing")

	if buf.Len() != 0 {
		t.Errorf("Nop logger wrote output: %q", buf.String())
	}
}

func TestLogger_OddKeyValues(t *testing.T) {
	captureOutput(t, "debug")

	// Should not panic with odd number of key-values
	New("test").Info("message", "key1", "value1", "orphan")
}

func TestToFields(t *testing.T) {
	// Empty input
	fields := toFields()
	if fields != nil {
		t.Error("toFields() with no args should return nil")
	}

	fields = toFields("key1", "value1", "key2", 42)
	if fields["key1"] != "value1" {
		t.Errorf("fields[key1] = %v, want value1", fields["key1"])
	}
	if fields["key2"] != 42 {
		t.Errorf("fields[key2] = %v, want 42", fields["key2"])
	}

	// Non-string key (should be skipped)
	fields = toFields(123, "value")
	if len(fields) != 0 {
		t.Errorf("Non-string key should be skipped, got %v fields", len(fields))
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	Configure(LoggerConfig{Level: "info", Output: &bytes.Buffer{}})
	defer Configure(DefaultLoggerConfig())
	logger := New("benchmark")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "iteration", i)
	}
}
