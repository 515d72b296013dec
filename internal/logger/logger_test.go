// ABOUTME: Tests for the zap-backed logger.
// ABOUTME: Checks level parsing and output to a file sink.

package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]*zapcore.Level{
		"debug": levelPtr(zapcore.DebugLevel),
		"info":  levelPtr(zapcore.InfoLevel),
		"warn":  levelPtr(zapcore.WarnLevel),
		"error": levelPtr(zapcore.ErrorLevel),
		"bogus": nil,
	}
	for in, want := range cases {
		got := parseLevel(in)
		if (got == nil) != (want == nil) {
			t.Errorf("parseLevel(%q) nil mismatch: got %v want %v", in, got, want)
			continue
		}
		if got != nil && *got != *want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, *got, *want)
		}
	}
}

func TestNewWritesToOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listahan.log")

	log, err := New("info", false, path)
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	log.Debug("hidden")
	log.Warn("corrupt notes slot", String("key", "notes"), Int("dropped", 2))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Error("expected debug line to be filtered at info level")
	}
	if !strings.Contains(out, "corrupt notes slot") || !strings.Contains(out, `"dropped":2`) {
		t.Errorf("expected structured warn line, got %q", out)
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("ignored")
	log.Infof("ignored %d", 1)
}

func levelPtr(l zapcore.Level) *zapcore.Level { return &l }
