package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHelpersBeforeInit(t *testing.T) {
	saved := Logger
	Logger = nil
	t.Cleanup(func() { Logger = saved })

	// Must not panic.
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after Init")
	}

	want := filepath.Join(configDir, "logs", "alpha.log")
	if Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}

	Info("habit toggled", "habit", "h1", "day", "2026-03-15")
	Debug("suppressed outside debug mode")

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "habit toggled") || !strings.Contains(content, "habit=h1") {
		t.Errorf("log file missing info entry: %q", content)
	}
	if strings.Contains(content, "suppressed") {
		t.Errorf("debug entry written at info level: %q", content)
	}
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")
	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Debug("visible in debug mode")

	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "visible in debug mode") {
		t.Errorf("debug entry missing: %q", data)
	}
}
