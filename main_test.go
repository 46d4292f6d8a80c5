package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"ethos/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(options{})
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg != config.Default() {
		t.Fatalf("loadConfig() = %+v, want defaults", cfg)
	}
}

func TestLoadConfigFileAndOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("animation:\n  curve: linear\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	cfg, err := loadConfig(options{configPath: path, hz: 30})
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Animation.Curve != "linear" || cfg.Host.Hz != 30 {
		t.Fatalf("loadConfig() curve = %q hz = %d, want linear 30", cfg.Animation.Curve, cfg.Host.Hz)
	}

	if _, err := loadConfig(options{hz: 5000}); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("loadConfig(hz 5000) error = %v, want %v", err, config.ErrInvalid)
	}
}

func TestLogOutput(t *testing.T) {
	w, done, err := logOutput(options{mode: "terminal"})
	if err != nil {
		t.Fatalf("logOutput() error = %v", err)
	}
	done()
	if w != io.Discard {
		t.Fatalf("terminal logOutput() = %T, want io.Discard", w)
	}

	path := filepath.Join(t.TempDir(), "ethos.log")
	w, done, err = logOutput(options{mode: "terminal", logPath: path})
	if err != nil {
		t.Fatalf("logOutput() error = %v", err)
	}
	if _, err := io.WriteString(w, "hello\n"); err != nil {
		t.Fatalf("WriteString() error = %v", err)
	}
	done()
	raw, err := os.ReadFile(path)
	if err != nil || string(raw) != "hello\n" {
		t.Fatalf("log file = %q, %v, want hello", raw, err)
	}
}

func TestRunRejectsUnknownMode(t *testing.T) {
	if err := run(options{mode: "teletype", logPath: filepath.Join(t.TempDir(), "log")}); err == nil {
		t.Fatalf("run() error = nil, want unknown mode error")
	}
}
