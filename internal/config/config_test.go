package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cerrors "github.com/vango-dev/cells/internal/errors"
	"github.com/vango-dev/cells/pkg/reactive"
)

func noEnv(string) (string, bool) { return "", false }

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Listen != DefaultListen {
		t.Errorf("Listen = %q, want %q", cfg.Listen, DefaultListen)
	}
	if cfg.MetricsPath != DefaultMetricsPath {
		t.Errorf("MetricsPath = %q, want %q", cfg.MetricsPath, DefaultMetricsPath)
	}
	if cfg.DependentLintThreshold != reactive.DefaultDependentLintThreshold {
		t.Errorf("DependentLintThreshold = %d, want %d", cfg.DependentLintThreshold, reactive.DefaultDependentLintThreshold)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	data := `
debug: true
performanceLints: true
dependentLintThreshold: 5
logLevel: debug
listen: ":9000"
`
	if err := os.WriteFile(filepath.Join(dir, "cells.yaml"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(filepath.Join(dir, "cells.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !cfg.Debug || !cfg.PerformanceLints {
		t.Errorf("Debug/PerformanceLints = %v/%v, want true/true", cfg.Debug, cfg.PerformanceLints)
	}
	if cfg.DependentLintThreshold != 5 {
		t.Errorf("DependentLintThreshold = %d, want 5", cfg.DependentLintThreshold)
	}
	if cfg.Listen != ":9000" {
		t.Errorf("Listen = %q, want :9000", cfg.Listen)
	}
	if cfg.TracerName != DefaultTracerName {
		t.Errorf("TracerName = %q, want default", cfg.TracerName)
	}
	if cfg.Path() != filepath.Join(dir, "cells.yaml") {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	data := `{"logLevel": "warn", "metricsPath": ""}`
	if err := os.WriteFile(filepath.Join(dir, "cells.json"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.SlogLevel().String() != "WARN" {
		t.Errorf("SlogLevel() = %v, want WARN", cfg.SlogLevel())
	}
}

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want empty", cfg.Path())
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "cells.yaml")
	if err := os.WriteFile(bad, []byte("debug: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFile(bad)
	if err == nil {
		t.Fatal("LoadFile() on invalid YAML should fail")
	}
	var ce *cerrors.CellsError
	if !errors.As(err, &ce) || ce.Code != "R100" {
		t.Errorf("error = %v, want R100", err)
	}

	toml := filepath.Join(dir, "cells.toml")
	if err := os.WriteFile(toml, []byte("debug = true"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadFile(toml)
	if !errors.As(err, &ce) || ce.Code != "R101" {
		t.Errorf("error = %v, want R101", err)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFile() on missing file should fail")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDebug:    "true",
		EnvListen:   "0.0.0.0:1234",
		EnvLogLevel: "error",
	}
	cfg := New()
	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	if !cfg.Debug {
		t.Error("Debug should be set from CELLS_DEBUG")
	}
	if cfg.Listen != "0.0.0.0:1234" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}

	cfg = New()
	cfg.ApplyEnv(noEnv)
	if cfg.Debug {
		t.Error("Debug should stay false without env")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		detail string
	}{
		{"negative threshold", func(c *Config) { c.DependentLintThreshold = -1 }, "dependentLintThreshold"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "logLevel"},
		{"empty listen", func(c *Config) { c.Listen = "" }, "listen"},
		{"relative metrics path", func(c *Config) { c.MetricsPath = "metrics" }, "metricsPath"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil")
			}
			var ce *cerrors.CellsError
			if !errors.As(err, &ce) || !strings.Contains(ce.Detail, tt.detail) {
				t.Errorf("Validate() = %v, want detail mentioning %q", err, tt.detail)
			}
		})
	}
}

func TestApply(t *testing.T) {
	oldMode, oldDebug := reactive.DebugMode, reactive.Debug
	t.Cleanup(func() { reactive.DebugMode, reactive.Debug = oldMode, oldDebug })

	cfg := New()
	cfg.Debug = true
	cfg.PerformanceLints = true
	cfg.DependentLintThreshold = 3
	cfg.Apply()

	if !reactive.DebugMode {
		t.Error("DebugMode not applied")
	}
	if !reactive.Debug.PerformanceLints || reactive.Debug.DependentLintThreshold != 3 {
		t.Errorf("Debug = %+v", reactive.Debug)
	}
}

func TestSaveRoundTripYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cells.yml")
	cfg := New()
	cfg.LogTicks = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !loaded.LogTicks || loaded.Listen != DefaultListen {
		t.Errorf("loaded = %+v", loaded)
	}
}
