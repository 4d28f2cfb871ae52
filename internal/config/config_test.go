package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Grid.Points != 100000 {
		t.Errorf("expected 100000 points, got %d", cfg.Grid.Points)
	}
	if cfg.Grid.Upper != 0.99 {
		t.Errorf("expected upper bound 0.99, got %f", cfg.Grid.Upper)
	}
	if cfg.Equilibrium.Tolerance != 1e-9 {
		t.Errorf("expected tolerance 1e-9, got %g", cfg.Equilibrium.Tolerance)
	}
	if cfg.Equilibrium.Fallback != 30 {
		t.Errorf("expected fallback 30, got %g", cfg.Equilibrium.Fallback)
	}
	if !cfg.Init.Auto {
		t.Error("expected auto initial state by default")
	}
	if len(cfg.Sweep.SValues) == 0 {
		t.Error("expected a default sweep list")
	}
	if cfg.Strict {
		t.Error("strict mode must be opt-in")
	}
}

func TestRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.S = 3.5
	cfg.Grid.Points = 5000
	cfg.Strict = true

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Params.S != 3.5 {
		t.Errorf("expected s 3.5, got %f", loaded.Params.S)
	}
	if loaded.Grid.Points != 5000 {
		t.Errorf("expected 5000 points, got %d", loaded.Grid.Points)
	}
	if !loaded.Strict {
		t.Error("expected strict to round-trip")
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "grid:\n  points: 500\nparams:\n  s: 3\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Grid.Points != 500 {
		t.Errorf("expected 500 points, got %d", cfg.Grid.Points)
	}
	if cfg.Params.S != 3 {
		t.Errorf("expected s 3, got %f", cfg.Params.S)
	}
	// Untouched keys keep their defaults.
	if cfg.Grid.Upper != 0.99 {
		t.Errorf("expected default upper 0.99, got %f", cfg.Grid.Upper)
	}
	if cfg.Params.Nu != DefaultNu {
		t.Errorf("expected default nu, got %f", cfg.Params.Nu)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Equilibrium.Window = 9
	cfg.Strict = true

	run := cfg.RunConfig()
	if run.Points != cfg.Grid.Points || run.Upper != cfg.Grid.Upper || run.Lower != cfg.Grid.Lower {
		t.Error("grid fields not mapped")
	}
	if run.Window != 9 || run.Tolerance != cfg.Equilibrium.Tolerance || run.Fallback != cfg.Equilibrium.Fallback {
		t.Error("equilibrium fields not mapped")
	}
	if !run.Strict {
		t.Error("strict not mapped")
	}
}
