package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Step <= 0 {
		t.Error("step should be positive")
	}
	if cfg.Margin <= 0 {
		t.Error("margin should be positive")
	}
	if cfg.MaxYears != DefaultMaxYears {
		t.Errorf("max years = %d, want %d", cfg.MaxYears, DefaultMaxYears)
	}
	if cfg.Propagator != "rk4" {
		t.Errorf("propagator = %q, want rk4", cfg.Propagator)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := `file: hd23079.txt
step: 1800
margin: 0.25
max_years: 500000
propagator: verlet
progress_every: 100
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.File != "hd23079.txt" {
		t.Errorf("file = %q", cfg.File)
	}
	if cfg.Step != 1800 {
		t.Errorf("step = %g", cfg.Step)
	}
	if cfg.Margin != 0.25 {
		t.Errorf("margin = %g", cfg.Margin)
	}
	if cfg.MaxYears != 500000 {
		t.Errorf("max years = %d", cfg.MaxYears)
	}
	if cfg.Propagator != "verlet" {
		t.Errorf("propagator = %q", cfg.Propagator)
	}
	if cfg.ProgressEvery != 100 {
		t.Errorf("progress every = %d", cfg.ProgressEvery)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("margin: 2.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Margin != 2.5 {
		t.Errorf("margin = %g", cfg.Margin)
	}
	if cfg.Step != DefaultStep {
		t.Errorf("step = %g, want default %g", cfg.Step, DefaultStep)
	}
	if cfg.Propagator != DefaultPropagator {
		t.Errorf("propagator = %q, want default", cfg.Propagator)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	orig := DefaultConfig()
	orig.File = "system.txt"
	orig.Step = 900
	orig.Margin = 0.75

	if err := Save(path, orig); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if *loaded != *orig {
		t.Errorf("round trip mismatch:\n  in:  %+v\n  out: %+v", orig, loaded)
	}
}
