package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoadFromFileOverridesDefaults(t *testing.T) {
	content := `logging:
  level: debug
store:
  path: /tmp/custom.db
params:
  memory_level: 0.25
  csp_decay_days: 45
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Store.Path != "/tmp/custom.db" {
		t.Errorf("Store.Path = %q, want /tmp/custom.db", cfg.Store.Path)
	}
	if cfg.Params.MemoryLevel != 0.25 {
		t.Errorf("MemoryLevel = %v, want file override 0.25", cfg.Params.MemoryLevel)
	}
	if cfg.Params.CSPDecayDays != 45 {
		t.Errorf("CSPDecayDays = %v, want file override 45", cfg.Params.CSPDecayDays)
	}

	// Fields the file omits keep their defaults.
	if cfg.Params.StimulationC50 != Default().Params.StimulationC50 {
		t.Errorf("StimulationC50 = %v, want default %v", cfg.Params.StimulationC50, Default().Params.StimulationC50)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("HUMORAL_LOG_LEVEL", "trace")
	t.Setenv("HUMORAL_DB_PATH", "/tmp/env.db")
	t.Setenv("HUMORAL_MEMORY_LEVEL", "0.2")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "trace" {
		t.Errorf("Level = %q, want env override trace", cfg.Logging.Level)
	}
	if cfg.Store.Path != "/tmp/env.db" {
		t.Errorf("Store.Path = %q, want env override /tmp/env.db", cfg.Store.Path)
	}
	if cfg.Params.MemoryLevel != 0.2 {
		t.Errorf("MemoryLevel = %v, want env override 0.2", cfg.Params.MemoryLevel)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	content := "logging:\n  level: debug\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	t.Setenv("HUMORAL_LOG_LEVEL", "trace")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "trace" {
		t.Errorf("Level = %q, want env to beat file", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidParams(t *testing.T) {
	content := "params:\n  stimulation_c50: -5\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted a negative stimulation_c50")
	}
}

func TestValidateRejectsBadLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate accepted unknown log level")
	}
}

func TestValidateRejectsEmptyStorePath(t *testing.T) {
	cfg := Default()
	cfg.Store.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate accepted empty store path")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load of missing file returned nil error")
	}
}
