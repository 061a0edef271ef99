package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mjc.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	path := writeConfig(t, "table_capacity: 10\nunused_warnings: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TableCapacity != 10 {
		t.Errorf("TableCapacity = %d, want 10", cfg.TableCapacity)
	}
	if cfg.StackCapacity != 100 {
		t.Errorf("StackCapacity = %d, want default 100", cfg.StackCapacity)
	}
	if !cfg.UnusedWarnings {
		t.Error("UnusedWarnings = false, want true")
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
