package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigShowDefaults(t *testing.T) {
	out, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "does not exist; showing defaults")
	requireContains(t, out, "[resolve]")
	requireContains(t, out, "workers = 5")
}

func TestConfigNew(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "new", "--path", target)
	if err != nil {
		t.Fatalf("config new: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// refuses to clobber without --overwrite
	if _, err := runCLI(t, "config", "new", "--path", target); err == nil {
		t.Fatal("expected error for existing config without --overwrite")
	}
	if _, err := runCLI(t, "config", "new", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config new --overwrite: %v", err)
	}
}
