package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromMissingFileReturnsDefault(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom missing file: %v", err)
	}
	if cfg.PrefixKey != "ctrl+t" || cfg.NotificationCooldown != time.Second {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadFromDecodesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "prefix_key: ctrl+a\nmax_scrollback_lines: 500\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.PrefixKey != "ctrl+a" || cfg.MaxScrollbackLines != 500 {
		t.Fatalf("cfg = %+v, want prefix_key=ctrl+a max_scrollback_lines=500", cfg)
	}
}
