package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"psched/internal/platform/config"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load should succeed without a file: %v", err)
	}
	if cfg.BackendURL != config.Default().BackendURL {
		t.Fatalf("got backend %q, want the default", cfg.BackendURL)
	}
	if cfg.StateDir != dir {
		t.Fatalf("got state dir %q, want %q", cfg.StateDir, dir)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("got timeout %v, want 10s", cfg.RequestTimeout)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	payload := "backend_url: http://scheduler.local:9000\nrequest_timeout: 3s\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load should succeed: %v", err)
	}
	if cfg.BackendURL != "http://scheduler.local:9000" {
		t.Fatalf("got backend %q", cfg.BackendURL)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("got timeout %v, want 3s", cfg.RequestTimeout)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := config.Load(dir); err == nil {
		t.Fatalf("malformed config should fail")
	}
}

func TestWriteDefaultRefusesToClobber(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path, err := config.WriteDefault(dir)
	if err != nil {
		t.Fatalf("write default should succeed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("config written to %q, want inside %q", path, dir)
	}

	if _, err := config.WriteDefault(dir); err == nil {
		t.Fatalf("second write should refuse to clobber")
	}

	// The rendered file loads back cleanly.
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("generated config should load: %v", err)
	}
	if cfg.BackendURL != config.Default().BackendURL {
		t.Fatalf("got backend %q", cfg.BackendURL)
	}
}

func TestStatePaths(t *testing.T) {
	t.Parallel()
	cfg := config.Config{StateDir: "/tmp/psched"}
	if cfg.SessionPath() != filepath.Join("/tmp/psched", "session.json") {
		t.Fatalf("got session path %q", cfg.SessionPath())
	}
	if cfg.DBPath() != filepath.Join("/tmp/psched", "psched.db") {
		t.Fatalf("got db path %q", cfg.DBPath())
	}
}
