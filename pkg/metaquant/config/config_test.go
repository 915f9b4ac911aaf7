package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.DBPath != "metaquant_ngx.db" {
		t.Errorf("DBPath = %q, want default", s.DBPath)
	}
	if s.DisclosuresURL == "" {
		t.Error("DisclosuresURL should have a default")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	body := "db_path: /tmp/test.db\neod_data_dir: /tmp/eod\nbrowser_timeout: 5s\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want /tmp/test.db", s.DBPath)
	}
	if s.EODDataDir != "/tmp/eod" {
		t.Errorf("EODDataDir = %q, want /tmp/eod", s.EODDataDir)
	}
	if s.BrowserTimeout != 5*time.Second {
		t.Errorf("BrowserTimeout = %v, want 5s", s.BrowserTimeout)
	}
	// Untouched fields keep their defaults.
	if s.DisclosuresURL != Default().DisclosuresURL {
		t.Errorf("DisclosuresURL = %q, want default", s.DisclosuresURL)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("db_path: from-file.db\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MQ_DB_PATH", "from-env.db")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.DBPath != "from-env.db" {
		t.Errorf("DBPath = %q, env should win over file", s.DBPath)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing settings file")
	}
}
