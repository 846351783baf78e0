package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	d := Default()
	if s.Enabled != d.Enabled || s.ScanDepth != d.ScanDepth || s.Position != d.Position {
		t.Errorf("expected defaults, got %+v", s)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	s := Default()
	s.Enabled = false
	s.ScanDepth = 25
	s.API.Model = "test-model"
	if err := s.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Enabled || got.ScanDepth != 25 || got.API.Model != "test-model" {
		t.Errorf("expected saved values back, got %+v", got)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"auto_detect": false}`), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.AutoDetect {
		t.Error("expected auto_detect false from the file")
	}
	if s.ScanDepth != Default().ScanDepth || s.Position != Default().Position {
		t.Errorf("expected omitted fields backfilled, got %+v", s)
	}
}

func TestLoad_EnvOverridesAPI(t *testing.T) {
	t.Setenv("SECRETS_TRACKER_API_URL", "http://localhost:5001/v1")
	t.Setenv("SECRETS_TRACKER_API_KEY", "sk-test")

	s, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.API.BaseURL != "http://localhost:5001/v1" || s.API.APIKey != "sk-test" {
		t.Errorf("expected env overrides applied, got %+v", s.API)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed config")
	}
}
