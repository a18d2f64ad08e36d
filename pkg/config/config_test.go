package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EnvOverridesYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
port: "8080"
env: "test"
database:
  host: "db.example.com"
  port: 5432
  user: "testuser"
  database: "testdb"
reporting:
  base_url: "https://reports.example.com/v2"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(originalDir)
	})

	os.Unsetenv("PGHOST")
	os.Unsetenv("BASE_URL")

	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load("test-version")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected Port=9090 (from env), got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("expected Env=production (from env), got %s", cfg.Env)
	}
	if cfg.Database.Host != "db.example.com" {
		t.Errorf("expected YAML database host, got %s", cfg.Database.Host)
	}
	if cfg.Reporting.BaseURL != "https://reports.example.com/v2" {
		t.Errorf("expected YAML reporting base URL, got %s", cfg.Reporting.BaseURL)
	}
	if cfg.Version != "test-version" {
		t.Errorf("expected injected version, got %s", cfg.Version)
	}
	if cfg.BaseURL != "http://localhost:9090" {
		t.Errorf("expected derived base URL, got %s", cfg.BaseURL)
	}
}

func TestLoad_MissingConfigFileUsesEnv(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(originalDir)
	})

	os.Unsetenv("BASE_URL")
	t.Setenv("PORT", "8088")
	t.Setenv("PGHOST", "pg.internal")

	cfg, err := Load("dev")
	if err != nil {
		t.Fatalf("Load() must tolerate a missing config.yaml: %v", err)
	}
	if cfg.Port != "8088" {
		t.Errorf("expected Port=8088, got %s", cfg.Port)
	}
	if cfg.Database.Host != "pg.internal" {
		t.Errorf("expected PGHOST value, got %s", cfg.Database.Host)
	}
}

func TestLoad_VerificationRequiresJWKS(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(originalDir)
	})

	t.Setenv("AUTH_ENABLE_VERIFICATION", "true")
	os.Unsetenv("JWKS_ENDPOINTS")

	if _, err := Load("dev"); err == nil {
		t.Fatal("expected error when verification is on without JWKS endpoints")
	}
}

func TestParseJWKSEndpoints(t *testing.T) {
	endpoints := parseJWKSEndpoints("https://a.example.com=https://a.example.com/jwks.json, https://b.example.com = https://b.example.com/jwks.json")
	if len(endpoints) != 2 {
		t.Fatalf("expected 2 endpoints, got %d", len(endpoints))
	}
	if endpoints["https://b.example.com"] != "https://b.example.com/jwks.json" {
		t.Errorf("expected trimmed pair, got %q", endpoints["https://b.example.com"])
	}
}

func TestConnectionString(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "aina",
		Password: "secret",
		Database: "ainareports",
		SSLMode:  "disable",
	}
	want := "host=localhost port=5432 user=aina password=secret dbname=ainareports sslmode=disable"
	if got := db.ConnectionString(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
