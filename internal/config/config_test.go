package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "data/emergence.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.APIPort != 8080 {
		t.Errorf("APIPort = %d", cfg.APIPort)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cfg.MaxIterations != 50000 {
		t.Errorf("MaxIterations = %d", cfg.MaxIterations)
	}
	if cfg.TurbulenceAmplitude != 0 {
		t.Errorf("TurbulenceAmplitude = %v", cfg.TurbulenceAmplitude)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EMERGENCE_DB_PATH", "/tmp/alt.db")
	t.Setenv("EMERGENCE_API_PORT", "9000")
	t.Setenv("EMERGENCE_WORKERS", "16")
	t.Setenv("EMERGENCE_TURBULENCE", "0.25")
	t.Setenv("EMERGENCE_ADMIN_KEY", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/tmp/alt.db" || cfg.APIPort != 9000 || cfg.Workers != 16 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.TurbulenceAmplitude != 0.25 {
		t.Errorf("TurbulenceAmplitude = %v", cfg.TurbulenceAmplitude)
	}
	if cfg.AdminKey != "secret" {
		t.Errorf("AdminKey = %q", cfg.AdminKey)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	t.Setenv("EMERGENCE_API_PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Error("invalid port accepted")
	}
}
