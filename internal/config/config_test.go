package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/mealtrack_test")
	defer os.Unsetenv("DATABASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("expected development mode by default")
	}
	if cfg.DBMaxConns != 20 || cfg.DBMinConns != 5 {
		t.Errorf("pool defaults = %d/%d, want 20/5", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.BodyLimit != "1M" {
		t.Errorf("BodyLimit = %q, want 1M", cfg.BodyLimit)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	os.Unsetenv("DATABASE_URL")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestLoadCORSOrigins(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/mealtrack_test")
	os.Setenv("CORS_ORIGINS", "https://a.example.com,https://b.example.com")
	defer func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("CORS_ORIGINS")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("CORSOrigins = %v, want two entries", cfg.CORSOrigins)
	}
	if cfg.CORSOrigins[0] != "https://a.example.com" {
		t.Errorf("CORSOrigins[0] = %q", cfg.CORSOrigins[0])
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(c *Config) {}, false},
		{"min conns above max", func(c *Config) { c.DBMinConns = 50 }, true},
		{"zero rps", func(c *Config) { c.RateLimitRPS = 0 }, true},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{
				DBMaxConns:     20,
				DBMinConns:     5,
				RateLimitRPS:   100,
				RequestTimeout: 30 * time.Second,
			}
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestProductionMode(t *testing.T) {
	cfg := &Config{Env: "production"}
	if !cfg.IsProduction() {
		t.Error("expected production mode")
	}
	if cfg.IsDev() {
		t.Error("production config reported as development")
	}
}
