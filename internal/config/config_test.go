package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("driver = %s, want sqlite", cfg.Database.Driver)
	}
	if cfg.JWT.ExpireHour != 24 {
		t.Errorf("expire_hour = %d, want 24", cfg.JWT.ExpireHour)
	}
	if cfg.Log.RetentionDays != 30 {
		t.Errorf("retention_days = %d, want 30", cfg.Log.RetentionDays)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  host: 127.0.0.1
  port: "9090"
  mode: release
database:
  driver: postgres
  dsn: host=db user=teamflow
jwt:
  secret: file-secret
  expire_hour: 2
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %s, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver = %s, want postgres", cfg.Database.Driver)
	}
	if cfg.JWT.Secret != "file-secret" {
		t.Errorf("secret = %s", cfg.JWT.Secret)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7000")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "7000" {
		t.Errorf("port = %s, want 7000", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("secret = %s, want env-secret", cfg.JWT.Secret)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Addr != "redis:6379" {
		t.Errorf("redis = %+v, want enabled at redis:6379", cfg.Redis)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Server.Port = "8123"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Server.Port != "8123" {
		t.Errorf("port = %s, want 8123", loaded.Server.Port)
	}
}
