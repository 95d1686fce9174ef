package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

var configKeys = []string{
	"SERVER_PORT", "SERVER_GIN_MODE", "STORE_DRIVER", "STORE_SQLITE_DSN", "SQLITE_DSN",
	"REDIS_URL", "REDIS_DATASET_TTL", "CORS_ALLOWED_ORIGINS", "LOG_MODE",
	"MOCK_PREDICT_DELAY", "MOCK_GENERATE_DELAY", "MOCK_SEED",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		// t.Setenv restores the original value after the test.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.GinMode != "release" {
		t.Errorf("Server.GinMode = %q, want %q", cfg.Server.GinMode, "release")
	}
	if cfg.Store.Driver != StoreMemory {
		t.Errorf("Store.Driver = %q, want %q", cfg.Store.Driver, StoreMemory)
	}
	if cfg.Redis.URL != "" {
		t.Errorf("Redis.URL = %q, want empty", cfg.Redis.URL)
	}
	if cfg.Redis.DatasetTTL != 60*time.Second {
		t.Errorf("Redis.DatasetTTL = %v, want 60s", cfg.Redis.DatasetTTL)
	}
	if cfg.CORS.AllowedOrigins != "*" {
		t.Errorf("CORS.AllowedOrigins = %q, want %q", cfg.CORS.AllowedOrigins, "*")
	}
	if cfg.Mock.PredictDelay != 1500*time.Millisecond {
		t.Errorf("Mock.PredictDelay = %v, want 1.5s", cfg.Mock.PredictDelay)
	}
	if cfg.Mock.GenerateDelay != 2*time.Second {
		t.Errorf("Mock.GenerateDelay = %v, want 2s", cfg.Mock.GenerateDelay)
	}
}

func TestLoadConfigCustom(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("MOCK_PREDICT_DELAY", "0s")
	t.Setenv("MOCK_SEED", "42")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Server.Addr() != ":3000" {
		t.Errorf("Server.Addr() = %q, want %q", cfg.Server.Addr(), ":3000")
	}
	if cfg.Store.Driver != StoreSQLite {
		t.Errorf("Store.Driver = %q, want %q", cfg.Store.Driver, StoreSQLite)
	}
	if cfg.Redis.URL != "redis://cache:6379/1" {
		t.Errorf("Redis.URL = %q", cfg.Redis.URL)
	}
	if cfg.Mock.PredictDelay != 0 {
		t.Errorf("Mock.PredictDelay = %v, want 0", cfg.Mock.PredictDelay)
	}
	if cfg.Mock.Seed != 42 {
		t.Errorf("Mock.Seed = %d, want 42", cfg.Mock.Seed)
	}
}

func TestLoadConfigInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "invalid")

	_, err := LoadConfig()
	if err == nil {
		t.Error("expected error for invalid SERVER_PORT")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "SERVER_PORT"},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, "SERVER_PORT"},
		{"unknown driver", func(c *Config) { c.Store.Driver = "postgres" }, "STORE_DRIVER"},
		{"negative delay", func(c *Config) { c.Mock.GenerateDelay = -time.Second }, "delays"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Server: ServerConfig{Port: 8080},
				Store:  StoreConfig{Driver: StoreMemory},
			}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
