package config

import (
	"testing"
	"time"
)

func TestReadConfig_Defaults(t *testing.T) {

	cfg, err := ReadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Server.Port)
	}
	if cfg.RateLimit.Capacity != 5 {
		t.Errorf("expected default rate limit capacity 5, got %d", cfg.RateLimit.Capacity)
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Errorf("expected default rate limit window 1m, got %s", cfg.RateLimit.Window)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("expected empty default redis addr, got %q", cfg.Redis.Addr)
	}
}

func TestReadConfig_FromEnvironment(t *testing.T) {

	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("RATE_LIMIT_CAPACITY", "20")

	cfg, err := ReadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Server.Port)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("expected redis addr, got %q", cfg.Redis.Addr)
	}
	if cfg.RateLimit.Capacity != 20 {
		t.Errorf("expected rate limit capacity 20, got %d", cfg.RateLimit.Capacity)
	}
}
