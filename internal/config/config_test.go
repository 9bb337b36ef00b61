package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"ESTOQUE_FILE", "SHEET_NAME", "LEGACY_HEADERS", "HEADER_MIN_MATCHES",
		"HTTP_ADDR", "GRPC_ADDR", "REDIS_ADDR", "MYSQL_DSN", "LOCK_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Sheet.Path != "estoque_mercearia.xlsx" {
		t.Errorf("unexpected sheet path %q", cfg.Sheet.Path)
	}
	if cfg.Sheet.SheetName != "Estoque" || cfg.Sheet.MinMatches != 3 || cfg.Sheet.LegacyHeaders {
		t.Errorf("unexpected sheet config %+v", cfg.Sheet)
	}
	if cfg.Server.HTTPAddr != ":8080" || cfg.Server.GRPCAddr != ":50051" {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Redis.Addr != "" || cfg.MySQL.DSN != "" {
		t.Errorf("expected optional backends disabled, got redis=%q mysql=%q", cfg.Redis.Addr, cfg.MySQL.DSN)
	}
	if cfg.Redis.LockTTL != 10*time.Second {
		t.Errorf("unexpected lock ttl %v", cfg.Redis.LockTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ESTOQUE_FILE", "/data/mercearia.xlsx")
	t.Setenv("LEGACY_HEADERS", "sim")
	t.Setenv("HEADER_MIN_MATCHES", "2")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("LOCK_TTL", "30s")
	t.Setenv("MYSQL_DSN", "root:root@tcp(mysql:3306)/grocerystock?parseTime=true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Sheet.Path != "/data/mercearia.xlsx" || !cfg.Sheet.LegacyHeaders || cfg.Sheet.MinMatches != 2 {
		t.Errorf("unexpected sheet config %+v", cfg.Sheet)
	}
	if cfg.Redis.Addr != "redis:6379" || cfg.Redis.LockTTL != 30*time.Second {
		t.Errorf("unexpected redis config %+v", cfg.Redis)
	}
	if cfg.MySQL.DSN == "" {
		t.Error("expected mysql dsn to be set")
	}
}

func TestLoad_InvalidMinMatches(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HEADER_MIN_MATCHES", "5")

	if _, err := Load(); err == nil {
		t.Error("expected validation error")
	}
}
