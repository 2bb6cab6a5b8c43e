package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testConfigXML = `<?xml version="1.0" encoding="UTF-8"?>
<API MODE="development" REQUEST_DUMP="true">
    <CONTEXT>
        <PORT>8080</PORT>
        <HOST>0.0.0.0</HOST>
        <PATH>/api/v1</PATH>
        <TIME_ZONE>Africa/Nairobi</TIME_ZONE>
        <LOG_DIR>logs</LOG_DIR>
    </CONTEXT>
    <AUTHENTICATION>
        <ACCESS_SECRET>file-access-secret</ACCESS_SECRET>
        <REFRESH_SECRET>file-refresh-secret</REFRESH_SECRET>
        <ACCESS_EXPIRY_MINUTES>15</ACCESS_EXPIRY_MINUTES>
        <REFRESH_EXPIRY_HOURS>168</REFRESH_EXPIRY_HOURS>
    </AUTHENTICATION>
    <PAGINATION>
        <PAGE_SIZE>10</PAGE_SIZE>
        <MAX_PAGE_SIZE>100</MAX_PAGE_SIZE>
    </PAGINATION>
    <RATE_LIMIT>
        <ENABLED>true</ENABLED>
        <REQUESTS_PER_SECOND>20</REQUESTS_PER_SECOND>
        <BURST>40</BURST>
    </RATE_LIMIT>
    <DB>
        <HOST>localhost</HOST>
        <PORT>5432</PORT>
        <SSL_MODE>disable</SSL_MODE>
        <NAME>quizhive</NAME>
        <USERNAME>quizhive</USERNAME>
        <PASSWORD>file-password</PASSWORD>
        <POOL>
            <MAX_OPEN_CONNS>20</MAX_OPEN_CONNS>
            <MAX_IDLE_CONNS>5</MAX_IDLE_CONNS>
            <CONN_MAX_LIFETIME>30</CONN_MAX_LIFETIME>
        </POOL>
    </DB>
    <REDIS>
        <ADDR>localhost:6379</ADDR>
        <PASSWORD></PASSWORD>
        <DB>0</DB>
        <TTL_SECONDS>30</TTL_SECONDS>
    </REDIS>
</API>
`

// LoadConfig parses once per process, so one test exercises parsing, env
// overrides and the accessors together.
func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.xml")
	if err := os.WriteFile(path, []byte(testConfigXML), 0o600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("QUIZHIVE_DB_PASSWORD", "env-password")
	t.Setenv("QUIZHIVE_ACCESS_SECRET", "env-access-secret")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Mode != "development" || !cfg.RequestDump {
		t.Fatalf("root attributes wrong: mode=%q dump=%v", cfg.Mode, cfg.RequestDump)
	}
	if cfg.IsProduction() {
		t.Fatal("development mode must not report production")
	}
	if cfg.Context.Port != 8080 || cfg.Context.Path != "/api/v1" || cfg.Context.LogDir != "logs" {
		t.Fatalf("context wrong: %+v", cfg.Context)
	}
	if cfg.Pagination.PageSize != 10 || cfg.Pagination.MaxPageSize != 100 {
		t.Fatalf("pagination wrong: %+v", cfg.Pagination)
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.RequestsPerSecond != 20 || cfg.RateLimit.Burst != 40 {
		t.Fatalf("rate limit wrong: %+v", cfg.RateLimit)
	}
	if cfg.DB.Pool.MaxOpenConns != 20 || cfg.DB.SSLMode != "disable" {
		t.Fatalf("db wrong: %+v", cfg.DB)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.TTLSeconds != 30 {
		t.Fatalf("redis wrong: %+v", cfg.Redis)
	}

	// Environment wins over committed values.
	if cfg.DB.Password != "env-password" {
		t.Fatalf("db password not overridden: %q", cfg.DB.Password)
	}
	if cfg.Authentication.AccessSecret != "env-access-secret" {
		t.Fatalf("access secret not overridden: %q", cfg.Authentication.AccessSecret)
	}
	// Variables that were not set leave the file values alone.
	if cfg.Authentication.RefreshSecret != "file-refresh-secret" {
		t.Fatalf("refresh secret should come from the file: %q", cfg.Authentication.RefreshSecret)
	}

	if GetConfig() != cfg {
		t.Fatal("GetConfig must return the loaded instance")
	}
}
