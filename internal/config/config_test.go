package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		os.Clearenv()
		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("expected port 8080, got %s", cfg.Port)
		}
		if cfg.DatabaseURL != "./blogicum.db" {
			t.Errorf("expected default database url, got %s", cfg.DatabaseURL)
		}
		if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 10 {
			t.Errorf("unexpected rate limit defaults: %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
		}
	})

	t.Run("ProductionValidation", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("APP_ENV", "prod")
		_, err := Load()
		if err == nil {
			t.Error("expected error when SESSION_SECRET is missing in production")
		}
	})

	t.Run("CustomValues", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("PORT", "9000")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Port != "9000" {
			t.Errorf("expected port 9000, got %s", cfg.Port)
		}
	})

	t.Run("OTLPRequiresEndpoint", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("OTEL_EXPORTER", "otlp")
		if _, err := Load(); err == nil {
			t.Error("expected error when otlp exporter has no endpoint")
		}
	})

	t.Run("InvalidRateLimit", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("RATE_LIMIT_BURST", "muitos")
		if _, err := Load(); err == nil {
			t.Error("expected error for non numeric burst")
		}
	})
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  SQLiteConfig
		url  string
		want string
	}{
		{"plain path", DefaultSQLiteConfig(), "./blog.db",
			"./blog.db?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL"},
		{"existing params", DefaultSQLiteConfig(), "file:blog.db?cache=shared",
			"file:blog.db?cache=shared&_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL"},
		{"rollback journal", SQLiteConfig{WALMode: false, SyncLevel: "FULL", BusyTimeoutMS: 100}, "./blog.db",
			"./blog.db?_busy_timeout=100&_foreign_keys=on&_journal_mode=DELETE&_synchronous=FULL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.DSN(tt.url); got != tt.want {
				t.Errorf("DSN() = %s, want %s", got, tt.want)
			}
		})
	}

	if got, want := DSN("./blog.db"), DefaultSQLiteConfig().DSN("./blog.db"); got != want {
		t.Errorf("DSN() = %s, want %s", got, want)
	}
}

func TestGetSQLiteConfigFromEnv(t *testing.T) {
	t.Setenv("SQLITE_CACHE_SIZE", "-4000")
	t.Setenv("SQLITE_SYNC_LEVEL", "full")
	t.Setenv("SQLITE_WAL_MODE", "false")
	t.Setenv("SQLITE_TEMP_STORE", "bogus")

	cfg := GetSQLiteConfig()
	if cfg.CacheSizeKB != -4000 || cfg.SyncLevel != "FULL" || cfg.WALMode || cfg.TempStore != "MEMORY" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	pragmas := cfg.ConnPragmas()
	if len(pragmas) != 3 {
		t.Fatalf("ConnPragmas() = %v, want 3 pragmas without WAL", pragmas)
	}
	if pragmas[1] != "PRAGMA cache_size = -4000" {
		t.Errorf("ConnPragmas()[1] = %s", pragmas[1])
	}
}

func TestCalculateCacheSize(t *testing.T) {
	tests := []struct {
		ramMB int
		want  int
	}{
		{100, -8 * 1024},
		{4096, -81 * 1024},
		{64000, -256 * 1024},
	}

	for _, tt := range tests {
		if got := calculateCacheSize(tt.ramMB); got != tt.want {
			t.Errorf("calculateCacheSize(%d) = %d, want %d", tt.ramMB, got, tt.want)
		}
	}
}
