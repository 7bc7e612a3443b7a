package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_DevDefaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != DriverPostgres {
		t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
	}
	if cfg.LedgerDriver != DriverMemory {
		t.Fatalf("expected memory ledger in dev, got %q", cfg.LedgerDriver)
	}
	if cfg.LedgerTTL != 24*time.Hour || cfg.LedgerMaxErrors != 1000 {
		t.Fatalf("unexpected ledger defaults: ttl=%s max=%d", cfg.LedgerTTL, cfg.LedgerMaxErrors)
	}
	if cfg.ChunkSize != 100 || cfg.ChunkConcurrency != 8 {
		t.Fatalf("unexpected chunk defaults: size=%d concurrency=%d", cfg.ChunkSize, cfg.ChunkConcurrency)
	}
	if cfg.APIFootballTimeout != 20*time.Second {
		t.Fatalf("unexpected api-football timeout: %s", cfg.APIFootballTimeout)
	}
	if cfg.CacheTTL != 60*time.Second || !cfg.CacheEnabled {
		t.Fatalf("unexpected cache defaults: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
}

func TestLoad_ProdDefaultsAndRequirements(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)

	t.Run("requires api key", func(t *testing.T) {
		t.Setenv("API_FOOTBALL_KEY", "")
		t.Setenv("INTERNAL_JOB_TOKEN", "internal")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when API_FOOTBALL_KEY is missing in prod")
		}
	})

	t.Run("requires internal job token", func(t *testing.T) {
		t.Setenv("API_FOOTBALL_KEY", "key")
		t.Setenv("INTERNAL_JOB_TOKEN", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when INTERNAL_JOB_TOKEN is missing in prod")
		}
	})

	t.Run("redis ledger by default", func(t *testing.T) {
		t.Setenv("API_FOOTBALL_KEY", "key")
		t.Setenv("INTERNAL_JOB_TOKEN", "internal")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.LedgerDriver != DriverRedis {
			t.Fatalf("expected redis ledger in prod, got %q", cfg.LedgerDriver)
		}
	})
}

func TestLoad_DriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("storage", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "mysql")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unsupported STORAGE_DRIVER")
		}
	})

	t.Run("ledger", func(t *testing.T) {
		t.Setenv("LEDGER_DRIVER", "etcd")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unsupported LEDGER_DRIVER")
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", " Memory ")
		t.Setenv("LEDGER_DRIVER", "REDIS")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != DriverMemory || cfg.LedgerDriver != DriverRedis {
			t.Fatalf("unexpected drivers: %q %q", cfg.StorageDriver, cfg.LedgerDriver)
		}
	})
}

func TestLoad_PositiveValues(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cases := map[string]string{
		"LEDGER_TTL":             "0s",
		"LEDGER_MAX_ERRORS":      "0",
		"CHUNK_SIZE":             "-1",
		"CHUNK_CONCURRENCY":      "abc",
		"API_FOOTBALL_TIMEOUT":   "never",
		"API_FOOTBALL_MAX_PAGES": "0",
		"CACHE_TTL":              "bad",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/1"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "football-stats-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "football-stats-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
		t.Fatalf("unexpected CORS origins: %+v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_QStashConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("QSTASH_ENABLED", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.QStashEnabled {
			t.Fatalf("expected QStashEnabled=false by default")
		}
	})

	t.Run("enabled requires token and target and internal token", func(t *testing.T) {
		t.Setenv("QSTASH_ENABLED", "true")
		t.Setenv("QSTASH_TOKEN", "")
		t.Setenv("QSTASH_TARGET_BASE_URL", "")
		t.Setenv("INTERNAL_JOB_TOKEN", "")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error when QSTASH_ENABLED=true without required env")
		}
	})

	t.Run("enabled with required values", func(t *testing.T) {
		t.Setenv("QSTASH_ENABLED", "true")
		t.Setenv("QSTASH_TOKEN", "qstash-token")
		t.Setenv("QSTASH_TARGET_BASE_URL", "https://football-stats.fly.dev")
		t.Setenv("INTERNAL_JOB_TOKEN", "internal-job-token")
		t.Setenv("QSTASH_RETRIES", "2")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.QStashEnabled || cfg.QStashRetries != 2 {
			t.Fatalf("unexpected qstash config: %+v", cfg)
		}
	})
}

func TestLoad_SchedulerConfig(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SCHEDULER_ENABLED", "true")

	t.Run("sweep needs season", func(t *testing.T) {
		t.Setenv("SCHEDULER_SEASON", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when sweep cron is set without SCHEDULER_SEASON")
		}
	})

	t.Run("domains parsed", func(t *testing.T) {
		t.Setenv("SCHEDULER_SEASON", "2024")
		t.Setenv("SCHEDULER_SWEEP_DOMAINS", "teams, fixtures")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SchedulerSeason != 2024 || len(cfg.SchedulerSweepDomains) != 2 {
			t.Fatalf("unexpected scheduler config: season=%d domains=%v", cfg.SchedulerSeason, cfg.SchedulerSweepDomains)
		}
	})
}
