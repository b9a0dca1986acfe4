package config

import (
	"testing"
	"time"
)

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI": "postgres://localhost/comanda",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != defaultRunAddress {
		t.Fatalf("unexpected run address %q", cfg.RunAddress)
	}
	if cfg.PasswordHasher != "argon2" {
		t.Fatalf("unexpected default hasher %q", cfg.PasswordHasher)
	}
	if cfg.TokenStrategy != "jwt" {
		t.Fatalf("unexpected default token strategy %q", cfg.TokenStrategy)
	}
	if cfg.SynonymPollInterval != defaultSynonymPollInterval {
		t.Fatalf("unexpected poll interval %s", cfg.SynonymPollInterval)
	}
	if cfg.AMQPAddress != "" {
		t.Fatalf("expected event publishing to be disabled by default")
	}
}

func TestLoadRequiresDatabaseURI(t *testing.T) {
	if _, err := load(nil, lookupFrom(nil)); err == nil {
		t.Fatal("expected error for missing database URI")
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	cfg, err := load(
		[]string{"-a", ":9090", "-poll-interval", "1m", "-worker-pool", "7"},
		lookupFrom(map[string]string{
			"DATABASE_URI": "postgres://localhost/comanda",
			"RUN_ADDRESS":  ":8081",
		}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":9090" {
		t.Fatalf("flag should win over env, got %q", cfg.RunAddress)
	}
	if cfg.SynonymPollInterval != time.Minute {
		t.Fatalf("unexpected poll interval %s", cfg.SynonymPollInterval)
	}
	if cfg.WorkerPoolSize != 7 {
		t.Fatalf("unexpected worker pool size %d", cfg.WorkerPoolSize)
	}
}

func TestLoadRejectsUnknownHasher(t *testing.T) {
	_, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":    "postgres://localhost/comanda",
		"PASSWORD_HASHER": "md5",
	}))
	if err == nil {
		t.Fatal("expected error for unknown hasher")
	}
}

func TestLoadRejectsUnknownTokenStrategy(t *testing.T) {
	_, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":   "postgres://localhost/comanda",
		"TOKEN_STRATEGY": "paseto",
	}))
	if err == nil {
		t.Fatal("expected error for unknown token strategy")
	}
}

func TestLoadTokenStrategyFromEnv(t *testing.T) {
	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":   "postgres://localhost/comanda",
		"TOKEN_STRATEGY": "hmac",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TokenStrategy != "hmac" {
		t.Fatalf("unexpected token strategy %q", cfg.TokenStrategy)
	}
}

func TestLoadSanitizesNonPositiveValues(t *testing.T) {
	cfg, err := load(
		[]string{"-worker-pool", "0", "-poll-batch", "-3"},
		lookupFrom(map[string]string{"DATABASE_URI": "postgres://localhost/comanda"}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WorkerPoolSize != defaultWorkerPoolSize {
		t.Fatalf("unexpected worker pool size %d", cfg.WorkerPoolSize)
	}
	if cfg.SynonymBatchSize != defaultSynonymBatchSize {
		t.Fatalf("unexpected batch size %d", cfg.SynonymBatchSize)
	}
}
