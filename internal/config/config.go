package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	TokenSecret         string
	TokenTTL            time.Duration
	TokenStrategy       string
	PasswordHasher      string
	DictionaryAddress   string
	OpenAIAddress       string
	OpenAIKey           string
	OpenAIModel         string
	AMQPAddress         string
	AMQPExchange        string
	SynonymPollInterval time.Duration
	SynonymBatchSize    int
	WorkerPoolSize      int
	ShutdownTimeout     time.Duration
}

const (
	defaultRunAddress          = ":8080"
	defaultTokenSecret         = "change-me-in-production"
	defaultTokenTTL            = 24 * time.Hour
	defaultTokenStrategy       = "jwt"
	defaultPasswordHasher      = "argon2"
	defaultDictionaryAddress   = "https://api.dictionaryapi.dev"
	defaultOpenAIAddress       = "https://api.openai.com"
	defaultOpenAIModel         = "gpt-4.1"
	defaultAMQPExchange        = "orders_topic"
	defaultSynonymPollInterval = 10 * time.Second
	defaultSynonymBatchSize    = 8
	defaultWorkerPoolSize      = 2
	defaultShutdownTimeout     = 10 * time.Second
)

// Load parses configuration from an optional .env file, environment
// variables and flags, in increasing priority.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		TokenSecret:         getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		TokenTTL:            getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		TokenStrategy:       getString(lookup, "TOKEN_STRATEGY", defaultTokenStrategy),
		PasswordHasher:      getString(lookup, "PASSWORD_HASHER", defaultPasswordHasher),
		DictionaryAddress:   getString(lookup, "DICTIONARY_ADDRESS", defaultDictionaryAddress),
		OpenAIAddress:       getString(lookup, "OPENAI_ADDRESS", defaultOpenAIAddress),
		OpenAIKey:           getString(lookup, "OPENAI_API_KEY", ""),
		OpenAIModel:         getString(lookup, "OPENAI_MODEL", defaultOpenAIModel),
		AMQPAddress:         getString(lookup, "AMQP_ADDRESS", ""),
		AMQPExchange:        getString(lookup, "AMQP_EXCHANGE", defaultAMQPExchange),
		SynonymPollInterval: getDuration(lookup, "SYNONYM_POLL_INTERVAL", defaultSynonymPollInterval),
		SynonymBatchSize:    getInt(lookup, "SYNONYM_BATCH_SIZE", defaultSynonymBatchSize),
		WorkerPoolSize:      getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("comanda", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.SynonymPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.TokenStrategy, "token-strategy", cfg.TokenStrategy, "Auth token scheme (jwt or hmac)")
	fs.StringVar(&cfg.PasswordHasher, "password-hasher", cfg.PasswordHasher, "Password hashing scheme (argon2 or bcrypt)")
	fs.StringVar(&cfg.DictionaryAddress, "dictionary-addr", cfg.DictionaryAddress, "Dictionary API base URL")
	fs.StringVar(&cfg.OpenAIAddress, "openai-addr", cfg.OpenAIAddress, "OpenAI-compatible API base URL")
	fs.StringVar(&cfg.AMQPAddress, "amqp-addr", cfg.AMQPAddress, "RabbitMQ URL for order events (empty disables publishing)")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent synonym linking workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between synonym linking polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.SynonymBatchSize, "poll-batch", cfg.SynonymBatchSize, "Maximum words per linking batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SynonymPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.SynonymBatchSize <= 0 {
		cfg.SynonymBatchSize = defaultSynonymBatchSize
	}

	if cfg.SynonymPollInterval <= 0 {
		cfg.SynonymPollInterval = defaultSynonymPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.PasswordHasher != "argon2" && cfg.PasswordHasher != "bcrypt" {
		return nil, fmt.Errorf("unknown password hasher %q", cfg.PasswordHasher)
	}

	if cfg.TokenStrategy != "jwt" && cfg.TokenStrategy != "hmac" {
		return nil, fmt.Errorf("unknown token strategy %q", cfg.TokenStrategy)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
