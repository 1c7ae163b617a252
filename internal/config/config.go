package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Fragment store connection
	FragstoreURL    string
	FragstoreAPIKey string

	// Auth
	APIKey string

	// Save pipeline
	WorkerCount  int
	MaxQueueSize int
	JobTTL       time.Duration

	// Document registry
	MaxDocumentBytes int64
	DocTTL           time.Duration

	// Reader sessions
	SessionTTL time.Duration

	// Fallback delay before a pending scroll fires without a transition
	// signal from the rendering layer.
	ScrollSettleTimeout time.Duration

	// Fragment limits
	MaxFragmentBytes int

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		FragstoreURL:    envOr("FRAGSTORE_URL", "http://localhost:8080"),
		FragstoreAPIKey: os.Getenv("FRAGSTORE_API_KEY"),

		APIKey: os.Getenv("REGREADER_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),
		JobTTL:       envDuration("JOB_TTL", 1*time.Hour),

		MaxDocumentBytes: envInt64("MAX_DOCUMENT_BYTES", 10485760), // 10MB
		DocTTL:           envDuration("DOC_TTL", 24*time.Hour),

		SessionTTL: envDuration("SESSION_TTL", 2*time.Hour),

		ScrollSettleTimeout: envDuration("SCROLL_SETTLE_TIMEOUT", 500*time.Millisecond),

		MaxFragmentBytes: envInt("MAX_FRAGMENT_BYTES", 1048576), // 1MB

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = 10485760
	}
	if cfg.DocTTL <= 0 {
		cfg.DocTTL = 24 * time.Hour
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 2 * time.Hour
	}
	if cfg.ScrollSettleTimeout < 0 {
		cfg.ScrollSettleTimeout = 0
	}
	if cfg.MaxFragmentBytes <= 0 {
		cfg.MaxFragmentBytes = 1048576
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("REGREADER_API_KEY is required")
	}
	if c.FragstoreAPIKey == "" {
		return fmt.Errorf("FRAGSTORE_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
