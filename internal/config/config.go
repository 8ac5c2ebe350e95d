package config

import (
	"os"
	"strconv"
	"time"
)

// Config is read once from the process environment at startup.
type Config struct {
	Port     string
	RunLocal bool

	LogLevel  string
	LogFormat string

	// APIKey is the text-generation credential. Empty disables the AI features.
	APIKey    string
	Model     string
	AITimeout time.Duration

	OrdersTable      string
	IdempotencyTable string
	QueueURL         string
	MetricsNamespace string
	IdempotencyTTL   time.Duration

	// AsyncTimeout bounds background event deliveries.
	AsyncTimeout time.Duration
}

const (
	defaultPort      = "8080"
	defaultModel     = "gemini-3-flash-preview"
	defaultNamespace = "NovaMart"
)

// Load reads the configuration from the environment, applying defaults.
func Load() *Config {
	cfg := &Config{
		Port:             getEnv("PORT", defaultPort),
		RunLocal:         getBool("RUN_LOCAL", false),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		APIKey:           getEnv("API_KEY", os.Getenv("GEMINI_API_KEY")),
		Model:            getEnv("GEMINI_MODEL", defaultModel),
		AITimeout:        getDuration("AI_TIMEOUT", 20*time.Second),
		OrdersTable:      os.Getenv("ORDERS_TABLE"),
		IdempotencyTable: os.Getenv("IDEMPOTENCY_TABLE"),
		QueueURL:         os.Getenv("ORDERS_QUEUE_URL"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", defaultNamespace),
		IdempotencyTTL:   getDuration("IDEMPOTENCY_TTL", 48*time.Hour),
		AsyncTimeout:     getDuration("ASYNC_TIMEOUT", 5*time.Second),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		cfg.Port = defaultPort
	}
	return cfg
}

// AIEnabled reports whether a text-generation credential is configured.
func (c *Config) AIEnabled() bool { return c.APIKey != "" }

// Addr is the listen address for local runs.
func (c *Config) Addr() string { return ":" + c.Port }

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
