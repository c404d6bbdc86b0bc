package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for cart blobs
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// DatabaseConfig holds Postgres connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CartTTL  time.Duration
}

// Config holds the storefront service configuration
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
	HTTPPort    string

	StorageBackend string
	Redis          RedisConfig
	Database       DatabaseConfig

	KafkaBrokers []string
	KafkaGroupID string

	SessionSecret string
	SessionTTL    time.Duration

	NewsletterDelay time.Duration
	CheckoutDelay   time.Duration
	ContactDelay    time.Duration

	TracingEnabled bool
	JaegerEndpoint string

	FormRateLimit  int
	FormRateWindow time.Duration

	CatalogCacheTTL time.Duration
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServiceName: getEnv("OTEL_SERVICE_NAME", "storefront"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPPort:    getEnv("HTTP_PORT", "8080"),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageMemory)),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CartTTL:  getEnvDuration("CART_TTL", 30*24*time.Hour),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "storefrontdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		KafkaBrokers: getEnvList("KAFKA_BROKERS"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "storefront-notifier"),

		SessionSecret: getEnv("SESSION_SECRET", "littleones-dev-secret"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 30*24*time.Hour),

		NewsletterDelay: getEnvDuration("NEWSLETTER_DELAY", time.Second),
		CheckoutDelay:   getEnvDuration("CHECKOUT_DELAY", 2*time.Second),
		ContactDelay:    getEnvDuration("CONTACT_DELAY", 1500*time.Millisecond),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),

		FormRateLimit:  getEnvInt("FORM_RATE_LIMIT", 10),
		FormRateWindow: getEnvDuration("FORM_RATE_WINDOW", time.Minute),

		CatalogCacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
