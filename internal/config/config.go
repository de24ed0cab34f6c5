package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	GRPCPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	LogFormat       string

	// Session snapshots are kept in memory only when RedisAddr is empty
	RedisAddr     string
	RedisPassword string
	SessionTTL    time.Duration
	// Sessions unused for this long are dropped from memory
	SessionIdle   time.Duration

	// Empty path serves the built-in catalog
	CatalogDBPath string

	// Order events are disabled when no brokers are configured
	KafkaBrokers  []string
	OrdersTopic   string
	ConsumerGroup string

	// The order archive is disabled when DBHost is empty
	DB DBConfig

	ShippingFee           float64
	FreeShippingThreshold float64
	PaymentDelay          time.Duration

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

func (c DBConfig) Enabled() bool {
	return c.Host != ""
}

// Load reads configuration from the environment, after loading an optional .env file.
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	p := &parser{}
	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		GRPCPort:        getEnv("GRPC_PORT", "50060"),
		RequestTimeout:  p.duration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: p.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SessionTTL:    p.duration("SESSION_TTL", 24*time.Hour),
		SessionIdle:   p.duration("SESSION_IDLE", 30*time.Minute),

		CatalogDBPath: getEnv("CATALOG_DB_PATH", ""),

		KafkaBrokers:  splitList(getEnv("KAFKA_BROKERS", "")),
		OrdersTopic:   getEnv("ORDERS_TOPIC", "storefront.orders"),
		ConsumerGroup: getEnv("ORDERS_CONSUMER_GROUP", "storefront-archive"),

		DB: DBConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "storefront"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "storefront"),
		},

		ShippingFee:           p.float("SHIPPING_FEE", 99),
		FreeShippingThreshold: p.float("FREE_SHIPPING_THRESHOLD", 999),
		PaymentDelay:          p.duration("PAYMENT_DELAY", 2*time.Second),

		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPS:   p.float("RATE_LIMIT_RPS", 20),
		RateLimitBurst: p.int("RATE_LIMIT_BURST", 40),
	}

	if p.err != nil {
		return nil, p.err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parser keeps the first conversion error so Load can report it once.
type parser struct {
	err error
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
}

func (p *parser) duration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		p.fail(key, value, err)
		return defaultValue
	}
	return d
}

func (p *parser) float(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		p.fail(key, value, err)
		return defaultValue
	}
	return f
}

func (p *parser) int(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		p.fail(key, value, err)
		return defaultValue
	}
	return i
}
