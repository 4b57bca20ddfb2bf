// Package config loads the process configuration from the environment,
// with sane defaults for local development.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full process configuration, grouped by concern.
type Config struct {
	Server    ServerConfig
	Bank      BankConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Logging   LoggingConfig
	Kafka     KafkaConfig
}

// ServerConfig holds the HTTP listener's address.
type ServerConfig struct {
	Port string
	Host string
}

// BankConfig holds the parameters of the banking core itself.
type BankConfig struct {
	// GatekeeperCapacity is N, the per-user admission bound.
	GatekeeperCapacity int
}

// RateLimitConfig holds the per-IP HTTP rate limit — an ambient
// transport concern, distinct from the per-user Gatekeeper.
type RateLimitConfig struct {
	RequestsPerMinute int
	Window            time.Duration
}

// CORSConfig holds the allowed origins/methods/headers for browser
// clients of the HTTP façade.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	AllowCredentials bool
}

// LoggingConfig selects the logger's minimum level and output format.
type LoggingConfig struct {
	Level  string
	Format string
}

// KafkaConfig holds the settings for the notification-only event
// pipeline. Only Enabled and ConsumerName are read when the pipeline is
// wired; its brokers come from kafka.NewConfigFromEnv and its topic names
// are the fixed constants in the kafka package, so Brokers and
// TopicPrefix are not used.
type KafkaConfig struct {
	Brokers      []string
	TopicPrefix  string
	Enabled      bool
	ConsumerName string
}

// Load reads Config from the environment, applying defaults suited to
// running the service locally with no Kafka broker present.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Bank: BankConfig{
			GatekeeperCapacity: getEnvAsInt("GATEKEEPER_CAPACITY", 10),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_REQUESTS_PER_MINUTE", 600),
			Window:            time.Minute,
		},
		CORS: CORSConfig{
			AllowOrigins:     getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
			AllowMethods:     getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowHeaders:     getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization", "Accept", "X-Requested-With"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Kafka: KafkaConfig{
			Brokers:      getEnvAsSlice("KAFKA_BROKERS", nil),
			TopicPrefix:  getEnv("KAFKA_TOPIC_PREFIX", "bank-core"),
			Enabled:      getEnvAsBool("KAFKA_ENABLED", false),
			ConsumerName: getEnv("KAFKA_CONSUMER_GROUP", "bank-core-audit"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsSlice(name string, defaultVal []string) []string {
	valStr := getEnv(name, "")
	if valStr == "" {
		return defaultVal
	}
	return strings.Split(valStr, ",")
}
