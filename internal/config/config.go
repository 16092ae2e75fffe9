// Package config loads runtime configuration from environment variables.
// Every key has a working default; a missing or malformed value falls back
// silently.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Audit sink selectors for AUDIT_SINK.
const (
	SinkLog   = "log"
	SinkKafka = "kafka"
	SinkRedis = "redis"
)

// Archive sink selectors for ARCHIVE_SINK.
const (
	ArchiveNone     = "none"
	ArchiveMemory   = "memory"
	ArchivePostgres = "postgres"
)

type Config struct {
	Bank    BankConfig
	Audit   AuditConfig
	Archive ArchiveConfig
	Demo    DemoConfig
}

type BankConfig struct {
	Name              string
	Code              string
	MaxAccounts       int
	Workers           int
	QueueCapacity     int
	MaxInitialBalance decimal.Decimal
}

type AuditConfig struct {
	Enabled            bool
	Sink               string // log, kafka, redis
	KafkaBrokers       []string
	RedisAddr          string
	RedisPassword      string
	RedisChannelPrefix string
}

type ArchiveConfig struct {
	Sink        string // none, memory, postgres
	PostgresDSN string
}

type DemoConfig struct {
	SampleAccounts int
}

// Load reads the full configuration from the environment.
func Load() *Config {
	return &Config{
		Bank: BankConfig{
			Name:              getEnv("BANK_NAME", "Concurrent Banking Ledger"),
			Code:              getEnv("BANK_CODE", "CBL"),
			MaxAccounts:       getEnvAsInt("MAX_ACCOUNTS", 1000),
			Workers:           getEnvAsInt("WORKER_COUNT", 100),
			QueueCapacity:     getEnvAsInt("QUEUE_CAPACITY", 100),
			MaxInitialBalance: getEnvAsDecimal("MAX_INITIAL_BALANCE", decimal.NewFromInt(1_000_000)),
		},
		Audit: AuditConfig{
			Enabled:            getEnvAsBool("AUDIT_ENABLED", true),
			Sink:               getEnv("AUDIT_SINK", SinkLog),
			KafkaBrokers:       getEnvAsSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword:      os.Getenv("REDIS_PASS"),
			RedisChannelPrefix: os.Getenv("REDIS_CHANNEL_PREFIX"),
		},
		Archive: ArchiveConfig{
			Sink:        getEnv("ARCHIVE_SINK", ArchiveMemory),
			PostgresDSN: os.Getenv("POSTGRES_DSN"),
		},
		Demo: DemoConfig{
			SampleAccounts: getEnvAsInt("DEMO_ACCOUNTS", 5),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
