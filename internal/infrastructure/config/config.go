package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type AccountingConfig struct {
	// CostCenters maps company name to its default cost center, parsed from
	// COST_CENTERS ("Company A=Main - A;Company B=Main - B").
	CostCenters map[string]string
	// DefaultCostCenter is used for companies without an entry.
	DefaultCostCenter string
}

type Config struct {
	GRPCPort     int
	HTTPPort     int
	DB           DatabaseConfig
	Kafka        KafkaConfig
	Accounting   AccountingConfig
	AccrualCron  string
	BatchTimeout time.Duration
	ServiceName  string
}

func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
}

func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9093),
		HTTPPort: getEnvInt("HTTP_PORT", 8093),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "accrual"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "crest_accrual"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "accrual-events"),
		},
		Accounting: AccountingConfig{
			CostCenters:       parseCostCenters(getEnv("COST_CENTERS", "")),
			DefaultCostCenter: getEnv("DEFAULT_COST_CENTER", "Main"),
		},
		AccrualCron:  getEnv("ACCRUAL_CRON", "30 0 * * *"),
		BatchTimeout: getEnvDuration("BATCH_TIMEOUT", 30*time.Minute),
		ServiceName:  "loan-accrual-service",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// parseCostCenters parses "Company=Cost Center" pairs separated by ';'.
func parseCostCenters(raw string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
