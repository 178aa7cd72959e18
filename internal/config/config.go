package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	StoreName    string
	StoreAddress string

	HTTPPort string
	LogLevel string

	KafkaBrokers []string
	AuditTopic   string

	AuditWorkers    int
	AuditBatchSize  int
	AuditFlushEvery time.Duration
}

// Load reads the optional .env file (checked in the working directory
// and up to two parents) and assembles the config from the environment,
// falling back to defaults that work for a local run.
func Load() Config {
	loadEnv()

	return Config{
		StoreName:       getEnv("STORE_NAME", "Bike Store"),
		StoreAddress:    getEnv("STORE_ADDRESS", ""),
		HTTPPort:        getEnv("HTTP_PORT", "9000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		AuditTopic:      getEnv("AUDIT_TOPIC", "audit_logs"),
		AuditWorkers:    getEnvInt("AUDIT_WORKERS", 2),
		AuditBatchSize:  getEnvInt("AUDIT_BATCH_SIZE", 5),
		AuditFlushEvery: getEnvDuration("AUDIT_FLUSH_EVERY", 500*time.Millisecond),
	}
}

func loadEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	possiblePaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(cwd, "..", ".env"),
		filepath.Join(cwd, "..", "..", ".env"),
	}

	for _, envPath := range possiblePaths {
		if err := godotenv.Load(envPath); err == nil {
			log.Printf("Loaded environment variables from %s", envPath)
			return
		}
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value %q for %s, using %d", value, key, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid value %q for %s, using %s", value, key, fallback)
		return fallback
	}
	return d
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
