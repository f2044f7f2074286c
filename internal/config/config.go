package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all runtime configuration for the simulator.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	Port    string
	GinMode string

	// QuoteAPIURL selects the external quote provider. When empty the
	// built-in simulated provider is used instead.
	QuoteAPIURL  string
	QuoteAPIKey  string
	QuoteTimeout time.Duration

	StartingCash decimal.Decimal
	NumWorkers   int

	// KafkaBrokers enables trade event publishing when non-empty.
	KafkaBrokers []string
}

// Load reads configuration from environment variables and applies defaults.
func Load() (*Config, error) {
	numWorkers, err := getInt("NUM_WORKERS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid NUM_WORKERS: %w", err)
	}
	if numWorkers < 1 {
		return nil, fmt.Errorf("invalid NUM_WORKERS: must be at least 1")
	}

	quoteTimeout, err := getDuration("QUOTE_TIMEOUT", 3*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid QUOTE_TIMEOUT: %w", err)
	}

	startingCash, err := decimal.NewFromString(getStr("STARTING_CASH", "10000.00"))
	if err != nil {
		return nil, fmt.Errorf("invalid STARTING_CASH: %w", err)
	}
	if startingCash.IsNegative() {
		return nil, fmt.Errorf("invalid STARTING_CASH: must not be negative")
	}

	var brokers []string
	if v := getStr("KAFKA_BROKERS", ""); v != "" {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return &Config{
		DBHost:       getStr("DB_HOST", "localhost"),
		DBPort:       getStr("DB_PORT", "5433"),
		DBUser:       getStr("DB_USER", "trader"),
		DBPassword:   getStr("DB_PASSWORD", "trading123"),
		DBName:       getStr("DB_NAME", "trading_db"),
		Port:         getStr("PORT", "8080"),
		GinMode:      getStr("GIN_MODE", "debug"),
		QuoteAPIURL:  getStr("QUOTE_API_URL", ""),
		QuoteAPIKey:  getStr("QUOTE_API_KEY", ""),
		QuoteTimeout: quoteTimeout,
		StartingCash: startingCash,
		NumWorkers:   numWorkers,
		KafkaBrokers: brokers,
	}, nil
}

// ConnString builds the lib/pq connection string.
func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}
