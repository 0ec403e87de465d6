package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendCSV      = "csv"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	HTTPAddr string

	StorageBackend string
	MenuPath       string
	OrdersPath     string
	SQLitePath     string
	DatabaseURL    string

	// AccessPIN is compared in plain text. It keeps passers-by off the
	// till screen and nothing more.
	AccessPIN    string
	ShareBaseURL string
	HistoryLimit int

	KafkaBrokers []string
	KafkaTopic   string

	SessionTTL      time.Duration
	ShutdownTimeout time.Duration
}

// Load reads the environment, after merging an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config

	c.HTTPAddr = getenv("APP_HTTP_ADDR", ":8081")

	c.StorageBackend = strings.ToLower(getenv("STORAGE_BACKEND", BackendCSV))
	c.MenuPath = getenv("MENU_PATH", "default_drinks.csv")
	c.OrdersPath = getenv("ORDERS_PATH", "orders.csv")
	c.SQLitePath = getenv("SQLITE_PATH", "drinkstand.db")
	c.DatabaseURL = os.Getenv("DATABASE_URL")

	switch c.StorageBackend {
	case BackendCSV, BackendSQLite, BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required for the postgres backend")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	c.AccessPIN = getenv("ACCESS_PIN", "1234")
	c.ShareBaseURL = getenv("SHARE_BASE_URL", "https://wa.me")
	c.HistoryLimit = getenvInt("HISTORY_LIMIT", 50)

	c.KafkaBrokers = splitCSV(os.Getenv("KAFKA_BROKERS"))
	c.KafkaTopic = getenv("KAFKA_TOPIC", "drinkstand.orders")

	c.SessionTTL = getenvDuration("SESSION_TTL", 12*time.Hour)
	c.ShutdownTimeout = getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)

	return c, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
