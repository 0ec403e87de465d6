package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"APP_HTTP_ADDR", "STORAGE_BACKEND", "MENU_PATH", "ORDERS_PATH", "DATABASE_URL",
		"ACCESS_PIN", "SHARE_BASE_URL", "HISTORY_LIMIT", "KAFKA_BROKERS", "SESSION_TTL",
	} {
		t.Setenv(k, "")
	}

	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if c.StorageBackend != BackendCSV || c.MenuPath != "default_drinks.csv" || c.OrdersPath != "orders.csv" {
		t.Errorf("storage defaults = %+v", c)
	}
	if c.AccessPIN != "1234" || c.HistoryLimit != 50 || c.SessionTTL != 12*time.Hour {
		t.Errorf("defaults = %+v", c)
	}
	if len(c.KafkaBrokers) != 0 {
		t.Errorf("KafkaBrokers = %v, want none", c.KafkaBrokers)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "SQLite")
	t.Setenv("KAFKA_BROKERS", " k1:9092, ,k2:9092 ")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("HISTORY_LIMIT", "not-a-number")

	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if c.StorageBackend != BackendSQLite {
		t.Errorf("StorageBackend = %q", c.StorageBackend)
	}
	if !reflect.DeepEqual(c.KafkaBrokers, []string{"k1:9092", "k2:9092"}) {
		t.Errorf("KafkaBrokers = %v", c.KafkaBrokers)
	}
	if c.SessionTTL != 30*time.Minute || c.HistoryLimit != 50 {
		t.Errorf("SessionTTL = %v HistoryLimit = %d", c.SessionTTL, c.HistoryLimit)
	}
}

func TestLoadRejects(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Error("postgres without DATABASE_URL accepted")
	}

	t.Setenv("STORAGE_BACKEND", "excel")
	if _, err := Load(); err == nil {
		t.Error("unknown backend accepted")
	}
}
