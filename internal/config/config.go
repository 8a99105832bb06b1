package config

import (
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	Port     string
	LogLevel string

	// Backing files, one JSON array per entity type. Each path comes from
	// an entity-specific env var when set and non-empty, else a default
	// under DATA_DIR.
	ProductDataPath string
	CartDataPath    string
	OrderDataPath   string
	UserDataPath    string

	// AMQPURL enables OrderPlaced event publishing when non-empty.
	AMQPURL string
}

func Load() Config {
	dataDir := getenv("DATA_DIR", "data")

	return Config{
		Port:     getenv("PORT", "8080"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		ProductDataPath: getenv("PRODUCT_DATA_PATH", filepath.Join(dataDir, "products.json")),
		CartDataPath:    getenv("CART_DATA_PATH", filepath.Join(dataDir, "carts.json")),
		OrderDataPath:   getenv("ORDER_DATA_PATH", filepath.Join(dataDir, "orders.json")),
		UserDataPath:    getenv("USER_DATA_PATH", filepath.Join(dataDir, "users.json")),

		AMQPURL: os.Getenv("AMQP_URL"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}
