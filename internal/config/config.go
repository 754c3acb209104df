package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Config carries every external dependency of the server. The four DSNs
// point at independent databases: user accounts (with cart and wishlist),
// order lines, admin accounts and the design catalog.
type Config struct {
	HTTP_ADDR     string
	LOG_LEVEL     string
	USERS_DSN     string
	ORDERS_DSN    string
	ADMIN_DSN     string
	DESIGNS_DSN   string
	JWT_SECRET    string
	KAFKA_ADDRESS string
	ES_URL        string
	ES_USER       string
	ES_PASSWORD   string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		HTTP_ADDR:     getDefault("HTTP_ADDR", ":8080"),
		LOG_LEVEL:     getDefault("LOG_LEVEL", "info"),
		USERS_DSN:     os.Getenv("USERS_DSN"),
		ORDERS_DSN:    os.Getenv("ORDERS_DSN"),
		ADMIN_DSN:     os.Getenv("ADMIN_DSN"),
		DESIGNS_DSN:   os.Getenv("DESIGNS_DSN"),
		JWT_SECRET:    os.Getenv("JWT_SECRET"),
		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		ES_URL:        os.Getenv("ES_URL"),
		ES_USER:       os.Getenv("ES_USER"),
		ES_PASSWORD:   os.Getenv("ES_PASSWORD"),
	}

	return config, nil
}

func getDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
