package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	Env            string
	APIGatewayURL  string
	RequestTimeout time.Duration
	DataDir        string
	RedisURL       string
	CartTTL        time.Duration
	AdminEmails    []string
}

// Load reads configuration from the environment, with .env support for local
// development.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "10s"))
	if err != nil {
		timeout = 10 * time.Second
	}

	return Config{
		Port:           getEnv("PORT", "8090"),
		Env:            getEnv("APP_ENV", "development"),
		APIGatewayURL:  getEnv("API_GATEWAY_URL", "http://localhost:8080/api"),
		RequestTimeout: timeout,
		DataDir:        getEnv("DATA_DIR", defaultDataDir()),
		RedisURL:       os.Getenv("REDIS_URL"),
		CartTTL:        time.Hour * 24 * 7,
		AdminEmails:    splitList(getEnv("ADMIN_EMAILS", "admin@ecommerce.com")),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront-dashboard"
	}
	return home + "/.storefront-dashboard"
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
