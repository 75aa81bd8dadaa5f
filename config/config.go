package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL     string
	WSURL          string
	AppMode        string
	RequestTimeout time.Duration
	AuthToken      string
	RedisAddr      string
	RedisPassword  string
	SessionTTLMin  int
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:8080/api"),
		WSURL:          getEnv("WS_URL", "ws://localhost:8080/ws/notifications"),
		AppMode:        getEnv("APP_MODE", "development"),
		RequestTimeout: time.Duration(getEnvAsInt("REQUEST_TIMEOUT_SEC", 15)) * time.Second,
		AuthToken:      getEnv("AUTH_TOKEN", ""),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		SessionTTLMin:  getEnvAsInt("TWOFA_SESSION_TTL_MIN", 30),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
