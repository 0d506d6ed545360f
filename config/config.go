package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every runtime setting the bot needs. It is loaded once at
// startup and passed down explicitly; nothing else reads the environment.
type Config struct {
	Port string

	TelegramToken string
	OperatorID    int64

	// UserID is the fixed document-store namespace for the single operator.
	UserID string

	MongoURI      string
	MongoDatabase string

	GeminiAPIKey string
	GeminiModel  string

	Timezone      string
	SweepInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		OperatorID:    getEnvInt64("OPERATOR_ID", 0),
		UserID:        getEnv("FINANCE_USER_ID", "mahdi"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getEnv("MONGO_DATABASE", "finance"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		Timezone:      getEnv("BOT_TIMEZONE", "Asia/Tehran"),
		SweepInterval: getEnvDuration("SWEEP_INTERVAL", time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
