package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	StoreDriver      string

	OpenAIKey     string
	OpenAIBaseURL string
	ChatModel     string

	ServerHost    string
	ServerPort    string
	JWTSigningKey string
	LogLevel      string

	ResendAPIKey  string
	ResendBaseURL string
	BookingFrom   string
	BookingTo     string

	AdminMaxIterations int
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, using process environment")
	}

	return &Config{
		PostgresHost:       getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:       getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:       getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword:   getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:         getEnv("POSTGRES_DB", "agencysite"),
		PostgresSSLMode:    getEnv("POSTGRES_SSLMODE", "disable"),
		StoreDriver:        getEnv("STORE_DRIVER", "postgres"),
		OpenAIKey:          getEnv("OPENAI_KEY", ""),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ChatModel:          getEnv("CHAT_MODEL", "gpt-4.1"),
		ServerHost:         getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		JWTSigningKey:      getEnv("JWT_SIGNING_KEY", "your-secret-signing-key"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		ResendAPIKey:       getEnv("RESEND_API_KEY", ""),
		ResendBaseURL:      getEnv("RESEND_BASE_URL", "https://api.resend.com"),
		BookingFrom:        getEnv("BOOKING_FROM", "Bookings <onboarding@resend.dev>"),
		BookingTo:          getEnv("BOOKING_TO", ""),
		AdminMaxIterations: getEnvInt("ADMIN_MAX_ITERATIONS", 5),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		logrus.Warnf("invalid integer for %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return i
}
