package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppMode string
	LogMode string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	JWTSecret string
	// JWTExpiryMin of 0 issues tokens without an exp claim.
	JWTExpiryMin int
	BcryptCost   int

	// An empty RedisHost disables Redis; in-process fallbacks are used instead.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	RateLimitAuth      int
	RateLimitMessages  int
	RateLimitWindowSec int

	LoginUpdateTimeoutSec int
	ShutdownTimeoutSec    int
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:               getEnv("APP_PORT", "8080"),
		AppMode:               getEnv("APP_MODE", "debug"),
		LogMode:               getEnv("LOG_MODE", "development"),
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBUser:                getEnv("DB_USER", "postgres"),
		DBPassword:            getEnv("DB_PASSWORD", "postgres"),
		DBName:                getEnv("DB_NAME", "messagely"),
		DBPort:                getEnv("DB_PORT", "5432"),
		DBSSLMode:             getEnv("DB_SSLMODE", "disable"),
		JWTSecret:             getEnv("JWT_SECRET", "change-me"),
		JWTExpiryMin:          getEnvAsInt("JWT_EXPIRY_MIN", 0),
		BcryptCost:            getEnvAsInt("BCRYPT_COST", 12),
		RedisHost:             getEnv("REDIS_HOST", ""),
		RedisPort:             getEnv("REDIS_PORT", "6379"),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		RateLimitAuth:         getEnvAsInt("RATE_LIMIT_AUTH", 5),
		RateLimitMessages:     getEnvAsInt("RATE_LIMIT_MESSAGES", 60),
		RateLimitWindowSec:    getEnvAsInt("RATE_LIMIT_WINDOW_SEC", 60),
		LoginUpdateTimeoutSec: getEnvAsInt("LOGIN_UPDATE_TIMEOUT_SEC", 5),
		ShutdownTimeoutSec:    getEnvAsInt("SHUTDOWN_TIMEOUT_SEC", 5),
	}
}

// TokenTTL is zero when tokens should never expire.
func (c *Config) TokenTTL() time.Duration {
	if c.JWTExpiryMin <= 0 {
		return 0
	}
	return time.Duration(c.JWTExpiryMin) * time.Minute
}

func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSec) * time.Second
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
