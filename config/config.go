package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort                = "8080"
	DefaultAccessTokenTTL      = 15 * time.Minute
	DefaultRefreshTokenTTLDays = 7
	DefaultBcryptCost          = 10
)

type Config struct {
	Env                 string
	Port                string
	DBURL               string
	AccessTokenSecret   string
	AccessTokenTTL      time.Duration
	RefreshTokenTTLDays int
	BcryptCost          int
}

func Load() *Config {
	// A .env file fills in whatever the environment does not already set;
	// godotenv never overrides existing variables, so env wins over file.
	_ = godotenv.Load()

	return &Config{
		Env:                 getEnv("ENV", "development"),
		Port:                getEnv("PORT", DefaultPort),
		DBURL:               getEnv("DB_URL", ""),
		AccessTokenSecret:   mustGetEnv("ACCESS_TOKEN_SECRET"),
		AccessTokenTTL:      getEnvAsDuration("ACCESS_TOKEN_TTL", DefaultAccessTokenTTL),
		RefreshTokenTTLDays: getEnvAsInt("REFRESH_TOKEN_TTL_DAYS", DefaultRefreshTokenTTLDays),
		BcryptCost:          getEnvAsInt("BCRYPT_COST", DefaultBcryptCost),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	log.Fatalf("Missing required config: %s", key)

	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}

	return val
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %s", key, defaultVal)
		return defaultVal
	}

	return val
}
