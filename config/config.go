package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	ServerPort    string
	TokenSecret   string
	TokenIssuer   string
	SessionTTL    time.Duration
	DbHost        string
	DbPort        string
	DbUser        string
	DbPassword    string
	DbName        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DraftTTL      time.Duration
	AutoSaveDelay time.Duration
	DismissDelay  time.Duration
	PurgeInterval time.Duration
	IdleTimeout   time.Duration
	LogFile       string
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ServerPort = getEnv("SERVER_PORT", "8080")
	TokenSecret = getEnv("TOKEN_SECRET", "defaultsecret")
	TokenIssuer = getEnv("TOKEN_ISSUER", "portal")
	SessionTTL = getDuration("SESSION_TTL", 24*time.Hour)

	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "portal")

	RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	RedisPassword = getEnv("REDIS_PASSWORD", "")
	RedisDB = getInt("REDIS_DB", 0)

	DraftTTL = getDuration("DRAFT_TTL", 168*time.Hour)
	AutoSaveDelay = getDuration("AUTOSAVE_DELAY", time.Second)
	DismissDelay = getDuration("DISMISS_DELAY", 3500*time.Millisecond)
	PurgeInterval = getDuration("PURGE_INTERVAL", time.Hour)
	IdleTimeout = getDuration("IDLE_TIMEOUT", 30*time.Minute)

	LogFile = getEnv("LOG_FILE", "")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
