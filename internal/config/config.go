package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	CometChat CometChatConfig
	Session   SessionConfig
	Reconcile ReconcileConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Environment string // "development", "production", "test"
	Debug       bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CometChatConfig struct {
	AppID  string
	Region string
	APIKey string
}

type SessionConfig struct {
	TTL time.Duration
}

type ReconcileConfig struct {
	Interval time.Duration
	Repair   bool
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load reads configuration from the environment. A .env file, when present,
// seeds variables without overriding ones already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvInt("SERVER_PORT", 8080),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvBool("SERVER_DEBUG", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		CometChat: CometChatConfig{
			AppID:  getEnv("COMETCHAT_APP_ID", ""),
			Region: getEnv("COMETCHAT_REGION", "us"),
			APIKey: getEnv("COMETCHAT_API_KEY", ""),
		},
		Session: SessionConfig{
			TTL: getEnvDuration("SESSION_TTL", 24*time.Hour),
		},
		Reconcile: ReconcileConfig{
			Interval: getEnvDuration("RECONCILE_INTERVAL", 5*time.Minute),
			Repair:   getEnvBool("RECONCILE_REPAIR", false),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
