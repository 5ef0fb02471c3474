package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	Lockout   LockoutConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret        string
	Issuer        string
	Audience      string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SecurityConfig holds security keys and the static API key fallback list.
// Static keys exist to support bootstrap clients provisioned outside the
// database; they are resolved only when the store has no match.
type SecurityConfig struct {
	SessionEncryptionKey string
	StaticAPIKeys        []StaticAPIKey
}

// StaticAPIKey is a deployment-configured API key record
type StaticAPIKey struct {
	KeyHash     string
	Name        string
	Permissions []string
	RateLimit   int
	Active      bool
}

// RateLimitConfig holds per-key rate limiting configuration
type RateLimitConfig struct {
	Enabled      bool
	DefaultLimit int
}

// LockoutConfig holds login brute-force protection windows. The defaults
// mirror the historical behavior: 5 failures in 15 minutes throttles the
// login endpoint, 10 failures in an hour locks the account outright.
type LockoutConfig struct {
	ThrottleWindow    time.Duration
	ThrottleThreshold int
	LockWindow        time.Duration
	LockThreshold     int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "autoserve"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			Issuer:        getEnv("JWT_ISSUER", "autoserve-api"),
			Audience:      getEnv("JWT_AUDIENCE", "autoserve-clients"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Security: SecurityConfig{
			SessionEncryptionKey: getEnv("SESSION_ENCRYPTION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"), // 32-bytes hex string
			StaticAPIKeys:        parseStaticAPIKeys(getEnv("STATIC_API_KEYS", "")),
		},
		RateLimit: RateLimitConfig{
			Enabled:      getEnvAsBool("RATE_LIMIT_ENABLED", true),
			DefaultLimit: getEnvAsInt("RATE_LIMIT_DEFAULT", 1000),
		},
		Lockout: LockoutConfig{
			ThrottleWindow:    getEnvAsDuration("LOGIN_THROTTLE_WINDOW", 15*time.Minute),
			ThrottleThreshold: getEnvAsInt("LOGIN_THROTTLE_THRESHOLD", 5),
			LockWindow:        getEnvAsDuration("LOGIN_LOCK_WINDOW", time.Hour),
			LockThreshold:     getEnvAsInt("LOGIN_LOCK_THRESHOLD", 10),
		},
	}
}

// parseStaticAPIKeys parses STATIC_API_KEYS entries of the form
// "keyHash:name:perm1|perm2:rateLimit" separated by commas.
func parseStaticAPIKeys(raw string) []StaticAPIKey {
	if raw == "" {
		return nil
	}

	var keys []StaticAPIKey
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) < 2 {
			continue
		}

		key := StaticAPIKey{
			KeyHash: parts[0],
			Name:    parts[1],
			Active:  true,
		}
		if len(parts) > 2 && parts[2] != "" {
			key.Permissions = strings.Split(parts[2], "|")
		}
		if len(parts) > 3 {
			if limit, err := strconv.Atoi(parts[3]); err == nil {
				key.RateLimit = limit
			}
		}
		keys = append(keys, key)
	}
	return keys
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
