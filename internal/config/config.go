package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// PostureProduction is the runtime posture in which debug dumps are disabled
// and the access gate enforces bearer credentials.
const PostureProduction = "production"

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	State    StateConfig
	Auth     AuthConfig
	CORS     CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    string
	Host    string
	Addr    string // Combined host:port for convenience
	Posture string // APP_ENV; "production" disables debug dumps
}

// IsProduction reports whether the server runs in the production posture.
func (s ServerConfig) IsProduction() bool {
	return s.Posture == PostureProduction
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path    string
	Enabled bool // PERSISTENCE_ENABLED; false runs purely in memory
}

// StateConfig holds settings for the mode state store and its durable backing
type StateConfig struct {
	StoreTimeout   time.Duration
	EncryptionKey  string // base64 fernet key; empty stores plain JSON
	ResyncSchedule string // cron expression; empty disables the resync job
}

// AuthConfig holds the bearer credentials accepted by the access gate
type AuthConfig struct {
	SecretKey string
	PublicKey string
	ForceAuth bool // TEST_AUTH; enforce outside production
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("STORE_TIMEOUT", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid STORE_TIMEOUT: must be positive, got %s", timeout)
	}

	enabled, err := strconv.ParseBool(getEnv("PERSISTENCE_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid PERSISTENCE_ENABLED: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("SERVER_PORT", "5001"),
			Host:    getEnv("SERVER_HOST", "localhost"),
			Posture: getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Path:    getEnv("DB_PATH", "./data/sun_circumference.db"),
			Enabled: enabled,
		},
		State: StateConfig{
			StoreTimeout:   timeout,
			EncryptionKey:  os.Getenv("STATE_ENCRYPTION_KEY"),
			ResyncSchedule: getEnvAllowEmpty("STATE_RESYNC_SCHEDULE", "@every 30s"),
		},
		Auth: AuthConfig{
			SecretKey: os.Getenv("API_SECRET_KEY"),
			PublicKey: os.Getenv("PUBLIC_API_KEY"),
			ForceAuth: os.Getenv("TEST_AUTH") == "true",
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAllowEmpty is getEnv, except an explicitly set empty value is kept.
func getEnvAllowEmpty(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
