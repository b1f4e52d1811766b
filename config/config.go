// config/config.go - Environment configuration
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverBolt     = "bolt"

	// DefaultStartTime is used when no competition start time has been stored
	DefaultStartTime = "08:00"
)

type Config struct {
	Port       string
	AppEnv     string
	CORSOrigin string

	StoreDriver string
	DatabaseURL string
	BoltPath    string

	JWTSecret string

	LogLevel string
	LogJSON  bool

	Location      *time.Location
	HeatGroupSize int

	RateLimitEnabled    bool
	RateLimitMax        int
	RateLimitWindow     time.Duration
	AuthRateLimitMax    int
	AuthRateLimitWindow time.Duration

	SpreadsheetID            string
	GoogleServiceAccountJSON string
}

// Defaults returns the configuration used when no environment is set
func Defaults() Config {
	return Config{
		Port:                "3000",
		AppEnv:              "development",
		CORSOrigin:          "http://localhost:3000",
		StoreDriver:         StoreDriverPostgres,
		BoltPath:            "./data/wodboard.db",
		LogLevel:            "info",
		Location:            time.Local,
		HeatGroupSize:       3,
		RateLimitEnabled:    true,
		RateLimitMax:        100,
		RateLimitWindow:     15 * time.Minute,
		AuthRateLimitMax:    5,
		AuthRateLimitWindow: 5 * time.Minute,
	}
}

// FromEnv reads the configuration from environment variables. Call
// godotenv.Load first if a .env file should be honoured.
func FromEnv() (Config, error) {
	c := Defaults()

	c.Port = getEnv("PORT", c.Port)
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)
	c.CORSOrigin = getEnv("CORS_ORIGINS", c.CORSOrigin)

	c.StoreDriver = strings.ToLower(getEnv("STORE_DRIVER", c.StoreDriver))
	if c.StoreDriver != StoreDriverPostgres && c.StoreDriver != StoreDriverBolt {
		return c, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverPostgres, StoreDriverBolt, c.StoreDriver)
	}
	c.DatabaseURL = postgresDSN()
	c.BoltPath = getEnv("BOLT_PATH", c.BoltPath)

	c.JWTSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))

	c.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", c.LogLevel))
	c.LogJSON = getBool("LOG_JSON", c.AppEnv == "production")

	if tz := strings.TrimSpace(os.Getenv("COMPETITION_TZ")); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return c, fmt.Errorf("COMPETITION_TZ: %w", err)
		}
		c.Location = loc
	}

	c.HeatGroupSize = getInt("HEAT_GROUP_SIZE", c.HeatGroupSize)
	if c.HeatGroupSize < 1 {
		return c, fmt.Errorf("HEAT_GROUP_SIZE must be positive, got %d", c.HeatGroupSize)
	}

	c.RateLimitEnabled = getBool("RATE_LIMIT_ENABLED", c.RateLimitEnabled)
	c.RateLimitMax = getInt("RATE_LIMIT_MAX_REQUESTS", c.RateLimitMax)
	c.RateLimitWindow = getMillis("RATE_LIMIT_WINDOW_MS", c.RateLimitWindow)
	c.AuthRateLimitMax = getInt("AUTH_RATE_LIMIT_MAX", c.AuthRateLimitMax)
	c.AuthRateLimitWindow = getMillis("AUTH_RATE_LIMIT_WINDOW_MS", c.AuthRateLimitWindow)

	c.SpreadsheetID = strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"))
	c.GoogleServiceAccountJSON = strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))

	return c, nil
}

// ValidateServer checks the settings the HTTP server cannot run without
func (c Config) ValidateServer() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// postgresDSN builds the connection string from DATABASE_URL or the DB_* variables
func postgresDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_NAME", "wodboard"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	val := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch val {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return def
	}
}

func getMillis(key string, def time.Duration) time.Duration {
	ms := getInt(key, 0)
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}
