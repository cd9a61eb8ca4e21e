package config

import (
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string
	UserID   string

	// Database
	DatabaseURL string
	SQLitePath  string

	// Redis
	RedisURL           string
	SchedulingCacheTTL time.Duration

	// RabbitMQ
	RabbitMQURL   string
	EventsEnabled bool

	// MCP
	MCPAddr      string
	MCPAuthToken string

	// Calendar
	CalendarProvider   string
	CalDAVURL          string
	CalDAVUsername     string
	CalDAVPassword     string
	CalDAVCalendarPath string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleTokenFile    string
	CalendarID         string

	// Scheduling
	SchedulingTimezone   string
	SchedulingWorkStart  string
	SchedulingWorkEnd    string
	SchedulingSearchDays int
	EngineParallelism    int

	// Circuit breaker
	BreakerFailureThreshold int
	BreakerTimeout          time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		UserID:   getEnv("EXECASSIST_USER_ID", "00000000-0000-0000-0000-000000000001"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", ""),

		RedisURL:           getEnv("REDIS_URL", ""),
		SchedulingCacheTTL: getDurationEnv("SCHEDULING_CACHE_TTL", 5*time.Minute),

		RabbitMQURL:   getEnv("RABBITMQ_URL", ""),
		EventsEnabled: getBoolEnv("EVENTS_ENABLED", true),

		MCPAddr:      getEnv("MCP_ADDR", "127.0.0.1:8082"),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", ""),

		CalendarProvider:   getEnv("CALENDAR_PROVIDER", "none"),
		CalDAVURL:          getEnv("CALDAV_URL", ""),
		CalDAVUsername:     getEnv("CALDAV_USERNAME", ""),
		CalDAVPassword:     getEnv("CALDAV_PASSWORD", ""),
		CalDAVCalendarPath: getEnv("CALDAV_CALENDAR_PATH", ""),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleTokenFile:    getEnv("GOOGLE_TOKEN_FILE", ""),
		CalendarID:         getEnv("CALENDAR_ID", "primary"),

		SchedulingTimezone:   getEnv("SCHEDULING_TIMEZONE", "UTC"),
		SchedulingWorkStart:  getEnv("SCHEDULING_WORK_START", "09:00"),
		SchedulingWorkEnd:    getEnv("SCHEDULING_WORK_END", "17:00"),
		SchedulingSearchDays: getIntEnv("SCHEDULING_SEARCH_DAYS", 14),
		EngineParallelism:    getIntEnv("ENGINE_PARALLELISM", 1),

		BreakerFailureThreshold: getIntEnv("BREAKER_FAILURE_THRESHOLD", 5),
		BreakerTimeout:          getDurationEnv("BREAKER_TIMEOUT", 30*time.Second),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// LocalMode reports whether the store is a local SQLite file.
func (c *Config) LocalMode() bool {
	return c.DatabaseURL == ""
}

// Location resolves SchedulingTimezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	if c.SchedulingTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.SchedulingTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SearchWindow is the default search horizon for meeting suggestions.
func (c *Config) SearchWindow() time.Duration {
	if c.SchedulingSearchDays <= 0 {
		return 0
	}
	return time.Duration(c.SchedulingSearchDays) * 24 * time.Hour
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
