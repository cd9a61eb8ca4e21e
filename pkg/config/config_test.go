package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnvVars blanks every variable Load reads for the duration of the test.
func clearEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		"APP_ENV", "LOG_LEVEL", "EXECASSIST_USER_ID",
		"DATABASE_URL", "SQLITE_PATH",
		"REDIS_URL", "SCHEDULING_CACHE_TTL",
		"RABBITMQ_URL", "EVENTS_ENABLED",
		"MCP_ADDR", "MCP_AUTH_TOKEN",
		"CALENDAR_PROVIDER", "CALDAV_URL", "CALDAV_USERNAME", "CALDAV_PASSWORD", "CALDAV_CALENDAR_PATH",
		"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_TOKEN_FILE", "CALENDAR_ID",
		"SCHEDULING_TIMEZONE", "SCHEDULING_WORK_START", "SCHEDULING_WORK_END",
		"SCHEDULING_SEARCH_DAYS", "ENGINE_PARALLELISM",
		"BREAKER_FAILURE_THRESHOLD", "BREAKER_TIMEOUT",
	}
	for _, v := range envVars {
		t.Setenv(v, "")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnvVars(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Application defaults
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", cfg.UserID)

	// Local mode is the default when no DATABASE_URL is set
	assert.True(t, cfg.LocalMode())
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 5*time.Minute, cfg.SchedulingCacheTTL)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.True(t, cfg.EventsEnabled)

	// Calendar defaults
	assert.Equal(t, "none", cfg.CalendarProvider)
	assert.Equal(t, "primary", cfg.CalendarID)

	// Scheduling defaults
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, "09:00", cfg.SchedulingWorkStart)
	assert.Equal(t, "17:00", cfg.SchedulingWorkEnd)
	assert.Equal(t, 14*24*time.Hour, cfg.SearchWindow())
	assert.Equal(t, 1, cfg.EngineParallelism)

	// Breaker defaults
	assert.Equal(t, 5, cfg.BreakerFailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.BreakerTimeout)

	// MCP defaults
	assert.Equal(t, "127.0.0.1:8082", cfg.MCPAddr)
	assert.Empty(t, cfg.MCPAuthToken)
}

func TestLoad_WithCustomEnvVars(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("EXECASSIST_USER_ID", "test-user-id")
	t.Setenv("DATABASE_URL", "postgres://execassist:secret@db:5432/execassist")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("SCHEDULING_CACHE_TTL", "90s")
	t.Setenv("EVENTS_ENABLED", "false")
	t.Setenv("CALENDAR_PROVIDER", "caldav")
	t.Setenv("CALDAV_URL", "https://dav.example.com")
	t.Setenv("SCHEDULING_TIMEZONE", "Europe/Berlin")
	t.Setenv("SCHEDULING_SEARCH_DAYS", "7")
	t.Setenv("ENGINE_PARALLELISM", "4")
	t.Setenv("BREAKER_TIMEOUT", "1m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "test-user-id", cfg.UserID)
	assert.False(t, cfg.LocalMode())
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
	assert.Equal(t, 90*time.Second, cfg.SchedulingCacheTTL)
	assert.False(t, cfg.EventsEnabled)
	assert.Equal(t, "caldav", cfg.CalendarProvider)
	assert.Equal(t, "https://dav.example.com", cfg.CalDAVURL)
	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
	assert.Equal(t, 7*24*time.Hour, cfg.SearchWindow())
	assert.Equal(t, 4, cfg.EngineParallelism)
	assert.Equal(t, time.Minute, cfg.BreakerTimeout)
}

func TestConfig_Location_FallsBackToUTC(t *testing.T) {
	cfg := &Config{SchedulingTimezone: "Mars/Olympus_Mons"}
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.SchedulingTimezone = ""
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestConfig_SearchWindow_NonPositiveMeansEngineDefault(t *testing.T) {
	cfg := &Config{SchedulingSearchDays: 0}
	assert.Zero(t, cfg.SearchWindow())
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		appEnv   string
		expected bool
	}{
		{"development", true},
		{"production", false},
		{"staging", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.appEnv, func(t *testing.T) {
			cfg := &Config{AppEnv: tt.appEnv}
			assert.Equal(t, tt.expected, cfg.IsDevelopment())
		})
	}
}

func TestGetEnv(t *testing.T) {
	assert.Equal(t, "default", getEnv("EXECASSIST_TEST_MISSING", "default"))

	t.Setenv("EXECASSIST_TEST_VAR", "custom")
	assert.Equal(t, "custom", getEnv("EXECASSIST_TEST_VAR", "default"))

	// Empty values fall back to the default
	t.Setenv("EXECASSIST_TEST_EMPTY", "")
	assert.Equal(t, "default", getEnv("EXECASSIST_TEST_EMPTY", "default"))
}

func TestGetIntEnv(t *testing.T) {
	assert.Equal(t, 42, getIntEnv("EXECASSIST_TEST_MISSING", 42))

	t.Setenv("EXECASSIST_TEST_INT", "100")
	assert.Equal(t, 100, getIntEnv("EXECASSIST_TEST_INT", 42))

	t.Setenv("EXECASSIST_TEST_INVALID_INT", "not-a-number")
	assert.Equal(t, 42, getIntEnv("EXECASSIST_TEST_INVALID_INT", 42))
}

func TestGetDurationEnv(t *testing.T) {
	assert.Equal(t, 5*time.Second, getDurationEnv("EXECASSIST_TEST_MISSING", 5*time.Second))

	t.Setenv("EXECASSIST_TEST_DUR", "10m")
	assert.Equal(t, 10*time.Minute, getDurationEnv("EXECASSIST_TEST_DUR", 5*time.Second))

	t.Setenv("EXECASSIST_TEST_INVALID_DUR", "not-a-duration")
	assert.Equal(t, 5*time.Second, getDurationEnv("EXECASSIST_TEST_INVALID_DUR", 5*time.Second))
}

func TestGetBoolEnv(t *testing.T) {
	assert.True(t, getBoolEnv("EXECASSIST_TEST_MISSING", true))

	for _, tv := range []string{"true", "1", "True", "TRUE"} {
		t.Setenv("EXECASSIST_TEST_BOOL", tv)
		assert.True(t, getBoolEnv("EXECASSIST_TEST_BOOL", false), "expected true for %s", tv)
	}

	for _, fv := range []string{"false", "0", "False", "FALSE"} {
		t.Setenv("EXECASSIST_TEST_BOOL", fv)
		assert.False(t, getBoolEnv("EXECASSIST_TEST_BOOL", true), "expected false for %s", fv)
	}

	t.Setenv("EXECASSIST_TEST_INVALID_BOOL", "not-a-bool")
	assert.True(t, getBoolEnv("EXECASSIST_TEST_INVALID_BOOL", true))
}
