package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Shift    ShiftConfig
	Leave    LeaveConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port          int
	Env           string
	LogLevel      string
	StorageDriver string // "postgres" or "memory"
	Timezone      string // organization timezone, e.g. "Asia/Jakarta"
	FrontendURL   string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// ShiftConfig holds the organization-wide default working-day parameters.
// Per-employee overrides come from the staff repository; these values fill
// the gaps for employees without an explicit shift assignment.
type ShiftConfig struct {
	ShiftStart            string // "HH:MM" local time
	GraceMinutes          int
	StandardShiftHours    float64
	HalfDayThresholdHours float64
	BreakMinutes          int
	CutoffHour            int // local hour after which a day with no check-in reads as absent
}

// LeaveConfig describes the leave types the ledger tracks.
// Format: "annual:25,sick:10,casual:7,maternity:90,paternity:15,emergency:-"
// where "-" marks an untracked (unbounded) type.
type LeaveConfig struct {
	Types string
}

func Load() (*Config, error) {
	// Missing .env is fine; environment variables may be set directly.
	_ = godotenv.Load()

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:          appPort,
		Env:           getEnv("APP_ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		StorageDriver: getEnv("STORAGE_DRIVER", "postgres"),
		Timezone:      getEnv("ORG_TIMEZONE", "UTC"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	dbMinConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hr_portal"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(dbMaxConns),
		MinConns: int32(dbMinConns),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	graceMinutes, err := strconv.Atoi(getEnv("GRACE_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid GRACE_MINUTES: %w", err)
	}
	standardHours, err := strconv.ParseFloat(getEnv("STANDARD_SHIFT_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid STANDARD_SHIFT_HOURS: %w", err)
	}
	halfDayHours, err := strconv.ParseFloat(getEnv("HALF_DAY_THRESHOLD_HOURS", "4"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid HALF_DAY_THRESHOLD_HOURS: %w", err)
	}
	breakMinutes, err := strconv.Atoi(getEnv("BREAK_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid BREAK_MINUTES: %w", err)
	}
	cutoffHour, err := strconv.Atoi(getEnv("TIMEKEEPING_CUTOFF_HOUR", "23"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEKEEPING_CUTOFF_HOUR: %w", err)
	}

	config.Shift = ShiftConfig{
		ShiftStart:            getEnv("SHIFT_START", "09:00"),
		GraceMinutes:          graceMinutes,
		StandardShiftHours:    standardHours,
		HalfDayThresholdHours: halfDayHours,
		BreakMinutes:          breakMinutes,
		CutoffHour:            cutoffHour,
	}

	config.Leave = LeaveConfig{
		Types: getEnv("LEAVE_TYPES", "annual:25,sick:10,casual:7,maternity:90,paternity:15,emergency:-"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.App.StorageDriver != "postgres" && c.App.StorageDriver != "memory" {
		return fmt.Errorf("unsupported STORAGE_DRIVER: %s", c.App.StorageDriver)
	}
	if c.App.StorageDriver == "postgres" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1")
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid ORG_TIMEZONE: %w", err)
	}
	if _, err := time.Parse("15:04", c.Shift.ShiftStart); err != nil {
		return fmt.Errorf("invalid SHIFT_START: %w", err)
	}
	if c.Shift.HalfDayThresholdHours > c.Shift.StandardShiftHours {
		return fmt.Errorf("HALF_DAY_THRESHOLD_HOURS must not exceed STANDARD_SHIFT_HOURS")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location resolves the organization timezone. Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
