package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	App        AppConfig
	JWT        JWTConfig
	Attendance AttendanceConfig
	Leave      LeaveConfig
	Payroll    PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// JWTConfig holds the verification key for tokens issued by the identity
// collaborator. This service never issues tokens.
type JWTConfig struct {
	Secret string
}

// AttendanceConfig holds punctuality thresholds for check-in grading.
type AttendanceConfig struct {
	OnTimeThreshold       time.Duration
	SlightlyLateThreshold time.Duration
}

// LeaveConfig holds leave-balance policy knobs.
type LeaveConfig struct {
	DefaultAllocationDays float64
	LowBalanceThreshold   float64
}

// PayrollConfig holds payroll engine defaults and the batch job cadence.
type PayrollConfig struct {
	DefaultNightMultiplier    float64
	DefaultOvertimeMultiplier float64
	ProcessInterval           time.Duration
}

func Load() (*Config, error) {
	// Missing .env is fine in deployed environments; vars come from the host.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "shiftwise"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	onTime, err := getEnvDuration("PUNCTUALITY_ON_TIME_THRESHOLD", "5m")
	if err != nil {
		return nil, err
	}
	slightlyLate, err := getEnvDuration("PUNCTUALITY_SLIGHTLY_LATE_THRESHOLD", "15m")
	if err != nil {
		return nil, err
	}
	config.Attendance = AttendanceConfig{
		OnTimeThreshold:       onTime,
		SlightlyLateThreshold: slightlyLate,
	}

	defaultAllocation, err := getEnvFloat("LEAVE_DEFAULT_ALLOCATION_DAYS", "12")
	if err != nil {
		return nil, err
	}
	lowBalance, err := getEnvFloat("LEAVE_LOW_BALANCE_THRESHOLD", "3")
	if err != nil {
		return nil, err
	}
	config.Leave = LeaveConfig{
		DefaultAllocationDays: defaultAllocation,
		LowBalanceThreshold:   lowBalance,
	}

	nightMult, err := getEnvFloat("PAYROLL_DEFAULT_NIGHT_MULTIPLIER", "1.25")
	if err != nil {
		return nil, err
	}
	overtimeMult, err := getEnvFloat("PAYROLL_DEFAULT_OVERTIME_MULTIPLIER", "1.5")
	if err != nil {
		return nil, err
	}
	processInterval, err := getEnvDuration("PAYROLL_PROCESS_INTERVAL", "1h")
	if err != nil {
		return nil, err
	}
	config.Payroll = PayrollConfig{
		DefaultNightMultiplier:    nightMult,
		DefaultOvertimeMultiplier: overtimeMult,
		ProcessInterval:           processInterval,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Leave.DefaultAllocationDays < 0 {
		return fmt.Errorf("LEAVE_DEFAULT_ALLOCATION_DAYS must not be negative")
	}
	if c.Payroll.DefaultNightMultiplier < 1 || c.Payroll.DefaultOvertimeMultiplier < 1 {
		return fmt.Errorf("payroll multipliers must be at least 1")
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key, fallback string) (float64, error) {
	value, err := strconv.ParseFloat(getEnv(key, fallback), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
