package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DBLogLevel  string

	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration

	JWTSecret    string
	JWTExpiresIn time.Duration

	BcryptCost         int
	AuditQueueSize     int
	AuditRetentionDays int
}

// Load reads configuration from the environment. A .env file is honored when
// present but never required.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:    getEnv("PORT", "3000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", ""),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", ""),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", ""),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		DBLogLevel:  getEnv("DB_LOG_LEVEL", ""),

		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 20),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", time.Hour),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTExpiresIn: getEnvDuration("JWT_EXPIRES_IN", time.Hour),

		BcryptCost:         getEnvInt("BCRYPT_COST", 12),
		AuditQueueSize:     getEnvInt("AUDIT_QUEUE_SIZE", 256),
		AuditRetentionDays: getEnvInt("AUDIT_RETENTION_DAYS", 90),
	}
}

// Validate refuses to let the process start without a signing secret or a
// usable database configuration.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < 10 {
		return errors.New("JWT_SECRET must be set and at least 10 characters long")
	}
	if c.DatabaseURL == "" && (c.DBHost == "" || c.DBUser == "" || c.DBPassword == "" || c.DBName == "") {
		return errors.New("database configuration missing: provide DATABASE_URL or DB_HOST, DB_USER, DB_PASSWORD and DB_NAME")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
