package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/thanhpk/randstr"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type Config struct {
	ServerPort string
	LogLevel   string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	RabbitURL string

	RedisURL       string
	SearchCacheTTL time.Duration

	JWTSecret  string
	SessionTTL time.Duration
	AdminKey   string

	BrandName               string
	BaggageFreeKg           float64
	BaggageRatePerKg        float64
	MaxPassengersPerBooking int
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "airline_ops"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "airline_ops.db"),

		RabbitURL: getEnv("RABBITMQ_URL", ""),

		RedisURL:       getEnv("REDIS_URL", ""),
		SearchCacheTTL: getEnvAsDuration("SEARCH_CACHE_TTL", 30*time.Second),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		SessionTTL: getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		AdminKey:   getEnv("ADMIN_KEY", ""),

		BrandName:               getEnv("BRAND_NAME", "PyFly"),
		BaggageFreeKg:           getEnvAsFloat("BAGGAGE_FREE_KG", 20),
		BaggageRatePerKg:        getEnvAsFloat("BAGGAGE_RATE_PER_KG", 50),
		MaxPassengersPerBooking: getEnvAsInt("MAX_PASSENGERS_PER_BOOKING", 9),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = randstr.String(64)
	}
	if cfg.MaxPassengersPerBooking <= 0 {
		cfg.MaxPassengersPerBooking = 9
	}

	return cfg
}

func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	case DriverSQLite:
		return c.DBPath
	default:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
	}
}

// Dialector picks the gorm driver for DB_DRIVER.
func (c *Config) Dialector() (gorm.Dialector, error) {
	switch c.DBDriver {
	case DriverPostgres:
		return postgres.Open(c.DSN()), nil
	case DriverMySQL:
		return mysql.Open(c.DSN()), nil
	case DriverSQLite:
		return sqlite.Open(c.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want %s, %s or %s)",
			c.DBDriver, DriverPostgres, DriverMySQL, DriverSQLite)
	}
}

// TagPrefix is the baggage tag prefix derived from the brand, e.g. "PY" for PyFly.
func (c *Config) TagPrefix() string {
	brand := strings.ToUpper(strings.TrimSpace(c.BrandName))
	if len(brand) < 2 {
		return "BG"
	}
	return brand[:2]
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}
