package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("BAGGAGE_FREE_KG", "")
	t.Setenv("MAX_PASSENGERS_PER_BOOKING", "")
	t.Setenv("ADMIN_KEY", "")

	cfg := Load()

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Len(t, cfg.JWTSecret, 64)
	assert.Equal(t, 20.0, cfg.BaggageFreeKg)
	assert.Equal(t, 50.0, cfg.BaggageRatePerKg)
	assert.Equal(t, 9, cfg.MaxPassengersPerBooking)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.AdminKey)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/tmp/ops.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SEARCH_CACHE_TTL", "2m")
	t.Setenv("MAX_PASSENGERS_PER_BOOKING", "-3")

	cfg := Load()

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/ops.db", cfg.DSN())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Minute, cfg.SearchCacheTTL)
	assert.Equal(t, 9, cfg.MaxPassengersPerBooking)
}

func TestDSN_PerDriver(t *testing.T) {
	cfg := &Config{DBDriver: DriverPostgres, DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "ops", DBSSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=ops sslmode=disable TimeZone=UTC", cfg.DSN())

	cfg.DBDriver = DriverMySQL
	cfg.DBPort = "3306"
	assert.Equal(t, "u:p@tcp(db:3306)/ops?charset=utf8mb4&parseTime=True&loc=UTC", cfg.DSN())
}

func TestDialector_Unsupported(t *testing.T) {
	cfg := &Config{DBDriver: "oracle"}
	_, err := cfg.Dialector()
	require.Error(t, err)

	cfg.DBDriver = DriverSQLite
	d, err := cfg.Dialector()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())
}

func TestTagPrefix(t *testing.T) {
	assert.Equal(t, "PY", (&Config{BrandName: "PyFly"}).TagPrefix())
	assert.Equal(t, "BG", (&Config{BrandName: "x"}).TagPrefix())
}
