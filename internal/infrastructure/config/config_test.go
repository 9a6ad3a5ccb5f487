package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_LocalPrefixWins(t *testing.T) {
	t.Setenv("ENV_TYPE", "LOCAL")
	t.Setenv("LOCAL_DB_HOST", "db.local")
	t.Setenv("DB_HOST", "db.shared")
	t.Setenv("LOCAL_DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")

	cfg := LoadConfig()

	assert.Equal(t, "LOCAL", cfg.EnvType)
	assert.Equal(t, "db.local", cfg.DBHost)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
	assert.Equal(t, "auto", cfg.DBMigrationMode)
}

func TestLoadConfig_ServerFallsBackToUnprefixed(t *testing.T) {
	t.Setenv("ENV_TYPE", "SERVER")
	t.Setenv("DB_HOST", "db.shared")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("REDIS_ENABLED", "false")

	cfg := LoadConfig()

	assert.Equal(t, "SERVER", cfg.EnvType)
	assert.Equal(t, "db.shared", cfg.DBHost)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.False(t, cfg.RedisEnabled)
}

func TestLoadConfig_MissingSecretPanics(t *testing.T) {
	t.Setenv("ENV_TYPE", "LOCAL")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "")

	assert.Panics(t, func() { LoadConfig() })
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBUser:     "postgres",
		DBPassword: "pw",
		DBName:     "flatmoney",
		DBPort:     "5432",
		DBSSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost user=postgres password=pw dbname=flatmoney port=5432 sslmode=disable TimeZone=UTC",
		cfg.GetDSN())
	assert.Equal(t, "localhost:6379", (&Config{RedisHost: "localhost", RedisPort: "6379"}).GetRedisAddr())
}
