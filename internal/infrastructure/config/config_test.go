package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"RETAILOPS_APP_NAME":                          os.Getenv("RETAILOPS_APP_NAME"),
		"RETAILOPS_APP_ENV":                           os.Getenv("RETAILOPS_APP_ENV"),
		"RETAILOPS_APP_PORT":                          os.Getenv("RETAILOPS_APP_PORT"),
		"RETAILOPS_DATABASE_HOST":                     os.Getenv("RETAILOPS_DATABASE_HOST"),
		"RETAILOPS_DATABASE_PORT":                     os.Getenv("RETAILOPS_DATABASE_PORT"),
		"RETAILOPS_DATABASE_USER":                     os.Getenv("RETAILOPS_DATABASE_USER"),
		"RETAILOPS_DATABASE_PASSWORD":                 os.Getenv("RETAILOPS_DATABASE_PASSWORD"),
		"RETAILOPS_DATABASE_DBNAME":                   os.Getenv("RETAILOPS_DATABASE_DBNAME"),
		"RETAILOPS_DATABASE_SSLMODE":                  os.Getenv("RETAILOPS_DATABASE_SSLMODE"),
		"RETAILOPS_DATABASE_MAX_IDLE_CONNS":           os.Getenv("RETAILOPS_DATABASE_MAX_IDLE_CONNS"),
		"RETAILOPS_DATABASE_MAX_OPEN_CONNS":           os.Getenv("RETAILOPS_DATABASE_MAX_OPEN_CONNS"),
		"RETAILOPS_SETTLEMENT_BILL_VALUE_CEILING":     os.Getenv("RETAILOPS_SETTLEMENT_BILL_VALUE_CEILING"),
		"RETAILOPS_SETTLEMENT_BILL_VOLUME_CEILING_ML": os.Getenv("RETAILOPS_SETTLEMENT_BILL_VOLUME_CEILING_ML"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "retailops-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "retailops", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
		assert.True(t, cfg.Settlement.BillValueCeiling.Equal(decimal.NewFromInt(250000)))
		assert.Equal(t, int64(50000), cfg.Settlement.BillVolumeCeilingML)
	})

	t.Run("env vars override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("RETAILOPS_APP_NAME", "settlement-test")
		os.Setenv("RETAILOPS_DATABASE_HOST", "db.internal")
		os.Setenv("RETAILOPS_SETTLEMENT_BILL_VALUE_CEILING", "100000")
		os.Setenv("RETAILOPS_SETTLEMENT_BILL_VOLUME_CEILING_ML", "30000")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "settlement-test", cfg.App.Name)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.True(t, cfg.Settlement.BillValueCeiling.Equal(decimal.NewFromInt(100000)))
		assert.Equal(t, int64(30000), cfg.Settlement.BillVolumeCeilingML)
	})

	t.Run("production requires password and ssl", func(t *testing.T) {
		clearEnv()
		os.Setenv("RETAILOPS_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password")

		os.Setenv("RETAILOPS_DATABASE_PASSWORD", "secret")
		_, err = Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")

		os.Setenv("RETAILOPS_DATABASE_SSLMODE", "require")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		clearEnv()
		os.Setenv("RETAILOPS_DATABASE_MAX_OPEN_CONNS", "5")
		os.Setenv("RETAILOPS_DATABASE_MAX_IDLE_CONNS", "10")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "retailops",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
