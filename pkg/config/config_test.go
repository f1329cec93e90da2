package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "almacen-api", cfg.App.Name)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "almacen", cfg.DB.DBName)
	assert.Equal(t, 24, cfg.Ledger.EditWindowHours)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_HOST", "db.interno")
	t.Setenv("LEDGER_EDIT_WINDOW_HOURS", "48")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "db.interno", cfg.DB.Host)
	assert.Equal(t, 48, cfg.Ledger.EditWindowHours)
}

func TestDSN_EscapaLaContrasena(t *testing.T) {
	db := DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss:w/rd",
		DBName:   "almacen",
		SSLMode:  "disable",
	}
	dsn := db.DSN()
	assert.Contains(t, dsn, "p%40ss")
	assert.Contains(t, dsn, "w%2Frd")
	assert.NotContains(t, dsn, "p@ss")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestConnectionString_PrefiereDatabaseURL(t *testing.T) {
	db := DBConfig{DatabaseURL: "postgres://u:p@remoto:5432/otra"}
	assert.Equal(t, "postgres://u:p@remoto:5432/otra", db.ConnectionString())
}
