package config_test

import (
	"testing"

	"agrimarket/internal/config"

	"github.com/stretchr/testify/assert"
)

func setAll(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("POSTGRES_USER", "postgres")
	t.Setenv("POSTGRES_PASSWORD", "postgres")
	t.Setenv("POSTGRES_DB", "agrimarket")
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("GO_ENV", "dev")
}

func TestLoad_AllSet(t *testing.T) {
	setAll(t)

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5432, cfg.PostgresPort)
	assert.Equal(t, "secret", cfg.JWTSecret)
}

func TestLoad_MissingRequired(t *testing.T) {
	setAll(t)
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_PortMustBeNumber(t *testing.T) {
	setAll(t)
	t.Setenv("POSTGRES_PORT", "abc")

	_, err := config.Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_PORT")
}
