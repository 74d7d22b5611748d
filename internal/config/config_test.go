package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH0_DOMAIN", "")
	t.Setenv("JWKS_URL", "")
	t.Setenv("DB_NAME", "")

	cfg := Load()

	assert.Equal(t, "trivia", cfg.DBName)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "trivia", cfg.APIAudience)
	assert.Equal(t, "https://udacitytrivia.auth0.com/.well-known/jwks.json", cfg.JWKSURL)
	assert.Equal(t, "https://udacitytrivia.auth0.com/", cfg.Issuer())
	assert.Equal(t, 5*time.Second, cfg.JWKSTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.SeedCategories)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH0_DOMAIN", "example.eu.auth0.com")
	t.Setenv("JWKS_URL", "")
	t.Setenv("JWKS_TIMEOUT", "250ms")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://trivia.example.com ,")
	t.Setenv("SEED_CATEGORIES", "true")
	t.Setenv("DB_HOST", "db")

	cfg := Load()

	assert.Equal(t, "https://example.eu.auth0.com/.well-known/jwks.json", cfg.JWKSURL)
	assert.Equal(t, "https://example.eu.auth0.com/", cfg.Issuer())
	assert.Equal(t, 250*time.Millisecond, cfg.JWKSTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://trivia.example.com"}, cfg.CORSOrigins)
	assert.True(t, cfg.SeedCategories)
	assert.Contains(t, cfg.DSN(), "host=db")
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWKS_TIMEOUT", "soon")
	t.Setenv("SEED_CATEGORIES", "maybe")

	cfg := Load()

	assert.Equal(t, 5*time.Second, cfg.JWKSTimeout)
	assert.False(t, cfg.SeedCategories)
}
