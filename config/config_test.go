package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	cfg := map[string]string{"API_BASE_URL": "http://localhost:8000/api"}

	assert.Equal(t, "http://localhost:8000/api", GetString(cfg, "API_BASE_URL", "fallback"))
	assert.Equal(t, "fallback", GetString(cfg, "MISSING", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "API_BASE_URL", "fallback"))
}

func TestGetInt(t *testing.T) {
	cfg := map[string]string{"PORT": "8080", "BAD": "not-a-number"}

	assert.Equal(t, 8080, GetInt(cfg, "PORT", 3000))
	assert.Equal(t, 3000, GetInt(cfg, "BAD", 3000))
	assert.Equal(t, 3000, GetInt(cfg, "MISSING", 3000))
}

func TestGetBool(t *testing.T) {
	cfg := map[string]string{"DEBUG": "true", "COMPACT": "0", "BAD": "maybe"}

	assert.True(t, GetBool(cfg, "DEBUG", false))
	assert.False(t, GetBool(cfg, "COMPACT", true))
	assert.True(t, GetBool(cfg, "BAD", true))
}

func TestGetMinutes(t *testing.T) {
	cfg := map[string]string{"DASHBOARD_REFRESH_MINUTES": "2", "BAD": "soon"}

	assert.Equal(t, 2*time.Minute, GetMinutes(cfg, "DASHBOARD_REFRESH_MINUTES", 5*time.Minute))
	assert.Equal(t, 5*time.Minute, GetMinutes(cfg, "BAD", 5*time.Minute))
	assert.Equal(t, 5*time.Minute, GetMinutes(cfg, "MISSING", 5*time.Minute))
}

func TestSplitEntry(t *testing.T) {
	key, value := split("API_BASE_URL=http://localhost")
	assert.Equal(t, "API_BASE_URL", key)
	assert.Equal(t, "http://localhost", value)

	key, value = split("DSN=postgres://u:p@host?sslmode=require")
	assert.Equal(t, "DSN", key)
	assert.Equal(t, "postgres://u:p@host?sslmode=require", value)

	key, value = split("NOVALUE")
	assert.Equal(t, "NOVALUE", key)
	assert.Empty(t, value)
}
