package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_PORT", ":9999")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("S3_BUCKET", "geugeu-images")
	t.Setenv("GOOGLE_CLIENT_ID", "gid")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.AppPort)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "geugeu-images", cfg.Storage.Bucket)
	assert.Equal(t, "gid", cfg.Google.ClientID)
}
