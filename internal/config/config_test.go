package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()

	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/crm")
	for _, key := range []string{"PORT", "RABBITMQ_USER", "SMTP_PORT", "CARD_BUCKET", "DISPATCH_INTERVAL", "DISPATCH_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "guest", cfg.RabbitUser)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "business-cards", cfg.CardBucket)
	assert.Equal(t, time.Minute, cfg.DispatchInterval)
	assert.True(t, cfg.DispatchEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/crm")
	t.Setenv("PORT", "9090")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("DISPATCH_INTERVAL", "30s")
	t.Setenv("DISPATCH_ENABLED", "false")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, 30*time.Second, cfg.DispatchInterval)
	assert.False(t, cfg.DispatchEnabled)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/crm")
	t.Setenv("SMTP_PORT", "not-a-port")
	t.Setenv("DISPATCH_INTERVAL", "soon")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, time.Minute, cfg.DispatchInterval)
}
