package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/blog-api/config"
	"go.uber.org/zap/zaptest"
)

func TestRun_DatabaseFailure(t *testing.T) {
	cfg := &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
		Database: config.DatabaseConfig{
			Host:     "invalid-host-that-does-not-exist.invalid",
			Port:     5432,
			User:     "blog",
			Password: "blog",
			Database: "blog_test",
			SSLMode:  "disable",
		},
		Auth: config.AuthConfig{
			Issuer:        "blog-api",
			Audience:      "blog-api-clients",
			SigningKey:    "0123456789abcdef0123456789abcdef",
			TokenLifetime: time.Hour,
		},
	}

	err := run(context.Background(), cfg, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize database")
}

func TestStart_ExitCodes(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("AUTH_SIGNING_KEY", "short")
		assert.Equal(t, 1, start())
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("AUTH_SIGNING_KEY", "0123456789abcdef0123456789abcdef")
		t.Setenv("LOG_LEVEL", "loud")
		assert.Equal(t, 1, start())
	})

	t.Run("unreachable database", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DB_HOST", "invalid-host-that-does-not-exist.invalid")
		t.Setenv("AUTH_SIGNING_KEY", "0123456789abcdef0123456789abcdef")
		t.Setenv("LOG_LEVEL", "error")
		t.Setenv("LOG_FILE", "")
		assert.Equal(t, 1, start())
	})
}
