package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	for _, k := range []string{"STOREFRONT_ADDR", "API_URL", "API_TIMEOUT", "SESSION_STORE", "SESSION_MAX_AGE", "KAFKA_BROKERS", "ES_INDEX", "LOGIN_BURST"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, "cookie", cfg.SessionStore)
	assert.Equal(t, 720*time.Hour, cfg.SessionMaxAge)
	assert.Equal(t, "products", cfg.ESIndex)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Equal(t, 5, cfg.LoginBurst)
	assert.Equal(t, []byte("secret"), cfg.SessionSecret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("LOGIN_RATE", "not-a-number")

	cfg := Load()
	assert.Equal(t, "redis", cfg.SessionStore)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.CookieSecure)
	assert.InDelta(t, 0.2, cfg.LoginRate, 1e-9)
}

func TestLoadCLISessionFile(t *testing.T) {
	t.Setenv("SOUNDCTL_SESSION", "")
	t.Setenv("HOME", "/home/tester")
	cfg := LoadCLI()
	require.Equal(t, filepath.Join("/home/tester", ".soundctl", "session.json"), cfg.SessionFile)

	t.Setenv("SOUNDCTL_SESSION", "/tmp/s.json")
	assert.Equal(t, "/tmp/s.json", LoadCLI().SessionFile)
}
