package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, 30*time.Second, cfg.Borica.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Borica.Poll.Interval)
	assert.Equal(t, 180*time.Second, cfg.Borica.Poll.Timeout)
	assert.Equal(t, VerifySystem, cfg.Borica.Verify)
	assert.Equal(t, "en", cfg.Borica.Language)
}

func TestApplyDefaultsScalesSeconds(t *testing.T) {
	cfg := &Config{}
	cfg.Borica.Timeout = 10
	cfg.Borica.Poll.Interval = 1
	cfg.Borica.Poll.Timeout = 60
	cfg.applyDefaults()

	assert.Equal(t, 10*time.Second, cfg.Borica.Timeout)
	assert.Equal(t, time.Second, cfg.Borica.Poll.Interval)
	assert.Equal(t, 60*time.Second, cfg.Borica.Poll.Timeout)
}

func TestIsMutualTLS(t *testing.T) {
	b := BoricaConfig{}
	assert.False(t, b.IsMutualTLS())

	b.ClientCert = "client.pem"
	assert.False(t, b.IsMutualTLS())

	b.ClientKey = "client.key"
	assert.True(t, b.IsMutualTLS())
}

func TestEnvHelpers(t *testing.T) {
	cfg := &Config{}
	cfg.App.Env = "development"
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.App.Env = "production"
	assert.True(t, cfg.IsProduction())
}
