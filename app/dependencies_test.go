package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upb/llm-dispatch/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: time.Second,
		},
		Observability: config.ObservabilityConfig{
			LogLevel:  "debug",
			LogFormat: "console",
		},
		Transport: config.TransportConfig{
			Timeout:    5 * time.Second,
			MaxRetries: 1,
			RetryDelay: 10 * time.Millisecond,
		},
	}
}

func TestNewDependencies(t *testing.T) {
	deps, err := NewDependencies(testConfig())
	require.NoError(t, err)
	defer deps.Close()

	assert.NotNil(t, deps.Logger)
	assert.NotNil(t, deps.Dispatcher)
	assert.NotNil(t, deps.Transport)
	assert.NotNil(t, deps.Completion)
	assert.NotNil(t, deps.ChatHandler)
	assert.NotNil(t, deps.HealthHandler)
	assert.ElementsMatch(t, []string{"openai", "synthetic"}, deps.Registry.Prefixes())
	assert.False(t, deps.Auth.Enabled())
}

func TestNewDependencies_InvalidLogLevel(t *testing.T) {
	cfg := testConfig()
	cfg.Observability.LogLevel = "shout"

	_, err := NewDependencies(cfg)
	assert.Error(t, err)
}
