// Package config loads gateway configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the complete gateway configuration
type Config struct {
	Server        ServerConfig
	Observability ObservabilityConfig
	Gateway       GatewayConfig
	Transport     TransportConfig
	Dispatch      DispatchConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ObservabilityConfig holds logging and metrics configuration
type ObservabilityConfig struct {
	LogLevel       string
	LogFormat      string // json or console
	MetricsEnabled bool
}

// GatewayConfig holds inbound authentication configuration. When MasterKey
// and JWTSecret are both empty the gateway accepts unauthenticated requests.
type GatewayConfig struct {
	MasterKey string
	JWTSecret string
}

// TransportConfig holds outbound HTTP client configuration
type TransportConfig struct {
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// DispatchConfig holds dispatcher policy configuration
type DispatchConfig struct {
	// DropParams silently omits parameters a provider does not support
	// instead of rejecting the request.
	DropParams bool

	// StrictProviders rejects unknown provider prefixes instead of routing
	// them to the OpenAI-compatible fallback.
	StrictProviders bool
}

// New creates a Config by loading environment variables, reading an optional
// .env file first.
func New() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Observability: ObservabilityConfig{
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			LogFormat:      getEnv("LOG_FORMAT", "json"),
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		},
		Gateway: GatewayConfig{
			MasterKey: getEnv("GATEWAY_MASTER_KEY", ""),
			JWTSecret: getEnv("GATEWAY_JWT_SECRET", ""),
		},
		Transport: TransportConfig{
			Timeout:    getEnvAsDuration("PROVIDER_TIMEOUT", 60*time.Second),
			MaxRetries: getEnvAsInt("PROVIDER_MAX_RETRIES", 3),
			RetryDelay: getEnvAsDuration("PROVIDER_RETRY_DELAY", 1*time.Second),
		},
		Dispatch: DispatchConfig{
			DropParams:      getEnvAsBool("DISPATCH_DROP_PARAMS", false),
			StrictProviders: getEnvAsBool("DISPATCH_STRICT_PROVIDERS", false),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Observability.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %q", c.Observability.LogFormat)
	}
	if c.Transport.MaxRetries < 0 {
		return fmt.Errorf("invalid max retries: %d", c.Transport.MaxRetries)
	}
	return nil
}

// getEnv retrieves an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
