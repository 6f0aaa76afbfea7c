package config

import (
	"fmt"
	"time"

	"github.com/thand-io/cloudcontrol-mcp/internal/models"
)

type Transport string

const (
	// Bidirectional JSON-RPC over stdin/stdout
	TransportStdio Transport = "stdio"

	// Server-sent events over HTTP
	TransportSSE Transport = "sse"
)

// Config represents the application configuration structure
type Config struct {
	AWS     models.AwsConfig `mapstructure:"aws"`
	Server  ServerConfig     `mapstructure:"server"`
	Logging LoggingConfig    `mapstructure:"logging"`
}

type ServerConfig struct {
	Transport Transport          `mapstructure:"transport"`
	Host      string             `mapstructure:"host"`
	Port      int                `mapstructure:"port"`
	BaseURL   string             `mapstructure:"base_url"`
	Limits    ServerLimitsConfig `mapstructure:"limits"`
	Metrics   EndpointConfig     `mapstructure:"metrics"`
	Health    EndpointConfig     `mapstructure:"health"`
	Ready     EndpointConfig     `mapstructure:"ready"`
	Logs      EndpointConfig     `mapstructure:"logs"`
	RateLimit RateLimitConfig    `mapstructure:"rate_limit"`
}

// RateLimitConfig throttles SSE message posts per client IP.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Rate    float64 `mapstructure:"rate"`
	Burst   int     `mapstructure:"burst"`
}

type ServerLimitsConfig struct {
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type EndpointConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

func (c *Config) IsSSE() bool {
	return c.Server.Transport == TransportSSE
}

// GetListenAddress returns host:port for the SSE transport.
func (c *Config) GetListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetBaseURL returns the externally reachable URL advertised to SSE
// clients for posting messages.
func (c *Config) GetBaseURL() string {
	if len(c.Server.BaseURL) > 0 {
		return c.Server.BaseURL
	}
	host := c.Server.Host
	if len(host) == 0 || host == "0.0.0.0" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, c.Server.Port)
}

// Validate checks settings that would otherwise fail later at startup.
func (c *Config) Validate() error {
	switch c.Server.Transport {
	case TransportStdio, TransportSSE:
	default:
		return fmt.Errorf("unknown transport %q (expected %q or %q)",
			c.Server.Transport, TransportStdio, TransportSSE)
	}
	if c.IsSSE() && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.RateLimit.Enabled && (c.Server.RateLimit.Rate <= 0 || c.Server.RateLimit.Burst < 1) {
		return fmt.Errorf("rate limit needs a positive rate and burst, got %v/%d",
			c.Server.RateLimit.Rate, c.Server.RateLimit.Burst)
	}
	if c.AWS.MaxAttempts < 1 {
		return fmt.Errorf("aws.max_attempts must be at least 1, got %d", c.AWS.MaxAttempts)
	}
	return nil
}
