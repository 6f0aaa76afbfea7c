package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnvironment unsets every variable Load reads so the host
// environment cannot leak into a test.
func clearEnvironment(t *testing.T) {
	t.Helper()

	for _, name := range []string{
		"AWS_REGION", "AWS_DEFAULT_REGION", "AWS_PROFILE",
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_SESSION_TOKEN",
		"AWS_ENDPOINT_URL", "FASTMCP_LOG_LEVEL",
		"CLOUDCONTROL_MCP_AWS_REGION", "CLOUDCONTROL_MCP_SERVER_PORT",
		"CLOUDCONTROL_MCP_SERVER_TRANSPORT", "CLOUDCONTROL_MCP_LOGGING_LEVEL",
	} {
		t.Setenv(name, "")
	}

	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	t.Cleanup(func() {
		logrus.SetLevel(logrus.WarnLevel)
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, 15*time.Second, cfg.AWS.ConnectTimeout)
	assert.Equal(t, 15*time.Second, cfg.AWS.ReadTimeout)
	assert.Equal(t, 3, cfg.AWS.MaxAttempts)

	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Equal(t, 8888, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8888", cfg.GetListenAddress())
	assert.Equal(t, "http://localhost:8888", cfg.GetBaseURL())
	assert.True(t, cfg.Server.Health.Enabled)
	assert.Equal(t, "/metrics", cfg.Server.Metrics.Path)
	assert.False(t, cfg.Server.Logs.Enabled)
	assert.True(t, cfg.Server.RateLimit.Enabled)

	assert.Equal(t, "warning", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)

	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	clearEnvironment(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Empty(t, cfg.AWS.Profile)
	assert.False(t, cfg.AWS.HasStaticCredentials())
	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	clearEnvironment(t)

	t.Setenv("AWS_DEFAULT_REGION", "ap-southeast-2")
	t.Setenv("AWS_REGION", "eu-central-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("FASTMCP_LOG_LEVEL", "DEBUG")
	t.Setenv("CLOUDCONTROL_MCP_SERVER_PORT", "9999")
	t.Setenv("CLOUDCONTROL_MCP_SERVER_TRANSPORT", "SSE")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "eu-central-1", cfg.AWS.Region)
	assert.True(t, cfg.AWS.HasStaticCredentials())
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, TransportSSE, cfg.Server.Transport)
	assert.True(t, cfg.IsSSE())
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestLoadConfigFile(t *testing.T) {
	clearEnvironment(t)

	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
aws:
  region: us-west-2
  profile: sandbox
  max_attempts: 5
server:
  transport: sse
  port: 7777
  base_url: https://mcp.example.com
  logs:
    enabled: true
logging:
  level: error
  format: json
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "us-west-2", cfg.AWS.Region)
	assert.Equal(t, "sandbox", cfg.AWS.Profile)
	assert.Equal(t, 5, cfg.AWS.MaxAttempts)
	assert.Equal(t, 15*time.Second, cfg.AWS.ReadTimeout)
	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "https://mcp.example.com", cfg.GetBaseURL())
	assert.True(t, cfg.Server.Logs.Enabled)
	assert.Equal(t, logrus.ErrorLevel, logrus.GetLevel())
}

func TestLoadMissingConfigFile(t *testing.T) {
	clearEnvironment(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsStdoutLogging(t *testing.T) {
	clearEnvironment(t)
	t.Setenv("CLOUDCONTROL_MCP_LOGGING_OUTPUT", "stdout")

	_, err := Load("")
	assert.ErrorContains(t, err, "stdout")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unknown transport", func(c *Config) { c.Server.Transport = "websocket" }, "unknown transport"},
		{"bad port in sse mode", func(c *Config) {
			c.Server.Transport = TransportSSE
			c.Server.Port = 70000
		}, "invalid port"},
		{"port ignored in stdio mode", func(c *Config) { c.Server.Port = 0 }, ""},
		{"zero attempts", func(c *Config) { c.AWS.MaxAttempts = 0 }, "max_attempts"},
		{"rate limit without burst", func(c *Config) { c.Server.RateLimit.Burst = 0 }, "rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected logrus.Level
		wantErr  bool
	}{
		{input: "", expected: logrus.WarnLevel},
		{input: "WARNING", expected: logrus.WarnLevel},
		{input: "debug", expected: logrus.DebugLevel},
		{input: "CRITICAL", expected: logrus.FatalLevel},
		{input: "error", expected: logrus.ErrorLevel},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}
