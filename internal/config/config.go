package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const envPrefix = "CLOUDCONTROL_MCP"

var logBufferHookOnce sync.Once

func DefaultConfig() *Config {

	v := viper.New()

	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		log.Fatalf("error unmarshaling default config: %v", err)
	}

	return &config
}

// Load merges defaults, an optional config file and the environment into a
// Config, then configures logrus from it.
func Load(configFile string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	setupViperConfig(v, configFile)

	bindEnvironmentVariables(v)

	config, err := readAndUnmarshalConfig(v)
	if err != nil {
		return nil, err
	}

	if err := setupLogging(config, v); err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFile exports a local .env into the environment when one exists.
func loadEnvFile() error {
	if err := gotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}
	return nil
}

// setupViperConfig registers the config search path, defaults and the
// prefixed automatic environment.
func setupViperConfig(v *viper.Viper, configFile string) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/cloudcontrol-mcp")

	if home, err := os.UserHomeDir(); err == nil && len(home) > 0 {
		v.AddConfigPath(filepath.Join(home, ".config", "cloudcontrol-mcp"))
	}

	if len(configFile) > 0 {
		v.SetConfigFile(configFile)
	}

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// bindEnvironmentVariables binds the conventional AWS and FastMCP variables
// on top of the prefixed automatic ones. The first listed name wins.
func bindEnvironmentVariables(v *viper.Viper) {
	bindAwsEnvVars(v)
	bindLoggingEnvVars(v)
}

func bindAwsEnvVars(v *viper.Viper) {
	v.BindEnv("aws.region", envPrefix+"_AWS_REGION", "AWS_REGION", "AWS_DEFAULT_REGION")
	v.BindEnv("aws.profile", envPrefix+"_AWS_PROFILE", "AWS_PROFILE")
	v.BindEnv("aws.access_key_id", envPrefix+"_AWS_ACCESS_KEY_ID", "AWS_ACCESS_KEY_ID")
	v.BindEnv("aws.secret_access_key", envPrefix+"_AWS_SECRET_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY")
	v.BindEnv("aws.session_token", envPrefix+"_AWS_SESSION_TOKEN", "AWS_SESSION_TOKEN")
	v.BindEnv("aws.endpoint", envPrefix+"_AWS_ENDPOINT", "AWS_ENDPOINT_URL")
}

func bindLoggingEnvVars(v *viper.Viper) {
	v.BindEnv("logging.level", envPrefix+"_LOGGING_LEVEL", "FASTMCP_LOG_LEVEL")
	v.BindEnv("logging.format", envPrefix+"_LOGGING_FORMAT")
	v.BindEnv("logging.output", envPrefix+"_LOGGING_OUTPUT")
}

func readAndUnmarshalConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// no config file is fine: defaults and environment still apply
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	config.Server.Transport = Transport(strings.ToLower(string(config.Server.Transport)))

	return &config, nil
}

// setupLogging points logrus at stderr or a file and feeds the /logs ring
// buffer. Configured settings are dumped at debug, except for the aws block.
func setupLogging(config *Config, v *viper.Viper) error {
	logrusLevel, err := ParseLevel(config.Logging.Level)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}

	logrus.SetLevel(logrusLevel)
	logBufferHookOnce.Do(func() {
		logrus.AddHook(GetLogBuffer())
	})

	output, err := openLogOutput(config.Logging.Output)
	if err != nil {
		return err
	}
	logrus.SetOutput(output)

	switch strings.ToLower(config.Logging.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		logrus.WithFields(logrus.Fields{
			"format": config.Logging.Format,
		}).Warn("Unknown log format")
	}

	if logrusLevel >= logrus.DebugLevel {
		for key, value := range v.AllSettings() {
			if key == "aws" {
				// credentials live here
				continue
			}
			logrus.Debugf("Config '%s': %v", key, value)
		}
	}

	return nil
}

// ParseLevel accepts logrus level names plus "critical", which
// FASTMCP_LOG_LEVEL may carry.
func ParseLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "critical":
		return logrus.FatalLevel, nil
	case "":
		return logrus.WarnLevel, nil
	}
	return logrus.ParseLevel(level)
}

// openLogOutput never returns stdout: in stdio mode it carries the protocol.
func openLogOutput(output string) (io.Writer, error) {
	switch strings.ToLower(output) {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return nil, fmt.Errorf("logging.output cannot be stdout")
	}

	file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log output %s: %w", output, err)
	}
	return file, nil
}

func setDefaults(v *viper.Viper) {

	// AWS defaults
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.imds_disable", false)
	v.SetDefault("aws.connect_timeout", "15s")
	v.SetDefault("aws.read_timeout", "15s")
	v.SetDefault("aws.max_attempts", 3)

	// Server defaults
	v.SetDefault("server.transport", string(TransportStdio))
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8888)

	// SSE streams stay open, so no write timeout by default
	v.SetDefault("server.limits.read_timeout", "30s")
	v.SetDefault("server.limits.write_timeout", "0s")
	v.SetDefault("server.limits.idle_timeout", "120s")

	v.SetDefault("server.health.enabled", true)
	v.SetDefault("server.health.path", "/health")
	v.SetDefault("server.ready.enabled", true)
	v.SetDefault("server.ready.path", "/ready")
	v.SetDefault("server.metrics.enabled", true)
	v.SetDefault("server.metrics.path", "/metrics")
	v.SetDefault("server.logs.enabled", false)
	v.SetDefault("server.logs.path", "/logs")

	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.rate", 10.0)
	v.SetDefault("server.rate_limit.burst", 20)

	// Logging defaults
	v.SetDefault("logging.level", "warning")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")
}
