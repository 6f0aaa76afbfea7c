package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thand-io/cloudcontrol-mcp/internal/common"
	"github.com/thand-io/cloudcontrol-mcp/internal/config"
	"github.com/thand-io/cloudcontrol-mcp/internal/daemon"
	"github.com/thand-io/cloudcontrol-mcp/internal/providers/aws"
	"github.com/thand-io/cloudcontrol-mcp/internal/tools"
)

var rootCmd = &cobra.Command{
	Use:   "cloudcontrol-mcp",
	Short: "An AWS Labs Model Context Protocol (MCP) server for AWS CloudControl API",
	Long: `An AWS Labs Model Context Protocol (MCP) server for AWS CloudControl API.

The server speaks MCP over stdio by default. Pass --sse to serve it over
HTTP server-sent events instead.

If no config file is specified, the server will look for config files in the following locations:
  - ./config.yaml
  - ./config/config.yaml
  - /etc/cloudcontrol-mcp/config.yaml
  - ~/.config/cloudcontrol-mcp/config.yaml`,
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	registerFlags(rootCmd)
}

func registerFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file (optional)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.Flags().Bool("sse", false, "Use SSE transport")
	cmd.Flags().Int("port", 8888, "Port to run the server on")
}

// loadConfig loads configuration and applies command line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if verbose, err := cmd.Flags().GetBool("verbose"); err == nil && verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if sse, err := cmd.Flags().GetBool("sse"); err == nil && sse {
		cfg.Server.Transport = config.TransportSSE
	}

	if cmd.Flags().Changed("port") {
		port, err := cmd.Flags().GetInt("port")
		if err != nil {
			return nil, fmt.Errorf("failed to get port flag: %w", err)
		}
		cfg.Server.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"version":   common.GetVersion(),
		"transport": cfg.Server.Transport,
	}).Info("Starting AWS CloudControl API MCP Server")

	ctx, stop := common.WithInterrupt(context.Background())
	defer stop()

	// Never fails; unusable clients are reported per tool call
	clients := aws.NewClients(ctx, cfg.AWS)

	service := tools.NewService(clients, daemon.NewNotifier())
	server := daemon.NewServer(cfg, service)

	return server.Start(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatalf("Failed to execute command: %v", err)
	}
}
