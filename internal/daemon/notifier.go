package daemon

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/thand-io/cloudcontrol-mcp/internal/common"
	"github.com/thand-io/cloudcontrol-mcp/internal/tools"
)

const logMessageMethod = "notifications/message"

// notifyClient forwards a tool notification to the client session that made
// the call as an MCP log message.
func notifyClient(ctx context.Context, level tools.Level, message string) {
	mcpServer := server.ServerFromContext(ctx)
	if mcpServer == nil {
		return
	}

	err := mcpServer.SendNotificationToClient(ctx, logMessageMethod, map[string]any{
		"level":  mcp.LoggingLevel(level),
		"logger": common.ServerName,
		"data":   message,
	})
	if err != nil {
		// Notifications are advisory; the tool result is unaffected
		logrus.WithError(err).Debug("Failed to deliver notification")
	}
}
