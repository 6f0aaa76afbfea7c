package daemon

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/thand-io/cloudcontrol-mcp/internal/common"
	"github.com/thand-io/cloudcontrol-mcp/internal/tools"
)

const instructions = `
# AWS CloudControl API MCP Server

This server provides tools to interact with AWS CloudControl API capabilities, focusing on standardized resource management across AWS services.

## Features
- Create AWS resources using standardized resource type schemas
- Get details about specific AWS resources
- Update existing AWS resources using JSON patch documents
- Delete AWS resources
- List resources of a specific type in your AWS account
- Track and manage resource operation requests
- Discover resource types registered in the CloudFormation registry

## Prerequisites
1. Have an AWS account with access to AWS CloudControl API
2. Configure AWS CLI with your credentials and profile
3. Set AWS_REGION environment variable if not using default

## Best Practices
- Use resource type schemas to understand resource properties
- Specify idempotency tokens for create, update, and delete operations
- Track asynchronous operations using request tokens
- Use IAM roles for enhanced security and longer operation timeouts
`

// NewMCPServer builds the MCP server with every tool bound to service.
func NewMCPServer(service *tools.Service, metrics *Metrics) *server.MCPServer {
	mcpServer := server.NewMCPServer(
		common.ServerName,
		common.GetServerVersion(),
		server.WithToolCapabilities(false),
		server.WithLogging(),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	for _, r := range registrations() {
		mcpServer.AddTool(r.tool, r.handle(service, metrics))
	}

	return mcpServer
}
