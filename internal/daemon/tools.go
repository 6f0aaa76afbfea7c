package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/thand-io/cloudcontrol-mcp/internal/common"
	"github.com/thand-io/cloudcontrol-mcp/internal/models"
	"github.com/thand-io/cloudcontrol-mcp/internal/tools"
)

const (
	roleArnDescription     = "Optional IAM role ARN to use for this operation"
	clientTokenDescription = "Idempotency token for the request"
	nextTokenDescription   = "Token for pagination"
	maxResultsDescription  = "Maximum number of results to return in one page"
)

type toolBinding func(service *tools.Service, metrics *Metrics) server.ToolHandlerFunc

type registration struct {
	tool   mcp.Tool
	handle toolBinding
}

// registrations lists every tool exposed to MCP hosts.
func registrations() []registration {
	return []registration{
		{
			tool: mcp.NewTool("create_resource",
				mcp.WithDescription("Create a resource using AWS CloudControl API."),
				mcp.WithString("type_name",
					mcp.Required(),
					mcp.Description("The type name of the resource to create"),
				),
				mcp.WithObject("desired_state",
					mcp.Required(),
					mcp.Description("JSON object representing the desired state of the resource"),
				),
				mcp.WithString("role_arn", mcp.Description(roleArnDescription)),
				mcp.WithString("client_token", mcp.Description(clientTokenDescription)),
				mcp.WithReadOnlyHintAnnotation(false),
				mcp.WithDestructiveHintAnnotation(false),
				mcp.WithIdempotentHintAnnotation(false),
				mcp.WithOpenWorldHintAnnotation(true),
			),
			handle: bind((*tools.Service).CreateResource),
		},
		{
			tool: mcp.NewTool("get_resource",
				mcp.WithDescription("Get details about a resource using AWS CloudControl API."),
				mcp.WithString("type_name",
					mcp.Required(),
					mcp.Description("The type name of the resource"),
				),
				mcp.WithString("identifier",
					mcp.Required(),
					mcp.Description("The primary identifier of the resource"),
				),
				mcp.WithString("role_arn", mcp.Description(roleArnDescription)),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithOpenWorldHintAnnotation(true),
			),
			handle: bind((*tools.Service).GetResource),
		},
		{
			tool: mcp.NewTool("update_resource",
				mcp.WithDescription("Update a resource using AWS CloudControl API."),
				mcp.WithString("type_name",
					mcp.Required(),
					mcp.Description("The type name of the resource to update"),
				),
				mcp.WithString("identifier",
					mcp.Required(),
					mcp.Description("The primary identifier of the resource"),
				),
				mcp.WithArray("patch_document",
					mcp.Required(),
					mcp.Description("JSON patch document for the update (RFC 6902 operations, as an array or its JSON text)"),
					mcp.Items(map[string]any{"type": "object"}),
				),
				mcp.WithString("role_arn", mcp.Description(roleArnDescription)),
				mcp.WithString("client_token", mcp.Description(clientTokenDescription)),
				mcp.WithReadOnlyHintAnnotation(false),
				mcp.WithDestructiveHintAnnotation(true),
				mcp.WithIdempotentHintAnnotation(false),
				mcp.WithOpenWorldHintAnnotation(true),
			),
			handle: bind((*tools.Service).UpdateResource),
		},
		{
			tool: mcp.NewTool("delete_resource",
				mcp.WithDescription("Delete a resource using AWS CloudControl API."),
				mcp.WithString("type_name",
					mcp.Required(),
					mcp.Description("The type name of the resource to delete"),
				),
				mcp.WithString("identifier",
					mcp.Required(),
					mcp.Description("The primary identifier of the resource"),
				),
				mcp.WithString("role_arn", mcp.Description(roleArnDescription)),
				mcp.WithString("client_token", mcp.Description(clientTokenDescription)),
				mcp.WithReadOnlyHintAnnotation(false),
				mcp.WithDestructiveHintAnnotation(true),
				mcp.WithIdempotentHintAnnotation(true),
				mcp.WithOpenWorldHintAnnotation(true),
			),
			handle: bind((*tools.Service).DeleteResource),
		},
		{
			tool: mcp.NewTool("list_resources",
				mcp.WithDescription("List resources of a specific type using AWS CloudControl API."),
				mcp.WithString("type_name",
					mcp.Required(),
					mcp.Description("The type name of the resources to list"),
				),
				mcp.WithObject("resource_model",
					mcp.Description("Optional resource model for resources that require additional information"),
				),
				mcp.WithString("role_arn", mcp.Description(roleArnDescription)),
				mcp.WithString("next_token", mcp.Description(nextTokenDescription)),
				mcp.WithNumber("max_results",
					mcp.Description(maxResultsDescription),
					mcp.Min(1),
				),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithOpenWorldHintAnnotation(true),
			),
			handle: bind((*tools.Service).ListResources),
		},
		{
			tool: mcp.NewTool("get_resource_request_status",
				mcp.WithDescription("Get the status of a resource request using AWS CloudControl API."),
				mcp.WithString("request_token",
					mcp.Required(),
					mcp.Description("The request token returned from a resource operation"),
				),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithOpenWorldHintAnnotation(true),
			),
			handle: bind((*tools.Service).GetResourceRequestStatus),
		},
		{
			tool: mcp.NewTool("cancel_resource_request",
				mcp.WithDescription("Cancel a resource request using AWS CloudControl API."),
				mcp.WithString("request_token",
					mcp.Required(),
					mcp.Description("The request token of the request to cancel"),
				),
				mcp.WithReadOnlyHintAnnotation(false),
				mcp.WithDestructiveHintAnnotation(false),
				mcp.WithIdempotentHintAnnotation(true),
				mcp.WithOpenWorldHintAnnotation(true),
			),
			handle: bind((*tools.Service).CancelResourceRequest),
		},
		{
			tool: mcp.NewTool("list_resource_requests",
				mcp.WithDescription("List resource requests using AWS CloudControl API."),
				mcp.WithObject("resource_request_status_filter",
					mcp.Description("Filter for resource request status"),
					mcp.Properties(map[string]any{
						"Operations": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string", "enum": []string{"CREATE", "DELETE", "UPDATE"}},
						},
						"OperationStatuses": map[string]any{
							"type": "array",
							"items": map[string]any{"type": "string", "enum": []string{
								"PENDING", "IN_PROGRESS", "SUCCESS", "FAILED", "CANCEL_IN_PROGRESS", "CANCEL_COMPLETE",
							}},
						},
					}),
				),
				mcp.WithString("next_token", mcp.Description(nextTokenDescription)),
				mcp.WithNumber("max_results",
					mcp.Description(maxResultsDescription),
					mcp.Min(1),
				),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithOpenWorldHintAnnotation(true),
			),
			handle: bind((*tools.Service).ListResourceRequests),
		},
		{
			tool: mcp.NewTool("list_resource_types",
				mcp.WithDescription("List available resource types in AWS CloudControl API."),
				mcp.WithObject("filters",
					mcp.Description("Optional filters for resource types"),
					mcp.Properties(map[string]any{
						"Category":       map[string]any{"type": "string", "enum": []string{"REGISTERED", "ACTIVATED", "THIRD_PARTY", "AWS_TYPES"}},
						"PublisherId":    map[string]any{"type": "string"},
						"TypeNamePrefix": map[string]any{"type": "string"},
					}),
				),
				mcp.WithString("visibility",
					mcp.Description("Scope of the types to list"),
					mcp.Enum("PUBLIC", "PRIVATE"),
				),
				mcp.WithString("provisioning_type",
					mcp.Description("Only list types with this provisioning type"),
					mcp.Enum("NON_PROVISIONABLE", "IMMUTABLE", "FULLY_MUTABLE"),
				),
				mcp.WithString("deprecated_status",
					mcp.Description("Only list live or deprecated types"),
					mcp.Enum("LIVE", "DEPRECATED"),
				),
				mcp.WithString("type",
					mcp.Description("Kind of registry extension to list"),
					mcp.Enum("RESOURCE", "MODULE", "HOOK"),
				),
				mcp.WithString("next_token", mcp.Description(nextTokenDescription)),
				mcp.WithNumber("max_results",
					mcp.Description(maxResultsDescription),
					mcp.Min(1),
					mcp.Max(100),
				),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithOpenWorldHintAnnotation(true),
			),
			handle: bind((*tools.Service).ListResourceTypes),
		},
	}
}

// bind adapts a Service operation to an MCP tool handler. Every call gets a
// call ID for log correlation and is counted in metrics. Handlers never
// return a Go error: failures are tool results with isError set.
func bind[A any](call func(*tools.Service, context.Context, A) any) toolBinding {
	return func(service *tools.Service, metrics *Metrics) server.ToolHandlerFunc {
		return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			name := request.Params.Name
			start := time.Now()

			logger := logrus.WithFields(logrus.Fields{
				"tool":    name,
				"call_id": uuid.NewString(),
			})
			logger.Debug("Tool call started")

			var result any
			args, err := bindArguments[A](request)
			if err != nil {
				result = service.RejectArguments(ctx, name, err)
			} else {
				result = call(service, ctx, args)
			}

			failed := models.IsErrorResult(result)
			metrics.RecordCall(name, failed)

			logger.WithFields(logrus.Fields{
				"duration": time.Since(start).String(),
				"failed":   failed,
			}).Debug("Tool call finished")

			return encodeResult(result), nil
		}
	}
}

// bindArguments decodes the call's argument map into the typed argument
// struct.
func bindArguments[A any](request mcp.CallToolRequest) (A, error) {
	var args A
	err := common.ConvertMapToInterface(request.GetArguments(), &args)
	return args, err
}

func encodeResult(result any) *mcp.CallToolResult {
	payload, err := marshalResult(result)
	if err != nil {
		logrus.WithError(err).Error("Failed to encode tool result")

		payload, _ = marshalResult(models.NewErrorResult(fmt.Sprintf("Error encoding result: %v", err)))
		return mcp.NewToolResultError(payload)
	}

	if models.IsErrorResult(result) {
		return mcp.NewToolResultError(payload)
	}
	return mcp.NewToolResultText(payload)
}

func marshalResult(result any) (string, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(result); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
