package tools

import (
	"context"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudcontrol"
	cctypes "github.com/aws/aws-sdk-go-v2/service/cloudcontrol/types"

	"github.com/thand-io/cloudcontrol-mcp/internal/common"
	"github.com/thand-io/cloudcontrol-mcp/internal/models"
)

type RequestTokenArgs struct {
	RequestToken string `json:"request_token"`
}

// ResourceRequestStatusFilter mirrors the Cloud Control filter shape.
type ResourceRequestStatusFilter struct {
	Operations        []string `json:"Operations,omitempty"`
	OperationStatuses []string `json:"OperationStatuses,omitempty"`
}

type ListResourceRequestsArgs struct {
	ResourceRequestStatusFilter *ResourceRequestStatusFilter `json:"resource_request_status_filter,omitempty"`
	NextToken                   string                       `json:"next_token,omitempty"`
	MaxResults                  *int32                       `json:"max_results,omitempty"`
}

// GetResourceRequestStatus polls the progress of an earlier mutation.
func (s *Service) GetResourceRequestStatus(ctx context.Context, args RequestTokenArgs) any {
	op := opGetResourceRequestStatus

	client, err := s.clients.CloudControl.Client()
	if err != nil {
		return s.fail(ctx, op, err)
	}

	if err := requireFields(map[string]string{"request_token": args.RequestToken}); err != nil {
		return s.fail(ctx, op, err)
	}

	input := &cloudcontrol.GetResourceRequestStatusInput{
		RequestToken: sdkaws.String(args.RequestToken),
	}

	s.dispatched(ctx, op, "")

	response, err := invoke(ctx, op, func(ctx context.Context) (*cloudcontrol.GetResourceRequestStatusOutput, error) {
		return client.GetResourceRequestStatus(ctx, input)
	})
	if err != nil {
		return s.fail(ctx, op, err)
	}

	result, err := toProgressEventResult(response.ProgressEvent)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return result
}

// CancelResourceRequest cancels an in-flight mutation by its request token.
func (s *Service) CancelResourceRequest(ctx context.Context, args RequestTokenArgs) any {
	op := opCancelResourceRequest

	client, err := s.clients.CloudControl.Client()
	if err != nil {
		return s.fail(ctx, op, err)
	}

	if err := requireFields(map[string]string{"request_token": args.RequestToken}); err != nil {
		return s.fail(ctx, op, err)
	}

	input := &cloudcontrol.CancelResourceRequestInput{
		RequestToken: sdkaws.String(args.RequestToken),
	}

	s.dispatched(ctx, op, "")

	response, err := invoke(ctx, op, func(ctx context.Context) (*cloudcontrol.CancelResourceRequestOutput, error) {
		return client.CancelResourceRequest(ctx, input)
	})
	if err != nil {
		return s.fail(ctx, op, err)
	}

	result, err := toProgressEventResult(response.ProgressEvent)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	s.reportProgress(ctx, result.ProgressEvent)
	return result
}

// ListResourceRequests lists recent mutation requests in the account.
func (s *Service) ListResourceRequests(ctx context.Context, args ListResourceRequestsArgs) any {
	op := opListResourceRequests

	client, err := s.clients.CloudControl.Client()
	if err != nil {
		return s.fail(ctx, op, err)
	}

	if err := validateMaxResults(args.MaxResults); err != nil {
		return s.fail(ctx, op, err)
	}

	input := &cloudcontrol.ListResourceRequestsInput{
		NextToken:  common.StringOrNil(args.NextToken),
		MaxResults: args.MaxResults,
	}

	if args.ResourceRequestStatusFilter != nil {
		filter, err := args.ResourceRequestStatusFilter.toSDK()
		if err != nil {
			return s.fail(ctx, op, err)
		}
		input.ResourceRequestStatusFilter = filter
	}

	s.dispatched(ctx, op, "")

	response, err := invoke(ctx, op, func(ctx context.Context) (*cloudcontrol.ListResourceRequestsOutput, error) {
		return client.ListResourceRequests(ctx, input)
	})
	if err != nil {
		return s.fail(ctx, op, err)
	}

	summaries := make([]models.ProgressEvent, 0, len(response.ResourceRequestStatusSummaries))
	for _, summary := range response.ResourceRequestStatusSummaries {
		summaries = append(summaries, toProgressEvent(summary))
	}

	return models.ListResourceRequestsResult{
		ResourceRequestStatusSummaries: summaries,
		NextToken:                      response.NextToken,
	}
}

func (f ResourceRequestStatusFilter) toSDK() (*cctypes.ResourceRequestStatusFilter, error) {
	operations, err := parseEnums("operation", f.Operations, cctypes.Operation("").Values())
	if err != nil {
		return nil, err
	}

	statuses, err := parseEnums("operation status", f.OperationStatuses, cctypes.OperationStatus("").Values())
	if err != nil {
		return nil, err
	}

	return &cctypes.ResourceRequestStatusFilter{
		Operations:        operations,
		OperationStatuses: statuses,
	}, nil
}
