package tools

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudcontrol"
	"github.com/sirupsen/logrus"

	"github.com/thand-io/cloudcontrol-mcp/internal/common"
	"github.com/thand-io/cloudcontrol-mcp/internal/models"
)

type CreateResourceArgs struct {
	TypeName     string   `json:"type_name"`
	DesiredState Document `json:"desired_state"`
	RoleArn      string   `json:"role_arn,omitempty"`
	ClientToken  string   `json:"client_token,omitempty"`
}

type GetResourceArgs struct {
	TypeName   string `json:"type_name"`
	Identifier string `json:"identifier"`
	RoleArn    string `json:"role_arn,omitempty"`
}

type UpdateResourceArgs struct {
	TypeName      string   `json:"type_name"`
	Identifier    string   `json:"identifier"`
	PatchDocument Document `json:"patch_document"`
	RoleArn       string   `json:"role_arn,omitempty"`
	ClientToken   string   `json:"client_token,omitempty"`
}

type DeleteResourceArgs struct {
	TypeName    string `json:"type_name"`
	Identifier  string `json:"identifier"`
	RoleArn     string `json:"role_arn,omitempty"`
	ClientToken string `json:"client_token,omitempty"`
}

type ListResourcesArgs struct {
	TypeName      string   `json:"type_name"`
	ResourceModel Document `json:"resource_model,omitempty"`
	RoleArn       string   `json:"role_arn,omitempty"`
	NextToken     string   `json:"next_token,omitempty"`
	MaxResults    *int32   `json:"max_results,omitempty"`
}

// CreateResource submits an asynchronous create request.
func (s *Service) CreateResource(ctx context.Context, args CreateResourceArgs) any {
	op := opCreateResource

	client, err := s.clients.CloudControl.Client()
	if err != nil {
		return s.fail(ctx, op, err)
	}

	if err := requireFields(map[string]string{"type_name": args.TypeName}); err != nil {
		return s.fail(ctx, op, err)
	}

	desiredState, err := args.DesiredState.ObjectJSON()
	if err != nil {
		return s.fail(ctx, op, fmt.Errorf("desired_state: %w", err))
	}

	input := &cloudcontrol.CreateResourceInput{
		TypeName:     sdkaws.String(args.TypeName),
		DesiredState: sdkaws.String(desiredState),
		RoleArn:      common.StringOrNil(args.RoleArn),
		ClientToken:  common.StringOrNil(args.ClientToken),
	}

	s.dispatched(ctx, op, args.TypeName)

	response, err := invoke(ctx, op, func(ctx context.Context) (*cloudcontrol.CreateResourceOutput, error) {
		return client.CreateResource(ctx, input)
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

// GetResource reads the current state of a single resource.
func (s *Service) GetResource(ctx context.Context, args GetResourceArgs) any {
	op := opGetResource

	client, err := s.clients.CloudControl.Client()
	if err != nil {
		return s.fail(ctx, op, err)
	}

	if err := requireFields(map[string]string{
		"type_name":  args.TypeName,
		"identifier": args.Identifier,
	}); err != nil {
		return s.fail(ctx, op, err)
	}

	input := &cloudcontrol.GetResourceInput{
		TypeName:   sdkaws.String(args.TypeName),
		Identifier: sdkaws.String(args.Identifier),
		RoleArn:    common.StringOrNil(args.RoleArn),
	}

	s.dispatched(ctx, op, args.TypeName)

	response, err := invoke(ctx, op, func(ctx context.Context) (*cloudcontrol.GetResourceOutput, error) {
		return client.GetResource(ctx, input)
	})
	if err != nil {
		return s.fail(ctx, op, err)
	}

	if response.ResourceDescription == nil {
		return s.fail(ctx, op, fmt.Errorf("response did not include a resource description"))
	}

	// Unlike list_resources, a malformed document fails the whole call
	properties, err := ParseProperties(response.ResourceDescription.Properties)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	return models.GetResourceResult{
		TypeName: response.TypeName,
		ResourceDescription: models.ResourceDescription{
			Identifier: response.ResourceDescription.Identifier,
			Properties: properties,
		},
	}
}

// UpdateResource submits an asynchronous JSON Patch update.
func (s *Service) UpdateResource(ctx context.Context, args UpdateResourceArgs) any {
	op := opUpdateResource

	client, err := s.clients.CloudControl.Client()
	if err != nil {
		return s.fail(ctx, op, err)
	}

	if err := requireFields(map[string]string{
		"type_name":  args.TypeName,
		"identifier": args.Identifier,
	}); err != nil {
		return s.fail(ctx, op, err)
	}

	patchDocument, err := args.PatchDocument.ArrayJSON()
	if err != nil {
		return s.fail(ctx, op, fmt.Errorf("patch_document: %w", err))
	}

	input := &cloudcontrol.UpdateResourceInput{
		TypeName:      sdkaws.String(args.TypeName),
		Identifier:    sdkaws.String(args.Identifier),
		PatchDocument: sdkaws.String(patchDocument),
		RoleArn:       common.StringOrNil(args.RoleArn),
		ClientToken:   common.StringOrNil(args.ClientToken),
	}

	s.dispatched(ctx, op, args.TypeName)

	response, err := invoke(ctx, op, func(ctx context.Context) (*cloudcontrol.UpdateResourceOutput, error) {
		return client.UpdateResource(ctx, input)
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

// DeleteResource submits an asynchronous delete request.
func (s *Service) DeleteResource(ctx context.Context, args DeleteResourceArgs) any {
	op := opDeleteResource

	client, err := s.clients.CloudControl.Client()
	if err != nil {
		return s.fail(ctx, op, err)
	}

	if err := requireFields(map[string]string{
		"type_name":  args.TypeName,
		"identifier": args.Identifier,
	}); err != nil {
		return s.fail(ctx, op, err)
	}

	input := &cloudcontrol.DeleteResourceInput{
		TypeName:    sdkaws.String(args.TypeName),
		Identifier:  sdkaws.String(args.Identifier),
		RoleArn:     common.StringOrNil(args.RoleArn),
		ClientToken: common.StringOrNil(args.ClientToken),
	}

	s.dispatched(ctx, op, args.TypeName)

	response, err := invoke(ctx, op, func(ctx context.Context) (*cloudcontrol.DeleteResourceOutput, error) {
		return client.DeleteResource(ctx, input)
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

// ListResources returns one page of resources of a type. Items whose
// properties cannot be decoded degrade to an empty object.
func (s *Service) ListResources(ctx context.Context, args ListResourcesArgs) any {
	op := opListResources

	client, err := s.clients.CloudControl.Client()
	if err != nil {
		return s.fail(ctx, op, err)
	}

	if err := requireFields(map[string]string{"type_name": args.TypeName}); err != nil {
		return s.fail(ctx, op, err)
	}

	if err := validateMaxResults(args.MaxResults); err != nil {
		return s.fail(ctx, op, err)
	}

	input := &cloudcontrol.ListResourcesInput{
		TypeName:   sdkaws.String(args.TypeName),
		RoleArn:    common.StringOrNil(args.RoleArn),
		NextToken:  common.StringOrNil(args.NextToken),
		MaxResults: args.MaxResults,
	}

	// an empty structured model is the same as no model
	if args.ResourceModel.IsSet() && !args.ResourceModel.IsEmptyObject() {
		resourceModel, err := args.ResourceModel.ObjectJSON()
		if err != nil {
			return s.fail(ctx, op, fmt.Errorf("resource_model: %w", err))
		}
		input.ResourceModel = sdkaws.String(resourceModel)
	}

	s.dispatched(ctx, op, args.TypeName)

	response, err := invoke(ctx, op, func(ctx context.Context) (*cloudcontrol.ListResourcesOutput, error) {
		return client.ListResources(ctx, input)
	})
	if err != nil {
		return s.fail(ctx, op, err)
	}

	descriptions := make([]models.ResourceDescription, 0, len(response.ResourceDescriptions))
	for _, resource := range response.ResourceDescriptions {
		properties, err := ParseProperties(resource.Properties)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"tool":       op.Name,
				"identifier": sdkaws.ToString(resource.Identifier),
			}).Warn("Skipping malformed resource properties")

			s.notifier.Notify(ctx, LevelWarning, fmt.Sprintf(
				"Could not decode properties of %s; returning empty properties",
				sdkaws.ToString(resource.Identifier)))

			properties = map[string]any{}
		}

		descriptions = append(descriptions, models.ResourceDescription{
			Identifier: resource.Identifier,
			Properties: properties,
		})
	}

	return models.ListResourcesResult{
		TypeName:             response.TypeName,
		ResourceDescriptions: descriptions,
		NextToken:            response.NextToken,
	}
}

func (s *Service) dispatched(ctx context.Context, op operation, typeName string) {
	logrus.WithFields(logrus.Fields{
		"tool":      op.Name,
		"type_name": typeName,
	}).Debug("Calling remote API")

	if len(typeName) > 0 {
		s.notifier.Notify(ctx, LevelDebug, fmt.Sprintf("Calling %s for %s", op.Name, typeName))
	} else {
		s.notifier.Notify(ctx, LevelDebug, fmt.Sprintf("Calling %s", op.Name))
	}
}

// reportProgress reports an accepted mutation together with the token needed
// to poll or cancel it.
func (s *Service) reportProgress(ctx context.Context, event models.ProgressEvent) {
	message := fmt.Sprintf("%s %s for %s (request token: %s)",
		derefOr(event.Operation, "UNKNOWN"),
		derefOr(event.OperationStatus, "UNKNOWN"),
		derefOr(event.TypeName, "unknown type"),
		derefOr(event.RequestToken, "none"),
	)

	logrus.WithFields(logrus.Fields{
		"operation":     derefOr(event.Operation, ""),
		"status":        derefOr(event.OperationStatus, ""),
		"request_token": derefOr(event.RequestToken, ""),
	}).Info("Resource request accepted")

	s.notifier.Notify(ctx, LevelInfo, message)
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
