package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	"github.com/sirupsen/logrus"

	"github.com/thand-io/cloudcontrol-mcp/internal/common"
	"github.com/thand-io/cloudcontrol-mcp/internal/models"
	"github.com/thand-io/cloudcontrol-mcp/internal/providers/aws"
)

const (
	cloudControlAPI   = "AWS CloudControl API"
	cloudFormationAPI = "AWS CloudFormation API"
)

// operation names a tool for logs and error messages.
type operation struct {
	Name   string
	Action string
	API    string
}

var (
	opCreateResource           = operation{"create_resource", "creating resource", cloudControlAPI}
	opGetResource              = operation{"get_resource", "getting resource", cloudControlAPI}
	opUpdateResource           = operation{"update_resource", "updating resource", cloudControlAPI}
	opDeleteResource           = operation{"delete_resource", "deleting resource", cloudControlAPI}
	opListResources            = operation{"list_resources", "listing resources", cloudControlAPI}
	opGetResourceRequestStatus = operation{"get_resource_request_status", "getting resource request status", cloudControlAPI}
	opCancelResourceRequest    = operation{"cancel_resource_request", "canceling resource request", cloudControlAPI}
	opListResourceRequests     = operation{"list_resource_requests", "listing resource requests", cloudControlAPI}
	opListResourceTypes        = operation{"list_resource_types", "listing resource types", cloudFormationAPI}
)

type FailureKind string

const (
	// The client handle is unavailable for the lifetime of the process
	FailurePrecondition FailureKind = "precondition"
	// AWS returned a structured API error
	FailureRemote FailureKind = "remote"
	// Anything else: bad input, decode failures, unexpected errors
	FailureLocal FailureKind = "local"
)

// ClassifyError maps err onto the three failure kinds.
func ClassifyError(err error) FailureKind {
	var notInitialized *aws.NotInitializedError
	var apiErr smithy.APIError

	switch {
	case errors.As(err, &notInitialized):
		return FailurePrecondition
	case errors.As(err, &apiErr):
		return FailureRemote
	}
	return FailureLocal
}

func (op operation) message(err error) string {
	switch ClassifyError(err) {
	case FailurePrecondition:
		var notInitialized *aws.NotInitializedError
		errors.As(err, &notInitialized)
		return notInitialized.Error()
	case FailureRemote:
		return fmt.Sprintf("%s error: %v", op.API, err)
	}
	return fmt.Sprintf("Error %s: %v", op.Action, err)
}

// fail logs err, reports it to the notifier and converts it to the uniform
// error result.
func (s *Service) fail(ctx context.Context, op operation, err error) models.ErrorResult {
	message := op.message(err)

	logrus.WithError(err).WithFields(logrus.Fields{
		"tool": op.Name,
		"kind": ClassifyError(err),
	}).Error(message)

	s.notifier.Notify(ctx, LevelError, message)

	return models.NewErrorResult(message)
}

// requireFields returns an error naming every blank required field.
func requireFields(fields map[string]string) error {
	var missing []error
	for _, name := range sortedKeys(fields) {
		if common.IsBlank(fields[name]) {
			missing = append(missing, fmt.Errorf("%s is required", name))
		}
	}
	return errors.Join(missing...)
}

var operations = map[string]operation{
	opCreateResource.Name:           opCreateResource,
	opGetResource.Name:              opGetResource,
	opUpdateResource.Name:           opUpdateResource,
	opDeleteResource.Name:           opDeleteResource,
	opListResources.Name:            opListResources,
	opGetResourceRequestStatus.Name: opGetResourceRequestStatus,
	opCancelResourceRequest.Name:    opCancelResourceRequest,
	opListResourceRequests.Name:     opListResourceRequests,
	opListResourceTypes.Name:        opListResourceTypes,
}

// OperationNames lists every tool the service implements, sorted.
func OperationNames() []string {
	return sortedKeys(operations)
}

// RejectArguments reports arguments the host could not decode for tool as a
// local failure of that tool.
func (s *Service) RejectArguments(ctx context.Context, tool string, err error) models.ErrorResult {
	op, ok := operations[tool]
	if !ok {
		op = operation{Name: tool, Action: "calling " + tool, API: cloudControlAPI}
	}
	// an unavailable client outranks bad input
	if preconditionErr := s.precondition(op); preconditionErr != nil {
		return s.fail(ctx, op, preconditionErr)
	}
	return s.fail(ctx, op, fmt.Errorf("invalid arguments: %w", err))
}

func (s *Service) precondition(op operation) error {
	if op.API == cloudFormationAPI {
		_, err := s.clients.TypeRegistry.Client()
		return err
	}
	_, err := s.clients.CloudControl.Client()
	return err
}
