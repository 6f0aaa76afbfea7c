package tools

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"

	"github.com/thand-io/cloudcontrol-mcp/internal/common"
	"github.com/thand-io/cloudcontrol-mcp/internal/models"
)

// TypeFilters mirrors the CloudFormation registry filter shape.
type TypeFilters struct {
	Category       string `json:"Category,omitempty"`
	PublisherId    string `json:"PublisherId,omitempty"`
	TypeNamePrefix string `json:"TypeNamePrefix,omitempty"`
}

type ListResourceTypesArgs struct {
	Filters          *TypeFilters `json:"filters,omitempty"`
	Visibility       string       `json:"visibility,omitempty"`
	ProvisioningType string       `json:"provisioning_type,omitempty"`
	DeprecatedStatus string       `json:"deprecated_status,omitempty"`
	Type             string       `json:"type,omitempty"`
	NextToken        string       `json:"next_token,omitempty"`
	MaxResults       *int32       `json:"max_results,omitempty"`
}

// ListResourceTypes lists extensions registered in the CloudFormation registry.
func (s *Service) ListResourceTypes(ctx context.Context, args ListResourceTypesArgs) any {
	op := opListResourceTypes

	client, err := s.clients.TypeRegistry.Client()
	if err != nil {
		return s.fail(ctx, op, err)
	}

	input, err := args.toSDK()
	if err != nil {
		return s.fail(ctx, op, err)
	}

	s.dispatched(ctx, op, "")

	response, err := invoke(ctx, op, func(ctx context.Context) (*cloudformation.ListTypesOutput, error) {
		return client.ListTypes(ctx, input)
	})
	if err != nil {
		return s.fail(ctx, op, err)
	}

	summaries := make([]models.TypeSummary, 0, len(response.TypeSummaries))
	for _, summary := range response.TypeSummaries {
		summaries = append(summaries, toTypeSummary(summary, input))
	}

	return models.ListResourceTypesResult{
		TypeSummaries: summaries,
		NextToken:     response.NextToken,
	}
}

func (a ListResourceTypesArgs) toSDK() (*cloudformation.ListTypesInput, error) {
	if err := validateMaxResults(a.MaxResults); err != nil {
		return nil, err
	}

	visibility, err := parseEnum("visibility", a.Visibility, cftypes.Visibility("").Values())
	if err != nil {
		return nil, err
	}

	provisioningType, err := parseEnum("provisioning_type", a.ProvisioningType, cftypes.ProvisioningType("").Values())
	if err != nil {
		return nil, err
	}

	deprecatedStatus, err := parseEnum("deprecated_status", a.DeprecatedStatus, cftypes.DeprecatedStatus("").Values())
	if err != nil {
		return nil, err
	}

	registryType, err := parseEnum("type", a.Type, cftypes.RegistryType("").Values())
	if err != nil {
		return nil, err
	}

	input := &cloudformation.ListTypesInput{
		Visibility:       visibility,
		ProvisioningType: provisioningType,
		DeprecatedStatus: deprecatedStatus,
		Type:             registryType,
		NextToken:        common.StringOrNil(a.NextToken),
		MaxResults:       a.MaxResults,
	}

	if a.Filters != nil {
		category, err := parseEnum("filters.Category", a.Filters.Category, cftypes.Category("").Values())
		if err != nil {
			return nil, err
		}

		input.Filters = &cftypes.TypeFilters{
			Category:       category,
			PublisherId:    common.StringOrNil(a.Filters.PublisherId),
			TypeNamePrefix: common.StringOrNil(a.Filters.TypeNamePrefix),
		}
	}

	return input, nil
}

// toTypeSummary flattens a registry summary. The summary itself carries no
// visibility, provisioning or deprecation fields; when the request filtered
// on one of them every returned type matches it, so the filter value is
// reported, otherwise null.
func toTypeSummary(summary cftypes.TypeSummary, input *cloudformation.ListTypesInput) models.TypeSummary {
	return models.TypeSummary{
		TypeName:            summary.TypeName,
		TypeArn:             summary.TypeArn,
		Description:         summary.Description,
		ProvisioningType:    common.EnumOrNil(input.ProvisioningType),
		DeprecatedStatus:    common.EnumOrNil(input.DeprecatedStatus),
		DefaultVersionId:    summary.DefaultVersionId,
		PublicVersionNumber: summary.PublicVersionNumber,
		PublisherId:         summary.PublisherId,
		PublisherName:       summary.PublisherName,
		PublisherIdentity:   common.EnumOrNil(summary.PublisherIdentity),
		OriginalTypeName:    summary.OriginalTypeName,
		LastUpdated:         FormatTime(summary.LastUpdated),
		LatestPublicVersion: summary.LatestPublicVersion,
		IsActivated:         summary.IsActivated,
		Visibility:          common.EnumOrNil(input.Visibility),
		Type:                common.EnumOrNil(summary.Type),
	}
}
