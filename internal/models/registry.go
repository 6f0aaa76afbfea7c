package models

// TypeSummary describes one extension registered in the CloudFormation
// registry. PublisherProfile, SourceUrl and DocumentationUrl are never
// filled by ListTypes; they stay in the shape as null.
type TypeSummary struct {
	TypeName            *string `json:"TypeName"`
	TypeArn             *string `json:"TypeArn"`
	Description         *string `json:"Description"`
	ProvisioningType    *string `json:"ProvisioningType"`
	DeprecatedStatus    *string `json:"DeprecatedStatus"`
	DefaultVersionId    *string `json:"DefaultVersionId"`
	PublicVersionNumber *string `json:"PublicVersionNumber"`
	PublisherId         *string `json:"PublisherId"`
	PublisherName       *string `json:"PublisherName"`
	PublisherIdentity   *string `json:"PublisherIdentity"`
	OriginalTypeName    *string `json:"OriginalTypeName"`
	LastUpdated         *string `json:"LastUpdated"`
	LatestPublicVersion *string `json:"LatestPublicVersion"`
	PublisherProfile    *string `json:"PublisherProfile"`
	IsActivated         *bool   `json:"IsActivated"`
	Visibility          *string `json:"Visibility"`
	SourceUrl           *string `json:"SourceUrl"`
	DocumentationUrl    *string `json:"DocumentationUrl"`
	Type                *string `json:"Type"`
}

type ListResourceTypesResult struct {
	TypeSummaries []TypeSummary `json:"TypeSummaries"`
	NextToken     *string       `json:"NextToken,omitempty"`
}
