package models

// ProgressEvent is the status record of one asynchronous Cloud Control
// mutation. Every field is nullable and rendered as null when the remote
// response omits it.
type ProgressEvent struct {
	EventTime       *string `json:"EventTime"`
	TypeName        *string `json:"TypeName"`
	OperationStatus *string `json:"OperationStatus"`
	Operation       *string `json:"Operation"`
	Identifier      *string `json:"Identifier"`
	RequestToken    *string `json:"RequestToken"`
	StatusMessage   *string `json:"StatusMessage"`
}

// ProgressEventResult is returned by create, update, delete, status and
// cancel operations.
type ProgressEventResult struct {
	ProgressEvent ProgressEvent `json:"ProgressEvent"`
}

// ResourceDescription is a resource identifier with its parsed properties.
type ResourceDescription struct {
	Identifier *string `json:"Identifier"`
	Properties any     `json:"Properties"`
}

type GetResourceResult struct {
	TypeName            *string             `json:"TypeName"`
	ResourceDescription ResourceDescription `json:"ResourceDescription"`
}

type ListResourcesResult struct {
	TypeName             *string               `json:"TypeName"`
	ResourceDescriptions []ResourceDescription `json:"ResourceDescriptions"`
	NextToken            *string               `json:"NextToken,omitempty"`
}

type ListResourceRequestsResult struct {
	ResourceRequestStatusSummaries []ProgressEvent `json:"ResourceRequestStatusSummaries"`
	NextToken                      *string         `json:"NextToken,omitempty"`
}
