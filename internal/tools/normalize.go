package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	cctypes "github.com/aws/aws-sdk-go-v2/service/cloudcontrol/types"

	"github.com/thand-io/cloudcontrol-mcp/internal/common"
	"github.com/thand-io/cloudcontrol-mcp/internal/models"
)

var errNoProgressEvent = errors.New("response did not include a progress event")

// FormatTime renders AWS timestamps as ISO-8601 text, nil when absent.
func FormatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339Nano)
	return &formatted
}

func toProgressEvent(event cctypes.ProgressEvent) models.ProgressEvent {
	return models.ProgressEvent{
		EventTime:       FormatTime(event.EventTime),
		TypeName:        event.TypeName,
		OperationStatus: common.EnumOrNil(event.OperationStatus),
		Operation:       common.EnumOrNil(event.Operation),
		Identifier:      event.Identifier,
		RequestToken:    event.RequestToken,
		StatusMessage:   event.StatusMessage,
	}
}

func toProgressEventResult(event *cctypes.ProgressEvent) (models.ProgressEventResult, error) {
	if event == nil {
		return models.ProgressEventResult{}, errNoProgressEvent
	}
	return models.ProgressEventResult{
		ProgressEvent: toProgressEvent(*event),
	}, nil
}

// ParseProperties decodes a resource's Properties JSON text. A missing
// value decodes to an empty object.
func ParseProperties(properties *string) (any, error) {
	if properties == nil {
		return map[string]any{}, nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(*properties), &parsed); err != nil {
		return nil, fmt.Errorf("invalid resource properties: %w", err)
	}
	return parsed, nil
}

// parseEnum validates value against an SDK enum, case-insensitively. Blank
// values yield the zero enum.
func parseEnum[T ~string](field, value string, values []T) (T, error) {
	var zero T

	value = strings.TrimSpace(value)
	if len(value) == 0 {
		return zero, nil
	}

	for _, candidate := range values {
		if strings.EqualFold(string(candidate), value) {
			return candidate, nil
		}
	}

	allowed := make([]string, 0, len(values))
	for _, candidate := range values {
		allowed = append(allowed, string(candidate))
	}
	slices.Sort(allowed)

	return zero, fmt.Errorf("invalid %s %q (allowed: %s)", field, value, strings.Join(allowed, ", "))
}

func parseEnums[T ~string](field string, values []string, allowed []T) ([]T, error) {
	if len(values) == 0 {
		return nil, nil
	}

	parsed := make([]T, 0, len(values))
	for _, value := range values {
		enum, err := parseEnum(field, value, allowed)
		if err != nil {
			return nil, err
		}
		if len(enum) > 0 {
			parsed = append(parsed, enum)
		}
	}
	return parsed, nil
}

func validateMaxResults(maxResults *int32) error {
	if maxResults != nil && *maxResults < 1 {
		return fmt.Errorf("max_results must be positive, got %d", *maxResults)
	}
	return nil
}
