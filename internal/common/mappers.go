package common

import (
	"encoding/json"
)

// ConvertMapToInterface decodes a generic JSON object into i through a JSON
// round trip, so i's json tags and Unmarshalers apply. A nil map decodes as
// an empty object.
func ConvertMapToInterface(m map[string]any, i any) error {
	if m == nil {
		m = map[string]any{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, i)
}
