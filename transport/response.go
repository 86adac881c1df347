package transport

import (
	"encoding/json"
	"fmt"
)

// DecodeJSON unmarshals the body into v.
func (r *RawResponse) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode %d response: %w", r.StatusCode, err)
	}
	return nil
}
