package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeID reads a record id stored as a JSON string or number. Records
// written by the browser dashboard carry millisecond timestamps as ids.
func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decoding id: %w", err)
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("decoding id %s: %w", raw, err)
	}
	return n.String(), nil
}
