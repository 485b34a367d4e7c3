// AngelaMos | 2026
// jsonb.go

package core

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ScanJSON decodes a jsonb column value into dst.
func ScanJSON(src, dst any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan json: unsupported type %T", src)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("scan json: %w", err)
	}
	return nil
}

// JSONValue encodes v for a jsonb column.
func JSONValue(v any) (driver.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return raw, nil
}

// DecodeLenientJSON decodes data into dst, first unwrapping it when the
// client sent the JSON document as a quoted string.
func DecodeLenientJSON(data []byte, dst any) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return err
		}
		data = []byte(inner)
	}
	return json.Unmarshal(data, dst)
}
