// AngelaMos | 2026
// types.go

package property

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/turisgal/backend/internal/core"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address is the jsonb postal address of a property.
type Address struct {
	Street      string       `json:"street,omitempty"`
	City        string       `json:"city"              validate:"required"`
	State       string       `json:"state,omitempty"`
	Country     string       `json:"country"           validate:"required"`
	ZipCode     string       `json:"zipCode,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type addressAlias Address

// UnmarshalJSON also accepts the address sent as a JSON string.
func (a *Address) UnmarshalJSON(data []byte) error {
	return core.DecodeLenientJSON(data, (*addressAlias)(a))
}

func (a *Address) Scan(src any) error {
	return core.ScanJSON(src, (*addressAlias)(a))
}

func (a Address) Value() (driver.Value, error) {
	return core.JSONValue(addressAlias(a))
}

// StringList is a jsonb array of strings, used for amenities and images.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := core.DecodeLenientJSON(data, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

func (l *StringList) Scan(src any) error {
	var items []string
	if err := core.ScanJSON(src, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return core.JSONValue([]string{})
	}
	return core.JSONValue([]string(l))
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"15:04:05",
	"15:04",
}

// Timestamp is a request time that tolerates the zone-less layouts the
// dashboard sends for check-in and check-out. An empty string decodes
// to the zero time.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			if parsed.Year() == 0 {
				parsed = parsed.AddDate(1970, 0, 0)
			}
			t.Time = parsed
			return nil
		}
	}

	return fmt.Errorf("invalid timestamp %q", raw)
}

// Ptr returns nil for the zero time.
func (t *Timestamp) Ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}
