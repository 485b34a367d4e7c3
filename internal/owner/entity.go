// AngelaMos | 2026
// entity.go

package owner

import (
	"database/sql/driver"
	"time"

	"github.com/turisgal/backend/internal/core"
)

type Owner struct {
	ID           string       `db:"id"`
	Email        string       `db:"email"`
	PasswordHash string       `db:"password_hash"`
	ContactName  string       `db:"contact_name"`
	CompanyName  *string      `db:"company_name"`
	Phone        *string      `db:"phone"`
	TaxID        *string      `db:"tax_id"`
	Role         string       `db:"role"`
	Permissions  *Permissions `db:"permissions"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

// Permissions is the owner's capability set stored as jsonb.
type Permissions struct {
	CanManageProperties bool `json:"canManageProperties"`
	CanViewReports      bool `json:"canViewReports"`
	CanManageBookings   bool `json:"canManageBookings"`
}

type permissionsAlias Permissions

// UnmarshalJSON also accepts the permissions object sent as a JSON string.
func (p *Permissions) UnmarshalJSON(data []byte) error {
	return core.DecodeLenientJSON(data, (*permissionsAlias)(p))
}

func (p *Permissions) Scan(src any) error {
	return core.ScanJSON(src, (*permissionsAlias)(p))
}

func (p Permissions) Value() (driver.Value, error) {
	return core.JSONValue(permissionsAlias(p))
}

type Counts struct {
	Properties         int `db:"properties"           json:"properties"`
	VerifiedCheckIns   int `db:"verified_check_ins"   json:"verifiedCheckIns"`
	ProcessedCheckOuts int `db:"processed_check_outs" json:"processedCheckOuts"`
}

// PropertySummary is an owned property as embedded in owner listings.
type PropertySummary struct {
	ID           string `db:"id"            json:"id"`
	OwnerID      string `db:"owner_id"      json:"-"`
	Name         string `db:"name"          json:"name"`
	PropertyType string `db:"property_type" json:"propertyType"`
	IsActive     bool   `db:"is_active"     json:"isActive"`
}

type PropertyCounts struct {
	Rooms    int `db:"rooms"    json:"rooms"`
	Bookings int `db:"bookings" json:"bookings"`
	Reviews  int `db:"reviews"  json:"reviews"`
}

// PropertyDetail is an owned property as embedded in the owner detail view.
type PropertyDetail struct {
	ID             string    `db:"id"            json:"id"`
	Name           string    `db:"name"          json:"name"`
	PropertyType   string    `db:"property_type" json:"propertyType"`
	IsActive       bool      `db:"is_active"     json:"isActive"`
	CreatedAt      time.Time `db:"created_at"    json:"createdAt"`
	PropertyCounts `json:"_count"`
}

type listRow struct {
	Owner
	Counts
}

type ExportRow struct {
	Owner
	Properties int `db:"properties"`
}
