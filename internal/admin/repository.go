// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/turisgal/backend/internal/core"
)

// Totals are the headline counters shown on the dashboard.
type Totals struct {
	Users            int `db:"users"             json:"users"`
	VerifiedUsers    int `db:"verified_users"    json:"verifiedUsers"`
	Owners           int `db:"owners"            json:"owners"`
	Properties       int `db:"properties"        json:"properties"`
	ActiveProperties int `db:"active_properties" json:"activeProperties"`
	Rooms            int `db:"rooms"             json:"rooms"`
	Bookings         int `db:"bookings"          json:"bookings"`
}

type Repository interface {
	Totals(ctx context.Context) (*Totals, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Totals(ctx context.Context) (_ *Totals, err error) {
	ctx, end := core.StartSpan(ctx, "admin.totals")
	defer func() { end(err) }()

	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM users WHERE is_verified) AS verified_users,
			(SELECT COUNT(*) FROM property_owners) AS owners,
			(SELECT COUNT(*) FROM properties) AS properties,
			(SELECT COUNT(*) FROM properties WHERE is_active) AS active_properties,
			(SELECT COUNT(*) FROM rooms) AS rooms,
			(SELECT COUNT(*) FROM bookings) AS bookings`

	var totals Totals
	if err = r.db.GetContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("get dashboard totals: %w", err)
	}

	return &totals, nil
}
