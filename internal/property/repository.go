// AngelaMos | 2026
// repository.go

package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/turisgal/backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, property *Property) error
	GetByID(ctx context.Context, id string) (*Property, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	GetDetail(ctx context.Context, id string) (*Detail, error)
	Update(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id string) error
	CountBookings(ctx context.Context, id string) (int, error)
	List(ctx context.Context, params ListParams) ([]Item, int, error)
	Export(ctx context.Context, filter Filter) ([]ExportRow, error)
	Stats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const propertyColumns = `p.id, p.owner_id, p.name, p.description, p.property_type,
	p.address, p.total_rooms, p.max_guests, p.amenities, p.house_rules,
	p.check_in_time, p.check_out_time, p.qr_code_data, p.images, p.is_active,
	p.created_at, p.updated_at`

const itemColumns = propertyColumns + `,
	o.id AS "owner.id",
	o.contact_name AS "owner.contact_name",
	o.email AS "owner.email",
	o.company_name AS "owner.company_name",
	(SELECT COUNT(*) FROM rooms rm WHERE rm.property_id = p.id) AS rooms,
	(SELECT COUNT(*) FROM bookings b WHERE b.property_id = p.id) AS bookings,
	(SELECT COUNT(*) FROM reviews rv WHERE rv.property_id = p.id) AS reviews`

const recentLimit = 5

func (r *repository) Create(ctx context.Context, property *Property) error {
	query := `
		INSERT INTO properties
			(id, owner_id, name, description, property_type, address, total_rooms,
			 max_guests, amenities, house_rules, check_in_time, check_out_time,
			 qr_code_data, images, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		property.ID,
		property.OwnerID,
		property.Name,
		property.Description,
		property.PropertyType,
		property.Address,
		property.TotalRooms,
		property.MaxGuests,
		property.Amenities,
		property.HouseRules,
		property.CheckInTime,
		property.CheckOutTime,
		property.QRCodeData,
		property.Images,
		property.IsActive,
	).Scan(&property.CreatedAt, &property.UpdatedAt)
	if err != nil {
		switch {
		case core.IsDuplicateKeyError(err):
			return fmt.Errorf("create property: %w", core.ErrDuplicateKey)
		case core.IsForeignKeyError(err):
			return fmt.Errorf("create property: owner does not exist: %w", core.ErrInvalidInput)
		}
		return fmt.Errorf("create property: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties p WHERE p.id = $1`

	var property Property
	err := r.db.GetContext(ctx, &property, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get property: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}

	return &property, nil
}

func (r *repository) GetItem(ctx context.Context, id string) (*Item, error) {
	query := `
		SELECT ` + itemColumns + `, o.phone AS "owner.phone"
		FROM properties p
		JOIN property_owners o ON o.id = p.owner_id
		WHERE p.id = $1`

	var item Item
	err := r.db.GetContext(ctx, &item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get property: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}

	rooms, err := r.rooms(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	item.RoomList = rooms[id]

	return &item, nil
}

func (r *repository) GetDetail(ctx context.Context, id string) (*Detail, error) {
	item, err := r.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	bookingsQuery := `
		SELECT b.id, b.check_in_date, b.check_out_date, b.guests, b.total_price,
		       b.status, b.created_at,
		       u.first_name AS "user.first_name",
		       u.last_name AS "user.last_name",
		       u.email AS "user.email"
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.property_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2`

	bookings := []RecentBooking{}
	if err := r.db.SelectContext(ctx, &bookings, bookingsQuery, id, recentLimit); err != nil {
		return nil, fmt.Errorf("recent bookings: %w", err)
	}

	reviewsQuery := `
		SELECT rv.id, rv.rating, rv.comment, rv.created_at,
		       u.first_name AS "user.first_name",
		       u.last_name AS "user.last_name"
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.property_id = $1
		ORDER BY rv.created_at DESC
		LIMIT $2`

	reviews := []RecentReview{}
	if err := r.db.SelectContext(ctx, &reviews, reviewsQuery, id, recentLimit); err != nil {
		return nil, fmt.Errorf("recent reviews: %w", err)
	}

	return &Detail{Item: *item, RecentBookings: bookings, RecentReviews: reviews}, nil
}

func (r *repository) Update(ctx context.Context, property *Property) error {
	query := `
		UPDATE properties
		SET name = $2, description = $3, property_type = $4, address = $5,
		    total_rooms = $6, max_guests = $7, amenities = $8, house_rules = $9,
		    check_in_time = $10, check_out_time = $11, images = $12,
		    is_active = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &property.UpdatedAt, query,
		property.ID,
		property.Name,
		property.Description,
		property.PropertyType,
		property.Address,
		property.TotalRooms,
		property.MaxGuests,
		property.Amenities,
		property.HouseRules,
		property.CheckInTime,
		property.CheckOutTime,
		property.Images,
		property.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update property: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}

	return nil
}

// Delete removes the property and its rooms unless a booking references it.
func (r *repository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM properties
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM bookings WHERE property_id = $1)`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("delete property: %w", core.ErrConflict)
		}
		return fmt.Errorf("delete property: %w", err)
	}

	err = core.RowsAffected(result, "delete property")
	if !errors.Is(err, core.ErrNotFound) {
		return err
	}

	if _, getErr := r.GetByID(ctx, id); getErr == nil {
		return fmt.Errorf("delete property: %w", core.ErrConflict)
	}
	return err
}

func (r *repository) CountBookings(ctx context.Context, id string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM bookings WHERE property_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("count property bookings: %w", err)
	}
	return n, nil
}

func (f Filter) where() *core.Where {
	w := &core.Where{}
	w.Search(f.Search, "p.name", "p.description", "p.property_type")
	if f.PropertyType != "" {
		w.Eq("p.property_type", f.PropertyType)
	}
	if f.IsActive != nil {
		w.Eq("p.is_active", *f.IsActive)
	}
	if f.OwnerID != "" {
		w.Eq("p.owner_id", f.OwnerID)
	}
	w.Range("p.created_at", f.Created)
	return w
}

func (r *repository) List(ctx context.Context, params ListParams) ([]Item, int, error) {
	params.Normalize()
	w := params.where()

	countQuery := `SELECT COUNT(*) FROM properties p ` + w.SQL()
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, w.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM properties p
		JOIN property_owners o ON o.id = p.owner_id
		%s
		ORDER BY p.created_at DESC
		LIMIT %s OFFSET %s`,
		itemColumns, w.SQL(), w.Arg(params.Limit), w.Arg(params.Offset()))

	items := []Item{}
	if err := r.db.SelectContext(ctx, &items, query, w.Args()...); err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}

	ids := make([]string, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].ID)
	}

	rooms, err := r.rooms(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].RoomList = rooms[items[i].ID]
	}

	return items, total, nil
}

// rooms loads the rooms of every listed property in one query, ordered
// by room number.
func (r *repository) rooms(ctx context.Context, propertyIDs []string) (map[string][]Room, error) {
	out := make(map[string][]Room, len(propertyIDs))
	if len(propertyIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, property_id, room_number, room_type, max_guests,
		       price_per_night, qr_code_data, is_available, created_at
		FROM rooms
		WHERE property_id IN (?)
		ORDER BY room_number`, propertyIDs)
	if err != nil {
		return nil, fmt.Errorf("build rooms query: %w", err)
	}

	rooms := []Room{}
	if err := r.db.SelectContext(ctx, &rooms, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	for _, room := range rooms {
		out[room.PropertyID] = append(out[room.PropertyID], room)
	}

	return out, nil
}

func (r *repository) Export(ctx context.Context, filter Filter) ([]ExportRow, error) {
	w := filter.where()

	query := `
		SELECT ` + propertyColumns + `,
		       o.contact_name AS owner_contact_name,
		       o.email AS owner_email,
		       o.company_name AS owner_company_name,
		       (SELECT COUNT(*) FROM rooms rm WHERE rm.property_id = p.id) AS rooms,
		       (SELECT COUNT(*) FROM bookings b WHERE b.property_id = p.id) AS bookings,
		       (SELECT COUNT(*) FROM reviews rv WHERE rv.property_id = p.id) AS reviews
		FROM properties p
		JOIN property_owners o ON o.id = p.owner_id
		` + w.SQL() + `
		ORDER BY p.created_at DESC`

	rows := []ExportRow{}
	if err := r.db.SelectContext(ctx, &rows, query, w.Args()...); err != nil {
		return nil, fmt.Errorf("export properties: %w", err)
	}

	return rows, nil
}

func (r *repository) Stats(ctx context.Context) (_ *Stats, err error) {
	ctx, end := core.StartSpan(ctx, "property.stats")
	defer func() { end(err) }()

	totalsQuery := `
		SELECT
			(SELECT COUNT(*) FROM properties) AS total_properties,
			(SELECT COUNT(*) FROM properties WHERE is_active) AS active_properties,
			(SELECT COUNT(*) FROM properties WHERE NOT is_active) AS inactive_properties,
			(SELECT COUNT(*) FROM rooms) AS total_rooms,
			(SELECT COUNT(*) FROM rooms WHERE is_available) AS available_rooms`

	var stats Stats
	if err = r.db.GetContext(ctx, &stats, totalsQuery); err != nil {
		return nil, fmt.Errorf("property totals: %w", err)
	}

	byType := []TypeCount{}
	err = r.db.SelectContext(ctx, &byType, `
		SELECT property_type AS type, COUNT(*) AS count
		FROM properties
		GROUP BY property_type
		ORDER BY count DESC, property_type`)
	if err != nil {
		return nil, fmt.Errorf("properties by type: %w", err)
	}
	stats.PropertiesByType = byType

	top := []TopProperty{}
	err = r.db.SelectContext(ctx, &top, `
		SELECT p.id, p.name, COUNT(b.id) AS bookings_count
		FROM properties p
		LEFT JOIN bookings b ON b.property_id = p.id
		GROUP BY p.id, p.name
		ORDER BY bookings_count DESC, p.name
		LIMIT $1`, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("top properties: %w", err)
	}
	stats.TopProperties = top

	return &stats, nil
}
