// AngelaMos | 2026
// repository.go

package owner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/turisgal/backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, owner *Owner) error
	GetByID(ctx context.Context, id string) (*Owner, error)
	GetByEmail(ctx context.Context, email string) (*Owner, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, owner *Owner) error
	Delete(ctx context.Context, id string) error
	Counts(ctx context.Context, id string) (Counts, error)
	Properties(ctx context.Context, id string) ([]PropertyDetail, error)
	List(ctx context.Context, params ListParams) ([]ListItem, int, error)
	Export(ctx context.Context, filter Filter) ([]ExportRow, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const ownerColumns = `o.id, o.email, o.password_hash, o.contact_name, o.company_name,
	o.phone, o.tax_id, o.role, o.permissions, o.created_at, o.updated_at`

const countColumns = `
	(SELECT COUNT(*) FROM properties p WHERE p.owner_id = o.id) AS properties,
	(SELECT COUNT(*) FROM check_ins ci WHERE ci.verified_by_id = o.id) AS verified_check_ins,
	(SELECT COUNT(*) FROM check_outs co WHERE co.processed_by_id = o.id) AS processed_check_outs`

func (r *repository) Create(ctx context.Context, owner *Owner) error {
	query := `
		INSERT INTO property_owners
			(id, email, password_hash, contact_name, company_name, phone, tax_id, role, permissions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		owner.ID,
		owner.Email,
		owner.PasswordHash,
		owner.ContactName,
		owner.CompanyName,
		owner.Phone,
		owner.TaxID,
		owner.Role,
		owner.Permissions,
	).Scan(&owner.CreatedAt, &owner.UpdatedAt)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create owner: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create owner: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM property_owners o WHERE o.id = $1`

	var owner Owner
	err := r.db.GetContext(ctx, &owner, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get owner: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}

	return &owner, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM property_owners o WHERE o.email = $1`

	var owner Owner
	err := r.db.GetContext(ctx, &owner, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get owner by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get owner by email: %w", err)
	}

	return &owner, nil
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM property_owners WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("owner exists: %w", err)
	}
	return exists, nil
}

func (r *repository) Update(ctx context.Context, owner *Owner) error {
	query := `
		UPDATE property_owners
		SET contact_name = $2, company_name = $3, phone = $4, tax_id = $5,
		    permissions = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &owner.UpdatedAt, query,
		owner.ID,
		owner.ContactName,
		owner.CompanyName,
		owner.Phone,
		owner.TaxID,
		owner.Permissions,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update owner: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update owner: %w", err)
	}

	return nil
}

// Delete removes the owner unless a property still references it.
func (r *repository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM property_owners
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM properties WHERE owner_id = $1)`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("delete owner: %w", core.ErrConflict)
		}
		return fmt.Errorf("delete owner: %w", err)
	}

	err = core.RowsAffected(result, "delete owner")
	if !errors.Is(err, core.ErrNotFound) {
		return err
	}

	if exists, existsErr := r.Exists(ctx, id); existsErr == nil && exists {
		return fmt.Errorf("delete owner: %w", core.ErrConflict)
	}
	return err
}

func (r *repository) Counts(ctx context.Context, id string) (Counts, error) {
	query := `SELECT ` + countColumns + ` FROM property_owners o WHERE o.id = $1`

	var counts Counts
	err := r.db.GetContext(ctx, &counts, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Counts{}, fmt.Errorf("count owner relations: %w", core.ErrNotFound)
	}
	if err != nil {
		return Counts{}, fmt.Errorf("count owner relations: %w", err)
	}

	return counts, nil
}

func (r *repository) Properties(ctx context.Context, id string) ([]PropertyDetail, error) {
	query := `
		SELECT p.id, p.name, p.property_type, p.is_active, p.created_at,
		       (SELECT COUNT(*) FROM rooms rm WHERE rm.property_id = p.id) AS rooms,
		       (SELECT COUNT(*) FROM bookings b WHERE b.property_id = p.id) AS bookings,
		       (SELECT COUNT(*) FROM reviews rv WHERE rv.property_id = p.id) AS reviews
		FROM properties p
		WHERE p.owner_id = $1
		ORDER BY p.created_at DESC`

	props := []PropertyDetail{}
	if err := r.db.SelectContext(ctx, &props, query, id); err != nil {
		return nil, fmt.Errorf("list owner properties: %w", err)
	}

	return props, nil
}

func (f Filter) where() *core.Where {
	w := &core.Where{}
	w.Search(f.Search, "o.contact_name", "o.email", "o.company_name")
	w.Range("o.created_at", f.Created)
	return w
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]ListItem, int, error) {
	params.Normalize()
	w := params.where()

	countQuery := `SELECT COUNT(*) FROM property_owners o ` + w.SQL()
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, w.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count owners: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM property_owners o
		%s
		ORDER BY o.created_at DESC
		LIMIT %s OFFSET %s`,
		ownerColumns, countColumns, w.SQL(), w.Arg(params.Limit), w.Arg(params.Offset()))

	rows := []listRow{}
	if err := r.db.SelectContext(ctx, &rows, query, w.Args()...); err != nil {
		return nil, 0, fmt.Errorf("list owners: %w", err)
	}

	items := make([]ListItem, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		items = append(items, ListItem{Owner: row.Owner, Counts: row.Counts})
		ids = append(ids, row.ID)
	}

	byOwner, err := r.propertySummaries(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].Properties = byOwner[items[i].ID]
	}

	return items, total, nil
}

func (r *repository) propertySummaries(
	ctx context.Context,
	ownerIDs []string,
) (map[string][]PropertySummary, error) {
	out := make(map[string][]PropertySummary, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, owner_id, name, property_type, is_active
		FROM properties
		WHERE owner_id IN (?)
		ORDER BY created_at DESC`, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("build owner properties query: %w", err)
	}

	summaries := []PropertySummary{}
	if err := r.db.SelectContext(ctx, &summaries, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list owner properties: %w", err)
	}

	for _, s := range summaries {
		out[s.OwnerID] = append(out[s.OwnerID], s)
	}

	return out, nil
}

func (r *repository) Export(ctx context.Context, filter Filter) ([]ExportRow, error) {
	w := filter.where()

	query := `
		SELECT ` + ownerColumns + `,
		       (SELECT COUNT(*) FROM properties p WHERE p.owner_id = o.id) AS properties
		FROM property_owners o
		` + w.SQL() + `
		ORDER BY o.created_at DESC`

	rows := []ExportRow{}
	if err := r.db.SelectContext(ctx, &rows, query, w.Args()...); err != nil {
		return nil, fmt.Errorf("export owners: %w", err)
	}

	return rows, nil
}
