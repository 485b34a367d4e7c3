// AngelaMos | 2026
// owners.go

package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/turisgal/backend/internal/core"
)

// OwnerDirectory resolves the property owner a caller acts as.
type OwnerDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
	// ForUser returns the owner sharing the user's email, creating it
	// from the user account when there is none. ErrNotFound means the
	// user does not exist.
	ForUser(ctx context.Context, userID string) (string, error)
}

// TxFunc runs fn with a repository and directory bound to one transaction.
type TxFunc func(ctx context.Context, fn func(Repository, OwnerDirectory) error) error

// NewTxFunc runs each call inside its own database transaction.
func NewTxFunc(db *sqlx.DB) TxFunc {
	return func(ctx context.Context, fn func(Repository, OwnerDirectory) error) error {
		return core.InTx(ctx, db, func(tx *sqlx.Tx) error {
			return fn(NewRepository(tx), NewOwnerDirectory(tx))
		})
	}
}

const provisionedPermissions = `{"canManageProperties":true,"canViewReports":true,"canManageBookings":true}`

type ownerDirectory struct {
	db core.DBTX
}

func NewOwnerDirectory(db core.DBTX) OwnerDirectory {
	return &ownerDirectory{db: db}
}

func (d *ownerDirectory) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := d.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM property_owners WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("owner exists: %w", err)
	}
	return exists, nil
}

// ForUser upserts on the owner email so concurrent creates by the same
// user converge on one owner row.
func (d *ownerDirectory) ForUser(ctx context.Context, userID string) (string, error) {
	query := `
		INSERT INTO property_owners (id, email, password_hash, contact_name, role, permissions)
		SELECT $2, u.email, u.password_hash, TRIM(u.first_name || ' ' || u.last_name), 'OWNER', $3::jsonb
		FROM users u
		WHERE u.id = $1
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id`

	var ownerID string
	err := d.db.GetContext(ctx, &ownerID, query, userID, uuid.New().String(), provisionedPermissions)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("owner for user: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("owner for user: %w", err)
	}

	return ownerID, nil
}
