// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/turisgal/backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
	Counts(ctx context.Context, id string) (Counts, error)
	List(ctx context.Context, params ListParams) ([]User, int, error)
	Export(ctx context.Context, filter Filter) ([]ExportRow, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name, role,
	is_verified, created_at, updated_at`

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, role, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Role,
		user.IsVerified,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, role = $5,
		    is_verified = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &user.UpdatedAt, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Role,
		user.IsVerified,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("update user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return core.RowsAffected(result, "update password")
}

// Delete removes the user unless a booking references it. A blocked
// delete of an existing user yields core.ErrConflict.
func (r *repository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM users
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM bookings WHERE user_id = $1)`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("delete user: %w", core.ErrConflict)
		}
		return fmt.Errorf("delete user: %w", err)
	}

	err = core.RowsAffected(result, "delete user")
	if !errors.Is(err, core.ErrNotFound) {
		return err
	}

	if _, getErr := r.GetByID(ctx, id); getErr == nil {
		return fmt.Errorf("delete user: %w", core.ErrConflict)
	}
	return err
}

func (r *repository) Counts(ctx context.Context, id string) (Counts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM bookings WHERE user_id = $1) AS bookings,
			(SELECT COUNT(*) FROM reviews WHERE user_id = $1) AS reviews`

	var counts Counts
	if err := r.db.GetContext(ctx, &counts, query, id); err != nil {
		return Counts{}, fmt.Errorf("count user relations: %w", err)
	}

	return counts, nil
}

func (f Filter) where() *core.Where {
	w := &core.Where{}
	w.Search(f.Search, "u.first_name", "u.last_name", "u.email")
	if f.Role != "" {
		w.Eq("u.role", f.Role)
	}
	if f.Verified != nil {
		w.Eq("u.is_verified", *f.Verified)
	}
	w.Range("u.created_at", f.Created)
	return w
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]User, int, error) {
	params.Normalize()
	w := params.where()

	countQuery := `SELECT COUNT(*) FROM users u ` + w.SQL()
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, w.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name, u.role,
		       u.is_verified, u.created_at, u.updated_at
		FROM users u
		%s
		ORDER BY u.created_at DESC
		LIMIT %s OFFSET %s`,
		w.SQL(), w.Arg(params.Limit), w.Arg(params.Offset()))

	users := []User{}
	if err := r.db.SelectContext(ctx, &users, query, w.Args()...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

func (r *repository) Export(ctx context.Context, filter Filter) ([]ExportRow, error) {
	w := filter.where()

	query := `
		SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name, u.role,
		       u.is_verified, u.created_at, u.updated_at,
		       (SELECT COUNT(*) FROM bookings b WHERE b.user_id = u.id) AS bookings
		FROM users u
		` + w.SQL() + `
		ORDER BY u.created_at DESC`

	rows := []ExportRow{}
	if err := r.db.SelectContext(ctx, &rows, query, w.Args()...); err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}

	return rows, nil
}
