// AngelaMos | 2026
// entity.go

package user

import "time"

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Role         string    `db:"role"`
	IsVerified   bool      `db:"is_verified"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Counts holds the dependent-record totals shown on the detail view.
type Counts struct {
	Bookings int `db:"bookings" json:"bookings"`
	Reviews  int `db:"reviews"  json:"reviews"`
}

// ExportRow is a user flattened with its booking total.
type ExportRow struct {
	User
	Bookings int `db:"bookings"`
}
