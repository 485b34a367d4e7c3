// AngelaMos | 2026
// repository_test.go

package property

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/turisgal/backend/internal/core"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "pgx"), mock
}

var propertyRowColumns = []string{
	"id", "owner_id", "name", "description", "property_type", "address",
	"total_rooms", "max_guests", "amenities", "house_rules", "check_in_time",
	"check_out_time", "qr_code_data", "images", "is_active", "created_at", "updated_at",
}

func propertyRow(id, ownerID string, created time.Time) []driver.Value {
	return []driver.Value{
		id, ownerID, "Hotel Ría de Arousa", nil, "Hotel",
		[]byte(`{"city":"Vilagarcía","country":"España"}`),
		12, 24, []byte(`["wifi","parking"]`), nil, nil,
		nil, "property_1_abc", nil, true, created, created,
	}
}

func TestListJoinsOwnerAndRooms(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	active := true
	where := "WHERE (p.name ILIKE $1 OR p.description ILIKE $1 OR p.property_type ILIKE $1)" +
		" AND p.property_type = $2 AND p.is_active = $3 AND p.owner_id = $4"
	filterArgs := []driver.Value{"%ría%", "Hotel", true, "o-1"}

	columns := append(append([]string{}, propertyRowColumns...),
		"owner.id", "owner.contact_name", "owner.email", "owner.company_name",
		"rooms", "bookings", "reviews")

	for _, page := range []struct {
		number int
		offset int
	}{{1, 0}, {4, 30}} {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM properties p " + where)).
			WithArgs(filterArgs...).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(31))

		mock.ExpectQuery(regexp.QuoteMeta(
			"FROM properties p JOIN property_owners o ON o.id = p.owner_id " + where +
				" ORDER BY p.created_at DESC LIMIT $5 OFFSET $6")).
			WithArgs(append(append([]driver.Value{}, filterArgs...), 10, page.offset)...).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(append(propertyRow("p-1", "o-1", created),
				"o-1", "Miguel Fernández", "miguel@x.es", nil, 2, 5, 1)...))

		mock.ExpectQuery(regexp.QuoteMeta("FROM rooms WHERE property_id IN ($1) ORDER BY room_number")).
			WithArgs("p-1").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "property_id", "room_number", "room_type", "max_guests",
				"price_per_night", "qr_code_data", "is_available", "created_at",
			}).
				AddRow("r-1", "p-1", "101", "Doble", 2, 85.5, "room_1_abc", true, created).
				AddRow("r-2", "p-1", "102", "Suite", 4, 140.0, "room_2_abc", false, created))

		items, total, err := repo.List(context.Background(), ListParams{
			Filter: Filter{
				Search:       "ría",
				PropertyType: "Hotel",
				IsActive:     &active,
				OwnerID:      "o-1",
			},
			PageParams: core.PageParams{Page: page.number, Limit: 10},
		})
		if err != nil {
			t.Fatalf("page %d: %v", page.number, err)
		}
		if total != 31 {
			t.Fatalf("page %d: expected total 31, got %d", page.number, total)
		}
		if len(items) != 1 {
			t.Fatalf("page %d: expected one item, got %d", page.number, len(items))
		}

		item := items[0]
		if item.Owner.ID != "o-1" || item.Owner.Email != "miguel@x.es" || item.Owner.CompanyName != nil {
			t.Fatalf("unexpected owner %+v", item.Owner)
		}
		if item.Bookings != 5 || item.Rooms != 2 {
			t.Fatalf("unexpected counts %+v", item.Counts)
		}
		if item.Address.City != "Vilagarcía" || item.Amenities == nil || len(*item.Amenities) != 2 {
			t.Fatalf("unexpected jsonb fields %+v %v", item.Address, item.Amenities)
		}
		if len(item.RoomList) != 2 || item.RoomList[1].RoomNumber != "102" {
			t.Fatalf("unexpected rooms %+v", item.RoomList)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestExportPropertiesFiltersByCreation(t *testing.T) {
	db, mock := newMockDB(t)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC)
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	columns := append(append([]string{}, propertyRowColumns...),
		"owner_contact_name", "owner_email", "owner_company_name", "rooms", "bookings", "reviews")
	mock.ExpectQuery(regexp.QuoteMeta(
		"JOIN property_owners o ON o.id = p.owner_id WHERE p.created_at >= $1 AND p.created_at <= $2 ORDER BY p.created_at DESC")).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(append(propertyRow("p-1", "o-1", created),
			"Miguel Fernández", "miguel@x.es", "Galicia Turismo SL", 3, 0, 0)...))

	rows, err := NewRepository(db).Export(context.Background(), Filter{
		Created: core.DateRange{From: &from, To: &to},
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(rows) != 1 || rows[0].OwnerEmail != "miguel@x.es" || rows[0].Rooms != 3 {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if rows[0].OwnerCompanyName == nil || *rows[0].OwnerCompanyName != "Galicia Turismo SL" {
		t.Fatalf("unexpected company %v", rows[0].OwnerCompanyName)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDeleteKeepsBookedProperty(t *testing.T) {
	deleteSQL := regexp.QuoteMeta(
		"DELETE FROM properties WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM bookings WHERE property_id = $1)")
	lookupSQL := regexp.QuoteMeta("FROM properties p WHERE p.id = $1")
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "deleted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(deleteSQL).WithArgs("p-1").WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "booked",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(deleteSQL).WithArgs("p-1").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(lookupSQL).WithArgs("p-1").
					WillReturnRows(sqlmock.NewRows(propertyRowColumns).AddRow(propertyRow("p-1", "o-1", created)...))
			},
			wantErr: core.ErrConflict,
		},
		{
			name: "missing",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(deleteSQL).WithArgs("p-1").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(lookupSQL).WithArgs("p-1").
					WillReturnRows(sqlmock.NewRows(propertyRowColumns))
			},
			wantErr: core.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setup(mock)

			err := NewRepository(db).Delete(context.Background(), "p-1")
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expectations: %v", err)
			}
		})
	}
}

const forUserSQL = "INSERT INTO property_owners (id, email, password_hash, contact_name, role, permissions) " +
	"SELECT $2, u.email, u.password_hash"

func TestOwnerForUserRequiresAccount(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(forUserSQL)).
		WithArgs("ghost", sqlmock.AnyArg(), provisionedPermissions).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewOwnerDirectory(db).ForUser(context.Background(), "ghost")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateRollsBackProvisionedOwner(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM property_owners WHERE id = $1)")).
		WithArgs(admin.UserID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta(forUserSQL)).
		WithArgs(admin.UserID, sqlmock.AnyArg(), provisionedPermissions).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("o-new"))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO properties")).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	svc := NewService(NewRepository(db), NewOwnerDirectory(db), nil).WithTx(NewTxFunc(db))
	if _, err := svc.Create(context.Background(), admin, newRequest("Pazo")); err == nil {
		t.Fatal("expected create to fail")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
