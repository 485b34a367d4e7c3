// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/turisgal/backend/internal/config"
	"github.com/turisgal/backend/internal/core"
	"github.com/turisgal/backend/internal/owner"
	"github.com/turisgal/backend/internal/property"
	"github.com/turisgal/backend/internal/user"
	"github.com/turisgal/backend/migrations"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	reset := flag.Bool("reset", false, "drop every table before applying the schema")
	flag.Parse()

	if err := run(*configPath, *reset); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, reset bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := core.NewLogger(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("database close error", "error", err)
		}
	}()

	if reset {
		if err := migrations.Reset(ctx, db.DB); err != nil {
			return err
		}
		logger.Info("schema dropped")
	}

	if err := migrations.Apply(ctx, db.DB); err != nil {
		return err
	}
	logger.Info("schema applied")

	return core.InTx(ctx, db.DB, func(tx *sqlx.Tx) error {
		if err := truncate(ctx, tx); err != nil {
			return err
		}
		return seed(ctx, tx, logger)
	})
}

// truncate removes existing rows so the seed can be re-run.
func truncate(ctx context.Context, tx *sqlx.Tx) error {
	query := `TRUNCATE check_outs, check_ins, reviews, bookings, rooms,
		properties, property_owners, users CASCADE`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("clear tables: %w", err)
	}
	return nil
}

func seed(ctx context.Context, tx *sqlx.Tx, logger *slog.Logger) error {
	users := user.NewRepository(tx)
	for _, su := range seedUsers {
		hash, err := core.HashPassword(su.Password)
		if err != nil {
			return err
		}
		u := &user.User{
			ID:           uuid.New().String(),
			Email:        su.Email,
			PasswordHash: hash,
			FirstName:    su.FirstName,
			LastName:     su.LastName,
			Role:         su.Role,
			IsVerified:   su.Verified,
		}
		if err := users.Create(ctx, u); err != nil {
			return err
		}
		logger.Info("user created", "email", u.Email, "role", u.Role)
	}

	owners := owner.NewRepository(tx)
	ownerIDs := make([]string, 0, len(seedOwners))
	for _, so := range seedOwners {
		hash, err := core.HashPassword(so.Password)
		if err != nil {
			return err
		}
		permissions := so.Permissions
		o := &owner.Owner{
			ID:           uuid.New().String(),
			Email:        so.Email,
			PasswordHash: hash,
			ContactName:  so.ContactName,
			CompanyName:  optional(so.CompanyName),
			Phone:        optional(so.Phone),
			TaxID:        optional(so.TaxID),
			Role:         core.RoleOwner,
			Permissions:  &permissions,
		}
		if err := owners.Create(ctx, o); err != nil {
			return err
		}
		ownerIDs = append(ownerIDs, o.ID)
		logger.Info("property owner created", "email", o.Email)
	}

	properties := property.NewRepository(tx)
	for _, sp := range seedProperties {
		amenities, images := sp.Amenities, sp.Images
		p := &property.Property{
			ID:           uuid.New().String(),
			OwnerID:      ownerIDs[sp.Owner],
			Name:         sp.Name,
			Description:  optional(sp.Description),
			PropertyType: sp.Type,
			Address:      sp.Address,
			TotalRooms:   sp.TotalRooms,
			MaxGuests:    sp.MaxGuests,
			Amenities:    &amenities,
			HouseRules:   optional(sp.HouseRules),
			CheckInTime:  clock(sp.CheckIn),
			CheckOutTime: clock(sp.CheckOut),
			QRCodeData:   sp.QRCode,
			Images:       &images,
			IsActive:     true,
		}
		if err := properties.Create(ctx, p); err != nil {
			return err
		}

		var rooms []property.Room
		if sp.Rooms != nil {
			rooms = sp.Rooms(p.ID)
		}
		if err := insertRooms(ctx, tx, rooms); err != nil {
			return err
		}
		logger.Info("property created", "name", p.Name, "type", p.PropertyType, "rooms", len(rooms))
	}

	return nil
}

func insertRooms(ctx context.Context, tx *sqlx.Tx, rooms []property.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	for i := range rooms {
		rooms[i].ID = uuid.New().String()
	}

	query := `
		INSERT INTO rooms
			(id, property_id, room_number, room_type, max_guests, price_per_night,
			 qr_code_data, is_available)
		VALUES
			(:id, :property_id, :room_number, :room_type, :max_guests, :price_per_night,
			 :qr_code_data, :is_available)`

	if _, err := tx.NamedExecContext(ctx, query, rooms); err != nil {
		return fmt.Errorf("insert rooms: %w", err)
	}
	return nil
}
