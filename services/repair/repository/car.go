package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
	"github.com/ykovtun/avtosos/internal/pkg/models"
)

// CarRepo implements car persistence over postgres
type CarRepo struct {
	db *sqlx.DB
}

// NewCarRepository creates a new car repository
func NewCarRepository(db *sqlx.DB) *CarRepo {
	return &CarRepo{db: db}
}

// UpsertCar inserts a car or updates the existing car with the same
// license plate. Plates are globally unique; a plate already registered
// by someone else conflicts instead of updating.
func (r *CarRepo) UpsertCar(ctx context.Context, car *models.Car) (*models.Car, error) {
	if car.ID == uuid.Nil {
		car.ID = uuid.New()
	}

	query := `
		INSERT INTO cars (id, owner_id, license_plate, brand_model, year, vin, color, type, body, fuel, engine_volume, weight)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (license_plate) DO UPDATE SET
			brand_model = EXCLUDED.brand_model,
			year = EXCLUDED.year,
			vin = EXCLUDED.vin,
			color = EXCLUDED.color,
			type = EXCLUDED.type,
			body = EXCLUDED.body,
			fuel = EXCLUDED.fuel,
			engine_volume = EXCLUDED.engine_volume,
			weight = EXCLUDED.weight
		WHERE cars.owner_id = EXCLUDED.owner_id
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		car.ID,
		car.OwnerID,
		car.LicensePlate,
		car.BrandModel,
		car.Year,
		car.VIN,
		car.Color,
		car.Type,
		car.Body,
		car.Fuel,
		car.EngineVolume,
		car.Weight,
	).Scan(&car.ID, &car.CreatedAt)
	if err != nil {
		// conditional upsert yields no row when another owner holds the plate
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Conflict("car with this license plate already exists")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to upsert car", err)
	}

	return car, nil
}

// GetCar retrieves a car by id
func (r *CarRepo) GetCar(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	query := `
		SELECT id, owner_id, license_plate, brand_model, year, vin, color, type, body, fuel, engine_volume, weight, created_at
		FROM cars
		WHERE id = $1
	`

	var car models.Car
	if err := r.db.GetContext(ctx, &car, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("car not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get car", err)
	}
	return &car, nil
}

// ListCarsByOwner lists the owner's cars, newest first
func (r *CarRepo) ListCarsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Car, error) {
	query := `
		SELECT id, owner_id, license_plate, brand_model, year, vin, color, type, body, fuel, engine_volume, weight, created_at
		FROM cars
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	cars := []models.Car{}
	if err := r.db.SelectContext(ctx, &cars, query, ownerID); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list cars", err)
	}
	return cars, nil
}

// DeleteCar removes the owner's car
func (r *CarRepo) DeleteCar(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	query := `DELETE FROM cars WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to delete car", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.NotFound("car not found")
	}
	return nil
}
