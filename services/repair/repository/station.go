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

// StationRepo implements service station persistence over postgres.
// The location is stored as a postgres point; SELECTs split it into
// longitude/latitude columns for scanning.
type StationRepo struct {
	db *sqlx.DB
}

// NewStationRepository creates a new station repository
func NewStationRepository(db *sqlx.DB) *StationRepo {
	return &StationRepo{db: db}
}

const stationColumns = `
	id, owner_id, name, address, description, phone,
	(location[0])::float8 AS longitude,
	(location[1])::float8 AS latitude,
	rating, created_at
`

// UpsertStation creates the owner's station or replaces its fields.
// One station per owner.
func (r *StationRepo) UpsertStation(ctx context.Context, station *models.ServiceStation) (*models.ServiceStation, error) {
	if station.ID == uuid.Nil {
		station.ID = uuid.New()
	}

	query := `
		INSERT INTO service_stations (id, owner_id, name, address, description, phone, location)
		VALUES ($1, $2, $3, $4, $5, $6, point($7, $8))
		ON CONFLICT (owner_id) DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			description = EXCLUDED.description,
			phone = EXCLUDED.phone,
			location = EXCLUDED.location
		RETURNING id, rating, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		station.ID,
		station.OwnerID,
		station.Name,
		station.Address,
		station.Description,
		station.Phone,
		station.Location.Longitude(),
		station.Location.Latitude(),
	).Scan(&station.ID, &station.Rating, &station.CreatedAt)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to upsert station", err)
	}

	return station, nil
}

// GetStationByID retrieves a station by id
func (r *StationRepo) GetStationByID(ctx context.Context, id uuid.UUID) (*models.ServiceStation, error) {
	query := `SELECT ` + stationColumns + ` FROM service_stations WHERE id = $1`

	var dto models.StationDTO
	if err := r.db.GetContext(ctx, &dto, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("station not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get station", err)
	}
	return dto.ToStation(), nil
}

// GetStationByOwner retrieves the station registered by a user
func (r *StationRepo) GetStationByOwner(ctx context.Context, ownerID uuid.UUID) (*models.ServiceStation, error) {
	query := `SELECT ` + stationColumns + ` FROM service_stations WHERE owner_id = $1`

	var dto models.StationDTO
	if err := r.db.GetContext(ctx, &dto, query, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("station not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get station", err)
	}
	return dto.ToStation(), nil
}

// UpdateStationRating stores the recomputed aggregate rating of the
// station owned by the given mechanic
func (r *StationRepo) UpdateStationRating(ctx context.Context, ownerID uuid.UUID, rating float64) error {
	query := `UPDATE service_stations SET rating = $1 WHERE owner_id = $2`

	if _, err := r.db.ExecContext(ctx, query, rating, ownerID); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to update station rating", err)
	}
	return nil
}

// AddStationPhoto attaches a photo record to a station
func (r *StationRepo) AddStationPhoto(ctx context.Context, photo *models.Attachment) error {
	if photo.ID == uuid.Nil {
		photo.ID = uuid.New()
	}

	query := `
		INSERT INTO station_photos (id, station_id, url, kind)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, photo.ID, photo.OwnerID, photo.URL, photo.Kind).
		Scan(&photo.CreatedAt)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to add station photo", err)
	}
	return nil
}

// ListStationPhotos lists a station's photos, newest first
func (r *StationRepo) ListStationPhotos(ctx context.Context, stationID uuid.UUID) ([]models.Attachment, error) {
	query := `
		SELECT id, station_id AS owner_id, url, kind, created_at
		FROM station_photos
		WHERE station_id = $1
		ORDER BY created_at DESC
	`

	photos := []models.Attachment{}
	if err := r.db.SelectContext(ctx, &photos, query, stationID); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list station photos", err)
	}
	return photos, nil
}
