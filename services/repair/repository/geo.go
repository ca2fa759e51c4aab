package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
	"github.com/ykovtun/avtosos/internal/pkg/constants"
	"github.com/ykovtun/avtosos/internal/pkg/database"
	"github.com/ykovtun/avtosos/internal/pkg/models"
	"github.com/ykovtun/avtosos/internal/utils"
)

// GeoRepo implements the proximity index over Redis GEO sets. Stations
// and open requests are tracked in separate sets; a small hash per
// member carries the coordinates and a geohash for debugging.
type GeoRepo struct {
	redis *database.RedisClient
}

// NewGeoRepository creates a new geo repository
func NewGeoRepository(redis *database.RedisClient) *GeoRepo {
	return &GeoRepo{redis: redis}
}

// AddStationLocation indexes a station's location
func (r *GeoRepo) AddStationLocation(ctx context.Context, stationID uuid.UUID, location models.Point) error {
	if err := r.redis.GeoAdd(ctx, constants.KeyStationGeo, location.Longitude(), location.Latitude(), stationID.String()); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to index station location", err)
	}

	metaKey := fmt.Sprintf(constants.KeyStationMeta, stationID.String())
	return r.redis.HSet(ctx, metaKey, map[string]interface{}{
		constants.FieldLatitude:  location.Latitude(),
		constants.FieldLongitude: location.Longitude(),
		constants.FieldGeohash:   utils.EncodeLocation(location, 9),
	})
}

// RemoveStationLocation drops a station from the index
func (r *GeoRepo) RemoveStationLocation(ctx context.Context, stationID uuid.UUID) error {
	if err := r.redis.ZRem(ctx, constants.KeyStationGeo, stationID.String()); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to remove station location", err)
	}
	return r.redis.Delete(ctx, fmt.Sprintf(constants.KeyStationMeta, stationID.String()))
}

// NearbyStations finds indexed stations within radiusKm of a point,
// nearest first
func (r *GeoRepo) NearbyStations(ctx context.Context, center models.Point, radiusKm float64) ([]models.GeoMember, error) {
	return r.nearby(ctx, constants.KeyStationGeo, center, radiusKm)
}

// AddRequestLocation indexes an open request's location
func (r *GeoRepo) AddRequestLocation(ctx context.Context, requestID uuid.UUID, location models.Point) error {
	if err := r.redis.GeoAdd(ctx, constants.KeyRequestGeo, location.Longitude(), location.Latitude(), requestID.String()); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to index request location", err)
	}

	metaKey := fmt.Sprintf(constants.KeyRequestMeta, requestID.String())
	return r.redis.HSet(ctx, metaKey, map[string]interface{}{
		constants.FieldLatitude:  location.Latitude(),
		constants.FieldLongitude: location.Longitude(),
		constants.FieldGeohash:   utils.EncodeLocation(location, 9),
	})
}

// RemoveRequestLocation drops a request from the index, called when the
// request leaves the "new" status
func (r *GeoRepo) RemoveRequestLocation(ctx context.Context, requestID uuid.UUID) error {
	if err := r.redis.ZRem(ctx, constants.KeyRequestGeo, requestID.String()); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to remove request location", err)
	}
	return r.redis.Delete(ctx, fmt.Sprintf(constants.KeyRequestMeta, requestID.String()))
}

// NearbyRequests finds indexed open requests within radiusKm of a point,
// nearest first
func (r *GeoRepo) NearbyRequests(ctx context.Context, center models.Point, radiusKm float64) ([]models.GeoMember, error) {
	return r.nearby(ctx, constants.KeyRequestGeo, center, radiusKm)
}

func (r *GeoRepo) nearby(ctx context.Context, key string, center models.Point, radiusKm float64) ([]models.GeoMember, error) {
	locations, err := r.redis.GeoRadius(ctx, key, center.Longitude(), center.Latitude(), radiusKm, "km")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "geo radius query failed", err)
	}

	members := make([]models.GeoMember, 0, len(locations))
	for _, loc := range locations {
		members = append(members, models.GeoMember{
			ID:         loc.Name,
			Location:   models.Point{X: loc.Longitude, Y: loc.Latitude},
			DistanceKm: loc.Dist,
		})
	}
	return members, nil
}
