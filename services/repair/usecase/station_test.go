package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykovtun/avtosos/internal/pkg/models"
)

func newStationUC(users *fakeUserRepo, stations *fakeStationRepo, reviews *fakeReviewRepo, geo *fakeGeoRepo) *StationUC {
	cfg := &models.Config{Geo: models.GeoConfig{RequestRadiusKm: 30, StationRadiusKm: 50}}
	return NewStationUC(cfg, stations, users, reviews, geo, nil)
}

func TestUpsertStation_PromotesOwnerToMechanic(t *testing.T) {
	users := newFakeUserRepo()
	stations := newFakeStationRepo()
	geo := newFakeGeoRepo()
	uc := newStationUC(users, stations, newFakeReviewRepo(), geo)

	owner := users.add("driver", models.RoleClient)

	saved, err := uc.UpsertStation(context.Background(), owner.ID, models.StationUpsertRequest{
		Name:    "Garage 42",
		Address: "Shevchenka st 10",
		Phone:   "+380441234567",
		Lat:     50.45,
		Lng:     30.52,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, models.RoleMechanic, owner.Role)

	_, indexed := geo.stations[saved.ID]
	assert.True(t, indexed, "station must enter the proximity index")
}

func TestUpsertStation_SecondCallKeepsIdentity(t *testing.T) {
	users := newFakeUserRepo()
	stations := newFakeStationRepo()
	uc := newStationUC(users, stations, newFakeReviewRepo(), newFakeGeoRepo())

	owner := users.add("wrench", models.RoleMechanic)
	req := models.StationUpsertRequest{
		Name: "Garage 42", Address: "Shevchenka st 10", Phone: "+380441234567", Lat: 50.45, Lng: 30.52,
	}

	first, err := uc.UpsertStation(context.Background(), owner.ID, req)
	require.NoError(t, err)

	stations.byOwner[owner.ID].Rating = 4.5

	req.Name = "Garage 42 renamed"
	second, err := uc.UpsertStation(context.Background(), owner.ID, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 4.5, second.Rating, "rating survives the update")
	assert.Equal(t, "Garage 42 renamed", second.Name)
}

func TestHasStation(t *testing.T) {
	users := newFakeUserRepo()
	stations := newFakeStationRepo()
	uc := newStationUC(users, stations, newFakeReviewRepo(), newFakeGeoRepo())

	mechanic := users.add("wrench", models.RoleMechanic)
	stations.add(mechanic.ID, 50.45, 30.52)

	has, err := uc.HasStation(context.Background(), mechanic.ID)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = uc.HasStation(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, has)
}

func TestNearbyStations_AnnotatesDistance(t *testing.T) {
	users := newFakeUserRepo()
	stations := newFakeStationRepo()
	geo := newFakeGeoRepo()
	uc := newStationUC(users, stations, newFakeReviewRepo(), geo)

	mechanic := users.add("wrench", models.RoleMechanic)
	station := stations.add(mechanic.ID, 50.45, 30.52)
	geo.stations[station.ID] = station.Location

	views, err := uc.NearbyStations(context.Background(), models.NewPoint(50.46, 30.53), 0)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, station.ID, views[0].ID)
	require.NotNil(t, views[0].DistanceKm)
}

func TestNearbyStations_RadiusBoundary(t *testing.T) {
	users := newFakeUserRepo()
	stations := newFakeStationRepo()
	geo := newFakeGeoRepo()
	uc := newStationUC(users, stations, newFakeReviewRepo(), geo)

	// ~4.89 km from the center
	closeOwner := users.add("close", models.RoleMechanic)
	in := stations.add(closeOwner.ID, 50.494, 30.52)
	geo.stations[in.ID] = in.Location

	// ~5.11 km, just past the requested radius
	farOwner := users.add("far", models.RoleMechanic)
	out := stations.add(farOwner.ID, 50.496, 30.52)
	geo.stations[out.ID] = out.Location

	views, err := uc.NearbyStations(context.Background(), models.NewPoint(50.45, 30.52), 5)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, in.ID, views[0].ID)
	require.NotNil(t, views[0].DistanceKm)
	assert.InDelta(t, 4.9, *views[0].DistanceKm, 0.1)
}

func TestNearbyStations_SkipsDanglingIndexEntries(t *testing.T) {
	users := newFakeUserRepo()
	stations := newFakeStationRepo()
	geo := newFakeGeoRepo()
	uc := newStationUC(users, stations, newFakeReviewRepo(), geo)

	// index entry whose station row is gone
	geo.stations[uuid.New()] = models.NewPoint(50.45, 30.52)

	views, err := uc.NearbyStations(context.Background(), models.NewPoint(50.45, 30.52), 10)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestStationDetail_IncludesReviews(t *testing.T) {
	users := newFakeUserRepo()
	stations := newFakeStationRepo()
	reviews := newFakeReviewRepo()
	uc := newStationUC(users, stations, reviews, newFakeGeoRepo())

	mechanic := users.add("wrench", models.RoleMechanic)
	author := users.add("driver", models.RoleClient)
	station := stations.add(mechanic.ID, 50.45, 30.52)

	_, err := reviews.CreateMechanicReview(context.Background(), &models.Review{
		RequestID:  uuid.New(),
		AuthorID:   author.ID,
		MechanicID: mechanic.ID,
		Rating:     5,
		Comment:    "best in town",
	})
	require.NoError(t, err)

	detail, err := uc.StationDetail(context.Background(), station.ID)
	require.NoError(t, err)
	assert.Equal(t, station.Name, detail.Name)
	require.Len(t, detail.Reviews, 1)
	assert.Equal(t, "driver", detail.Reviews[0].AuthorName)
}
