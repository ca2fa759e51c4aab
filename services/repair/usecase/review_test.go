package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
	"github.com/ykovtun/avtosos/internal/pkg/models"
)

type reviewFixture struct {
	users    *fakeUserRepo
	stations *fakeStationRepo
	requests *fakeRequestRepo
	offers   *fakeOfferRepo
	reviews  *fakeReviewRepo
	uc       *ReviewUC

	client   *models.User
	mechanic *models.User
	request  *models.Request
}

// newReviewFixture sets up a finished request with an accepted offer,
// ready to be reviewed from either side.
func newReviewFixture(t *testing.T) *reviewFixture {
	f := &reviewFixture{
		users:    newFakeUserRepo(),
		stations: newFakeStationRepo(),
		requests: newFakeRequestRepo(),
		offers:   newFakeOfferRepo(),
		reviews:  newFakeReviewRepo(),
	}
	f.offers.linkRequests(f.requests)
	f.uc = NewReviewUC(f.reviews, f.requests, f.offers, f.users, f.stations)

	f.client = f.users.add("driver", models.RoleClient)
	f.mechanic = f.users.add("wrench", models.RoleMechanic)
	f.stations.add(f.mechanic.ID, 50.45, 30.52)
	f.request = f.requests.add(f.client.ID, models.RequestStatusDone)

	_, err := f.offers.CreateOffer(context.Background(), &models.Offer{
		RequestID:  f.request.ID,
		MechanicID: f.mechanic.ID,
		Price:      900,
		IsAccepted: true,
	})
	require.NoError(t, err)
	return f
}

func TestCreateReview_ClientRatesMechanic(t *testing.T) {
	f := newReviewFixture(t)

	view, err := f.uc.CreateReview(context.Background(), f.client.ID, models.CreateReviewInput{
		RequestID: f.request.ID,
		Rating:    4,
		Comment:   "fixed quickly",
	})
	require.NoError(t, err)
	assert.Equal(t, "driver", view.AuthorName)
	assert.Equal(t, 4, view.Rating)
	assert.Equal(t, 4.0, f.mechanic.Rating)

	station, err := f.stations.GetStationByOwner(context.Background(), f.mechanic.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, station.Rating)
}

func TestCreateReview_RatingIsArithmeticMean(t *testing.T) {
	f := newReviewFixture(t)

	// a second finished request from another client for the same mechanic
	other := f.users.add("other", models.RoleClient)
	second := f.requests.add(other.ID, models.RequestStatusDone)
	_, err := f.offers.CreateOffer(context.Background(), &models.Offer{
		RequestID:  second.ID,
		MechanicID: f.mechanic.ID,
		IsAccepted: true,
	})
	require.NoError(t, err)

	_, err = f.uc.CreateReview(context.Background(), f.client.ID, models.CreateReviewInput{RequestID: f.request.ID, Rating: 4})
	require.NoError(t, err)
	_, err = f.uc.CreateReview(context.Background(), other.ID, models.CreateReviewInput{RequestID: second.ID, Rating: 5})
	require.NoError(t, err)

	assert.Equal(t, 4.5, f.mechanic.Rating)
}

func TestCreateClientReview_MechanicRatesClient(t *testing.T) {
	f := newReviewFixture(t)

	view, err := f.uc.CreateClientReview(context.Background(), f.mechanic.ID, models.CreateReviewInput{
		RequestID: f.request.ID,
		Rating:    5,
	})
	require.NoError(t, err)
	assert.Equal(t, "wrench", view.AuthorName)
	assert.Equal(t, 5.0, f.client.Rating)
	assert.Equal(t, 0.0, f.mechanic.Rating, "reviewing the client must not touch the mechanic's own rating")
}

func TestCreateReview_WrongDirection(t *testing.T) {
	f := newReviewFixture(t)

	// the mechanic cannot use the client-facing endpoint and vice versa
	_, err := f.uc.CreateReview(context.Background(), f.mechanic.ID, models.CreateReviewInput{RequestID: f.request.ID, Rating: 5})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	_, err = f.uc.CreateClientReview(context.Background(), f.client.ID, models.CreateReviewInput{RequestID: f.request.ID, Rating: 5})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestCreateReview_RequestNotFinished(t *testing.T) {
	f := newReviewFixture(t)
	open := f.requests.add(f.client.ID, models.RequestStatusActive)

	_, err := f.uc.CreateReview(context.Background(), f.client.ID, models.CreateReviewInput{RequestID: open.ID, Rating: 5})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestCreateReview_NoAcceptedOffer(t *testing.T) {
	f := newReviewFixture(t)
	orphan := f.requests.add(f.client.ID, models.RequestStatusDone)

	_, err := f.uc.CreateReview(context.Background(), f.client.ID, models.CreateReviewInput{RequestID: orphan.ID, Rating: 5})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestCreateReview_Outsider(t *testing.T) {
	f := newReviewFixture(t)
	outsider := f.users.add("outsider", models.RoleClient)

	_, err := f.uc.CreateReview(context.Background(), outsider.ID, models.CreateReviewInput{RequestID: f.request.ID, Rating: 1})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestCreateReview_Duplicate(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.uc.CreateReview(context.Background(), f.client.ID, models.CreateReviewInput{RequestID: f.request.ID, Rating: 4})
	require.NoError(t, err)

	_, err = f.uc.CreateReview(context.Background(), f.client.ID, models.CreateReviewInput{RequestID: f.request.ID, Rating: 5})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, 4.0, f.mechanic.Rating)
}

func TestMechanicReviews(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.uc.CreateReview(context.Background(), f.client.ID, models.CreateReviewInput{RequestID: f.request.ID, Rating: 4, Comment: "ok"})
	require.NoError(t, err)

	views, err := f.uc.MechanicReviews(context.Background(), f.mechanic.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "driver", views[0].AuthorName)
	assert.Equal(t, "ok", views[0].Comment)

	empty, err := f.uc.MechanicReviews(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
