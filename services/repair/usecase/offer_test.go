package usecase

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
	"github.com/ykovtun/avtosos/internal/pkg/constants"
	"github.com/ykovtun/avtosos/internal/pkg/models"
	"github.com/ykovtun/avtosos/services/repair/mocks"
)

type offerFixture struct {
	users    *fakeUserRepo
	stations *fakeStationRepo
	requests *fakeRequestRepo
	offers   *fakeOfferRepo
	geo      *fakeGeoRepo
	notify   *mocks.MockNotificationGW
	uc       *OfferUC
}

func newOfferFixture(t *testing.T) *offerFixture {
	ctrl := gomock.NewController(t)
	f := &offerFixture{
		users:    newFakeUserRepo(),
		stations: newFakeStationRepo(),
		requests: newFakeRequestRepo(),
		offers:   newFakeOfferRepo(),
		geo:      newFakeGeoRepo(),
		notify:   mocks.NewMockNotificationGW(ctrl),
	}
	f.offers.linkRequests(f.requests)
	f.uc = NewOfferUC(f.offers, f.requests, f.users, f.stations, f.geo, f.notify)
	return f
}

func TestCreateOffer_NotifiesClient(t *testing.T) {
	f := newOfferFixture(t)
	client := f.users.add("driver", models.RoleClient)
	mechanic := f.users.add("wrench", models.RoleMechanic)
	f.stations.add(mechanic.ID, 50.45, 30.52)
	request := f.requests.add(client.ID, models.RequestStatusNew)

	f.notify.EXPECT().
		NotifyUser(gomock.Any(), client.ID.String(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, n *models.Notification) error {
			assert.Equal(t, constants.EventNewOffer, n.Event)
			assert.Equal(t, "wrench", n.Data["mechanic_name"])
			return nil
		})

	view, err := f.uc.CreateOffer(context.Background(), mechanic.ID, models.CreateOfferInput{
		RequestID: request.ID,
		Price:     1500,
		Comment:   "can come today",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusPending, view.Status)
	assert.Equal(t, float64(1500), view.Price)
}

func TestCreateOffer_WithoutStation(t *testing.T) {
	f := newOfferFixture(t)
	client := f.users.add("driver", models.RoleClient)
	stranger := f.users.add("passerby", models.RoleClient)
	request := f.requests.add(client.ID, models.RequestStatusNew)

	_, err := f.uc.CreateOffer(context.Background(), stranger.ID, models.CreateOfferInput{RequestID: request.ID, Price: 100})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestCreateOffer_OwnRequest(t *testing.T) {
	f := newOfferFixture(t)
	owner := f.users.add("owner", models.RoleMechanic)
	f.stations.add(owner.ID, 50.45, 30.52)
	request := f.requests.add(owner.ID, models.RequestStatusNew)

	_, err := f.uc.CreateOffer(context.Background(), owner.ID, models.CreateOfferInput{RequestID: request.ID, Price: 100})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestCreateOffer_RequestNotOpen_StoredAsRejected(t *testing.T) {
	f := newOfferFixture(t)
	client := f.users.add("driver", models.RoleClient)
	mechanic := f.users.add("wrench", models.RoleMechanic)
	f.stations.add(mechanic.ID, 50.45, 30.52)
	request := f.requests.add(client.ID, models.RequestStatusActive)

	f.notify.EXPECT().NotifyUser(gomock.Any(), client.ID.String(), gomock.Any()).Return(nil)

	// a late bid is not refused: it persists and derives as rejected
	view, err := f.uc.CreateOffer(context.Background(), mechanic.ID, models.CreateOfferInput{RequestID: request.ID, Price: 100})
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusRejected, view.Status)

	stored, err := f.offers.ListOffersByRequest(context.Background(), request.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].IsAccepted)
}

func TestCreateOffer_Duplicate(t *testing.T) {
	f := newOfferFixture(t)
	client := f.users.add("driver", models.RoleClient)
	mechanic := f.users.add("wrench", models.RoleMechanic)
	f.stations.add(mechanic.ID, 50.45, 30.52)
	request := f.requests.add(client.ID, models.RequestStatusNew)

	f.notify.EXPECT().NotifyUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.uc.CreateOffer(context.Background(), mechanic.ID, models.CreateOfferInput{RequestID: request.ID, Price: 100})
	require.NoError(t, err)

	_, err = f.uc.CreateOffer(context.Background(), mechanic.ID, models.CreateOfferInput{RequestID: request.ID, Price: 200})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestAcceptOffer_ActivatesRequest(t *testing.T) {
	f := newOfferFixture(t)
	client := f.users.add("driver", models.RoleClient)
	mechanic := f.users.add("wrench", models.RoleMechanic)
	f.stations.add(mechanic.ID, 50.45, 30.52)
	request := f.requests.add(client.ID, models.RequestStatusNew)
	f.geo.AddRequestLocation(context.Background(), request.ID, request.Location)

	offer, err := f.offers.CreateOffer(context.Background(), &models.Offer{
		RequestID:  request.ID,
		MechanicID: mechanic.ID,
		Price:      900,
	})
	require.NoError(t, err)

	f.notify.EXPECT().
		NotifyUser(gomock.Any(), mechanic.ID.String(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, n *models.Notification) error {
			assert.Equal(t, constants.EventOfferAccepted, n.Event)
			assert.Equal(t, client.Phone, n.Data["client_phone"])
			return nil
		})

	view, err := f.uc.AcceptOffer(context.Background(), client.ID, offer.ID)
	require.NoError(t, err)
	assert.True(t, view.IsAccepted)
	assert.Equal(t, models.OfferStatusAccepted, view.Status)
	assert.Equal(t, models.RequestStatusActive, request.Status)
	assert.False(t, f.geo.hasRequest(request.ID), "accepted request must leave the geo index")
}

func TestAcceptOffer_NotOwner(t *testing.T) {
	f := newOfferFixture(t)
	client := f.users.add("driver", models.RoleClient)
	mechanic := f.users.add("wrench", models.RoleMechanic)
	stranger := f.users.add("stranger", models.RoleClient)
	request := f.requests.add(client.ID, models.RequestStatusNew)

	offer, err := f.offers.CreateOffer(context.Background(), &models.Offer{RequestID: request.ID, MechanicID: mechanic.ID, Price: 900})
	require.NoError(t, err)

	_, err = f.uc.AcceptOffer(context.Background(), stranger.ID, offer.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	assert.Equal(t, models.RequestStatusNew, request.Status)
}

func TestAcceptOffer_SecondAcceptConflicts(t *testing.T) {
	f := newOfferFixture(t)
	client := f.users.add("driver", models.RoleClient)
	first := f.users.add("first", models.RoleMechanic)
	second := f.users.add("second", models.RoleMechanic)
	request := f.requests.add(client.ID, models.RequestStatusNew)

	offerA, err := f.offers.CreateOffer(context.Background(), &models.Offer{RequestID: request.ID, MechanicID: first.ID, Price: 900})
	require.NoError(t, err)
	offerB, err := f.offers.CreateOffer(context.Background(), &models.Offer{RequestID: request.ID, MechanicID: second.ID, Price: 800})
	require.NoError(t, err)

	f.notify.EXPECT().NotifyUser(gomock.Any(), first.ID.String(), gomock.Any()).Return(nil)

	_, err = f.uc.AcceptOffer(context.Background(), client.ID, offerA.ID)
	require.NoError(t, err)

	_, err = f.uc.AcceptOffer(context.Background(), client.ID, offerB.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.False(t, offerB.IsAccepted)
}

func TestAcceptOffer_ConcurrentAcceptsHaveOneWinner(t *testing.T) {
	f := newOfferFixture(t)
	client := f.users.add("driver", models.RoleClient)
	first := f.users.add("first", models.RoleMechanic)
	second := f.users.add("second", models.RoleMechanic)
	request := f.requests.add(client.ID, models.RequestStatusNew)
	f.geo.AddRequestLocation(context.Background(), request.ID, request.Location)

	offerA, err := f.offers.CreateOffer(context.Background(), &models.Offer{RequestID: request.ID, MechanicID: first.ID, Price: 900})
	require.NoError(t, err)
	offerB, err := f.offers.CreateOffer(context.Background(), &models.Offer{RequestID: request.ID, MechanicID: second.ID, Price: 800})
	require.NoError(t, err)

	// exactly one mechanic gets the acceptance notification
	f.notify.EXPECT().NotifyUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	errs := make(chan error, 2)
	for _, off := range []*models.Offer{offerA, offerB} {
		go func(o *models.Offer) {
			_, err := f.uc.AcceptOffer(context.Background(), client.ID, o.ID)
			errs <- err
		}(off)
	}

	var conflicts, wins int
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
			conflicts++
		} else {
			wins++
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, models.RequestStatusActive, request.Status)

	accepted, err := f.offers.ListOffersByRequest(context.Background(), request.ID)
	require.NoError(t, err)
	acceptedCount := 0
	for _, o := range accepted {
		if o.IsAccepted {
			acceptedCount++
		}
	}
	assert.Equal(t, 1, acceptedCount)
}

func TestMyJobs_HidesPhoneUntilAccepted(t *testing.T) {
	f := newOfferFixture(t)
	client := f.users.add("driver", models.RoleClient)
	mechanic := f.users.add("wrench", models.RoleMechanic)
	pending := f.requests.add(client.ID, models.RequestStatusNew)
	won := f.requests.add(client.ID, models.RequestStatusActive)

	_, err := f.offers.CreateOffer(context.Background(), &models.Offer{RequestID: pending.ID, MechanicID: mechanic.ID, Price: 100})
	require.NoError(t, err)
	_, err = f.offers.CreateOffer(context.Background(), &models.Offer{RequestID: won.ID, MechanicID: mechanic.ID, Price: 200, IsAccepted: true})
	require.NoError(t, err)

	jobs, err := f.uc.MyJobs(context.Background(), mechanic.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	for _, job := range jobs {
		if job.Status == models.OfferStatusAccepted {
			assert.Equal(t, client.Phone, job.ClientPhone)
		} else {
			assert.Empty(t, job.ClientPhone, "phone is exchanged only after acceptance")
		}
	}
}
