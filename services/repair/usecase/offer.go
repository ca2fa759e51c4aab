package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
	"github.com/ykovtun/avtosos/internal/pkg/constants"
	"github.com/ykovtun/avtosos/internal/pkg/logger"
	"github.com/ykovtun/avtosos/internal/pkg/models"
	"github.com/ykovtun/avtosos/internal/utils"
	"github.com/ykovtun/avtosos/services/repair"
)

// OfferUC implements bidding and the accept flow
type OfferUC struct {
	offerRepo   repair.OfferRepo
	requestRepo repair.RequestRepo
	userRepo    repair.UserRepo
	stationRepo repair.StationRepo
	geoRepo     repair.GeoRepo
	notifyGW    repair.NotificationGW
}

// NewOfferUC creates a new offer usecase
func NewOfferUC(
	offerRepo repair.OfferRepo,
	requestRepo repair.RequestRepo,
	userRepo repair.UserRepo,
	stationRepo repair.StationRepo,
	geoRepo repair.GeoRepo,
	notifyGW repair.NotificationGW,
) *OfferUC {
	return &OfferUC{
		offerRepo:   offerRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		stationRepo: stationRepo,
		geoRepo:     geoRepo,
		notifyGW:    notifyGW,
	}
}

// CreateOffer places a mechanic's bid on a request and notifies the
// request's client. Bids on requests that already left the new state
// are stored anyway and read back as rejected.
func (uc *OfferUC) CreateOffer(ctx context.Context, mechanicID uuid.UUID, input models.CreateOfferInput) (*models.OfferView, error) {
	if _, err := uc.stationRepo.GetStationByOwner(ctx, mechanicID); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.Forbidden("register a station to place offers")
		}
		return nil, err
	}

	request, err := uc.requestRepo.GetRequest(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}
	if request.ClientID == mechanicID {
		return nil, apperrors.Forbidden("cannot bid on your own request")
	}

	offer := &models.Offer{
		RequestID:  input.RequestID,
		MechanicID: mechanicID,
		Price:      input.Price,
		Comment:    input.Comment,
	}

	created, err := uc.offerRepo.CreateOffer(ctx, offer)
	if err != nil {
		return nil, err
	}

	mechanic, err := uc.userRepo.GetUserByID(ctx, mechanicID)
	if err != nil {
		return nil, err
	}

	uc.notifyNewOffer(ctx, request, created, mechanic)

	logger.Info("Offer created",
		logger.String("offer_id", created.ID.String()),
		logger.String("request_id", request.ID.String()),
		logger.Float64("price", created.Price))

	view := models.ToOfferView(created, mechanic, request.Status)
	return &view, nil
}

// ListOffers lists the bids on the caller's request, annotated with each
// mechanic's station and its distance from the breakdown point
func (uc *OfferUC) ListOffers(ctx context.Context, clientID uuid.UUID, requestID uuid.UUID) ([]models.OfferView, error) {
	request, err := uc.requestRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ClientID != clientID {
		return nil, apperrors.Forbidden("not your request")
	}

	offers, err := uc.offerRepo.ListOffersByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	views := make([]models.OfferView, 0, len(offers))
	for i := range offers {
		mechanic, err := uc.userRepo.GetUserByID(ctx, offers[i].MechanicID)
		if err != nil {
			continue
		}
		view := models.ToOfferView(&offers[i], mechanic, request.Status)
		if station, err := uc.stationRepo.GetStationByOwner(ctx, mechanic.ID); err == nil {
			view.StationAddress = station.Address
			dist := utils.RoundKm(utils.CalculateDistance(request.Location, station.Location))
			view.DistanceKm = &dist
		}
		views = append(views, view)
	}
	return views, nil
}

// AcceptOffer accepts a bid on behalf of the request's client. The
// winning offer and the request transition atomically; losing bids
// become rejected by derivation. The mechanic receives the client's
// phone number in the acceptance notification.
func (uc *OfferUC) AcceptOffer(ctx context.Context, clientID uuid.UUID, offerID uuid.UUID) (*models.OfferView, error) {
	offer, err := uc.offerRepo.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	request, err := uc.requestRepo.GetRequest(ctx, offer.RequestID)
	if err != nil {
		return nil, err
	}
	if request.ClientID != clientID {
		return nil, apperrors.Forbidden("not your request")
	}

	if err := uc.offerRepo.AcceptOffer(ctx, offerID, request.ID); err != nil {
		return nil, err
	}
	offer.IsAccepted = true
	request.Status = models.RequestStatusActive

	if err := uc.geoRepo.RemoveRequestLocation(ctx, request.ID); err != nil {
		logger.Warn("Failed to deindex matched request",
			logger.String("request_id", request.ID.String()),
			logger.Err(err))
	}

	client, err := uc.userRepo.GetUserByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	uc.notifyAccepted(ctx, request, offer, client)

	logger.Info("Offer accepted",
		logger.String("offer_id", offer.ID.String()),
		logger.String("request_id", request.ID.String()))

	mechanic, err := uc.userRepo.GetUserByID(ctx, offer.MechanicID)
	if err != nil {
		return nil, err
	}
	view := models.ToOfferView(offer, mechanic, request.Status)
	return &view, nil
}

// MyJobs lists the caller's bids with their requests, newest first
func (uc *OfferUC) MyJobs(ctx context.Context, mechanicID uuid.UUID) ([]models.MechanicJobView, error) {
	offers, err := uc.offerRepo.ListOffersByMechanic(ctx, mechanicID)
	if err != nil {
		return nil, err
	}

	jobs := make([]models.MechanicJobView, 0, len(offers))
	for i := range offers {
		request, err := uc.requestRepo.GetRequest(ctx, offers[i].RequestID)
		if err != nil {
			continue
		}
		client, err := uc.userRepo.GetUserByID(ctx, request.ClientID)
		if err != nil {
			continue
		}
		job := models.ToMechanicJobView(&offers[i], request, client)
		// contact details are only exchanged after acceptance
		if !offers[i].IsAccepted {
			job.ClientPhone = ""
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (uc *OfferUC) notifyNewOffer(ctx context.Context, request *models.Request, offer *models.Offer, mechanic *models.User) {
	notification := &models.Notification{
		Event:   constants.EventNewOffer,
		Message: "New offer on your request",
		Data: map[string]interface{}{
			"request_id":    request.ID.String(),
			"offer_id":      offer.ID.String(),
			"price":         offer.Price,
			"comment":       offer.Comment,
			"mechanic_name": mechanic.Username,
		},
	}
	if err := uc.notifyGW.NotifyUser(ctx, request.ClientID.String(), notification); err != nil {
		logger.Warn("Failed to notify client of new offer",
			logger.String("offer_id", offer.ID.String()),
			logger.Err(err))
	}
}

func (uc *OfferUC) notifyAccepted(ctx context.Context, request *models.Request, offer *models.Offer, client *models.User) {
	notification := &models.Notification{
		Event:   constants.EventOfferAccepted,
		Message: "Your offer was accepted",
		Data: map[string]interface{}{
			"request_id":   request.ID.String(),
			"offer_id":     offer.ID.String(),
			"client_name":  client.Username,
			"client_phone": client.Phone,
		},
	}
	if err := uc.notifyGW.NotifyUser(ctx, offer.MechanicID.String(), notification); err != nil {
		logger.Warn("Failed to notify mechanic of acceptance",
			logger.String("offer_id", offer.ID.String()),
			logger.Err(err))
	}
}
