package usecase

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
	"github.com/ykovtun/avtosos/internal/pkg/constants"
	"github.com/ykovtun/avtosos/internal/pkg/logger"
	"github.com/ykovtun/avtosos/internal/pkg/models"
	"github.com/ykovtun/avtosos/internal/pkg/storage"
	"github.com/ykovtun/avtosos/internal/utils"
	"github.com/ykovtun/avtosos/services/repair"
)

// RequestUC implements the repair request lifecycle
type RequestUC struct {
	cfg         *models.Config
	requestRepo repair.RequestRepo
	carRepo     repair.CarRepo
	catRepo     repair.CategoryRepo
	stationRepo repair.StationRepo
	offerRepo   repair.OfferRepo
	geoRepo     repair.GeoRepo
	notifyGW    repair.NotificationGW
	storage     *storage.MinioClient
}

// NewRequestUC creates a new request usecase
func NewRequestUC(
	cfg *models.Config,
	requestRepo repair.RequestRepo,
	carRepo repair.CarRepo,
	catRepo repair.CategoryRepo,
	stationRepo repair.StationRepo,
	offerRepo repair.OfferRepo,
	geoRepo repair.GeoRepo,
	notifyGW repair.NotificationGW,
	store *storage.MinioClient,
) *RequestUC {
	return &RequestUC{
		cfg:         cfg,
		requestRepo: requestRepo,
		carRepo:     carRepo,
		catRepo:     catRepo,
		stationRepo: stationRepo,
		offerRepo:   offerRepo,
		geoRepo:     geoRepo,
		notifyGW:    notifyGW,
		storage:     store,
	}
}

// CreateRequest posts a repair request, indexes its location and
// broadcasts it to connected mechanics
func (uc *RequestUC) CreateRequest(ctx context.Context, clientID uuid.UUID, input models.CreateRequestInput, files []*multipart.FileHeader) (*models.RequestView, error) {
	if input.CategoryID != nil {
		if _, err := uc.catRepo.GetCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	carModel := input.CarModel
	if input.CarID != nil {
		car, err := uc.carRepo.GetCar(ctx, *input.CarID)
		if err != nil {
			return nil, err
		}
		if car.OwnerID != clientID {
			return nil, apperrors.Forbidden("car does not belong to you")
		}
		if carModel == "" {
			carModel = car.BrandModel
		}
	}

	request := &models.Request{
		ClientID:    clientID,
		CategoryID:  input.CategoryID,
		CarID:       input.CarID,
		CarModel:    carModel,
		Description: input.Description,
		Location:    models.NewPoint(input.Lat, input.Lng),
		Address:     input.Address,
		IsSOS:       input.IsSOS,
	}

	created, err := uc.requestRepo.CreateRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		url, err := uc.storage.UploadFile(ctx, "requests", file)
		if err != nil {
			logger.Warn("Failed to upload request attachment",
				logger.String("request_id", created.ID.String()),
				logger.Err(err))
			continue
		}
		att := &models.Attachment{
			OwnerID: created.ID,
			URL:     url,
			Kind:    storage.KindByExt(file.Filename),
		}
		if err := uc.requestRepo.AddAttachment(ctx, att); err != nil {
			logger.Warn("Failed to record request attachment",
				logger.String("request_id", created.ID.String()),
				logger.Err(err))
		}
	}

	if err := uc.geoRepo.AddRequestLocation(ctx, created.ID, created.Location); err != nil {
		logger.Warn("Failed to index request location",
			logger.String("request_id", created.ID.String()),
			logger.Err(err))
	}

	uc.broadcastNewRequest(ctx, created)

	logger.Info("Request created",
		logger.String("request_id", created.ID.String()),
		logger.String("client_id", clientID.String()),
		logger.Bool("is_sos", created.IsSOS))

	view := models.ToRequestView(created)
	return &view, nil
}

// MyRequests lists the caller's requests, newest first
func (uc *RequestUC) MyRequests(ctx context.Context, clientID uuid.UUID) ([]models.RequestView, error) {
	requests, err := uc.requestRepo.ListRequestsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	views := make([]models.RequestView, 0, len(requests))
	for i := range requests {
		views = append(views, models.ToRequestView(&requests[i]))
	}
	return views, nil
}

// RequestDetail returns one request. Clients see their own requests;
// mechanics may inspect any request they could bid on.
func (uc *RequestUC) RequestDetail(ctx context.Context, userID uuid.UUID, requestID uuid.UUID) (*models.RequestView, error) {
	request, err := uc.requestRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.ClientID != userID {
		if _, err := uc.stationRepo.GetStationByOwner(ctx, userID); err != nil {
			return nil, apperrors.Forbidden("not your request")
		}
	}

	view := models.ToRequestView(request)
	return &view, nil
}

// NearbyRequests finds open requests around a point, nearest first.
// Without explicit coordinates the caller's station location is used,
// which then requires a registered station. A zero radius falls back to
// the configured default.
func (uc *RequestUC) NearbyRequests(ctx context.Context, callerID uuid.UUID, center *models.Point, radiusKm float64) ([]models.RequestView, error) {
	if center == nil {
		station, err := uc.stationRepo.GetStationByOwner(ctx, callerID)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindNotFound {
				return nil, apperrors.Forbidden("register a station to browse requests")
			}
			return nil, err
		}
		center = &station.Location
	}

	if radiusKm <= 0 {
		radiusKm = uc.cfg.Geo.RequestRadiusKm
	}

	members, err := uc.geoRepo.NearbyRequests(ctx, *center, radiusKm)
	if err != nil {
		return nil, err
	}

	views := make([]models.RequestView, 0, len(members))
	for _, member := range members {
		requestID, err := uuid.Parse(member.ID)
		if err != nil {
			continue
		}
		request, err := uc.requestRepo.GetRequest(ctx, requestID)
		if err != nil {
			continue
		}
		// the index can lag briefly behind a status transition
		if request.Status != models.RequestStatusNew {
			continue
		}
		view := models.ToRequestView(request)
		dist := utils.RoundKm(member.DistanceKm)
		view.DistanceKm = &dist
		views = append(views, view)
	}
	return views, nil
}

// AddAttachment uploads a media file and attaches it to the caller's
// request
func (uc *RequestUC) AddAttachment(ctx context.Context, clientID uuid.UUID, requestID uuid.UUID, file *multipart.FileHeader) (*models.Attachment, error) {
	request, err := uc.requestRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ClientID != clientID {
		return nil, apperrors.Forbidden("not your request")
	}

	url, err := uc.storage.UploadFile(ctx, "requests", file)
	if err != nil {
		return nil, err
	}

	att := &models.Attachment{
		OwnerID: request.ID,
		URL:     url,
		Kind:    storage.KindByExt(file.Filename),
	}
	if err := uc.requestRepo.AddAttachment(ctx, att); err != nil {
		return nil, err
	}
	return att, nil
}

// FinishRequest moves the caller's active request to done and notifies
// the accepted mechanic
func (uc *RequestUC) FinishRequest(ctx context.Context, clientID uuid.UUID, requestID uuid.UUID) error {
	request, err := uc.requestRepo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if request.ClientID != clientID {
		return apperrors.Forbidden("not your request")
	}

	if err := uc.requestRepo.UpdateRequestStatus(ctx, requestID, models.RequestStatusActive, models.RequestStatusDone); err != nil {
		return err
	}

	uc.notifyStatus(ctx, request, models.RequestStatusDone)
	return nil
}

// CancelRequest cancels the caller's request. Open requests leave the
// proximity index; active requests can still be canceled by the client.
func (uc *RequestUC) CancelRequest(ctx context.Context, clientID uuid.UUID, requestID uuid.UUID) error {
	request, err := uc.requestRepo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if request.ClientID != clientID {
		return apperrors.Forbidden("not your request")
	}

	err = uc.requestRepo.UpdateRequestStatus(ctx, requestID, models.RequestStatusNew, models.RequestStatusCanceled)
	if err != nil && apperrors.KindOf(err) == apperrors.KindConflict {
		err = uc.requestRepo.UpdateRequestStatus(ctx, requestID, models.RequestStatusActive, models.RequestStatusCanceled)
	}
	if err != nil {
		return err
	}

	if err := uc.geoRepo.RemoveRequestLocation(ctx, requestID); err != nil {
		logger.Warn("Failed to deindex canceled request",
			logger.String("request_id", requestID.String()),
			logger.Err(err))
	}

	uc.notifyStatus(ctx, request, models.RequestStatusCanceled)
	return nil
}

func (uc *RequestUC) broadcastNewRequest(ctx context.Context, request *models.Request) {
	notification := &models.Notification{
		Event:   constants.EventNewRequest,
		Message: "New repair request nearby",
		Data: map[string]interface{}{
			"request_id":  request.ID.String(),
			"description": request.Description,
			"car_model":   request.CarModel,
			"is_sos":      request.IsSOS,
			"lat":         request.Location.Latitude(),
			"lng":         request.Location.Longitude(),
		},
	}
	if err := uc.notifyGW.NotifyMechanics(ctx, notification); err != nil {
		logger.Warn("Failed to broadcast new request",
			logger.String("request_id", request.ID.String()),
			logger.Err(err))
	}
}

// notifyStatus tells both parties about a lifecycle transition: the
// client's other sessions always, the accepted mechanic when one exists
func (uc *RequestUC) notifyStatus(ctx context.Context, request *models.Request, status string) {
	notification := &models.Notification{
		Event:   constants.EventRequestStatusUpdate,
		Message: "Request status changed to " + status,
		Data: map[string]interface{}{
			"request_id": request.ID.String(),
			"status":     status,
		},
	}

	if err := uc.notifyGW.NotifyUser(ctx, request.ClientID.String(), notification); err != nil {
		logger.Warn("Failed to notify client of status change",
			logger.String("request_id", request.ID.String()),
			logger.Err(err))
	}

	offer, err := uc.offerRepo.GetAcceptedOffer(ctx, request.ID)
	if err != nil {
		return
	}
	if err := uc.notifyGW.NotifyUser(ctx, offer.MechanicID.String(), notification); err != nil {
		logger.Warn("Failed to notify mechanic of status change",
			logger.String("request_id", request.ID.String()),
			logger.Err(err))
	}
}
