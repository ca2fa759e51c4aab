package usecase

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
	"github.com/ykovtun/avtosos/internal/pkg/logger"
	"github.com/ykovtun/avtosos/internal/pkg/models"
	"github.com/ykovtun/avtosos/internal/pkg/storage"
	"github.com/ykovtun/avtosos/internal/utils"
	"github.com/ykovtun/avtosos/services/repair"
)

// StationUC implements service station management and discovery
type StationUC struct {
	cfg         *models.Config
	stationRepo repair.StationRepo
	userRepo    repair.UserRepo
	reviewRepo  repair.ReviewRepo
	geoRepo     repair.GeoRepo
	storage     *storage.MinioClient
}

// NewStationUC creates a new station usecase
func NewStationUC(
	cfg *models.Config,
	stationRepo repair.StationRepo,
	userRepo repair.UserRepo,
	reviewRepo repair.ReviewRepo,
	geoRepo repair.GeoRepo,
	store *storage.MinioClient,
) *StationUC {
	return &StationUC{
		cfg:         cfg,
		stationRepo: stationRepo,
		userRepo:    userRepo,
		reviewRepo:  reviewRepo,
		geoRepo:     geoRepo,
		storage:     store,
	}
}

// UpsertStation registers or updates the caller's station, promotes the
// owner to the mechanic role, and refreshes the proximity index
func (uc *StationUC) UpsertStation(ctx context.Context, ownerID uuid.UUID, req models.StationUpsertRequest) (*models.ServiceStation, error) {
	station := &models.ServiceStation{
		OwnerID:     ownerID,
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Phone:       req.Phone,
		Location:    models.NewPoint(req.Lat, req.Lng),
	}

	saved, err := uc.stationRepo.UpsertStation(ctx, station)
	if err != nil {
		return nil, err
	}

	// owning a station is what makes a user a mechanic
	if err := uc.userRepo.UpdateUserRole(ctx, ownerID, models.RoleMechanic); err != nil {
		return nil, err
	}

	if err := uc.geoRepo.AddStationLocation(ctx, saved.ID, saved.Location); err != nil {
		// the station row is authoritative; index refresh failures
		// degrade discovery but do not fail the write
		logger.Warn("Failed to index station location",
			logger.String("station_id", saved.ID.String()),
			logger.Err(err))
	}

	logger.Info("Station upserted",
		logger.String("station_id", saved.ID.String()),
		logger.String("owner_id", ownerID.String()))

	return saved, nil
}

// MyStation returns the caller's registered station
func (uc *StationUC) MyStation(ctx context.Context, ownerID uuid.UUID) (*models.ServiceStation, error) {
	return uc.stationRepo.GetStationByOwner(ctx, ownerID)
}

// HasStation reports whether the user has registered a station. Used to
// gate mechanics-channel membership at WebSocket connect.
func (uc *StationUC) HasStation(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	_, err := uc.stationRepo.GetStationByOwner(ctx, ownerID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// StationDetail returns a station with its photos and owner reviews
func (uc *StationUC) StationDetail(ctx context.Context, id uuid.UUID) (*models.StationDetailView, error) {
	station, err := uc.stationRepo.GetStationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	photos, err := uc.stationRepo.ListStationPhotos(ctx, station.ID)
	if err != nil {
		return nil, err
	}

	reviews, err := uc.reviewRepo.ListReviewsByMechanic(ctx, station.OwnerID)
	if err != nil {
		return nil, err
	}

	reviewViews := make([]models.ReviewView, 0, len(reviews))
	for i := range reviews {
		author, err := uc.userRepo.GetUserByID(ctx, reviews[i].AuthorID)
		if err != nil {
			continue
		}
		reviewViews = append(reviewViews, models.ToReviewView(&reviews[i], author))
	}

	detail := &models.StationDetailView{
		StationView: models.ToStationView(station),
		Photos:      photos,
		Reviews:     reviewViews,
	}
	return detail, nil
}

// NearbyStations finds stations around a point, nearest first. A zero
// radius falls back to the configured default.
func (uc *StationUC) NearbyStations(ctx context.Context, center models.Point, radiusKm float64) ([]models.StationView, error) {
	if radiusKm <= 0 {
		radiusKm = uc.cfg.Geo.StationRadiusKm
	}

	members, err := uc.geoRepo.NearbyStations(ctx, center, radiusKm)
	if err != nil {
		return nil, err
	}

	views := make([]models.StationView, 0, len(members))
	for _, member := range members {
		stationID, err := uuid.Parse(member.ID)
		if err != nil {
			continue
		}
		station, err := uc.stationRepo.GetStationByID(ctx, stationID)
		if err != nil {
			// index entry without a row, likely deleted
			continue
		}
		view := models.ToStationView(station)
		dist := utils.RoundKm(member.DistanceKm)
		view.DistanceKm = &dist
		views = append(views, view)
	}
	return views, nil
}

// AddPhoto uploads a photo and attaches it to the caller's station
func (uc *StationUC) AddPhoto(ctx context.Context, ownerID uuid.UUID, file *multipart.FileHeader) (*models.Attachment, error) {
	station, err := uc.stationRepo.GetStationByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	url, err := uc.storage.UploadFile(ctx, "stations", file)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to upload photo", err)
	}

	photo := &models.Attachment{
		OwnerID: station.ID,
		URL:     url,
		Kind:    storage.KindByExt(file.Filename),
	}
	if err := uc.stationRepo.AddStationPhoto(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}
