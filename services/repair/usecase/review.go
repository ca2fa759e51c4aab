package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
	"github.com/ykovtun/avtosos/internal/pkg/logger"
	"github.com/ykovtun/avtosos/internal/pkg/models"
	"github.com/ykovtun/avtosos/services/repair"
)

// ReviewUC implements two-way reviews and rating aggregation
type ReviewUC struct {
	reviewRepo  repair.ReviewRepo
	requestRepo repair.RequestRepo
	offerRepo   repair.OfferRepo
	userRepo    repair.UserRepo
	stationRepo repair.StationRepo
}

// NewReviewUC creates a new review usecase
func NewReviewUC(
	reviewRepo repair.ReviewRepo,
	requestRepo repair.RequestRepo,
	offerRepo repair.OfferRepo,
	userRepo repair.UserRepo,
	stationRepo repair.StationRepo,
) *ReviewUC {
	return &ReviewUC{
		reviewRepo:  reviewRepo,
		requestRepo: requestRepo,
		offerRepo:   offerRepo,
		userRepo:    userRepo,
		stationRepo: stationRepo,
	}
}

// CreateReview records the client's review of the mechanic who won the
// bid on a finished request
func (uc *ReviewUC) CreateReview(ctx context.Context, authorID uuid.UUID, input models.CreateReviewInput) (*models.ReviewView, error) {
	request, offer, author, err := uc.reviewGate(ctx, authorID, input.RequestID)
	if err != nil {
		return nil, err
	}
	if authorID != request.ClientID {
		return nil, apperrors.Forbidden("only the request's client can review the mechanic")
	}
	return uc.reviewMechanic(ctx, request, offer, author, input)
}

// CreateClientReview records the mechanic's review of the client for a
// finished request they serviced
func (uc *ReviewUC) CreateClientReview(ctx context.Context, authorID uuid.UUID, input models.CreateReviewInput) (*models.ReviewView, error) {
	request, offer, author, err := uc.reviewGate(ctx, authorID, input.RequestID)
	if err != nil {
		return nil, err
	}
	if authorID != offer.MechanicID {
		return nil, apperrors.Forbidden("only the accepted mechanic can review the client")
	}
	return uc.reviewClient(ctx, request, offer, author, input)
}

// reviewGate enforces what both directions share: the request is done
// and carries an accepted offer
func (uc *ReviewUC) reviewGate(ctx context.Context, authorID uuid.UUID, requestID uuid.UUID) (*models.Request, *models.Offer, *models.User, error) {
	request, err := uc.requestRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, nil, nil, err
	}
	if request.Status != models.RequestStatusDone {
		return nil, nil, nil, apperrors.Conflict("request is not finished")
	}

	offer, err := uc.offerRepo.GetAcceptedOffer(ctx, request.ID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, nil, nil, apperrors.Conflict("request has no accepted offer")
		}
		return nil, nil, nil, err
	}

	author, err := uc.userRepo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, nil, nil, err
	}
	return request, offer, author, nil
}

// MechanicReviews lists the reviews a mechanic has received
func (uc *ReviewUC) MechanicReviews(ctx context.Context, mechanicID uuid.UUID) ([]models.ReviewView, error) {
	reviews, err := uc.reviewRepo.ListReviewsByMechanic(ctx, mechanicID)
	if err != nil {
		return nil, err
	}

	views := make([]models.ReviewView, 0, len(reviews))
	for i := range reviews {
		author, err := uc.userRepo.GetUserByID(ctx, reviews[i].AuthorID)
		if err != nil {
			continue
		}
		views = append(views, models.ToReviewView(&reviews[i], author))
	}
	return views, nil
}

func (uc *ReviewUC) reviewMechanic(ctx context.Context, request *models.Request, offer *models.Offer, author *models.User, input models.CreateReviewInput) (*models.ReviewView, error) {
	review := &models.Review{
		RequestID:  request.ID,
		AuthorID:   author.ID,
		MechanicID: offer.MechanicID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	created, err := uc.reviewRepo.CreateMechanicReview(ctx, review)
	if err != nil {
		return nil, err
	}

	uc.recomputeMechanicRating(ctx, offer.MechanicID)

	view := models.ToReviewView(created, author)
	return &view, nil
}

func (uc *ReviewUC) reviewClient(ctx context.Context, request *models.Request, offer *models.Offer, author *models.User, input models.CreateReviewInput) (*models.ReviewView, error) {
	review := &models.ClientReview{
		RequestID: request.ID,
		AuthorID:  author.ID,
		ClientID:  request.ClientID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	created, err := uc.reviewRepo.CreateClientReview(ctx, review)
	if err != nil {
		return nil, err
	}

	uc.recomputeClientRating(ctx, request.ClientID)

	view := models.ToReviewView(&models.Review{
		ID:        created.ID,
		Rating:    created.Rating,
		Comment:   created.Comment,
		CreatedAt: created.CreatedAt,
	}, author)
	return &view, nil
}

// recomputeMechanicRating recalculates the mechanic's aggregate as the
// arithmetic mean of all received ratings and mirrors it on the station
func (uc *ReviewUC) recomputeMechanicRating(ctx context.Context, mechanicID uuid.UUID) {
	ratings, err := uc.reviewRepo.ListMechanicRatings(ctx, mechanicID)
	if err != nil || len(ratings) == 0 {
		return
	}

	rating := meanRating(ratings)
	if err := uc.userRepo.UpdateUserRating(ctx, mechanicID, rating); err != nil {
		logger.Warn("Failed to update mechanic rating",
			logger.String("mechanic_id", mechanicID.String()),
			logger.Err(err))
		return
	}
	if err := uc.stationRepo.UpdateStationRating(ctx, mechanicID, rating); err != nil {
		logger.Warn("Failed to update station rating",
			logger.String("mechanic_id", mechanicID.String()),
			logger.Err(err))
	}
}

func (uc *ReviewUC) recomputeClientRating(ctx context.Context, clientID uuid.UUID) {
	ratings, err := uc.reviewRepo.ListClientRatings(ctx, clientID)
	if err != nil || len(ratings) == 0 {
		return
	}

	if err := uc.userRepo.UpdateUserRating(ctx, clientID, meanRating(ratings)); err != nil {
		logger.Warn("Failed to update client rating",
			logger.String("client_id", clientID.String()),
			logger.Err(err))
	}
}

func meanRating(ratings []int) float64 {
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}
