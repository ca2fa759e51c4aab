package repair

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/ykovtun/avtosos/internal/pkg/models"
)

// AuthUC defines the interface for authentication business logic
// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/ykovtun/avtosos/services/repair AuthUC,CarUC,CategoryUC,StationUC,RequestUC,OfferUC,ReviewUC
type AuthUC interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Profile(ctx context.Context, userID uuid.UUID) (*models.UserView, error)
}

// CarUC defines the interface for car business logic
type CarUC interface {
	UpsertCar(ctx context.Context, ownerID uuid.UUID, req models.CarUpsertRequest) (*models.Car, error)
	ListCars(ctx context.Context, ownerID uuid.UUID) ([]models.Car, error)
	DeleteCar(ctx context.Context, ownerID uuid.UUID, carID uuid.UUID) error
	LookupPlate(ctx context.Context, plate string) (*models.PlateInfo, error)
}

// CategoryUC defines the interface for service category business logic
type CategoryUC interface {
	CategoryTree(ctx context.Context) ([]*models.CategoryNode, error)
}

// StationUC defines the interface for service station business logic
type StationUC interface {
	UpsertStation(ctx context.Context, ownerID uuid.UUID, req models.StationUpsertRequest) (*models.ServiceStation, error)
	MyStation(ctx context.Context, ownerID uuid.UUID) (*models.ServiceStation, error)
	StationDetail(ctx context.Context, id uuid.UUID) (*models.StationDetailView, error)
	NearbyStations(ctx context.Context, center models.Point, radiusKm float64) ([]models.StationView, error)
	AddPhoto(ctx context.Context, ownerID uuid.UUID, file *multipart.FileHeader) (*models.Attachment, error)
	HasStation(ctx context.Context, ownerID uuid.UUID) (bool, error)
}

// RequestUC defines the interface for repair request business logic
type RequestUC interface {
	CreateRequest(ctx context.Context, clientID uuid.UUID, input models.CreateRequestInput, files []*multipart.FileHeader) (*models.RequestView, error)
	MyRequests(ctx context.Context, clientID uuid.UUID) ([]models.RequestView, error)
	RequestDetail(ctx context.Context, userID uuid.UUID, requestID uuid.UUID) (*models.RequestView, error)
	NearbyRequests(ctx context.Context, callerID uuid.UUID, center *models.Point, radiusKm float64) ([]models.RequestView, error)
	AddAttachment(ctx context.Context, clientID uuid.UUID, requestID uuid.UUID, file *multipart.FileHeader) (*models.Attachment, error)
	FinishRequest(ctx context.Context, clientID uuid.UUID, requestID uuid.UUID) error
	CancelRequest(ctx context.Context, clientID uuid.UUID, requestID uuid.UUID) error
}

// OfferUC defines the interface for offer business logic
type OfferUC interface {
	CreateOffer(ctx context.Context, mechanicID uuid.UUID, input models.CreateOfferInput) (*models.OfferView, error)
	ListOffers(ctx context.Context, clientID uuid.UUID, requestID uuid.UUID) ([]models.OfferView, error)
	AcceptOffer(ctx context.Context, clientID uuid.UUID, offerID uuid.UUID) (*models.OfferView, error)
	MyJobs(ctx context.Context, mechanicID uuid.UUID) ([]models.MechanicJobView, error)
}

// ReviewUC defines the interface for review business logic
type ReviewUC interface {
	CreateReview(ctx context.Context, authorID uuid.UUID, input models.CreateReviewInput) (*models.ReviewView, error)
	CreateClientReview(ctx context.Context, authorID uuid.UUID, input models.CreateReviewInput) (*models.ReviewView, error)
	MechanicReviews(ctx context.Context, mechanicID uuid.UUID) ([]models.ReviewView, error)
}
