package repair

import (
	"context"

	"github.com/google/uuid"
	"github.com/ykovtun/avtosos/internal/pkg/models"
)

// UserRepo defines the interface for user data access operations
type UserRepo interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUserRole(ctx context.Context, id uuid.UUID, role string) error
	UpdateUserRating(ctx context.Context, id uuid.UUID, rating float64) error
}

// CarRepo defines the interface for car data access operations
type CarRepo interface {
	UpsertCar(ctx context.Context, car *models.Car) (*models.Car, error)
	GetCar(ctx context.Context, id uuid.UUID) (*models.Car, error)
	ListCarsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Car, error)
	DeleteCar(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
}

// CategoryRepo defines the interface for service category data access
type CategoryRepo interface {
	ListCategories(ctx context.Context) ([]models.ServiceCategory, error)
	GetCategory(ctx context.Context, id int64) (*models.ServiceCategory, error)
}

// StationRepo defines the interface for service station data access
type StationRepo interface {
	UpsertStation(ctx context.Context, station *models.ServiceStation) (*models.ServiceStation, error)
	GetStationByID(ctx context.Context, id uuid.UUID) (*models.ServiceStation, error)
	GetStationByOwner(ctx context.Context, ownerID uuid.UUID) (*models.ServiceStation, error)
	UpdateStationRating(ctx context.Context, ownerID uuid.UUID, rating float64) error
	AddStationPhoto(ctx context.Context, photo *models.Attachment) error
	ListStationPhotos(ctx context.Context, stationID uuid.UUID) ([]models.Attachment, error)
}

// RequestRepo defines the interface for repair request data access
type RequestRepo interface {
	CreateRequest(ctx context.Context, request *models.Request) (*models.Request, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*models.Request, error)
	ListRequestsByClient(ctx context.Context, clientID uuid.UUID) ([]models.Request, error)
	// UpdateRequestStatus transitions a request from one status to
	// another. It fails with a conflict when the request is no longer
	// in the expected status.
	UpdateRequestStatus(ctx context.Context, id uuid.UUID, from, to string) error
	AddAttachment(ctx context.Context, attachment *models.Attachment) error
	ListAttachments(ctx context.Context, requestID uuid.UUID) ([]models.Attachment, error)
}

// OfferRepo defines the interface for offer data access operations
type OfferRepo interface {
	CreateOffer(ctx context.Context, offer *models.Offer) (*models.Offer, error)
	GetOffer(ctx context.Context, id uuid.UUID) (*models.Offer, error)
	ListOffersByRequest(ctx context.Context, requestID uuid.UUID) ([]models.Offer, error)
	ListOffersByMechanic(ctx context.Context, mechanicID uuid.UUID) ([]models.Offer, error)
	GetAcceptedOffer(ctx context.Context, requestID uuid.UUID) (*models.Offer, error)
	// AcceptOffer marks the offer accepted and activates its request in
	// a single transaction. It fails with a conflict when either side
	// already changed.
	AcceptOffer(ctx context.Context, offerID uuid.UUID, requestID uuid.UUID) error
}

// ReviewRepo defines the interface for review data access operations
type ReviewRepo interface {
	CreateMechanicReview(ctx context.Context, review *models.Review) (*models.Review, error)
	CreateClientReview(ctx context.Context, review *models.ClientReview) (*models.ClientReview, error)
	ListReviewsByMechanic(ctx context.Context, mechanicID uuid.UUID) ([]models.Review, error)
	ListMechanicRatings(ctx context.Context, mechanicID uuid.UUID) ([]int, error)
	ListClientRatings(ctx context.Context, clientID uuid.UUID) ([]int, error)
}

// GeoRepo defines the interface for the proximity index
type GeoRepo interface {
	AddStationLocation(ctx context.Context, stationID uuid.UUID, location models.Point) error
	RemoveStationLocation(ctx context.Context, stationID uuid.UUID) error
	NearbyStations(ctx context.Context, center models.Point, radiusKm float64) ([]models.GeoMember, error)
	AddRequestLocation(ctx context.Context, requestID uuid.UUID, location models.Point) error
	RemoveRequestLocation(ctx context.Context, requestID uuid.UUID) error
	NearbyRequests(ctx context.Context, center models.Point, radiusKm float64) ([]models.GeoMember, error)
}
