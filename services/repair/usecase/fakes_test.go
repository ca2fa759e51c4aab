package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
	"github.com/ykovtun/avtosos/internal/pkg/models"
	"github.com/ykovtun/avtosos/internal/utils"
)

// In-memory repository fakes. They mirror the postgres constraints the
// usecases rely on: conditional status transitions, one bid per
// mechanic per request, one review per request per author. Single-row
// reads hand back copies, like sqlx scans do, so the stores stay
// consistent under concurrent callers.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserRepo) add(username, role string) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := &models.User{ID: uuid.New(), Username: username, Phone: "+380501112233", Role: role}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return nil, apperrors.Conflict("username already taken")
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = models.RoleClient
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (f *fakeUserRepo) UpdateUserRole(ctx context.Context, id uuid.UUID, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return apperrors.NotFound("user not found")
	}
	user.Role = role
	return nil
}

func (f *fakeUserRepo) UpdateUserRating(ctx context.Context, id uuid.UUID, rating float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return apperrors.NotFound("user not found")
	}
	user.Rating = rating
	return nil
}

type fakeStationRepo struct {
	mu       sync.Mutex
	byOwner  map[uuid.UUID]*models.ServiceStation
	photos   map[uuid.UUID][]models.Attachment
}

func newFakeStationRepo() *fakeStationRepo {
	return &fakeStationRepo{
		byOwner: make(map[uuid.UUID]*models.ServiceStation),
		photos:  make(map[uuid.UUID][]models.Attachment),
	}
}

func (f *fakeStationRepo) add(ownerID uuid.UUID, lat, lng float64) *models.ServiceStation {
	f.mu.Lock()
	defer f.mu.Unlock()
	station := &models.ServiceStation{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Name:     "STO",
		Address:  "Peremohy ave 1",
		Phone:    "+380441234567",
		Location: models.NewPoint(lat, lng),
	}
	f.byOwner[ownerID] = station
	return station
}

func (f *fakeStationRepo) UpsertStation(ctx context.Context, station *models.ServiceStation) (*models.ServiceStation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.byOwner[station.OwnerID]; ok {
		station.ID = existing.ID
		station.Rating = existing.Rating
	} else if station.ID == uuid.Nil {
		station.ID = uuid.New()
	}
	f.byOwner[station.OwnerID] = station
	return station, nil
}

func (f *fakeStationRepo) GetStationByID(ctx context.Context, id uuid.UUID) (*models.ServiceStation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, station := range f.byOwner {
		if station.ID == id {
			return station, nil
		}
	}
	return nil, apperrors.NotFound("station not found")
}

func (f *fakeStationRepo) GetStationByOwner(ctx context.Context, ownerID uuid.UUID) (*models.ServiceStation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	station, ok := f.byOwner[ownerID]
	if !ok {
		return nil, apperrors.NotFound("station not found")
	}
	return station, nil
}

func (f *fakeStationRepo) UpdateStationRating(ctx context.Context, ownerID uuid.UUID, rating float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if station, ok := f.byOwner[ownerID]; ok {
		station.Rating = rating
	}
	return nil
}

func (f *fakeStationRepo) AddStationPhoto(ctx context.Context, photo *models.Attachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.photos[photo.OwnerID] = append(f.photos[photo.OwnerID], *photo)
	return nil
}

func (f *fakeStationRepo) ListStationPhotos(ctx context.Context, stationID uuid.UUID) ([]models.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.photos[stationID], nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*models.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[uuid.UUID]*models.Request)}
}

func (f *fakeRequestRepo) add(clientID uuid.UUID, status string) *models.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	request := &models.Request{
		ID:          uuid.New(),
		ClientID:    clientID,
		CarModel:    "VW Golf",
		Description: "engine stalls",
		Location:    models.NewPoint(50.45, 30.52),
		Status:      status,
	}
	f.requests[request.ID] = request
	return request
}

func (f *fakeRequestRepo) CreateRequest(ctx context.Context, request *models.Request) (*models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	request.Status = models.RequestStatusNew
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeRequestRepo) GetRequest(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok {
		return nil, apperrors.NotFound("request not found")
	}
	row := *request
	return &row, nil
}

func (f *fakeRequestRepo) ListRequestsByClient(ctx context.Context, clientID uuid.UUID) ([]models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []models.Request{}
	for _, request := range f.requests {
		if request.ClientID == clientID {
			result = append(result, *request)
		}
	}
	return result, nil
}

func (f *fakeRequestRepo) UpdateRequestStatus(ctx context.Context, id uuid.UUID, from, to string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok || request.Status != from {
		return apperrors.Conflict("request is not in status " + from)
	}
	request.Status = to
	return nil
}

func (f *fakeRequestRepo) AddAttachment(ctx context.Context, attachment *models.Attachment) error {
	return nil
}

func (f *fakeRequestRepo) ListAttachments(ctx context.Context, requestID uuid.UUID) ([]models.Attachment, error) {
	return nil, nil
}

type fakeOfferRepo struct {
	mu             sync.Mutex
	offers         map[uuid.UUID]*models.Offer
	linkedRequests *fakeRequestRepo
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[uuid.UUID]*models.Offer)}
}

// linkRequests wires the request store so AcceptOffer can mimic the
// cross-table transaction
func (f *fakeOfferRepo) linkRequests(requests *fakeRequestRepo) {
	f.linkedRequests = requests
}

func (f *fakeOfferRepo) CreateOffer(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.offers {
		if existing.RequestID == offer.RequestID && existing.MechanicID == offer.MechanicID {
			return nil, apperrors.Conflict("offer already exists for this request")
		}
	}
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	f.offers[offer.ID] = offer
	return offer, nil
}

func (f *fakeOfferRepo) GetOffer(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	offer, ok := f.offers[id]
	if !ok {
		return nil, apperrors.NotFound("offer not found")
	}
	row := *offer
	return &row, nil
}

func (f *fakeOfferRepo) ListOffersByRequest(ctx context.Context, requestID uuid.UUID) ([]models.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []models.Offer{}
	for _, offer := range f.offers {
		if offer.RequestID == requestID {
			result = append(result, *offer)
		}
	}
	return result, nil
}

func (f *fakeOfferRepo) ListOffersByMechanic(ctx context.Context, mechanicID uuid.UUID) ([]models.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []models.Offer{}
	for _, offer := range f.offers {
		if offer.MechanicID == mechanicID {
			result = append(result, *offer)
		}
	}
	return result, nil
}

func (f *fakeOfferRepo) GetAcceptedOffer(ctx context.Context, requestID uuid.UUID) (*models.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, offer := range f.offers {
		if offer.RequestID == requestID && offer.IsAccepted {
			row := *offer
			return &row, nil
		}
	}
	return nil, apperrors.NotFound("no accepted offer for this request")
}

// AcceptOffer mirrors the transactional accept: both the offer and the
// request must still be in their initial state. Both stores are locked
// for the duration, like the row locks the real transaction takes.
func (f *fakeOfferRepo) AcceptOffer(ctx context.Context, offerID uuid.UUID, requestID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linkedRequests.mu.Lock()
	defer f.linkedRequests.mu.Unlock()
	offer, ok := f.offers[offerID]
	if !ok || offer.IsAccepted {
		return apperrors.Conflict("offer already accepted")
	}
	request, ok := f.linkedRequests.requests[requestID]
	if !ok || request.Status != models.RequestStatusNew {
		return apperrors.Conflict("request is no longer open")
	}
	offer.IsAccepted = true
	request.Status = models.RequestStatusActive
	return nil
}

type fakeReviewRepo struct {
	mu              sync.Mutex
	mechanicReviews []models.Review
	clientReviews   []models.ClientReview
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{}
}

func (f *fakeReviewRepo) CreateMechanicReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.mechanicReviews {
		if existing.RequestID == review.RequestID && existing.AuthorID == review.AuthorID {
			return nil, apperrors.Conflict("review already exists for this request")
		}
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	f.mechanicReviews = append(f.mechanicReviews, *review)
	return review, nil
}

func (f *fakeReviewRepo) CreateClientReview(ctx context.Context, review *models.ClientReview) (*models.ClientReview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.clientReviews {
		if existing.RequestID == review.RequestID && existing.AuthorID == review.AuthorID {
			return nil, apperrors.Conflict("review already exists for this request")
		}
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	f.clientReviews = append(f.clientReviews, *review)
	return review, nil
}

func (f *fakeReviewRepo) ListReviewsByMechanic(ctx context.Context, mechanicID uuid.UUID) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []models.Review{}
	for _, review := range f.mechanicReviews {
		if review.MechanicID == mechanicID {
			result = append(result, review)
		}
	}
	return result, nil
}

func (f *fakeReviewRepo) ListMechanicRatings(ctx context.Context, mechanicID uuid.UUID) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ratings := []int{}
	for _, review := range f.mechanicReviews {
		if review.MechanicID == mechanicID {
			ratings = append(ratings, review.Rating)
		}
	}
	return ratings, nil
}

func (f *fakeReviewRepo) ListClientRatings(ctx context.Context, clientID uuid.UUID) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ratings := []int{}
	for _, review := range f.clientReviews {
		if review.ClientID == clientID {
			ratings = append(ratings, review.Rating)
		}
	}
	return ratings, nil
}

type fakeGeoRepo struct {
	mu       sync.Mutex
	stations map[uuid.UUID]models.Point
	requests map[uuid.UUID]models.Point
}

func newFakeGeoRepo() *fakeGeoRepo {
	return &fakeGeoRepo{
		stations: make(map[uuid.UUID]models.Point),
		requests: make(map[uuid.UUID]models.Point),
	}
}

func (f *fakeGeoRepo) AddStationLocation(ctx context.Context, stationID uuid.UUID, location models.Point) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stations[stationID] = location
	return nil
}

func (f *fakeGeoRepo) RemoveStationLocation(ctx context.Context, stationID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.stations, stationID)
	return nil
}

func (f *fakeGeoRepo) NearbyStations(ctx context.Context, center models.Point, radiusKm float64) ([]models.GeoMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return membersWithin(f.stations, center, radiusKm), nil
}

func (f *fakeGeoRepo) AddRequestLocation(ctx context.Context, requestID uuid.UUID, location models.Point) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests[requestID] = location
	return nil
}

func (f *fakeGeoRepo) RemoveRequestLocation(ctx context.Context, requestID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.requests, requestID)
	return nil
}

func (f *fakeGeoRepo) NearbyRequests(ctx context.Context, center models.Point, radiusKm float64) ([]models.GeoMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return membersWithin(f.requests, center, radiusKm), nil
}

// membersWithin applies the same haversine radius cut the redis GEO
// query performs, so radius behavior is observable through the fakes
func membersWithin(index map[uuid.UUID]models.Point, center models.Point, radiusKm float64) []models.GeoMember {
	members := []models.GeoMember{}
	for id, location := range index {
		distance := utils.CalculateDistance(center, location)
		if distance > radiusKm {
			continue
		}
		members = append(members, models.GeoMember{ID: id.String(), Location: location, DistanceKm: distance})
	}
	return members
}

func (f *fakeGeoRepo) hasRequest(id uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.requests[id]
	return ok
}

type fakeCategoryRepo struct {
	categories []models.ServiceCategory
}

func (f *fakeCategoryRepo) ListCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	return f.categories, nil
}

func (f *fakeCategoryRepo) GetCategory(ctx context.Context, id int64) (*models.ServiceCategory, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			return &f.categories[i], nil
		}
	}
	return nil, apperrors.NotFound("category not found")
}

type fakeCarRepo struct {
	mu   sync.Mutex
	cars map[uuid.UUID]*models.Car
}

func newFakeCarRepo() *fakeCarRepo {
	return &fakeCarRepo{cars: make(map[uuid.UUID]*models.Car)}
}

func (f *fakeCarRepo) UpsertCar(ctx context.Context, car *models.Car) (*models.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if car.ID == uuid.Nil {
		car.ID = uuid.New()
	}
	f.cars[car.ID] = car
	return car, nil
}

func (f *fakeCarRepo) GetCar(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	car, ok := f.cars[id]
	if !ok {
		return nil, apperrors.NotFound("car not found")
	}
	return car, nil
}

func (f *fakeCarRepo) ListCarsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []models.Car{}
	for _, car := range f.cars {
		if car.OwnerID == ownerID {
			result = append(result, *car)
		}
	}
	return result, nil
}

func (f *fakeCarRepo) DeleteCar(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	car, ok := f.cars[id]
	if !ok || car.OwnerID != ownerID {
		return apperrors.NotFound("car not found")
	}
	delete(f.cars, id)
	return nil
}
