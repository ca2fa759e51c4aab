package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ykovtun/avtosos/internal/pkg/models"
	"github.com/ykovtun/avtosos/internal/pkg/platelookup"
	"github.com/ykovtun/avtosos/services/repair"
)

// CarUC implements the client garage and plate lookup
type CarUC struct {
	carRepo repair.CarRepo
	lookup  *platelookup.Client
}

// NewCarUC creates a new car usecase
func NewCarUC(carRepo repair.CarRepo, lookup *platelookup.Client) *CarUC {
	return &CarUC{
		carRepo: carRepo,
		lookup:  lookup,
	}
}

// UpsertCar adds a car to the caller's garage or updates it. Plates are
// normalized so the same car entered twice collapses to one row.
func (uc *CarUC) UpsertCar(ctx context.Context, ownerID uuid.UUID, req models.CarUpsertRequest) (*models.Car, error) {
	car := &models.Car{
		OwnerID:      ownerID,
		LicensePlate: normalizePlate(req.LicensePlate),
		BrandModel:   req.BrandModel,
		Year:         req.Year,
		VIN:          strings.ToUpper(strings.TrimSpace(req.VIN)),
		Color:        req.Color,
		Type:         req.Type,
		Body:         req.Body,
		Fuel:         req.Fuel,
		EngineVolume: req.EngineVolume,
		Weight:       req.Weight,
	}
	return uc.carRepo.UpsertCar(ctx, car)
}

// ListCars lists the caller's garage
func (uc *CarUC) ListCars(ctx context.Context, ownerID uuid.UUID) ([]models.Car, error) {
	return uc.carRepo.ListCarsByOwner(ctx, ownerID)
}

// DeleteCar removes a car from the caller's garage
func (uc *CarUC) DeleteCar(ctx context.Context, ownerID uuid.UUID, carID uuid.UUID) error {
	return uc.carRepo.DeleteCar(ctx, carID, ownerID)
}

// LookupPlate resolves vehicle data from the public registry
func (uc *CarUC) LookupPlate(ctx context.Context, plate string) (*models.PlateInfo, error) {
	return uc.lookup.Lookup(ctx, plate)
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), " ", ""))
}
