package http

import (
	nethttp "net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ykovtun/avtosos/internal/pkg/middleware"
	"github.com/ykovtun/avtosos/internal/pkg/models"
	"github.com/ykovtun/avtosos/internal/utils"
	"github.com/ykovtun/avtosos/services/repair"
)

// CarHandler handles HTTP requests for the client garage
type CarHandler struct {
	carUC repair.CarUC
}

// NewCarHandler creates a new car handler
func NewCarHandler(carUC repair.CarUC) *CarHandler {
	return &CarHandler{carUC: carUC}
}

// UpsertCar handles adding or updating a car
func (h *CarHandler) UpsertCar(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.CarUpsertRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.AppErrorResponse(c, err)
	}

	car, err := h.carUC.UpsertCar(c.Request().Context(), userID, req)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "Car saved", car)
}

// ListCars handles listing the caller's cars
func (h *CarHandler) ListCars(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	cars, err := h.carUC.ListCars(c.Request().Context(), userID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "", cars)
}

// DeleteCar handles removing a car from the caller's garage
func (h *CarHandler) DeleteCar(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid car ID")
	}

	if err := h.carUC.DeleteCar(c.Request().Context(), userID, carID); err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "Car deleted", nil)
}

// LookupPlate handles vehicle data lookup by license plate
func (h *CarHandler) LookupPlate(c echo.Context) error {
	plate := c.Param("plate")
	if plate == "" {
		return utils.BadRequestResponse(c, "License plate is required")
	}

	info, err := h.carUC.LookupPlate(c.Request().Context(), plate)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "", info)
}
