package http

import (
	nethttp "net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ykovtun/avtosos/internal/pkg/middleware"
	"github.com/ykovtun/avtosos/internal/pkg/models"
	"github.com/ykovtun/avtosos/internal/utils"
	"github.com/ykovtun/avtosos/services/repair"
)

// StationHandler handles HTTP requests for service stations
type StationHandler struct {
	stationUC repair.StationUC
}

// NewStationHandler creates a new station handler
func NewStationHandler(stationUC repair.StationUC) *StationHandler {
	return &StationHandler{stationUC: stationUC}
}

// UpsertStation handles registering or updating the caller's station
func (h *StationHandler) UpsertStation(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.StationUpsertRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.AppErrorResponse(c, err)
	}

	station, err := h.stationUC.UpsertStation(c.Request().Context(), userID, req)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "Station saved", station)
}

// MyStation handles retrieving the caller's station
func (h *StationHandler) MyStation(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	station, err := h.stationUC.MyStation(c.Request().Context(), userID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "", station)
}

// StationDetail handles public station pages with photos and reviews
func (h *StationHandler) StationDetail(c echo.Context) error {
	stationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid station ID")
	}

	detail, err := h.stationUC.StationDetail(c.Request().Context(), stationID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "", detail)
}

// Nearby handles proximity search for stations around a point
func (h *StationHandler) Nearby(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid lat parameter")
	}
	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid lng parameter")
	}
	radius, _ := strconv.ParseFloat(c.QueryParam("radius_km"), 64)

	stations, err := h.stationUC.NearbyStations(c.Request().Context(), models.NewPoint(lat, lng), radius)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "", stations)
}

// AddPhoto handles photo uploads for the caller's station
func (h *StationHandler) AddPhoto(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return utils.BadRequestResponse(c, "Photo file is required")
	}

	photo, err := h.stationUC.AddPhoto(c.Request().Context(), userID, file)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusCreated, "Photo uploaded", photo)
}
