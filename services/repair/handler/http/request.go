package http

import (
	"mime/multipart"
	nethttp "net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ykovtun/avtosos/internal/pkg/middleware"
	"github.com/ykovtun/avtosos/internal/pkg/models"
	"github.com/ykovtun/avtosos/internal/utils"
	"github.com/ykovtun/avtosos/services/repair"
)

// RequestHandler handles HTTP requests for the repair request lifecycle
type RequestHandler struct {
	requestUC repair.RequestUC
	offerUC   repair.OfferUC
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestUC repair.RequestUC, offerUC repair.OfferUC) *RequestHandler {
	return &RequestHandler{
		requestUC: requestUC,
		offerUC:   offerUC,
	}
}

// CreateRequest handles posting a repair request. Accepts JSON or
// multipart form data with photo/video attachments.
func (h *RequestHandler) CreateRequest(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var input models.CreateRequestInput
	var files []*multipart.FileHeader

	if form, err := c.MultipartForm(); err == nil {
		input, err = bindRequestForm(c)
		if err != nil {
			return utils.BadRequestResponse(c, "Invalid form data")
		}
		files = form.File["attachments"]
	} else {
		if err := c.Bind(&input); err != nil {
			return utils.BadRequestResponse(c, "Invalid request payload")
		}
	}

	if err := c.Validate(&input); err != nil {
		return utils.AppErrorResponse(c, err)
	}

	view, err := h.requestUC.CreateRequest(c.Request().Context(), userID, input, files)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusCreated, "Request created", view)
}

// MyRequests handles listing the caller's requests
func (h *RequestHandler) MyRequests(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	views, err := h.requestUC.MyRequests(c.Request().Context(), userID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "", views)
}

// RequestDetail handles single request retrieval
func (h *RequestHandler) RequestDetail(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request ID")
	}

	view, err := h.requestUC.RequestDetail(c.Request().Context(), userID, requestID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "", view)
}

// Nearby handles proximity search for open requests. Coordinates are
// optional; without them the search centers on the caller's station.
func (h *RequestHandler) Nearby(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	radius, _ := strconv.ParseFloat(c.QueryParam("radius_km"), 64)

	var center *models.Point
	if c.QueryParam("lat") != "" || c.QueryParam("lng") != "" {
		lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
		if err != nil {
			return utils.BadRequestResponse(c, "Invalid latitude")
		}
		lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
		if err != nil {
			return utils.BadRequestResponse(c, "Invalid longitude")
		}
		p := models.NewPoint(lat, lng)
		center = &p
	}

	views, err := h.requestUC.NearbyRequests(c.Request().Context(), userID, center, radius)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "", views)
}

// AddAttachment handles uploading a media file onto an existing request
func (h *RequestHandler) AddAttachment(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request ID")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequestResponse(c, "Missing file")
	}

	att, err := h.requestUC.AddAttachment(c.Request().Context(), userID, requestID, file)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusCreated, "Attachment uploaded", att)
}

// FinishRequest handles the client marking an active request as done
func (h *RequestHandler) FinishRequest(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request ID")
	}

	if err := h.requestUC.FinishRequest(c.Request().Context(), userID, requestID); err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "Request finished", nil)
}

// CancelRequest handles the client canceling a request
func (h *RequestHandler) CancelRequest(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request ID")
	}

	if err := h.requestUC.CancelRequest(c.Request().Context(), userID, requestID); err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "Request canceled", nil)
}

// bindRequestForm reads a create request payload from multipart form fields
func bindRequestForm(c echo.Context) (models.CreateRequestInput, error) {
	var input models.CreateRequestInput

	lat, err := strconv.ParseFloat(c.FormValue("lat"), 64)
	if err != nil {
		return input, err
	}
	lng, err := strconv.ParseFloat(c.FormValue("lng"), 64)
	if err != nil {
		return input, err
	}

	input.Lat = lat
	input.Lng = lng
	input.Description = c.FormValue("description")
	input.CarModel = c.FormValue("car_model")
	input.Address = c.FormValue("address")
	input.IsSOS, _ = strconv.ParseBool(c.FormValue("is_sos"))

	if v := c.FormValue("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return input, err
		}
		input.CategoryID = &id
	}
	if v := c.FormValue("car_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return input, err
		}
		input.CarID = &id
	}

	return input, nil
}
