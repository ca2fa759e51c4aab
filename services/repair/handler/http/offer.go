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

// OfferHandler handles HTTP requests for bidding
type OfferHandler struct {
	offerUC repair.OfferUC
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(offerUC repair.OfferUC) *OfferHandler {
	return &OfferHandler{offerUC: offerUC}
}

// CreateOffer handles a mechanic placing a bid
func (h *OfferHandler) CreateOffer(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var input models.CreateOfferInput
	if err := c.Bind(&input); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&input); err != nil {
		return utils.AppErrorResponse(c, err)
	}

	view, err := h.offerUC.CreateOffer(c.Request().Context(), userID, input)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusCreated, "Offer placed", view)
}

// ListOffers handles listing the bids on the caller's request
func (h *OfferHandler) ListOffers(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request ID")
	}

	views, err := h.offerUC.ListOffers(c.Request().Context(), userID, requestID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "", views)
}

// AcceptOffer handles the client accepting a bid
func (h *OfferHandler) AcceptOffer(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid offer ID")
	}

	view, err := h.offerUC.AcceptOffer(c.Request().Context(), userID, offerID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "Offer accepted", view)
}

// MyJobs handles listing the mechanic's bids with their requests
func (h *OfferHandler) MyJobs(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	jobs, err := h.offerUC.MyJobs(c.Request().Context(), userID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "", jobs)
}
