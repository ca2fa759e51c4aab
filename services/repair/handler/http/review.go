package http

import (
	"context"
	nethttp "net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ykovtun/avtosos/internal/pkg/middleware"
	"github.com/ykovtun/avtosos/internal/pkg/models"
	"github.com/ykovtun/avtosos/internal/utils"
	"github.com/ykovtun/avtosos/services/repair"
)

// ReviewHandler handles HTTP requests for reviews
type ReviewHandler struct {
	reviewUC repair.ReviewUC
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewUC repair.ReviewUC) *ReviewHandler {
	return &ReviewHandler{reviewUC: reviewUC}
}

// CreateReview handles the client reviewing the mechanic on a finished
// request
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	return h.create(c, h.reviewUC.CreateReview)
}

// CreateClientReview handles the mechanic reviewing the client
func (h *ReviewHandler) CreateClientReview(c echo.Context) error {
	return h.create(c, h.reviewUC.CreateClientReview)
}

func (h *ReviewHandler) create(c echo.Context, submit func(ctx context.Context, authorID uuid.UUID, input models.CreateReviewInput) (*models.ReviewView, error)) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var input models.CreateReviewInput
	if err := c.Bind(&input); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&input); err != nil {
		return utils.AppErrorResponse(c, err)
	}

	view, err := submit(c.Request().Context(), userID, input)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusCreated, "Review saved", view)
}

// MechanicReviews handles listing the reviews a mechanic has received
func (h *ReviewHandler) MechanicReviews(c echo.Context) error {
	mechanicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid mechanic ID")
	}

	views, err := h.reviewUC.MechanicReviews(c.Request().Context(), mechanicID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "", views)
}
