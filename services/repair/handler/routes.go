package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/ykovtun/avtosos/internal/pkg/middleware"
	"github.com/ykovtun/avtosos/internal/pkg/models"
	"github.com/ykovtun/avtosos/services/repair/handler/http"
	"github.com/ykovtun/avtosos/services/repair/handler/nats"
	"github.com/ykovtun/avtosos/services/repair/handler/websocket"
)

// Handler coordinates all protocol handlers for the repair service
type Handler struct {
	authHandler     *http.AuthHandler
	carHandler      *http.CarHandler
	categoryHandler *http.CategoryHandler
	stationHandler  *http.StationHandler
	requestHandler  *http.RequestHandler
	offerHandler    *http.OfferHandler
	reviewHandler   *http.ReviewHandler
	wsHandler       *websocket.Handler
	natsHandler     *nats.Handler
	cfg             *models.Config
}

// NewHandler creates and wires all handlers
func NewHandler(
	authHandler *http.AuthHandler,
	carHandler *http.CarHandler,
	categoryHandler *http.CategoryHandler,
	stationHandler *http.StationHandler,
	requestHandler *http.RequestHandler,
	offerHandler *http.OfferHandler,
	reviewHandler *http.ReviewHandler,
	wsHandler *websocket.Handler,
	natsHandler *nats.Handler,
	cfg *models.Config,
) *Handler {
	return &Handler{
		authHandler:     authHandler,
		carHandler:      carHandler,
		categoryHandler: categoryHandler,
		stationHandler:  stationHandler,
		requestHandler:  requestHandler,
		offerHandler:    offerHandler,
		reviewHandler:   reviewHandler,
		wsHandler:       wsHandler,
		natsHandler:     natsHandler,
		cfg:             cfg,
	}
}

// InitSubscribers starts the NATS fan-out subscription
func (h *Handler) InitSubscribers() error {
	return h.natsHandler.InitSubscribers()
}

// RegisterRoutes registers all HTTP and WebSocket routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Public routes
	authGroup := e.Group("/auth")
	authGroup.POST("/register", h.authHandler.Register)
	authGroup.POST("/token", h.authHandler.Token)

	e.GET("/categories/tree", h.categoryHandler.Tree)
	e.GET("/stations/nearby", h.stationHandler.Nearby)
	e.GET("/stations/:id", h.stationHandler.StationDetail)
	e.GET("/reviews/mechanic/:id", h.reviewHandler.MechanicReviews)

	// Protected routes
	jwtMW := middleware.JWTAuthMiddleware(h.cfg.JWT)
	protected := e.Group("", jwtMW)

	protected.GET("/me", h.authHandler.Me)

	carGroup := protected.Group("/cars")
	carGroup.POST("/my-cars", h.carHandler.UpsertCar)
	carGroup.GET("/my-cars", h.carHandler.ListCars)
	carGroup.DELETE("/my-cars/:id", h.carHandler.DeleteCar)
	carGroup.GET("/lookup-car/:plate", h.carHandler.LookupPlate)

	stationGroup := protected.Group("/stations")
	stationGroup.POST("/my-station", h.stationHandler.UpsertStation)
	stationGroup.GET("/my-station", h.stationHandler.MyStation)
	stationGroup.POST("/my-station/photos", h.stationHandler.AddPhoto)

	protected.GET("/my-requests", h.requestHandler.MyRequests)

	requestGroup := protected.Group("/requests")
	requestGroup.POST("", h.requestHandler.CreateRequest)
	requestGroup.GET("/nearby", h.requestHandler.Nearby)
	requestGroup.GET("/:id", h.requestHandler.RequestDetail)
	requestGroup.POST("/:id/finish", h.requestHandler.FinishRequest)
	requestGroup.POST("/:id/cancel", h.requestHandler.CancelRequest)
	requestGroup.POST("/:id/attachments", h.requestHandler.AddAttachment)
	requestGroup.GET("/:id/offers", h.offerHandler.ListOffers)

	offerGroup := protected.Group("/offers")
	offerGroup.POST("", h.offerHandler.CreateOffer)
	offerGroup.POST("/:id/accept", h.offerHandler.AcceptOffer)
	offerGroup.GET("/mechanic/my-offers", h.offerHandler.MyJobs)

	protected.POST("/reviews", h.reviewHandler.CreateReview)
	protected.POST("/reviews/client", h.reviewHandler.CreateClientReview)

	// WebSocket notifications, token checked inside the manager
	e.GET("/ws", h.wsHandler.HandleWebSocket)
}
