package health

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ykovtun/avtosos/internal/pkg/database"
	natspkg "github.com/ykovtun/avtosos/internal/pkg/nats"
)

// Status is the health check response
type Status struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	Components map[string]string `json:"components"`
	Timestamp  time.Time         `json:"timestamp"`
}

// Handler exposes liveness and readiness probes
type Handler struct {
	version string
	db      *database.PostgresClient
	redis   *database.RedisClient
	nats    *natspkg.Client
}

// NewHandler creates a health handler
func NewHandler(version string, db *database.PostgresClient, redis *database.RedisClient, nc *natspkg.Client) *Handler {
	return &Handler{
		version: version,
		db:      db,
		redis:   redis,
		nats:    nc,
	}
}

// RegisterRoutes registers health endpoints on the Echo instance
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/health/ready", h.Ready)
}

// Health is a liveness probe
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, Status{
		Status:    "ok",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
	})
}

// Ready is a readiness probe checking backing services
func (h *Handler) Ready(c echo.Context) error {
	ctx := c.Request().Context()
	components := make(map[string]string)
	healthy := true

	if err := h.db.GetDB().PingContext(ctx); err != nil {
		components["postgres"] = err.Error()
		healthy = false
	} else {
		components["postgres"] = "ok"
	}

	if err := h.redis.Ping(ctx); err != nil {
		components["redis"] = err.Error()
		healthy = false
	} else {
		components["redis"] = "ok"
	}

	if h.nats.GetConn() == nil || !h.nats.GetConn().IsConnected() {
		components["nats"] = "disconnected"
		healthy = false
	} else {
		components["nats"] = "ok"
	}

	status := http.StatusOK
	result := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		result = "degraded"
	}

	return c.JSON(status, Status{
		Status:     result,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now().UTC(),
	})
}
