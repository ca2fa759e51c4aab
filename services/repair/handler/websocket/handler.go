package websocket

import (
	"context"
	"encoding/json"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/ykovtun/avtosos/internal/pkg/constants"
	"github.com/ykovtun/avtosos/internal/pkg/logger"
	"github.com/ykovtun/avtosos/internal/pkg/models"
	wspkg "github.com/ykovtun/avtosos/internal/pkg/websocket"
	"github.com/ykovtun/avtosos/services/repair"

	"github.com/google/uuid"
)

// Handler manages WebSocket subscriptions for realtime notifications.
// Connected clients always join their personal channel; station owners
// additionally join the mechanics channel.
type Handler struct {
	manager   *wspkg.Manager
	stationUC repair.StationUC
}

// NewHandler creates a new WebSocket handler
func NewHandler(manager *wspkg.Manager, stationUC repair.StationUC) *Handler {
	return &Handler{
		manager:   manager,
		stationUC: stationUC,
	}
}

// Manager exposes the connection manager for the fan-out subscriber
func (h *Handler) Manager() *wspkg.Manager {
	return h.manager
}

// HandleWebSocket upgrades the connection and serves it until it closes
func (h *Handler) HandleWebSocket(c echo.Context) error {
	return h.manager.HandleConnection(c, h.handleClient)
}

func (h *Handler) handleClient(client *models.WebSocketClient, conn *gorillaws.Conn) error {
	client.Conn = conn

	// channel membership is decided once, at connect
	if userID, err := uuid.Parse(client.UserID); err == nil {
		hasStation, err := h.stationUC.HasStation(context.Background(), userID)
		if err != nil {
			logger.Warn("Failed to check station ownership",
				logger.String("user_id", client.UserID),
				logger.Err(err))
		}
		client.IsMechanic = hasStation
	}

	h.manager.AddClient(client)
	defer h.manager.RemoveClient(client)

	logger.Info("WebSocket client connected",
		logger.String("user_id", client.UserID),
		logger.Bool("is_mechanic", client.IsMechanic))

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if gorillaws.IsUnexpectedCloseError(err, gorillaws.CloseGoingAway, gorillaws.CloseNormalClosure) {
				logger.Warn("WebSocket read error",
					logger.String("user_id", client.UserID),
					logger.Err(err))
			}
			return nil
		}

		if err := h.handleMessage(client, msg); err != nil {
			logger.Warn("Failed to handle WebSocket message",
				logger.String("user_id", client.UserID),
				logger.Err(err))
		}
	}
}

// handleMessage processes an inbound client message. The socket is
// primarily a notification feed; only control events are accepted.
func (h *Handler) handleMessage(client *models.WebSocketClient, msg []byte) error {
	var wsMsg models.WSMessage
	if err := json.Unmarshal(msg, &wsMsg); err != nil {
		return h.manager.SendErrorMessage(client, constants.ErrorInvalidFormat, "Invalid message format")
	}

	switch wsMsg.Event {
	case constants.EventPing:
		return h.manager.SendMessage(client, constants.EventPong, nil)
	default:
		return h.manager.SendErrorMessage(client, constants.ErrorInvalidFormat, "Unknown event: "+wsMsg.Event)
	}
}
