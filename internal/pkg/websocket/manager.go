package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/ykovtun/avtosos/internal/pkg/constants"
	jwtpkg "github.com/ykovtun/avtosos/internal/pkg/jwt"
	"github.com/ykovtun/avtosos/internal/pkg/logger"
	"github.com/ykovtun/avtosos/internal/pkg/models"
)

// Manager manages WebSocket connections and channel membership.
// Per-user delivery is keyed by user id; the shared mechanics channel is
// the set of connected clients flagged IsMechanic at connect time.
type Manager struct {
	sync.RWMutex
	clients  map[string]*models.WebSocketClient
	cfg      models.JWTConfig
	upgrader websocket.Upgrader
}

// NewManager creates a new WebSocket manager
func NewManager(jwtConfig models.JWTConfig) *Manager {
	return &Manager{
		clients: make(map[string]*models.WebSocketClient),
		cfg:     jwtConfig,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection authenticates and handles a new WebSocket connection
func (m *Manager) HandleConnection(c echo.Context, handleClient func(*models.WebSocketClient, *websocket.Conn) error) error {
	client, err := m.authenticateClient(c)
	if err != nil {
		return err
	}

	ws, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	return handleClient(client, ws)
}

// authenticateClient authenticates the WebSocket client using JWT
func (m *Manager) authenticateClient(c echo.Context) (*models.WebSocketClient, error) {
	authHeader := c.Request().Header.Get("Authorization")
	token := ""
	switch {
	case authHeader != "":
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}
		token = parts[1]
	case c.QueryParam("token") != "":
		// browsers cannot set headers on WebSocket upgrade
		token = c.QueryParam("token")
	default:
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authorization is required")
	}

	claims, err := jwtpkg.ValidateToken(token, m.cfg.Secret)
	if err != nil {
		logger.Warn("Token validation failed", logger.Err(err))
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token: missing user_id claim")
	}

	return &models.WebSocketClient{
		UserID: userID,
		Role:   role,
	}, nil
}

// AddClient safely adds a client to the manager
func (m *Manager) AddClient(client *models.WebSocketClient) {
	m.Lock()
	defer m.Unlock()
	m.clients[client.UserID] = client
}

// RemoveClient removes a client from the manager. The entry is only
// deleted when it still belongs to this client, so a reconnect that
// already replaced the registration is left untouched.
func (m *Manager) RemoveClient(client *models.WebSocketClient) {
	m.Lock()
	defer m.Unlock()
	if current, ok := m.clients[client.UserID]; ok && current == client {
		delete(m.clients, client.UserID)
	}
}

// GetClient returns a client by ID
func (m *Manager) GetClient(userID string) (*models.WebSocketClient, bool) {
	m.RLock()
	defer m.RUnlock()
	client, exists := m.clients[userID]
	return client, exists
}

// SendMessage sends an event message to a WebSocket client
func (m *Manager) SendMessage(client *models.WebSocketClient, event string, data interface{}) error {
	if client == nil {
		return nil // tolerate unregistered clients in tests
	}

	rawData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshaling message data: %w", err)
	}

	return client.WriteJSON(models.WSMessage{
		Event: event,
		Data:  rawData,
	})
}

// SendErrorMessage sends an error message to a WebSocket client
func (m *Manager) SendErrorMessage(client *models.WebSocketClient, code string, message string) error {
	return m.SendMessage(client, constants.EventError, models.WSErrorMessage{
		Code:    code,
		Message: message,
	})
}

// SendNotification writes a notification envelope to a WebSocket client
func (m *Manager) SendNotification(client *models.WebSocketClient, n *models.Notification) error {
	if client == nil {
		return nil
	}
	return client.WriteJSON(n)
}

// NotifyUser delivers a notification to a connected user. Delivery is
// best effort: a disconnected user simply misses the event.
func (m *Manager) NotifyUser(userID string, n *models.Notification) {
	m.RLock()
	client, exists := m.clients[userID]
	m.RUnlock()

	if !exists {
		return
	}

	if err := m.SendNotification(client, n); err != nil {
		logger.Warn("Error sending notification to client",
			logger.String("user_id", userID),
			logger.String("event", n.Event),
			logger.Err(err))
	}
}

// NotifyMechanics delivers a notification to every connected client that
// joined the mechanics channel
func (m *Manager) NotifyMechanics(n *models.Notification) {
	m.RLock()
	targets := make([]*models.WebSocketClient, 0, len(m.clients))
	for _, client := range m.clients {
		if client.IsMechanic {
			targets = append(targets, client)
		}
	}
	m.RUnlock()

	for _, client := range targets {
		if err := m.SendNotification(client, n); err != nil {
			logger.Warn("Error broadcasting to mechanic",
				logger.String("user_id", client.UserID),
				logger.String("event", n.Event),
				logger.Err(err))
		}
	}
}

// MechanicCount returns the number of clients on the mechanics channel
func (m *Manager) MechanicCount() int {
	m.RLock()
	defer m.RUnlock()
	count := 0
	for _, client := range m.clients {
		if client.IsMechanic {
			count++
		}
	}
	return count
}
