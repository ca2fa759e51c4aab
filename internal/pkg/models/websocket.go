package models

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// WSMessage represents a WebSocket message structure
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WSErrorMessage represents an error message sent over WebSocket
type WSErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WebSocketClient is one authenticated connection. IsMechanic is
// decided once at connect time by an explicit station-ownership check.
type WebSocketClient struct {
	UserID     string
	Role       string
	IsMechanic bool
	Conn       *websocket.Conn

	writeMu sync.Mutex
}

// WriteJSON serializes writers on the connection. gorilla/websocket
// supports at most one concurrent writer per connection, but the
// read-loop pong and the notification fan-out can fire at the same time.
func (c *WebSocketClient) WriteJSON(v interface{}) error {
	if c.Conn == nil {
		return nil
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}
