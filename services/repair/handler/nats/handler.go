package nats

import (
	"encoding/json"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/ykovtun/avtosos/internal/pkg/constants"
	"github.com/ykovtun/avtosos/internal/pkg/logger"
	"github.com/ykovtun/avtosos/internal/pkg/models"
	natspkg "github.com/ykovtun/avtosos/internal/pkg/nats"
	wspkg "github.com/ykovtun/avtosos/internal/pkg/websocket"
	"github.com/ykovtun/avtosos/services/repair/gateway"
)

// Handler subscribes to notification subjects and fans events out to
// WebSocket clients connected to this instance
type Handler struct {
	client  *natspkg.Client
	manager *wspkg.Manager
	subs    []*nats.Subscription
}

// NewHandler creates a new NATS fan-out handler
func NewHandler(client *natspkg.Client, manager *wspkg.Manager) *Handler {
	return &Handler{
		client:  client,
		manager: manager,
	}
}

// InitSubscribers starts the notification subscription
func (h *Handler) InitSubscribers() error {
	sub, err := h.client.Subscribe(constants.SubjectNotifyAll, h.handleNotification)
	if err != nil {
		return err
	}
	h.subs = append(h.subs, sub)

	logger.Info("Notification subscriber started",
		logger.String("subject", constants.SubjectNotifyAll))
	return nil
}

// Close drains the subscriptions
func (h *Handler) Close() {
	for _, sub := range h.subs {
		if err := sub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe", logger.Err(err))
		}
	}
}

func (h *Handler) handleNotification(msg *nats.Msg) {
	var envelope models.ChannelNotification
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		logger.Warn("Failed to unmarshal notification",
			logger.String("subject", msg.Subject),
			logger.Err(err))
		return
	}

	switch {
	case envelope.Channel == gateway.ChannelMechanics:
		h.manager.NotifyMechanics(&envelope.Notification)
	case strings.HasPrefix(envelope.Channel, gateway.ChannelUser):
		userID := strings.TrimPrefix(envelope.Channel, gateway.ChannelUser)
		h.manager.NotifyUser(userID, &envelope.Notification)
	default:
		logger.Warn("Notification on unknown channel",
			logger.String("channel", envelope.Channel))
	}
}
