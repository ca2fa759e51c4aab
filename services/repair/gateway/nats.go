package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
	"github.com/ykovtun/avtosos/internal/pkg/constants"
	"github.com/ykovtun/avtosos/internal/pkg/models"
	natspkg "github.com/ykovtun/avtosos/internal/pkg/nats"
)

// ChannelUser prefixes a per-user notification channel id
const ChannelUser = "user:"

// ChannelMechanics is the shared mechanics channel id
const ChannelMechanics = "mechanics"

// NotificationGW publishes notifications to NATS. The WebSocket layer
// subscribes on the other side and fans out to connected clients, which
// keeps delivery working when the socket lives on another instance.
type NotificationGW struct {
	client *natspkg.Client
}

// NewNotificationGW creates a new notification gateway
func NewNotificationGW(client *natspkg.Client) *NotificationGW {
	return &NotificationGW{client: client}
}

// NotifyUser publishes a notification addressed to a single user
func (g *NotificationGW) NotifyUser(ctx context.Context, userID string, notification *models.Notification) error {
	subject := fmt.Sprintf(constants.SubjectNotifyUser, userID)
	return g.publish(subject, ChannelUser+userID, notification)
}

// NotifyMechanics publishes a notification to the mechanics channel
func (g *NotificationGW) NotifyMechanics(ctx context.Context, notification *models.Notification) error {
	return g.publish(constants.SubjectNotifyMechanics, ChannelMechanics, notification)
}

func (g *NotificationGW) publish(subject string, channel string, notification *models.Notification) error {
	envelope := models.ChannelNotification{
		Channel:      channel,
		Notification: *notification,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to marshal notification", err)
	}

	if err := g.client.Publish(subject, data); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to publish notification", err)
	}
	return nil
}
