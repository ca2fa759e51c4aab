package repair

import (
	"context"

	"github.com/ykovtun/avtosos/internal/pkg/models"
)

// NotificationGW defines the interface for publishing realtime notifications
// go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/ykovtun/avtosos/services/repair NotificationGW
type NotificationGW interface {
	// NotifyUser publishes a notification addressed to a single user
	NotifyUser(ctx context.Context, userID string, notification *models.Notification) error
	// NotifyMechanics publishes a notification to the shared mechanics channel
	NotifyMechanics(ctx context.Context, notification *models.Notification) error
}
