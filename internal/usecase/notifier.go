package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/polarsource/organization-service/internal/domain/model"
	"github.com/polarsource/organization-service/pkg/messaging"
)

// Notification channels
const (
	ChannelNewOrder        = "organization.new_order"
	ChannelNewSubscription = "organization.new_subscription"
)

// OrganizationEvent is the payload published for organization notifications
type OrganizationEvent struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	Type           string    `json:"type"`
	ResourceID     string    `json:"resource_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// OrganizationNotifier fans organization events out over redis pub/sub,
// honoring the organization's notification settings
type OrganizationNotifier struct {
	redis  messaging.RedisClient
	logger *zap.Logger
}

// NewOrganizationNotifier creates a new organization notifier
func NewOrganizationNotifier(redis messaging.RedisClient, logger *zap.Logger) *OrganizationNotifier {
	return &OrganizationNotifier{
		redis:  redis,
		logger: logger,
	}
}

// NotifyNewOrder publishes a new-order event unless the organization has
// disabled new-order notifications
func (n *OrganizationNotifier) NotifyNewOrder(ctx context.Context, org *model.Organization, orderID string) error {
	if !org.NotificationSettings.NewOrder {
		n.logger.Debug("New order notification suppressed by settings",
			zap.String("organization_id", org.ID.String()))
		return nil
	}

	return n.publish(ctx, ChannelNewOrder, org.ID, "new_order", orderID)
}

// NotifyNewSubscription publishes a new-subscription event unless the
// organization has disabled new-subscription notifications
func (n *OrganizationNotifier) NotifyNewSubscription(ctx context.Context, org *model.Organization, subscriptionID string) error {
	if !org.NotificationSettings.NewSubscription {
		n.logger.Debug("New subscription notification suppressed by settings",
			zap.String("organization_id", org.ID.String()))
		return nil
	}

	return n.publish(ctx, ChannelNewSubscription, org.ID, "new_subscription", subscriptionID)
}

func (n *OrganizationNotifier) publish(ctx context.Context, channel string, orgID uuid.UUID, eventType, resourceID string) error {
	event := OrganizationEvent{
		OrganizationID: orgID,
		Type:           eventType,
		ResourceID:     resourceID,
		OccurredAt:     time.Now(),
	}

	if err := n.redis.Publish(ctx, channel, event); err != nil {
		n.logger.Error("Failed to publish organization event",
			zap.String("organization_id", orgID.String()),
			zap.String("channel", channel),
			zap.Error(err))
		return err
	}

	n.logger.Info("Organization event published",
		zap.String("organization_id", orgID.String()),
		zap.String("channel", channel),
		zap.String("resource_id", resourceID))
	return nil
}
