package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/polarsource/organization-service/internal/domain/model"
	"github.com/polarsource/organization-service/pkg/messaging"
)

// MockRedisClient is a mock implementation of messaging.RedisClient
type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}

func (m *MockRedisClient) Subscribe(ctx context.Context, channel string) (<-chan messaging.Message, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan messaging.Message), args.Error(1)
}

func (m *MockRedisClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestOrganizationNotifier_NotifyNewOrder(t *testing.T) {
	logger := zap.NewNop()
	orgID := uuid.New()

	t.Run("publishes when notifications are on", func(t *testing.T) {
		mockRedis := new(MockRedisClient)
		mockRedis.On("Publish", mock.Anything, ChannelNewOrder, mock.MatchedBy(func(event OrganizationEvent) bool {
			return event.OrganizationID == orgID &&
				event.Type == "new_order" &&
				event.ResourceID == "order-123"
		})).Return(nil)

		notifier := NewOrganizationNotifier(mockRedis, logger)

		org := &model.Organization{
			ID:                   orgID,
			NotificationSettings: model.DefaultNotificationSettings(),
		}

		err := notifier.NotifyNewOrder(context.Background(), org, "order-123")

		assert.NoError(t, err)
		mockRedis.AssertExpectations(t)
	})

	t.Run("suppressed when notifications are off", func(t *testing.T) {
		mockRedis := new(MockRedisClient)

		notifier := NewOrganizationNotifier(mockRedis, logger)

		org := &model.Organization{
			ID:                   orgID,
			NotificationSettings: model.NotificationSettings{NewOrder: false, NewSubscription: true},
		}

		err := notifier.NotifyNewOrder(context.Background(), org, "order-123")

		assert.NoError(t, err)
		mockRedis.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("publish error propagates", func(t *testing.T) {
		publishErr := errors.New("connection refused")
		mockRedis := new(MockRedisClient)
		mockRedis.On("Publish", mock.Anything, ChannelNewOrder, mock.Anything).Return(publishErr)

		notifier := NewOrganizationNotifier(mockRedis, logger)

		org := &model.Organization{
			ID:                   orgID,
			NotificationSettings: model.DefaultNotificationSettings(),
		}

		err := notifier.NotifyNewOrder(context.Background(), org, "order-123")

		assert.ErrorIs(t, err, publishErr)
	})
}

func TestOrganizationNotifier_NotifyNewSubscription(t *testing.T) {
	logger := zap.NewNop()
	orgID := uuid.New()

	t.Run("publishes when notifications are on", func(t *testing.T) {
		mockRedis := new(MockRedisClient)
		mockRedis.On("Publish", mock.Anything, ChannelNewSubscription, mock.MatchedBy(func(event OrganizationEvent) bool {
			return event.OrganizationID == orgID &&
				event.Type == "new_subscription" &&
				event.ResourceID == "sub-456"
		})).Return(nil)

		notifier := NewOrganizationNotifier(mockRedis, logger)

		org := &model.Organization{
			ID:                   orgID,
			NotificationSettings: model.DefaultNotificationSettings(),
		}

		err := notifier.NotifyNewSubscription(context.Background(), org, "sub-456")

		assert.NoError(t, err)
		mockRedis.AssertExpectations(t)
	})

	t.Run("suppressed independently of new-order setting", func(t *testing.T) {
		mockRedis := new(MockRedisClient)

		notifier := NewOrganizationNotifier(mockRedis, logger)

		org := &model.Organization{
			ID:                   orgID,
			NotificationSettings: model.NotificationSettings{NewOrder: true, NewSubscription: false},
		}

		err := notifier.NotifyNewSubscription(context.Background(), org, "sub-456")

		assert.NoError(t, err)
		mockRedis.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}
