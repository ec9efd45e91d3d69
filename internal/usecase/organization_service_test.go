package usecase

import (
	"context"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/polarsource/organization-service/internal/domain/entity"
	domainErrors "github.com/polarsource/organization-service/internal/domain/errors"
	"github.com/polarsource/organization-service/internal/domain/model"
)

// MockOrganizationRepository is a mock implementation of OrganizationRepository
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *model.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Update(ctx context.Context, org *model.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) SetBlockedAt(ctx context.Context, id uuid.UUID, blockedAt *time.Time) error {
	args := m.Called(ctx, id, blockedAt)
	return args.Error(0)
}

func (m *MockOrganizationRepository) NextInvoiceNumber(ctx context.Context, id uuid.UUID) (*model.InvoiceNumber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvoiceNumber), args.Error(1)
}

func (m *MockOrganizationRepository) ListStorefronts(ctx context.Context, params entity.PaginationParams) ([]*model.Organization, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Organization), args.Get(1).(int64), args.Error(2)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID, includeArchived bool) ([]model.Product, error) {
	args := m.Called(ctx, organizationID, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func TestOrganizationService_Create(t *testing.T) {
	logger := zap.NewNop()

	t.Run("applies defaults and derives invoice prefix", func(t *testing.T) {
		mockRepo := new(MockOrganizationRepository)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(org *model.Organization) bool {
			return org.Slug == "acme-inc" &&
				org.Status == model.OrganizationStatusCreated &&
				org.CustomerInvoicePrefix == "ACMEINC" &&
				org.CustomerInvoiceNextNumber == 1 &&
				!org.SubscriptionSettings.AllowMultipleSubscriptions &&
				org.SubscriptionSettings.AllowCustomerUpdates &&
				org.SubscriptionSettings.ProrationBehavior == string(model.ProrationBehaviorProrate) &&
				org.NotificationSettings.NewOrder &&
				org.NotificationSettings.NewSubscription
		})).Return(nil)

		service := NewOrganizationService(mockRepo, new(MockProductRepository), logger)

		org, err := service.Create(context.Background(), CreateOrganizationInput{
			Name: "Acme Inc",
			Slug: "acme-inc",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Acme Inc", org.Name)
		assert.False(t, org.StorefrontEnabled())
		mockRepo.AssertExpectations(t)
	})

	t.Run("slug taken", func(t *testing.T) {
		mockRepo := new(MockOrganizationRepository)
		mockRepo.On("Create", mock.Anything, mock.Anything).
			Return(domainErrors.NewSlugTakenError("acme"))

		service := NewOrganizationService(mockRepo, new(MockProductRepository), logger)

		_, err := service.Create(context.Background(), CreateOrganizationInput{Name: "Acme", Slug: "acme"})

		var orgErr *domainErrors.OrganizationError
		if assert.ErrorAs(t, err, &orgErr) {
			assert.Equal(t, domainErrors.ErrTypeSlugTaken, orgErr.Type)
		}
		mockRepo.AssertExpectations(t)
	})
}

func TestOrganizationService_Update(t *testing.T) {
	logger := zap.NewNop()
	orgID := uuid.New()

	t.Run("rejects invalid proration behavior before persisting", func(t *testing.T) {
		mockRepo := new(MockOrganizationRepository)
		mockRepo.On("GetByID", mock.Anything, orgID).Return(&model.Organization{
			ID:                   orgID,
			SubscriptionSettings: model.DefaultSubscriptionSettings(),
		}, nil)

		service := NewOrganizationService(mockRepo, new(MockProductRepository), logger)

		_, err := service.Update(context.Background(), orgID, UpdateOrganizationInput{
			SubscriptionSettings: &model.SubscriptionSettings{
				ProrationBehavior: "always_invoice",
			},
		})

		var orgErr *domainErrors.OrganizationError
		if assert.ErrorAs(t, err, &orgErr) {
			assert.Equal(t, domainErrors.ErrTypeInvalidEnumValue, orgErr.Type)
		}
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("applies partial update", func(t *testing.T) {
		mockRepo := new(MockOrganizationRepository)
		mockRepo.On("GetByID", mock.Anything, orgID).Return(&model.Organization{
			ID:                   orgID,
			Name:                 "Old Name",
			SubscriptionSettings: model.DefaultSubscriptionSettings(),
		}, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(org *model.Organization) bool {
			return org.Name == "New Name"
		})).Return(nil)

		service := NewOrganizationService(mockRepo, new(MockProductRepository), logger)

		newName := "New Name"
		org, err := service.Update(context.Background(), orgID, UpdateOrganizationInput{Name: &newName})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", org.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("organization not found", func(t *testing.T) {
		mockRepo := new(MockOrganizationRepository)
		mockRepo.On("GetByID", mock.Anything, orgID).Return(nil, domainErrors.ErrOrganizationNotFound)

		service := NewOrganizationService(mockRepo, new(MockProductRepository), logger)

		_, err := service.Update(context.Background(), orgID, UpdateOrganizationInput{})
		assert.ErrorIs(t, err, domainErrors.ErrOrganizationNotFound)
	})
}

func TestOrganizationService_BlockUnblock(t *testing.T) {
	logger := zap.NewNop()
	orgID := uuid.New()

	t.Run("block sets timestamp", func(t *testing.T) {
		mockRepo := new(MockOrganizationRepository)
		mockRepo.On("SetBlockedAt", mock.Anything, orgID, mock.MatchedBy(func(ts *time.Time) bool {
			return ts != nil
		})).Return(nil)

		service := NewOrganizationService(mockRepo, new(MockProductRepository), logger)

		assert.NoError(t, service.Block(context.Background(), orgID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("unblock clears timestamp", func(t *testing.T) {
		mockRepo := new(MockOrganizationRepository)
		mockRepo.On("SetBlockedAt", mock.Anything, orgID, (*time.Time)(nil)).Return(nil)

		service := NewOrganizationService(mockRepo, new(MockProductRepository), logger)

		assert.NoError(t, service.Unblock(context.Background(), orgID))
		mockRepo.AssertExpectations(t)
	})
}

func TestOrganizationService_NextInvoiceNumber(t *testing.T) {
	logger := zap.NewNop()
	orgID := uuid.New()

	mockRepo := new(MockOrganizationRepository)
	mockRepo.On("NextInvoiceNumber", mock.Anything, orgID).
		Return(&model.InvoiceNumber{Prefix: "ACME", Number: 7}, nil)

	service := NewOrganizationService(mockRepo, new(MockProductRepository), logger)

	number, err := service.NextInvoiceNumber(context.Background(), orgID)

	assert.NoError(t, err)
	assert.Equal(t, "ACME-0007", number.String())
	mockRepo.AssertExpectations(t)
}

func TestOrganizationService_PaymentReadiness(t *testing.T) {
	logger := zap.NewNop()
	orgID := uuid.New()
	accountID := uuid.New()

	t.Run("all conditions met", func(t *testing.T) {
		mockRepo := new(MockOrganizationRepository)
		mockRepo.On("GetByID", mock.Anything, orgID).Return(&model.Organization{
			ID:        orgID,
			Status:    model.OrganizationStatusActive,
			AccountID: &accountID,
			Account: &model.Account{
				ID:               accountID,
				Status:           model.AccountStatusActive,
				IsPayoutsEnabled: true,
			},
		}, nil)

		mockProducts := new(MockProductRepository)
		mockProducts.On("ListByOrganization", mock.Anything, orgID, false).
			Return([]model.Product{{ID: uuid.New(), Name: "Pro"}}, nil)

		service := NewOrganizationService(mockRepo, mockProducts, logger)

		_, readiness, err := service.PaymentReadiness(context.Background(), orgID)

		assert.NoError(t, err)
		assert.True(t, readiness.Ready())
		mockRepo.AssertExpectations(t)
		mockProducts.AssertExpectations(t)
	})

	t.Run("archived products do not count", func(t *testing.T) {
		mockRepo := new(MockOrganizationRepository)
		mockRepo.On("GetByID", mock.Anything, orgID).Return(&model.Organization{
			ID:        orgID,
			Status:    model.OrganizationStatusActive,
			AccountID: &accountID,
			Account: &model.Account{
				ID:               accountID,
				Status:           model.AccountStatusActive,
				IsPayoutsEnabled: true,
			},
		}, nil)

		// The non-archived listing is empty
		mockProducts := new(MockProductRepository)
		mockProducts.On("ListByOrganization", mock.Anything, orgID, false).
			Return([]model.Product{}, nil)

		service := NewOrganizationService(mockRepo, mockProducts, logger)

		_, readiness, err := service.PaymentReadiness(context.Background(), orgID)

		assert.NoError(t, err)
		assert.False(t, readiness.Ready())
		assert.False(t, readiness.HasProducts)
		assert.True(t, readiness.StatusEligible)
	})
}

func TestOrganizationService_ListStorefronts(t *testing.T) {
	logger := zap.NewNop()

	mockRepo := new(MockOrganizationRepository)
	mockRepo.On("ListStorefronts", mock.Anything, entity.PaginationParams{Page: 1, Limit: 20}).
		Return([]*model.Organization{
			{ID: uuid.New(), Slug: "acme", ProfileSettings: model.JSONB{"enabled": true}},
		}, int64(1), nil)

	service := NewOrganizationService(mockRepo, new(MockProductRepository), logger)

	orgs, meta, err := service.ListStorefronts(context.Background(), entity.PaginationParams{})

	assert.NoError(t, err)
	assert.Len(t, orgs, 1)
	assert.Equal(t, int64(1), meta.Total)
	assert.Equal(t, 1, meta.CurrentPage)
	mockRepo.AssertExpectations(t)
}

func TestDeriveInvoicePrefix(t *testing.T) {
	tests := []struct {
		name     string
		slug     string
		expected string
	}{
		{"simple slug", "acme", "ACME"},
		{"dashes stripped", "acme-inc", "ACMEINC"},
		{"long slug truncated", "a-very-long-organization", "AVERYLONGO"},
		{"multibyte slug capped on a character boundary", "éééééééééééé", "ÉÉÉÉÉÉÉÉÉÉ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix := deriveInvoicePrefix(tt.slug)
			assert.Equal(t, tt.expected, prefix)
			assert.True(t, utf8.ValidString(prefix))
		})
	}
}
