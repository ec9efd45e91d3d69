package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/polarsource/organization-service/internal/domain/entity"
	"github.com/polarsource/organization-service/internal/domain/model"
	"github.com/polarsource/organization-service/internal/usecase"
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

func TestParseIDParam(t *testing.T) {
	e := echo.New()

	t.Run("valid uuid", func(t *testing.T) {
		want := uuid.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(want.String())

		id, err := parseIDParam(c)

		assert.NoError(t, err)
		assert.Equal(t, want, id)
	})

	t.Run("invalid uuid returns an error the caller can propagate", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.SetParamNames("id")
		c.SetParamValues("not-a-uuid")

		id, err := parseIDParam(c)

		assert.Equal(t, uuid.Nil, id)
		var httpErr *echo.HTTPError
		if assert.ErrorAs(t, err, &httpErr) {
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		}
		// Nothing is written here; rendering is the error handler's job
		assert.Empty(t, rec.Body.String())
	})
}

func TestOrganizationHandler_InvalidID_StopsBeforeService(t *testing.T) {
	e := echo.New()
	logger := zap.NewNop()

	mockRepo := new(MockOrganizationRepository)
	mockProducts := new(MockProductRepository)
	orgService := usecase.NewOrganizationService(mockRepo, mockProducts, logger)
	handler := NewOrganizationHandler(logger, orgService, URLConfig{FrontendBaseURL: "https://polar.sh"})

	routes := []struct {
		name    string
		handler echo.HandlerFunc
	}{
		{"get", handler.GetOrganization},
		{"update", handler.UpdateOrganization},
		{"payment readiness", handler.GetPaymentReadiness},
		{"invoice number", handler.AllocateInvoiceNumber},
		{"block", handler.BlockOrganization},
		{"unblock", handler.UnblockOrganization},
	}

	for _, tt := range routes {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
			c.SetParamNames("id")
			c.SetParamValues("not-a-uuid")

			err := tt.handler(c)

			var httpErr *echo.HTTPError
			if assert.ErrorAs(t, err, &httpErr) {
				assert.Equal(t, http.StatusBadRequest, httpErr.Code)
			}
			// The response body holds at most the one document echo renders;
			// no handler output was appended after the 400
			assert.Empty(t, rec.Body.String())
		})
	}

	// No repository call was made with uuid.Nil on any route
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "SetBlockedAt", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "NextInvoiceNumber", mock.Anything, mock.Anything)
}
