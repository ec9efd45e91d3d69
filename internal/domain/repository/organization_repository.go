package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/polarsource/organization-service/internal/domain/entity"
	"github.com/polarsource/organization-service/internal/domain/model"
)

// OrganizationRepository defines the interface for organization persistence
type OrganizationRepository interface {
	// Create persists a new organization. Fails with a SLUG_TAKEN error if
	// another organization already uses the slug ignoring case.
	Create(ctx context.Context, org *model.Organization) error

	// GetByID retrieves an organization with its account relation preloaded
	GetByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)

	// GetBySlug retrieves an organization by slug, matched ignoring case
	GetBySlug(ctx context.Context, slug string) (*model.Organization, error)

	// Update persists changes to an existing organization
	Update(ctx context.Context, org *model.Organization) error

	// SetBlockedAt sets or clears the blocked_at timestamp without touching
	// any other field
	SetBlockedAt(ctx context.Context, id uuid.UUID, blockedAt *time.Time) error

	// NextInvoiceNumber atomically allocates the next customer invoice number,
	// advancing the stored counter. Concurrent callers never observe the same
	// number.
	NextInvoiceNumber(ctx context.Context, id uuid.UUID) (*model.InvoiceNumber, error)

	// ListStorefronts returns organizations whose storefront is enabled in
	// profile_settings, evaluated in the database
	ListStorefronts(ctx context.Context, params entity.PaginationParams) ([]*model.Organization, int64, error)
}
