package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polarsource/organization-service/internal/domain/model"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// ListByOrganization returns the organization's products. Archived
	// products are excluded unless includeArchived is set.
	ListByOrganization(ctx context.Context, organizationID uuid.UUID, includeArchived bool) ([]model.Product, error)
}
