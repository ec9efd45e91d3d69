package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/polarsource/organization-service/internal/domain/model"
	"github.com/polarsource/organization-service/internal/domain/repository"
)

type productRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB, logger *zap.Logger) repository.ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

// ListByOrganization returns the organization's products, excluding archived
// ones unless includeArchived is set
func (r *productRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID, includeArchived bool) ([]model.Product, error) {
	query := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID)

	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}

	var products []model.Product
	err := query.Order("created_at ASC").Find(&products).Error
	if err != nil {
		r.logger.Error("Failed to list products by organization",
			zap.String("organization_id", organizationID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}
