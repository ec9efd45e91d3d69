package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/polarsource/organization-service/internal/domain/entity"
	domainErrors "github.com/polarsource/organization-service/internal/domain/errors"
	"github.com/polarsource/organization-service/internal/domain/model"
	"github.com/polarsource/organization-service/internal/domain/repository"
)

type organizationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB, logger *zap.Logger) repository.OrganizationRepository {
	return &organizationRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new organization after checking slug availability.
// A concurrent create with the same slug is caught by the unique index on
// LOWER(slug); the pre-check only gives a friendlier error for the common case.
func (r *organizationRepository) Create(ctx context.Context, org *model.Organization) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Organization{}).
		Where("LOWER(slug) = LOWER(?)", org.Slug).
		Count(&count).Error
	if err != nil {
		r.logger.Error("Failed to check slug availability",
			zap.String("slug", org.Slug),
			zap.Error(err))
		return fmt.Errorf("failed to check slug availability: %w", err)
	}
	if count > 0 {
		return domainErrors.NewSlugTakenError(org.Slug)
	}

	err = r.db.WithContext(ctx).Create(org).Error
	if err != nil {
		r.logger.Error("Failed to create organization",
			zap.String("slug", org.Slug),
			zap.Error(err))
		return fmt.Errorf("failed to create organization: %w", err)
	}

	return nil
}

// GetByID retrieves an organization with its account relation preloaded
func (r *organizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization

	err := r.db.WithContext(ctx).
		Preload("Account").
		Where("id = ?", id).
		First(&org).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrOrganizationNotFound
		}
		r.logger.Error("Failed to get organization by ID",
			zap.String("organization_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return &org, nil
}

// GetBySlug retrieves an organization by slug, matched ignoring case
func (r *organizationRepository) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	var org model.Organization

	err := r.db.WithContext(ctx).
		Preload("Account").
		Where("LOWER(slug) = LOWER(?)", slug).
		First(&org).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrOrganizationNotFound
		}
		r.logger.Error("Failed to get organization by slug",
			zap.String("slug", slug),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return &org, nil
}

// Update persists changes to an existing organization
func (r *organizationRepository) Update(ctx context.Context, org *model.Organization) error {
	result := r.db.WithContext(ctx).
		Model(&model.Organization{}).
		Where("id = ?", org.ID).
		Select("name", "avatar_url", "email", "website", "socials", "details",
			"details_submitted_at", "status", "next_review_threshold",
			"onboarded_at", "profile_settings", "subscription_settings",
			"notification_settings", "feature_settings",
			"subscriptions_billing_engine", "account_id",
			"bio", "company", "blog", "location", "twitter_username",
			"updated_at").
		Updates(org)

	if result.Error != nil {
		r.logger.Error("Failed to update organization",
			zap.String("organization_id", org.ID.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to update organization: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrOrganizationNotFound
	}

	return nil
}

// SetBlockedAt sets or clears the blocked_at timestamp without touching any
// other field
func (r *organizationRepository) SetBlockedAt(ctx context.Context, id uuid.UUID, blockedAt *time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.Organization{}).
		Where("id = ?", id).
		Update("blocked_at", blockedAt)

	if result.Error != nil {
		r.logger.Error("Failed to set organization blocked_at",
			zap.String("organization_id", id.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to set blocked_at: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrOrganizationNotFound
	}

	return nil
}

// NextInvoiceNumber allocates the next customer invoice number inside a
// row-locked transaction so concurrent callers never observe the same number
func (r *organizationRepository) NextInvoiceNumber(ctx context.Context, id uuid.UUID) (*model.InvoiceNumber, error) {
	var allocated model.InvoiceNumber

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var org model.Organization
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&org).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainErrors.ErrOrganizationNotFound
			}
			return fmt.Errorf("failed to lock organization row: %w", err)
		}

		allocated = model.InvoiceNumber{
			Prefix: org.CustomerInvoicePrefix,
			Number: org.CustomerInvoiceNextNumber,
		}

		err = tx.Model(&model.Organization{}).
			Where("id = ?", id).
			Update("customer_invoice_next_number", gorm.Expr("customer_invoice_next_number + 1")).Error
		if err != nil {
			return fmt.Errorf("failed to advance invoice counter: %w", err)
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, domainErrors.ErrOrganizationNotFound) {
			r.logger.Error("Failed to allocate invoice number",
				zap.String("organization_id", id.String()),
				zap.Error(err))
		}
		return nil, err
	}

	r.logger.Info("Allocated customer invoice number",
		zap.String("organization_id", id.String()),
		zap.String("invoice_number", allocated.String()))

	return &allocated, nil
}

// ListStorefronts returns organizations whose storefront is enabled, evaluated
// against profile_settings in the database rather than on loaded instances
func (r *organizationRepository) ListStorefronts(ctx context.Context, params entity.PaginationParams) ([]*model.Organization, int64, error) {
	params.Validate()

	query := r.db.WithContext(ctx).
		Model(&model.Organization{}).
		Where("(profile_settings->>'enabled')::boolean IS TRUE").
		Where("blocked_at IS NULL")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("Failed to count storefronts", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count storefronts: %w", err)
	}

	var orgs []*model.Organization
	err := query.
		Order("created_at DESC").
		Offset(params.CalculateOffset()).
		Limit(params.Limit).
		Find(&orgs).Error
	if err != nil {
		r.logger.Error("Failed to list storefronts", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list storefronts: %w", err)
	}

	return orgs, total, nil
}
