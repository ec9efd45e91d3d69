package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/polarsource/organization-service/internal/domain/errors"
	"github.com/polarsource/organization-service/internal/domain/model"
	"github.com/polarsource/organization-service/internal/domain/repository"
)

type accountRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB, logger *zap.Logger) repository.AccountRepository {
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves an account by its id
func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&account).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrAccountNotFound
		}
		r.logger.Error("Failed to get account by ID",
			zap.String("account_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}

// Update persists changes to an existing account
func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	result := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", account.ID).
		Select("status", "stripe_id", "country", "currency",
			"is_details_submitted", "is_charges_enabled", "is_payouts_enabled",
			"balance", "updated_at").
		Updates(account)

	if result.Error != nil {
		r.logger.Error("Failed to update account",
			zap.String("account_id", account.ID.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to update account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrAccountNotFound
	}

	return nil
}
