package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polarsource/organization-service/internal/domain/model"
)

// AccountRepository defines the interface for payout account persistence
type AccountRepository interface {
	// GetByID retrieves an account by its id
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)

	// Update persists changes to an existing account
	Update(ctx context.Context, account *model.Account) error
}
