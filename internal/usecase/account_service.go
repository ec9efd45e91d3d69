package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/polarsource/organization-service/internal/domain/errors"
	"github.com/polarsource/organization-service/internal/domain/model"
	"github.com/polarsource/organization-service/internal/domain/provider"
	domainRepo "github.com/polarsource/organization-service/internal/domain/repository"
)

// AccountService keeps payout accounts in sync with the provider
type AccountService struct {
	accountRepo domainRepo.AccountRepository
	provider    provider.PayoutProvider
	logger      *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(
	accountRepo domainRepo.AccountRepository,
	payoutProvider provider.PayoutProvider,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		provider:    payoutProvider,
		logger:      logger,
	}
}

// RefreshAccountStatus fetches the connected account's current capability
// flags from the provider and persists them
func (s *AccountService) RefreshAccountStatus(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if account.StripeID == nil {
		return nil, domainErrors.ErrAccountNotFound
	}

	state, err := s.provider.GetAccount(ctx, *account.StripeID)
	if err != nil {
		s.logger.Error("Failed to fetch account state from provider",
			zap.String("account_id", id.String()),
			zap.String("provider", s.provider.GetProviderName()),
			zap.Error(err))
		return nil, err
	}

	account.IsDetailsSubmitted = state.IsDetailsSubmitted
	account.IsChargesEnabled = state.IsChargesEnabled
	account.IsPayoutsEnabled = state.IsPayoutsEnabled
	account.UpdatedAt = time.Now()

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("Account capability flags refreshed",
		zap.String("account_id", id.String()),
		zap.Bool("details_submitted", account.IsDetailsSubmitted),
		zap.Bool("charges_enabled", account.IsChargesEnabled),
		zap.Bool("payouts_enabled", account.IsPayoutsEnabled))

	return account, nil
}
