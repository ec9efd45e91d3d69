package stripe

import (
	"context"
	"time"

	stripego "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"

	"github.com/polarsource/organization-service/internal/domain/model"
	"github.com/polarsource/organization-service/internal/domain/provider"
)

// StripeProvider implements the PayoutProvider interface against Stripe
// Connect
type StripeProvider struct {
	api    *client.API
	logger *zap.Logger
}

// NewStripeProvider creates a new Stripe provider
func NewStripeProvider(secretKey string, logger *zap.Logger) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeProvider{
		api:    api,
		logger: logger,
	}
}

// GetProviderName returns the provider name
func (s *StripeProvider) GetProviderName() string {
	return string(provider.ProviderTypeStripe)
}

// GetAccount fetches the connected account and maps its capability flags
func (s *StripeProvider) GetAccount(ctx context.Context, stripeID string) (*provider.AccountState, error) {
	params := &stripego.AccountParams{}
	params.Context = ctx

	acct, err := s.api.Accounts.GetByID(stripeID, params)
	if err != nil {
		s.logger.Error("Failed to fetch Stripe account",
			zap.String("stripe_id", stripeID),
			zap.Error(err))
		return nil, &provider.ProviderError{
			Code:    "STRIPE_ACCOUNT_FETCH_FAILED",
			Message: "failed to fetch connected account",
			Details: err.Error(),
		}
	}

	state := &provider.AccountState{
		StripeID:           acct.ID,
		Country:            acct.Country,
		Currency:           string(acct.DefaultCurrency),
		IsDetailsSubmitted: acct.DetailsSubmitted,
		IsChargesEnabled:   acct.ChargesEnabled,
		IsPayoutsEnabled:   acct.PayoutsEnabled,
		FetchedAt:          time.Now(),
	}

	if acct.Requirements != nil && acct.Requirements.DisabledReason != "" {
		reason := string(acct.Requirements.DisabledReason)
		state.DisabledReason = &reason
	}

	return state, nil
}

// PaymentIntentParams builds payment-intent params carrying the
// organization's prefixed statement descriptor
func PaymentIntentParams(org *model.Organization, amount int64, currency, prefix string, maxLength int) *stripego.PaymentIntentParams {
	return &stripego.PaymentIntentParams{
		Amount:              stripego.Int64(amount),
		Currency:            stripego.String(currency),
		StatementDescriptor: stripego.String(org.StatementDescriptorPrefixed(prefix, maxLength)),
	}
}
