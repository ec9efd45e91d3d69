package provider

import (
	"context"
	"time"
)

// PayoutProvider defines the interface for payout account providers
type PayoutProvider interface {
	// GetAccount fetches the current state of a connected account
	GetAccount(ctx context.Context, stripeID string) (*AccountState, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// AccountState is a provider-agnostic snapshot of a connected account's
// capabilities
type AccountState struct {
	StripeID           string    `json:"stripe_id"`
	Country            string    `json:"country"`
	Currency           string    `json:"currency"`
	IsDetailsSubmitted bool      `json:"is_details_submitted"`
	IsChargesEnabled   bool      `json:"is_charges_enabled"`
	IsPayoutsEnabled   bool      `json:"is_payouts_enabled"`
	FetchedAt          time.Time `json:"fetched_at"`
	DisabledReason     *string   `json:"disabled_reason,omitempty"`
}

// ProviderType represents the type of payout provider
type ProviderType string

const (
	ProviderTypeStripe ProviderType = "stripe"
)

// ProviderError carries a provider-level failure code alongside the message
type ProviderError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *ProviderError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}
