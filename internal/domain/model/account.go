package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountStatus represents the review status of a payout account
type AccountStatus string

const (
	AccountStatusCreated           AccountStatus = "created"
	AccountStatusOnboardingStarted AccountStatus = "onboarding_started"
	AccountStatusUnderReview       AccountStatus = "under_review"
	AccountStatusActive            AccountStatus = "active"
)

// Scan implements sql.Scanner interface
func (s *AccountStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = AccountStatus(v)
	case []byte:
		*s = AccountStatus(v)
	default:
		return fmt.Errorf("unsupported account status source type %T", src)
	}
	return nil
}

// Value implements driver.Valuer interface
func (s AccountStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Account represents a payout account shared by one or more organizations
type Account struct {
	ID     uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Status AccountStatus `gorm:"type:account_status;not null;default:'created'" json:"status"`

	AdminID uuid.UUID `gorm:"type:uuid;not null" json:"admin_id"`

	StripeID *string `gorm:"uniqueIndex" json:"stripe_id,omitempty"`
	Country  string  `gorm:"type:varchar(2);not null" json:"country"`
	Currency string  `gorm:"type:varchar(3);not null" json:"currency"`

	IsDetailsSubmitted bool `gorm:"not null;default:false" json:"is_details_submitted"`
	IsChargesEnabled   bool `gorm:"not null;default:false" json:"is_charges_enabled"`
	IsPayoutsEnabled   bool `gorm:"not null;default:false" json:"is_payouts_enabled"`

	// Balance available for payout, in the account currency
	Balance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"balance"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// IsActive reports whether the account has passed review
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// IsPayoutReady reports whether the account can receive payouts. Both the
// review decision and the provider capability flag must hold.
func (a *Account) IsPayoutReady() bool {
	return a.IsActive() && a.IsPayoutsEnabled
}
