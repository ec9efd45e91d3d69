package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polarsource/organization-service/internal/domain/errors"
)

// OrganizationStatus represents the lifecycle status of an organization
type OrganizationStatus string

const (
	OrganizationStatusCreated           OrganizationStatus = "created"
	OrganizationStatusOnboardingStarted OrganizationStatus = "onboarding_started"
	OrganizationStatusUnderReview       OrganizationStatus = "under_review"
	OrganizationStatusDenied            OrganizationStatus = "denied"
	OrganizationStatusActive            OrganizationStatus = "active"
)

var organizationStatusDisplayNames = map[OrganizationStatus]string{
	OrganizationStatusCreated:           "Created",
	OrganizationStatusOnboardingStarted: "Onboarding Started",
	OrganizationStatusUnderReview:       "Under Review",
	OrganizationStatusDenied:            "Denied",
	OrganizationStatusActive:            "Active",
}

// Valid reports whether s is a member of the status enum
func (s OrganizationStatus) Valid() bool {
	_, ok := organizationStatusDisplayNames[s]
	return ok
}

// DisplayName returns the human-readable label for the status. Values outside
// the five-member enum fail with an UNMAPPED_STATUS error and are never
// defaulted.
func (s OrganizationStatus) DisplayName() (string, error) {
	name, ok := organizationStatusDisplayNames[s]
	if !ok {
		return "", domainErrors.NewUnmappedStatusError(string(s))
	}
	return name, nil
}

// Scan implements sql.Scanner interface
func (s *OrganizationStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = OrganizationStatus(v)
	case []byte:
		*s = OrganizationStatus(v)
	default:
		return fmt.Errorf("unsupported organization status source type %T", src)
	}
	return nil
}

// Value implements driver.Valuer interface
func (s OrganizationStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// ProrationBehavior governs how mid-cycle subscription changes are billed
type ProrationBehavior string

const (
	ProrationBehaviorProrate ProrationBehavior = "prorate"
	ProrationBehaviorInvoice ProrationBehavior = "invoice"
)

// ParseProrationBehavior validates a stored proration value against the enum
func ParseProrationBehavior(value string) (ProrationBehavior, error) {
	switch ProrationBehavior(value) {
	case ProrationBehaviorProrate, ProrationBehaviorInvoice:
		return ProrationBehavior(value), nil
	default:
		return "", domainErrors.NewInvalidEnumValueError("proration_behavior", value)
	}
}

// JSONB represents a JSONB database type
type JSONB map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONB) Scan(src interface{}) error {
	if src == nil {
		*j = nil
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		*j = make(JSONB)
		return nil
	}
}

// OrganizationSocial is one entry in the organization's ordered social links
type OrganizationSocial struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// SocialLinks is the JSONB-backed ordered list of social links
type SocialLinks []OrganizationSocial

// Value implements driver.Valuer interface
func (s SocialLinks) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]OrganizationSocial{})
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface
func (s *SocialLinks) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		*s = nil
		return nil
	}
}

// OrganizationDetails holds the business information submitted during onboarding
type OrganizationDetails struct {
	About                 string   `json:"about"`
	ProductDescription    string   `json:"product_description"`
	IntendedUse           string   `json:"intended_use"`
	CustomerAcquisition   []string `json:"customer_acquisition"`
	FutureAnnualRevenue   int      `json:"future_annual_revenue"`
	Switching             bool     `json:"switching"`
	SwitchingFrom         *string  `json:"switching_from,omitempty"`
	PreviousAnnualRevenue int      `json:"previous_annual_revenue"`
}

// Value implements driver.Valuer interface
func (d OrganizationDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner interface
func (d *OrganizationDetails) Scan(src interface{}) error {
	if src == nil {
		*d = OrganizationDetails{}
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		*d = OrganizationDetails{}
		return nil
	}
}

// SubscriptionSettings holds the organization's subscription policy
type SubscriptionSettings struct {
	AllowMultipleSubscriptions bool   `json:"allow_multiple_subscriptions"`
	AllowCustomerUpdates       bool   `json:"allow_customer_updates"`
	ProrationBehavior          string `json:"proration_behavior"`
}

// DefaultSubscriptionSettings returns the settings applied to new organizations
func DefaultSubscriptionSettings() SubscriptionSettings {
	return SubscriptionSettings{
		AllowMultipleSubscriptions: false,
		AllowCustomerUpdates:       true,
		ProrationBehavior:          string(ProrationBehaviorProrate),
	}
}

// Value implements driver.Valuer interface
func (s SubscriptionSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface
func (s *SubscriptionSettings) Scan(src interface{}) error {
	if src == nil {
		*s = DefaultSubscriptionSettings()
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		*s = DefaultSubscriptionSettings()
		return nil
	}
}

// NotificationSettings holds the organization's notification preferences
type NotificationSettings struct {
	NewOrder        bool `json:"new_order"`
	NewSubscription bool `json:"new_subscription"`
}

// DefaultNotificationSettings returns the settings applied to new organizations
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		NewOrder:        true,
		NewSubscription: true,
	}
}

// Value implements driver.Valuer interface
func (s NotificationSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface
func (s *NotificationSettings) Scan(src interface{}) error {
	if src == nil {
		*s = DefaultNotificationSettings()
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		*s = DefaultNotificationSettings()
		return nil
	}
}

// Organization represents a seller/tenant on the platform
type Organization struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Slug      string    `gorm:"not null" json:"slug"` // unique ignoring case, enforced by LOWER(slug) index
	AvatarURL *string   `json:"avatar_url,omitempty"`

	Email   *string             `json:"email,omitempty"`
	Website *string             `json:"website,omitempty"`
	Socials SocialLinks         `gorm:"type:jsonb;not null;default:'[]'" json:"socials"`
	Details OrganizationDetails `gorm:"type:jsonb;not null;default:'{}'" json:"details"`

	DetailsSubmittedAt *time.Time `json:"details_submitted_at,omitempty"`

	CustomerInvoicePrefix     string `gorm:"not null" json:"customer_invoice_prefix"`
	CustomerInvoiceNextNumber int    `gorm:"not null;default:1" json:"customer_invoice_next_number"`

	AccountID *uuid.UUID         `gorm:"type:uuid" json:"account_id,omitempty"`
	Status    OrganizationStatus `gorm:"type:organization_status;not null;default:'created'" json:"status"`

	NextReviewThreshold int `gorm:"not null;default:0" json:"next_review_threshold"`

	OnboardedAt *time.Time `json:"onboarded_at,omitempty"`

	// Time of blocking traffic/activity to given organization
	BlockedAt *time.Time `json:"blocked_at,omitempty"`

	ProfileSettings      JSONB                `gorm:"type:jsonb;not null;default:'{}'" json:"profile_settings"`
	SubscriptionSettings SubscriptionSettings `gorm:"type:jsonb;not null" json:"subscription_settings"`
	NotificationSettings NotificationSettings `gorm:"type:jsonb;not null" json:"notification_settings"`

	// Feature flags
	FeatureSettings            JSONB `gorm:"type:jsonb;not null;default:'{}'" json:"feature_settings"`
	SubscriptionsBillingEngine bool  `gorm:"not null;default:false" json:"subscriptions_billing_engine"`

	// Fields synced from GitHub. Org description or user bio.
	Bio             *string `json:"bio,omitempty"`
	Company         *string `json:"company,omitempty"`
	Blog            *string `json:"blog,omitempty"`
	Location        *string `json:"location,omitempty"`
	TwitterUsername *string `json:"twitter_username,omitempty"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`

	// Relations
	Account     *Account  `gorm:"foreignKey:AccountID;constraint:OnDelete:SET NULL" json:"account,omitempty"`
	AllProducts []Product `gorm:"foreignKey:OrganizationID" json:"-"`

	// Products is the read-only non-archived view of AllProducts. It is not a
	// mapped column; callers load it through the product repository before
	// evaluating predicates that depend on it.
	Products []Product `gorm:"-" json:"products,omitempty"`
}

// TableName specifies the table name for GORM
func (Organization) TableName() string {
	return "organizations"
}

// IsBlocked reports whether traffic to the organization is suspended. Blocking
// is indefinite until explicitly cleared; status is unaffected.
func (o *Organization) IsBlocked() bool {
	return o.BlockedAt != nil
}

// IsUnderReview reports whether the organization is awaiting a review decision
func (o *Organization) IsUnderReview() bool {
	return o.Status == OrganizationStatusUnderReview
}

// IsActive reports whether the organization has passed review
func (o *Organization) IsActive() bool {
	return o.Status == OrganizationStatusActive
}

// PaymentReadiness holds the result of each payment-readiness condition so a
// caller can tell which one failed. All conditions are evaluated; none
// short-circuits the others.
type PaymentReadiness struct {
	StatusEligible     bool `json:"status_eligible"`
	HasProducts        bool `json:"has_products"`
	HasAccount         bool `json:"has_account"`
	AccountPayoutReady bool `json:"account_payout_ready"`
}

// Ready reports whether every condition is met
func (r PaymentReadiness) Ready() bool {
	return r.StatusEligible && r.HasProducts && r.HasAccount && r.AccountPayoutReady
}

// PaymentReadiness evaluates whether the organization can accept payments.
// Under-review organizations may still transact while awaiting a decision.
// Account and Products must have been loaded by the caller beforehand.
func (o *Organization) PaymentReadiness() PaymentReadiness {
	return PaymentReadiness{
		StatusEligible:     o.Status == OrganizationStatusActive || o.Status == OrganizationStatusUnderReview,
		HasProducts:        len(o.Products) > 0,
		HasAccount:         o.AccountID != nil && o.Account != nil,
		AccountPayoutReady: o.Account != nil && o.Account.IsPayoutReady(),
	}
}

// IsPaymentReady reports whether the organization can accept payments
func (o *Organization) IsPaymentReady() bool {
	return o.PaymentReadiness().Ready()
}

// Onboarding step identifiers
const (
	StepCreateProduct        = "create_product"
	StepIntegratePolar       = "integrate_polar"
	StepCompleteAccountSetup = "complete_account_setup"
)

// MissingSteps returns the list of missing setup steps
func (o *Organization) MissingSteps(user *User) []string {
	missing := []string{}

	// Step 1: Create a Product
	missing = append(missing, StepCreateProduct)

	// Step 2: Integrate Polar (represented by having a payout account setup)
	missing = append(missing, StepIntegratePolar)

	// Step 3: Complete Account Setup (payout readiness)
	missing = append(missing, StepCompleteAccountSetup)

	return missing
}

// StorefrontEnabled reports whether the organization's public storefront is
// visible. Absent key defaults to false. The query-side counterpart lives in
// the organization repository.
func (o *Organization) StorefrontEnabled() bool {
	enabled, ok := o.ProfileSettings["enabled"].(bool)
	if !ok {
		return false
	}
	return enabled
}

// AllowMultipleSubscriptions reports whether a customer may hold more than one
// subscription at a time
func (o *Organization) AllowMultipleSubscriptions() bool {
	return o.SubscriptionSettings.AllowMultipleSubscriptions
}

// AllowCustomerUpdates reports whether customers may change their own
// subscriptions
func (o *Organization) AllowCustomerUpdates() bool {
	return o.SubscriptionSettings.AllowCustomerUpdates
}

// ProrationBehavior returns the validated proration policy. A stored value
// outside the enum fails with an INVALID_ENUM_VALUE error.
func (o *Organization) ProrationBehavior() (ProrationBehavior, error) {
	return ParseProrationBehavior(o.SubscriptionSettings.ProrationBehavior)
}

// PolarSiteURL returns the organization's public page URL
func (o *Organization) PolarSiteURL(frontendBaseURL string) string {
	return fmt.Sprintf("%s/%s", frontendBaseURL, o.Slug)
}

// AccountURL returns the dashboard URL for the organization's payout account
func (o *Organization) AccountURL(frontendBaseURL string) string {
	return fmt.Sprintf("%s/dashboard/%s/finance/account", frontendBaseURL, o.Slug)
}

// StatementDescriptor returns the slug truncated to maxLength characters.
// Truncation counts runes so a multibyte slug never gets cut mid-character.
func (o *Organization) StatementDescriptor(maxLength int) string {
	if maxLength < 0 {
		maxLength = 0
	}
	runes := []rune(o.Slug)
	if len(runes) <= maxLength {
		return o.Slug
	}
	return string(runes[:maxLength])
}

// StatementDescriptorPrefixed returns the full statement descriptor.
// Card networks reject `*` in descriptors, so the separator is `#`.
func (o *Organization) StatementDescriptorPrefixed(prefix string, maxLength int) string {
	return fmt.Sprintf("%s# %s", prefix, o.StatementDescriptor(maxLength))
}

// InvoiceNumber is an allocated customer invoice number. Numbers are
// append-only per organization and never reused.
type InvoiceNumber struct {
	Prefix string `json:"prefix"`
	Number int    `json:"number"`
}

// String formats the invoice number the way it appears on invoices
func (n InvoiceNumber) String() string {
	return fmt.Sprintf("%s-%04d", n.Prefix, n.Number)
}
