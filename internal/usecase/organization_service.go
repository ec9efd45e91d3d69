package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/polarsource/organization-service/internal/domain/entity"
	"github.com/polarsource/organization-service/internal/domain/model"
	domainRepo "github.com/polarsource/organization-service/internal/domain/repository"
	"github.com/polarsource/organization-service/internal/metrics"
)

// OrganizationService handles organization management and business predicates
type OrganizationService struct {
	orgRepo     domainRepo.OrganizationRepository
	productRepo domainRepo.ProductRepository
	logger      *zap.Logger
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(
	orgRepo domainRepo.OrganizationRepository,
	productRepo domainRepo.ProductRepository,
	logger *zap.Logger,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:     orgRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// CreateOrganizationInput carries the fields accepted at creation time
type CreateOrganizationInput struct {
	Name      string
	Slug      string
	Email     *string
	Website   *string
	AvatarURL *string
}

// Create creates a new organization with default settings. The customer
// invoice prefix is derived from the slug; the counter starts at 1.
func (s *OrganizationService) Create(ctx context.Context, input CreateOrganizationInput) (*model.Organization, error) {
	org := &model.Organization{
		Name:                      input.Name,
		Slug:                      input.Slug,
		Email:                     input.Email,
		Website:                   input.Website,
		AvatarURL:                 input.AvatarURL,
		Socials:                   model.SocialLinks{},
		Status:                    model.OrganizationStatusCreated,
		CustomerInvoicePrefix:     deriveInvoicePrefix(input.Slug),
		CustomerInvoiceNextNumber: 1,
		ProfileSettings:           model.JSONB{},
		FeatureSettings:           model.JSONB{},
		SubscriptionSettings:      model.DefaultSubscriptionSettings(),
		NotificationSettings:      model.DefaultNotificationSettings(),
	}

	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	metrics.OrganizationsCreated.Inc()
	s.logger.Info("Organization created",
		zap.String("organization_id", org.ID.String()),
		zap.String("slug", org.Slug))

	return org, nil
}

// Get retrieves an organization by id with its account preloaded
func (s *OrganizationService) Get(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	return s.orgRepo.GetByID(ctx, id)
}

// GetBySlug retrieves an organization by slug, matched ignoring case
func (s *OrganizationService) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	return s.orgRepo.GetBySlug(ctx, slug)
}

// UpdateOrganizationInput carries the mutable organization fields. Nil fields
// are left untouched.
type UpdateOrganizationInput struct {
	Name                 *string
	Email                *string
	Website              *string
	AvatarURL            *string
	Socials              *model.SocialLinks
	ProfileSettings      *model.JSONB
	SubscriptionSettings *model.SubscriptionSettings
	NotificationSettings *model.NotificationSettings
	FeatureSettings      *model.JSONB
}

// Update applies the given changes. Subscription settings are validated
// against the proration enum before anything is persisted.
func (s *OrganizationService) Update(ctx context.Context, id uuid.UUID, input UpdateOrganizationInput) (*model.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.SubscriptionSettings != nil {
		if _, err := model.ParseProrationBehavior(input.SubscriptionSettings.ProrationBehavior); err != nil {
			return nil, err
		}
		org.SubscriptionSettings = *input.SubscriptionSettings
	}

	if input.Name != nil {
		org.Name = *input.Name
	}
	if input.Email != nil {
		org.Email = input.Email
	}
	if input.Website != nil {
		org.Website = input.Website
	}
	if input.AvatarURL != nil {
		org.AvatarURL = input.AvatarURL
	}
	if input.Socials != nil {
		org.Socials = *input.Socials
	}
	if input.ProfileSettings != nil {
		org.ProfileSettings = *input.ProfileSettings
	}
	if input.NotificationSettings != nil {
		org.NotificationSettings = *input.NotificationSettings
	}
	if input.FeatureSettings != nil {
		org.FeatureSettings = *input.FeatureSettings
	}

	org.UpdatedAt = time.Now()

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}

	return org, nil
}

// Block suspends traffic to the organization. Blocking is idempotent and
// leaves the status untouched.
func (s *OrganizationService) Block(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	if err := s.orgRepo.SetBlockedAt(ctx, id, &now); err != nil {
		return err
	}

	s.logger.Warn("Organization blocked",
		zap.String("organization_id", id.String()))
	return nil
}

// Unblock restores traffic to the organization
func (s *OrganizationService) Unblock(ctx context.Context, id uuid.UUID) error {
	if err := s.orgRepo.SetBlockedAt(ctx, id, nil); err != nil {
		return err
	}

	s.logger.Info("Organization unblocked",
		zap.String("organization_id", id.String()))
	return nil
}

// NextInvoiceNumber allocates the next customer invoice number
func (s *OrganizationService) NextInvoiceNumber(ctx context.Context, id uuid.UUID) (*model.InvoiceNumber, error) {
	number, err := s.orgRepo.NextInvoiceNumber(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.InvoiceNumbersAllocated.Inc()
	return number, nil
}

// PaymentReadiness loads the organization's account and active products, then
// evaluates every readiness condition. Each unmet condition gets its own log
// line so operators can tell which one failed.
func (s *OrganizationService) PaymentReadiness(ctx context.Context, id uuid.UUID) (*model.Organization, model.PaymentReadiness, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, model.PaymentReadiness{}, err
	}

	products, err := s.productRepo.ListByOrganization(ctx, org.ID, false)
	if err != nil {
		return nil, model.PaymentReadiness{}, err
	}
	org.Products = products

	readiness := org.PaymentReadiness()

	if !readiness.StatusEligible {
		s.logger.Info("Organization not payment ready: status not eligible",
			zap.String("organization_id", org.ID.String()),
			zap.String("status", string(org.Status)))
	}
	if !readiness.HasProducts {
		s.logger.Info("Organization not payment ready: no active products",
			zap.String("organization_id", org.ID.String()))
	}
	if !readiness.HasAccount {
		s.logger.Info("Organization not payment ready: no payout account",
			zap.String("organization_id", org.ID.String()))
	}
	if readiness.HasAccount && !readiness.AccountPayoutReady {
		s.logger.Info("Organization not payment ready: account not payout ready",
			zap.String("organization_id", org.ID.String()),
			zap.String("account_id", org.AccountID.String()))
	}

	metrics.PaymentReadinessChecks.WithLabelValues(strconv.FormatBool(readiness.Ready())).Inc()

	return org, readiness, nil
}

// ListStorefronts returns organizations with an enabled public storefront
func (s *OrganizationService) ListStorefronts(ctx context.Context, params entity.PaginationParams) ([]*model.Organization, entity.PaginationMeta, error) {
	params.Validate()

	orgs, total, err := s.orgRepo.ListStorefronts(ctx, params)
	if err != nil {
		return nil, entity.PaginationMeta{}, err
	}

	return orgs, entity.NewPaginationMeta(params.Page, params.Limit, total), nil
}

// deriveInvoicePrefix builds the default invoice prefix from a slug:
// uppercased, dashes stripped, capped at 10 characters. The cap counts runes
// so a multibyte slug cannot produce a mangled prefix.
func deriveInvoicePrefix(slug string) string {
	prefix := []rune(strings.ToUpper(strings.ReplaceAll(slug, "-", "")))
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return string(prefix)
}
