package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/polarsource/organization-service/internal/domain/errors"
	"github.com/polarsource/organization-service/internal/domain/model"
	domainRepo "github.com/polarsource/organization-service/internal/domain/repository"
	"github.com/polarsource/organization-service/internal/metrics"
)

// OnboardingService drives the organization status lifecycle:
// created -> onboarding_started -> under_review -> active | denied
type OnboardingService struct {
	orgRepo domainRepo.OrganizationRepository
	logger  *zap.Logger
}

// NewOnboardingService creates a new onboarding service
func NewOnboardingService(
	orgRepo domainRepo.OrganizationRepository,
	logger *zap.Logger,
) *OnboardingService {
	return &OnboardingService{
		orgRepo: orgRepo,
		logger:  logger,
	}
}

// StartOnboarding moves a freshly created organization into onboarding
func (s *OnboardingService) StartOnboarding(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	return s.transition(ctx, id, model.OrganizationStatusCreated, model.OrganizationStatusOnboardingStarted, nil)
}

// SubmitForReview stores the submitted business details, stamps the submission
// time and moves the organization under review
func (s *OnboardingService) SubmitForReview(ctx context.Context, id uuid.UUID, details model.OrganizationDetails) (*model.Organization, error) {
	return s.transition(ctx, id, model.OrganizationStatusOnboardingStarted, model.OrganizationStatusUnderReview,
		func(org *model.Organization, now time.Time) {
			org.Details = details
			org.DetailsSubmittedAt = &now
		})
}

// Approve activates an organization under review, stamps onboarded_at and sets
// the revenue threshold at which the next review triggers
func (s *OnboardingService) Approve(ctx context.Context, id uuid.UUID, nextReviewThreshold int) (*model.Organization, error) {
	if nextReviewThreshold < 0 {
		return nil, domainErrors.NewInvalidReviewThresholdError(id.String(), nextReviewThreshold)
	}

	return s.transition(ctx, id, model.OrganizationStatusUnderReview, model.OrganizationStatusActive,
		func(org *model.Organization, now time.Time) {
			org.OnboardedAt = &now
			org.NextReviewThreshold = nextReviewThreshold
		})
}

// Deny rejects an organization under review
func (s *OnboardingService) Deny(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	return s.transition(ctx, id, model.OrganizationStatusUnderReview, model.OrganizationStatusDenied, nil)
}

// OnboardingStatus describes where the organization stands in its lifecycle
type OnboardingStatus struct {
	Status       model.OrganizationStatus `json:"status"`
	DisplayName  string                   `json:"display_name"`
	IsBlocked    bool                     `json:"is_blocked"`
	MissingSteps []string                 `json:"missing_steps"`
}

// Status reports the organization's current lifecycle position and the setup
// steps still missing
func (s *OnboardingService) Status(ctx context.Context, id uuid.UUID, user *model.User) (*OnboardingStatus, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	displayName, err := org.Status.DisplayName()
	if err != nil {
		return nil, err
	}

	return &OnboardingStatus{
		Status:       org.Status,
		DisplayName:  displayName,
		IsBlocked:    org.IsBlocked(),
		MissingSteps: org.MissingSteps(user),
	}, nil
}

// transition performs a guarded status change. The mutate hook runs after the
// guard passes and before persisting.
func (s *OnboardingService) transition(
	ctx context.Context,
	id uuid.UUID,
	from, to model.OrganizationStatus,
	mutate func(org *model.Organization, now time.Time),
) (*model.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if org.Status != from {
		return nil, domainErrors.NewInvalidStatusTransitionError(id.String(), string(org.Status), string(to))
	}

	now := time.Now()
	org.Status = to
	org.UpdatedAt = now
	if mutate != nil {
		mutate(org, now)
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}

	metrics.StatusTransitions.WithLabelValues(string(to)).Inc()
	s.logger.Info("Organization status transition",
		zap.String("organization_id", id.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)))

	return org, nil
}
