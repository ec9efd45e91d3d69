package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/polarsource/organization-service/internal/domain/model"
	"github.com/polarsource/organization-service/internal/usecase"
)

type OnboardingHandler struct {
	logger            *zap.Logger
	onboardingService *usecase.OnboardingService
	validate          *validator.Validate
	urlConfig         URLConfig
}

func NewOnboardingHandler(
	logger *zap.Logger,
	onboardingService *usecase.OnboardingService,
	urlConfig URLConfig,
) *OnboardingHandler {
	return &OnboardingHandler{
		logger:            logger,
		onboardingService: onboardingService,
		validate:          validator.New(),
		urlConfig:         urlConfig,
	}
}

// GetOnboardingStatus handles GET /api/v1/organizations/:id/onboarding
func (h *OnboardingHandler) GetOnboardingStatus(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	status, err := h.onboardingService.Status(c.Request().Context(), id, nil)
	if err != nil {
		return domainErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, status)
}

// StartOnboarding handles POST /api/v1/organizations/:id/onboarding/start
func (h *OnboardingHandler) StartOnboarding(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	org, err := h.onboardingService.StartOnboarding(c.Request().Context(), id)
	if err != nil {
		return domainErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, newOrganizationResponse(org, h.urlConfig))
}

// SubmitForReviewRequest carries the business details submitted for review
type SubmitForReviewRequest struct {
	About                 string   `json:"about" validate:"required"`
	ProductDescription    string   `json:"product_description" validate:"required"`
	IntendedUse           string   `json:"intended_use" validate:"required"`
	CustomerAcquisition   []string `json:"customer_acquisition"`
	FutureAnnualRevenue   int      `json:"future_annual_revenue" validate:"gte=0"`
	Switching             bool     `json:"switching"`
	SwitchingFrom         *string  `json:"switching_from"`
	PreviousAnnualRevenue int      `json:"previous_annual_revenue" validate:"gte=0"`
}

// SubmitForReview handles POST /api/v1/organizations/:id/onboarding/submit
func (h *OnboardingHandler) SubmitForReview(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req SubmitForReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
			"code":  "INVALID_BODY",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
			"code":  "VALIDATION_FAILED",
		})
	}

	org, err := h.onboardingService.SubmitForReview(c.Request().Context(), id, model.OrganizationDetails{
		About:                 req.About,
		ProductDescription:    req.ProductDescription,
		IntendedUse:           req.IntendedUse,
		CustomerAcquisition:   req.CustomerAcquisition,
		FutureAnnualRevenue:   req.FutureAnnualRevenue,
		Switching:             req.Switching,
		SwitchingFrom:         req.SwitchingFrom,
		PreviousAnnualRevenue: req.PreviousAnnualRevenue,
	})
	if err != nil {
		h.logger.Error("Failed to submit organization for review",
			zap.String("organization_id", id.String()),
			zap.Error(err))
		return domainErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, newOrganizationResponse(org, h.urlConfig))
}

// ApproveRequest carries the reviewer's decision parameters
type ApproveRequest struct {
	NextReviewThreshold int `json:"next_review_threshold" validate:"gte=0"`
}

// Approve handles POST /api/v1/organizations/:id/onboarding/approve
func (h *OnboardingHandler) Approve(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ApproveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
			"code":  "INVALID_BODY",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
			"code":  "VALIDATION_FAILED",
		})
	}

	org, err := h.onboardingService.Approve(c.Request().Context(), id, req.NextReviewThreshold)
	if err != nil {
		h.logger.Error("Failed to approve organization",
			zap.String("organization_id", id.String()),
			zap.Error(err))
		return domainErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, newOrganizationResponse(org, h.urlConfig))
}

// Deny handles POST /api/v1/organizations/:id/onboarding/deny
func (h *OnboardingHandler) Deny(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	org, err := h.onboardingService.Deny(c.Request().Context(), id)
	if err != nil {
		h.logger.Error("Failed to deny organization",
			zap.String("organization_id", id.String()),
			zap.Error(err))
		return domainErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, newOrganizationResponse(org, h.urlConfig))
}
