package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/polarsource/organization-service/internal/domain/model"
	"github.com/polarsource/organization-service/internal/usecase"
)

type OrganizationHandler struct {
	logger     *zap.Logger
	orgService *usecase.OrganizationService
	validate   *validator.Validate
	urlConfig  URLConfig
}

func NewOrganizationHandler(
	logger *zap.Logger,
	orgService *usecase.OrganizationService,
	urlConfig URLConfig,
) *OrganizationHandler {
	return &OrganizationHandler{
		logger:     logger,
		orgService: orgService,
		validate:   validator.New(),
		urlConfig:  urlConfig,
	}
}

// CreateOrganizationRequest is the create endpoint's request body
type CreateOrganizationRequest struct {
	Name      string  `json:"name" validate:"required,max=255"`
	Slug      string  `json:"slug" validate:"required,min=3,max=96"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Website   *string `json:"website" validate:"omitempty,url"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

// CreateOrganization handles POST /api/v1/organizations
func (h *OrganizationHandler) CreateOrganization(c echo.Context) error {
	var req CreateOrganizationRequest
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

	org, err := h.orgService.Create(c.Request().Context(), usecase.CreateOrganizationInput{
		Name:      req.Name,
		Slug:      req.Slug,
		Email:     req.Email,
		Website:   req.Website,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		h.logger.Error("Failed to create organization",
			zap.String("slug", req.Slug),
			zap.Error(err))
		return domainErrorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, newOrganizationResponse(org, h.urlConfig))
}

// GetOrganization handles GET /api/v1/organizations/:id
func (h *OrganizationHandler) GetOrganization(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	org, err := h.orgService.Get(c.Request().Context(), id)
	if err != nil {
		return domainErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, newOrganizationResponse(org, h.urlConfig))
}

// GetOrganizationBySlug handles GET /api/v1/organizations/slug/:slug
func (h *OrganizationHandler) GetOrganizationBySlug(c echo.Context) error {
	org, err := h.orgService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return domainErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, newOrganizationResponse(org, h.urlConfig))
}

// UpdateOrganizationRequest is the update endpoint's request body. Absent
// fields are left untouched.
type UpdateOrganizationRequest struct {
	Name                 *string                     `json:"name" validate:"omitempty,max=255"`
	Email                *string                     `json:"email" validate:"omitempty,email"`
	Website              *string                     `json:"website" validate:"omitempty,url"`
	AvatarURL            *string                     `json:"avatar_url" validate:"omitempty,url"`
	Socials              *model.SocialLinks          `json:"socials"`
	ProfileSettings      *model.JSONB                `json:"profile_settings"`
	SubscriptionSettings *model.SubscriptionSettings `json:"subscription_settings"`
	NotificationSettings *model.NotificationSettings `json:"notification_settings"`
	FeatureSettings      *model.JSONB                `json:"feature_settings"`
}

// UpdateOrganization handles PATCH /api/v1/organizations/:id
func (h *OrganizationHandler) UpdateOrganization(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateOrganizationRequest
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

	org, err := h.orgService.Update(c.Request().Context(), id, usecase.UpdateOrganizationInput{
		Name:                 req.Name,
		Email:                req.Email,
		Website:              req.Website,
		AvatarURL:            req.AvatarURL,
		Socials:              req.Socials,
		ProfileSettings:      req.ProfileSettings,
		SubscriptionSettings: req.SubscriptionSettings,
		NotificationSettings: req.NotificationSettings,
		FeatureSettings:      req.FeatureSettings,
	})
	if err != nil {
		h.logger.Error("Failed to update organization",
			zap.String("organization_id", id.String()),
			zap.Error(err))
		return domainErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, newOrganizationResponse(org, h.urlConfig))
}

// GetPaymentReadiness handles GET /api/v1/organizations/:id/payment-readiness
func (h *OrganizationHandler) GetPaymentReadiness(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	org, readiness, err := h.orgService.PaymentReadiness(c.Request().Context(), id)
	if err != nil {
		return domainErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"organization_id": org.ID,
		"ready":           readiness.Ready(),
		"conditions":      readiness,
	})
}

// AllocateInvoiceNumber handles POST /api/v1/organizations/:id/invoice-numbers
func (h *OrganizationHandler) AllocateInvoiceNumber(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	number, err := h.orgService.NextInvoiceNumber(c.Request().Context(), id)
	if err != nil {
		return domainErrorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"invoice_number": number.String(),
		"prefix":         number.Prefix,
		"number":         number.Number,
	})
}

// BlockOrganization handles POST /api/v1/organizations/:id/block
func (h *OrganizationHandler) BlockOrganization(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.orgService.Block(c.Request().Context(), id); err != nil {
		return domainErrorResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UnblockOrganization handles POST /api/v1/organizations/:id/unblock
func (h *OrganizationHandler) UnblockOrganization(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.orgService.Unblock(c.Request().Context(), id); err != nil {
		return domainErrorResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
