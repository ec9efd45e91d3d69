package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/polarsource/organization-service/internal/usecase"
)

// NotificationHandler exposes the internal event entry points other services
// call when orders and subscriptions are created
type NotificationHandler struct {
	logger     *zap.Logger
	orgService *usecase.OrganizationService
	notifier   *usecase.OrganizationNotifier
	validate   *validator.Validate
}

func NewNotificationHandler(
	logger *zap.Logger,
	orgService *usecase.OrganizationService,
	notifier *usecase.OrganizationNotifier,
) *NotificationHandler {
	return &NotificationHandler{
		logger:     logger,
		orgService: orgService,
		notifier:   notifier,
		validate:   validator.New(),
	}
}

// NotifyEventRequest identifies the resource that triggered the event
type NotifyEventRequest struct {
	ResourceID string `json:"resource_id" validate:"required"`
}

// NotifyNewOrder handles POST /api/v1/internal/organizations/:id/events/order
func (h *NotificationHandler) NotifyNewOrder(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req NotifyEventRequest
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

	org, err := h.orgService.Get(c.Request().Context(), id)
	if err != nil {
		return domainErrorResponse(c, err)
	}

	if err := h.notifier.NotifyNewOrder(c.Request().Context(), org, req.ResourceID); err != nil {
		return domainErrorResponse(c, err)
	}

	return c.NoContent(http.StatusAccepted)
}

// NotifyNewSubscription handles
// POST /api/v1/internal/organizations/:id/events/subscription
func (h *NotificationHandler) NotifyNewSubscription(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req NotifyEventRequest
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

	org, err := h.orgService.Get(c.Request().Context(), id)
	if err != nil {
		return domainErrorResponse(c, err)
	}

	if err := h.notifier.NotifyNewSubscription(c.Request().Context(), org, req.ResourceID); err != nil {
		return domainErrorResponse(c, err)
	}

	return c.NoContent(http.StatusAccepted)
}
