package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/polarsource/organization-service/internal/usecase"
)

// AccountHandler exposes payout account operations
type AccountHandler struct {
	logger         *zap.Logger
	accountService *usecase.AccountService
}

func NewAccountHandler(logger *zap.Logger, accountService *usecase.AccountService) *AccountHandler {
	return &AccountHandler{
		logger:         logger,
		accountService: accountService,
	}
}

// RefreshAccount handles POST /api/v1/accounts/:id/refresh. It pulls the
// connected account's capability flags from the provider and persists them.
func (h *AccountHandler) RefreshAccount(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	account, err := h.accountService.RefreshAccountStatus(c.Request().Context(), id)
	if err != nil {
		h.logger.Error("Failed to refresh account",
			zap.String("account_id", id.String()),
			zap.Error(err))
		return domainErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, account)
}
