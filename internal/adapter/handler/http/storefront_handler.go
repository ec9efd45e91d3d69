package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/polarsource/organization-service/internal/domain/entity"
	"github.com/polarsource/organization-service/internal/usecase"
)

type StorefrontHandler struct {
	logger     *zap.Logger
	orgService *usecase.OrganizationService
	urlConfig  URLConfig
}

func NewStorefrontHandler(
	logger *zap.Logger,
	orgService *usecase.OrganizationService,
	urlConfig URLConfig,
) *StorefrontHandler {
	return &StorefrontHandler{
		logger:     logger,
		orgService: orgService,
		urlConfig:  urlConfig,
	}
}

// ListStorefronts handles GET /api/v1/storefronts. Only organizations with an
// enabled storefront and no active block are listed.
func (h *StorefrontHandler) ListStorefronts(c echo.Context) error {
	var params entity.PaginationParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid pagination parameters",
			"code":  "INVALID_PAGINATION",
		})
	}

	orgs, meta, err := h.orgService.ListStorefronts(c.Request().Context(), params)
	if err != nil {
		h.logger.Error("Failed to list storefronts", zap.Error(err))
		return domainErrorResponse(c, err)
	}

	data := make([]OrganizationResponse, len(orgs))
	for i, org := range orgs {
		data[i] = newOrganizationResponse(org, h.urlConfig)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":       data,
		"pagination": meta,
	})
}
