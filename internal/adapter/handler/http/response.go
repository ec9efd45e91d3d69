package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	domainErrors "github.com/polarsource/organization-service/internal/domain/errors"
	"github.com/polarsource/organization-service/internal/domain/model"
)

// OrganizationResponse is the API shape of an organization, including the
// derived URLs and statement descriptor
type OrganizationResponse struct {
	*model.Organization
	PolarSiteURL        string `json:"polar_site_url"`
	AccountURL          string `json:"account_url"`
	StatementDescriptor string `json:"statement_descriptor"`
}

// URLConfig carries the values needed to derive organization URLs and
// descriptors in responses
type URLConfig struct {
	FrontendBaseURL           string
	StatementDescriptorPrefix string
	StatementDescriptorMaxLen int
}

func newOrganizationResponse(org *model.Organization, cfg URLConfig) OrganizationResponse {
	return OrganizationResponse{
		Organization:        org,
		PolarSiteURL:        org.PolarSiteURL(cfg.FrontendBaseURL),
		AccountURL:          org.AccountURL(cfg.FrontendBaseURL),
		StatementDescriptor: org.StatementDescriptorPrefixed(cfg.StatementDescriptorPrefix, cfg.StatementDescriptorMaxLen),
	}
}

// parseIDParam parses the :id path parameter as a UUID. The returned error is
// an echo.HTTPError so callers can return it directly and stop; writing the
// response here would leave the caller running with uuid.Nil.
func parseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid resource ID")
	}
	return id, nil
}

// domainErrorResponse maps domain errors onto HTTP responses. Unknown errors
// fall through to a 500 without leaking internals.
func domainErrorResponse(c echo.Context, err error) error {
	if errors.Is(err, domainErrors.ErrOrganizationNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Organization not found",
			"code":  "ORGANIZATION_NOT_FOUND",
		})
	}
	if errors.Is(err, domainErrors.ErrAccountNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Account not found",
			"code":  "ACCOUNT_NOT_FOUND",
		})
	}

	var orgErr *domainErrors.OrganizationError
	if errors.As(err, &orgErr) {
		switch orgErr.Type {
		case domainErrors.ErrTypeSlugTaken, domainErrors.ErrTypeInvalidStatusTransition:
			return c.JSON(http.StatusConflict, echo.Map{
				"error": orgErr.Message,
				"code":  orgErr.Type,
			})
		case domainErrors.ErrTypeInvalidEnumValue, domainErrors.ErrTypeInvalidReviewThreshold:
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": orgErr.Message,
				"code":  orgErr.Type,
			})
		}
	}

	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": "Internal server error",
		"code":  "INTERNAL_ERROR",
	})
}
