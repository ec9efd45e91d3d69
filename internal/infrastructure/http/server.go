package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/polarsource/organization-service/internal/adapter/handler/http"
	"github.com/polarsource/organization-service/internal/config"
	"github.com/polarsource/organization-service/internal/infrastructure/database"
	"github.com/polarsource/organization-service/internal/infrastructure/provider/stripe"
	"github.com/polarsource/organization-service/internal/middleware/auth"
	"github.com/polarsource/organization-service/internal/usecase"
	pkgErrors "github.com/polarsource/organization-service/pkg/errors"
	"github.com/polarsource/organization-service/pkg/logger"
	"github.com/polarsource/organization-service/pkg/messaging"
)

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	repos  *database.Repositories
	redis  messaging.RedisClient
}

func NewServer(cfg *config.Config, log *zap.Logger, repos *database.Repositories, redis messaging.RedisClient) *Server {
	e := echo.New()
	e.HideBanner = true

	logger.WithEchoLogger(e, log)

	// Normalize errors that escape the handlers
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		httpErr := pkgErrors.ToHTTPError(err)
		if httpErr.Code >= http.StatusInternalServerError {
			pkgErrors.LogError(log, err, "Unhandled request error",
				zap.String("path", c.Request().URL.Path),
				zap.String("method", c.Request().Method))
		}
		body := echo.Map{"error": fmt.Sprintf("%v", httpErr.Message)}
		var appErr *pkgErrors.AppError
		if pkgErrors.As(pkgErrors.FromHTTPError(httpErr), &appErr) {
			body["code"] = appErr.Code()
		}
		_ = c.JSON(httpErr.Code, body)
	}

	// Middleware
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.FrontendBaseURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PATCH, echo.DELETE},
	}))
	e.Use(echoprometheus.NewMiddleware(cfg.Service.Name))

	return &Server{
		config: cfg,
		logger: log,
		echo:   e,
		repos:  repos,
		redis:  redis,
	}
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	addr := s.config.Server.HTTP.Addr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "organization",
		})
	})

	// Prometheus scrape endpoint
	s.echo.GET("/metrics", echoprometheus.NewHandler())

	urlConfig := handlers.URLConfig{
		FrontendBaseURL:           s.config.Service.FrontendBaseURL,
		StatementDescriptorPrefix: s.config.Service.StatementDescriptorPrefix,
		StatementDescriptorMaxLen: s.config.Service.StatementDescriptorSuffixMaxLength,
	}

	// Initialize services and handlers
	orgService := usecase.NewOrganizationService(s.repos.Organization, s.repos.Product, s.logger)
	onboardingService := usecase.NewOnboardingService(s.repos.Organization, s.logger)
	payoutProvider := stripe.NewStripeProvider(s.config.Service.StripeSecretKey, s.logger)
	accountService := usecase.NewAccountService(s.repos.Account, payoutProvider, s.logger)
	notifier := usecase.NewOrganizationNotifier(s.redis, s.logger)

	orgHandler := handlers.NewOrganizationHandler(s.logger, orgService, urlConfig)
	onboardingHandler := handlers.NewOnboardingHandler(s.logger, onboardingService, urlConfig)
	storefrontHandler := handlers.NewStorefrontHandler(s.logger, orgService, urlConfig)
	accountHandler := handlers.NewAccountHandler(s.logger, accountService)
	notificationHandler := handlers.NewNotificationHandler(s.logger, orgService, notifier)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret: s.config.Service.JWTSecret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
			"/metrics",
		},
	}

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Public routes (no authentication required)
	v1.GET("/storefronts", storefrontHandler.ListStorefronts)
	v1.GET("/organizations/slug/:slug", orgHandler.GetOrganizationBySlug)

	// Protected routes (require JWT authentication)
	protected := v1.Group("", auth.JWTMiddleware(jwtConfig))

	organizations := protected.Group("/organizations")
	organizations.POST("", orgHandler.CreateOrganization)
	organizations.GET("/:id", orgHandler.GetOrganization)
	organizations.PATCH("/:id", orgHandler.UpdateOrganization)
	organizations.GET("/:id/payment-readiness", orgHandler.GetPaymentReadiness)
	organizations.POST("/:id/invoice-numbers", orgHandler.AllocateInvoiceNumber)
	organizations.POST("/:id/block", orgHandler.BlockOrganization)
	organizations.POST("/:id/unblock", orgHandler.UnblockOrganization)

	organizations.GET("/:id/onboarding", onboardingHandler.GetOnboardingStatus)
	organizations.POST("/:id/onboarding/start", onboardingHandler.StartOnboarding)
	organizations.POST("/:id/onboarding/submit", onboardingHandler.SubmitForReview)
	organizations.POST("/:id/onboarding/approve", onboardingHandler.Approve)
	organizations.POST("/:id/onboarding/deny", onboardingHandler.Deny)

	protected.POST("/accounts/:id/refresh", accountHandler.RefreshAccount)

	// Internal routes other services call on order/subscription creation
	internal := protected.Group("/internal")
	internal.POST("/organizations/:id/events/order", notificationHandler.NotifyNewOrder)
	internal.POST("/organizations/:id/events/subscription", notificationHandler.NotifyNewSubscription)
}
