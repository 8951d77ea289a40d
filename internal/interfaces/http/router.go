package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	billingUC "coursegate/internal/application/billing/usecases"
	entitlementUC "coursegate/internal/application/entitlement/usecases"
	playbackUC "coursegate/internal/application/playback/usecases"
	"coursegate/internal/domain/billing"
	"coursegate/internal/infrastructure/auth"
	infrabilling "coursegate/internal/infrastructure/billing"
	"coursegate/internal/infrastructure/cache"
	"coursegate/internal/infrastructure/config"
	"coursegate/internal/infrastructure/playback"
	"coursegate/internal/infrastructure/repository"
	"coursegate/internal/interfaces/http/handlers"
	"coursegate/internal/interfaces/http/middleware"
	"coursegate/internal/shared/logger"
)

// Router owns the HTTP engine and the fully wired handler graph.
type Router struct {
	engine          *gin.Engine
	cfg             *config.Config
	webhookHandler  *handlers.WebhookHandler
	billingHandler  *handlers.BillingHandler
	playbackHandler *handlers.PlaybackHandler
	authMiddleware  *middleware.AuthMiddleware
	logger          logger.Interface
}

// NewRouter builds the complete dependency graph from configuration and the
// shared infrastructure handles. Wiring failures (like a malformed price
// catalog) surface here, before the server starts listening.
func NewRouter(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Router, error) {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.NewLogger()

	catalog, err := billing.NewCatalog(cfg.Stripe.Prices)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db, log.Named("repo.user"))
	definitionRepo := repository.NewEntitlementDefinitionRepository(db, log.Named("repo.definition"))
	recordRepo := repository.NewUserEntitlementRepository(db, log.Named("repo.record"))

	gateway := infrabilling.NewStripeGateway(&cfg.Stripe)
	verifier := infrabilling.NewWebhookVerifier(cfg.Stripe.WebhookSecret)
	deduper := cache.NewWebhookDeduper(redisClient, log.Named("webhook.dedupe"))
	signer := playback.NewSigner(&cfg.Playback, log.Named("playback.signer"))

	grantUC := entitlementUC.NewGrantEntitlementUseCase(
		definitionRepo, userRepo, recordRepo, log.Named("usecase.grant"))
	processUC := entitlementUC.NewProcessBillingEventUseCase(
		grantUC, userRepo, catalog, log.Named("usecase.process_event"))
	checkoutUC := billingUC.NewCreateCheckoutSessionUseCase(
		userRepo, catalog, gateway, log.Named("usecase.checkout"))
	portalUC := billingUC.NewCreatePortalSessionUseCase(
		userRepo, gateway, log.Named("usecase.portal"))
	accessUC := playbackUC.NewCheckAccessUseCase(recordRepo, log.Named("usecase.access"))
	issueTokenUC := playbackUC.NewIssuePlaybackTokenUseCase(
		accessUC, signer, log.Named("usecase.playback_token"))

	verifierJWT := auth.NewJWTVerifier(cfg.Auth.JWT.Secret)

	return &Router{
		engine:          gin.New(),
		cfg:             cfg,
		webhookHandler:  handlers.NewWebhookHandler(verifier, deduper, processUC),
		billingHandler:  handlers.NewBillingHandler(checkoutUC, portalUC),
		playbackHandler: handlers.NewPlaybackHandler(issueTokenUC),
		authMiddleware:  middleware.NewAuthMiddleware(verifierJWT, log.Named("middleware.auth")),
		logger:          log.Named("http.router"),
	}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", r.healthCheck)

	// The webhook endpoint authenticates by signature, not bearer token.
	webhooks := r.engine.Group("/webhooks")
	{
		webhooks.POST("/stripe", r.webhookHandler.HandleStripeWebhook)
	}

	api := r.engine.Group("/api/v1")
	{
		billingRoutes := api.Group("/billing")
		billingRoutes.Use(r.authMiddleware.RequireAuth())
		{
			billingRoutes.POST("/checkout", r.billingHandler.CreateCheckoutSession)
			billingRoutes.POST("/portal", r.billingHandler.CreatePortalSession)
		}

		// Free content works without a credential, so auth is optional here
		// and the access decision runs per request.
		playbackRoutes := api.Group("/playback")
		playbackRoutes.Use(r.authMiddleware.OptionalAuth())
		{
			playbackRoutes.POST("/token", r.playbackHandler.IssueToken)
		}
	}
}

func (r *Router) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "healthy",
		"service": "coursegate",
	})
}

// GetEngine exposes the underlying engine for tests.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server on the given address.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
