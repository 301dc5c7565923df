package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Abdullah149081/summer-camp-server/api/swagger"
	"github.com/Abdullah149081/summer-camp-server/internal/handler"
	"github.com/Abdullah149081/summer-camp-server/internal/middleware"
	"github.com/Abdullah149081/summer-camp-server/internal/models"
	"github.com/Abdullah149081/summer-camp-server/internal/repository"
	"github.com/Abdullah149081/summer-camp-server/internal/service"
	"github.com/Abdullah149081/summer-camp-server/pkg/cache"
	"github.com/Abdullah149081/summer-camp-server/pkg/config"
	"github.com/Abdullah149081/summer-camp-server/pkg/database"
	"github.com/Abdullah149081/summer-camp-server/pkg/export"
	"github.com/Abdullah149081/summer-camp-server/pkg/logger"
	corsmiddleware "github.com/Abdullah149081/summer-camp-server/pkg/middleware/cors"
	reqidmiddleware "github.com/Abdullah149081/summer-camp-server/pkg/middleware/requestid"
	"github.com/Abdullah149081/summer-camp-server/pkg/payment"
)

// @title Summer Camp Server
// @version 1.0.0
// @description Course enrollment and payment backend
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// Listing caches degrade to direct reads without Redis.
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	selectionRepo := repository.NewSelectionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	bannerRepo := repository.NewBannerRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, cacheRepo, validate, logr, cfg.Listings.TopLimit, cfg.Listings.CacheTTL)
	classSvc := service.NewClassService(classRepo, cacheRepo, validate, logr, cfg.Listings.TopLimit, cfg.Listings.CacheTTL)
	selectionSvc := service.NewSelectionService(selectionRepo, validate, logr)
	intentClient := payment.NewStripeClient(payment.Config{
		SecretKey: cfg.Stripe.SecretKey,
		Currency:  cfg.Stripe.Currency,
		APIBase:   cfg.Stripe.APIBase,
		Timeout:   cfg.Stripe.Timeout,
	})
	paymentSvc := service.NewPaymentService(paymentRepo, intentClient, cacheRepo, export.NewPDFExporter(), validate, logr)
	bannerSvc := service.NewBannerService(bannerRepo, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	registerRoutes(r, cfg, metricsSvc, authSvc, userSvc, classSvc, selectionSvc, paymentSvc, bannerSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func registerRoutes(
	r *gin.Engine,
	cfg *config.Config,
	metricsSvc *service.MetricsService,
	authSvc *service.AuthService,
	userSvc *service.UserService,
	classSvc *service.ClassService,
	selectionSvc *service.SelectionService,
	paymentSvc *service.PaymentService,
	bannerSvc *service.BannerService,
) {
	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	classHandler := handler.NewClassHandler(classSvc)
	selectionHandler := handler.NewSelectionHandler(selectionSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	bannerHandler := handler.NewBannerHandler(bannerSvc)

	authed := middleware.JWT(authSvc)
	adminOnly := middleware.RequireRole(userSvc, models.RoleAdmin)
	instructorOnly := middleware.RequireRole(userSvc, models.RoleInstructor)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/jwt", authHandler.IssueToken)
	r.GET("/banner", bannerHandler.List)

	r.GET("/users", authed, adminOnly, userHandler.List)
	r.GET("/users/instructors", userHandler.Instructors)
	r.GET("/topInstructors", userHandler.TopInstructors)
	r.GET("/users/role/:email", authed, middleware.RequireSelfEmail("email"), userHandler.RoleFlags)
	r.POST("/users", userHandler.Create)
	r.PATCH("/users/admin/:id", authed, adminOnly, userHandler.PromoteAdmin)
	r.PATCH("/users/instructors/:id", authed, adminOnly, userHandler.PromoteInstructor)

	r.GET("/class/:email", authed, instructorOnly, middleware.RequireSelfEmail("email"), classHandler.ListByInstructor)
	r.GET("/topClass", classHandler.TopClasses)
	r.GET("/allClass", classHandler.ListApproved)
	r.GET("/class", authed, adminOnly, classHandler.ListAll)
	r.POST("/class", authed, instructorOnly, classHandler.Create)
	r.PATCH("/class/approve/:id", authed, adminOnly, classHandler.UpdateStatus)
	r.PATCH("/class/feedback/:id", authed, adminOnly, classHandler.UpdateFeedback)

	r.GET("/selected-class/:id", authed, selectionHandler.Get)
	r.GET("/selected", authed, middleware.RequireSelfQueryEmail("email"), selectionHandler.List)
	r.POST("/selected", authed, selectionHandler.Create)
	r.DELETE("/selected/:id", authed, selectionHandler.Delete)

	r.GET("/enrolled-classes/:email", authed, middleware.RequireSelfEmail("email"), paymentHandler.Enrolled)
	r.GET("/payments-history/:email", authed, middleware.RequireSelfEmail("email"), paymentHandler.History)
	r.GET("/payments-history/:email/export", authed, middleware.RequireSelfEmail("email"), paymentHandler.ExportHistory)
	r.POST("/create-payment-intent", authed, paymentHandler.CreateIntent)
	r.POST("/payments", authed, paymentHandler.Settle)
}
