package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pestcontrol/config"
	"pestcontrol/cron"
	"pestcontrol/database"
	catalogTypeRepo "pestcontrol/database/repository/catalogtype"
	leadRepo "pestcontrol/database/repository/lead"
	seoRepo "pestcontrol/database/repository/seo"
	serviceRepo "pestcontrol/database/repository/service"
	"pestcontrol/handlers"
	"pestcontrol/middleware"
	"pestcontrol/routes"
	"pestcontrol/services/auth"
	"pestcontrol/services/catalog"
	"pestcontrol/services/notification"
	"pestcontrol/services/review"
	"pestcontrol/services/seo"
	"pestcontrol/services/storage"
	"pestcontrol/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer utils.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	db := database.DB()

	cache, err := utils.InitCache()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cache: %v", err)
	}

	rootCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(rootCtx, utils.CacheClient, database.MongoClient)

	// repositories.
	serviceTypes := catalogTypeRepo.NewMongoCatalogTypeRepo(db, catalogTypeRepo.ServiceTypesCollection)
	areaTypes := catalogTypeRepo.NewMongoCatalogTypeRepo(db, catalogTypeRepo.AreaTypesCollection)
	services := serviceRepo.NewMongoServiceRepo(db)
	featuredSlots := serviceRepo.NewMongoFeaturedSlots(db)
	leads := leadRepo.NewMongoLeadRepo(db)
	seoPages := seoRepo.NewMongoSEORepo(db)

	// services.
	serviceCatalog := catalog.NewDefaultServiceCatalog(services, featuredSlots)
	reconcileCtx, cancel := context.WithTimeout(rootCtx, 10*time.Second)
	if err := serviceCatalog.ReconcileFeatured(reconcileCtx); err != nil {
		logger.Error("main: failed to reconcile featured counter", zap.Error(err))
	}
	cancel()

	var reconciler cron.Stopper
	if config.AppConfig.RedisAddr != "" {
		reconciler, err = cron.StartQueueReconciler(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}, serviceCatalog, config.AppConfig.ReconcileSchedule)
	} else {
		reconciler, err = cron.StartLocalReconciler(serviceCatalog, config.AppConfig.ReconcileSchedule)
	}
	if err != nil {
		logger.Sugar().Fatalf("main: failed to start reconcile worker: %v", err)
	}

	var mailer notification.Mailer = notification.LogMailer{FrontendURL: config.AppConfig.FrontendURL}
	if config.AppConfig.SMTPHost != "" && config.AppConfig.SMTPUsername != "" {
		mailer = notification.NewSMTPMailer(
			config.AppConfig.SMTPHost,
			config.AppConfig.SMTPPort,
			config.AppConfig.SMTPUsername,
			config.AppConfig.SMTPPassword,
			config.AppConfig.MailFrom,
			config.AppConfig.FrontendURL,
		)
	} else {
		logger.Warn("main: SMTP not configured, review invitations will only be logged")
	}

	verifier := utils.NewJWTVerifier(config.AppConfig.JWTSecret, config.AppConfig.JWTTTL)
	authService := auth.NewDefaultAuthService(auth.AdminAccount{
		ID:           config.AppConfig.AdminID,
		Email:        config.AppConfig.AdminEmail,
		PasswordHash: config.AppConfig.AdminPasswordHash,
	}, verifier)

	h := handlers.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		ServiceTypes: handlers.NewCatalogTypeHandler(catalog.NewDefaultTypeService("service type", serviceTypes, cache)),
		AreaTypes:    handlers.NewCatalogTypeHandler(catalog.NewDefaultTypeService("area type", areaTypes, cache)),
		Services:     handlers.NewServiceHandler(serviceCatalog),
		Leads:        handlers.NewLeadHandler(review.NewDefaultReviewService(leads, mailer, serviceCatalog)),
		SEO:          handlers.NewSEOHandler(seo.NewDefaultSEOService(seoPages)),
	}
	if config.AppConfig.CloudinaryCloudName != "" {
		cld, err := storage.NewCloudinaryStorage(
			config.AppConfig.CloudinaryCloudName,
			config.AppConfig.CloudinaryAPIKey,
			config.AppConfig.CloudinaryAPISecret,
		)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
		}
		h.Storage = handlers.NewStorageHandler(cld)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlers.NewHandlerBundle(verifier, h), config.AllowedOrigins())

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stopMonitor()
	reconciler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to disconnect from MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
