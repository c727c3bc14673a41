package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sufal54/bolpurmart-admin-sub000/controllers"
	"github.com/sufal54/bolpurmart-admin-sub000/database"
	"github.com/sufal54/bolpurmart-admin-sub000/middleware"
	awspkg "github.com/sufal54/bolpurmart-admin-sub000/pkg/aws"
	"github.com/sufal54/bolpurmart-admin-sub000/realtime"
	"github.com/sufal54/bolpurmart-admin-sub000/repository"
	"github.com/sufal54/bolpurmart-admin-sub000/routes"
	"github.com/sufal54/bolpurmart-admin-sub000/services"
)

func main() {
	// Initialize structured logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	// --- 1. Data stores ---

	mongoClient, db, err := database.ConnectMongo(cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	redisClient := database.NewRedisClient(cfg.RedisURL)

	var logRepo repository.NotificationLogRepo
	if cfg.PostgresDSN != "" {
		pg, err := database.ConnectPostgres(cfg.PostgresDSN)
		if err != nil {
			zap.L().Fatal("Failed to connect to Postgres", zap.Error(err))
		}
		logRepo = repository.NewNotificationLogRepository(pg)
	} else {
		zap.L().Warn("POSTGRES_DSN not set, notification delivery log disabled")
	}

	awsCfg, err := awspkg.LoadAWSConfig(context.Background())
	if err != nil {
		zap.L().Fatal("Failed to load AWS config", zap.Error(err))
	}
	uploader := awspkg.NewS3Uploader(awsCfg, cfg.AWSEndpoint, cfg.S3Bucket, cfg.S3Prefix, cfg.S3PublicBase)

	var snsPublisher awspkg.SNSPublisher
	if cfg.SNSTopicArn != "" {
		snsPublisher = awspkg.NewSNSClient(awsCfg)
	} else {
		zap.L().Warn("SNS_TOPIC_ARN not set, order event publishing disabled")
	}

	// --- 2. Dependency injection ---

	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	partnerRepo := repository.NewDeliveryPartnerRepository(db)
	upiRepo := repository.NewUPIMethodRepository(db)
	slotRepo := repository.NewTimeSlotRepository(db)
	rulesRepo := repository.NewTimeRulesRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notifier := services.NewNotifier(notificationRepo, logRepo, snsPublisher, cfg.SNSTopicArn, logger)

	productService := services.NewProductService(productRepo, categoryRepo, vendorRepo, logger)
	categoryService := services.NewCategoryService(categoryRepo)
	vendorService := services.NewVendorService(vendorRepo)
	orderService := services.NewOrderService(orderRepo, partnerRepo, notifier, logger)
	userService := services.NewUserService(userRepo)
	partnerService := services.NewDeliveryPartnerService(partnerRepo)
	upiService := services.NewUPIMethodService(upiRepo)
	timeRulesService := services.NewTimeRulesService(slotRepo, rulesRepo, logger)

	cache := controllers.NewCacheManager(redisClient)

	ctrls := routes.Controllers{
		Auth:          controllers.NewAuthController(cfg.AdminEmail, cfg.AdminPassword, cfg.JWTSecret),
		Products:      controllers.NewProductController(productService, cache),
		Categories:    controllers.NewCategoryController(categoryService),
		Vendors:       controllers.NewVendorController(vendorService),
		Orders:        controllers.NewOrderController(orderService),
		TimeSlots:     controllers.NewTimeSlotController(timeRulesService),
		Users:         controllers.NewUserController(userService),
		Partners:      controllers.NewDeliveryPartnerController(partnerService),
		UPIMethods:    controllers.NewUPIMethodController(upiService),
		Uploads:       controllers.NewUploadController(uploader),
		Notifications: controllers.NewNotificationController(notificationRepo, logRepo),
	}

	// --- 3. Realtime push ---

	hub := realtime.NewHub(logger)
	watcher := realtime.NewWatcher(db, hub, logger)

	watchCtx, stopWatchers := context.WithCancel(context.Background())
	defer stopWatchers()

	listers := map[string]realtime.Lister{
		"products": func(ctx context.Context) (interface{}, error) {
			return productRepo.Find(ctx, map[string]interface{}{}, 0, 0)
		},
		"categories": func(ctx context.Context) (interface{}, error) {
			return categoryRepo.FindAll(ctx)
		},
		"vendors": func(ctx context.Context) (interface{}, error) {
			return vendorRepo.FindAll(ctx)
		},
		"orders": func(ctx context.Context) (interface{}, error) {
			return orderRepo.Find(ctx, map[string]interface{}{}, 0, 0)
		},
		"users": func(ctx context.Context) (interface{}, error) {
			return userRepo.Find(ctx, map[string]interface{}{}, 0, 0)
		},
		"delivery_partners": func(ctx context.Context) (interface{}, error) {
			return partnerRepo.FindAll(ctx)
		},
		"upi_methods": func(ctx context.Context) (interface{}, error) {
			return upiRepo.FindAll(ctx)
		},
		"time_slots": func(ctx context.Context) (interface{}, error) {
			return slotRepo.FindAll(ctx)
		},
		"settings": func(ctx context.Context) (interface{}, error) {
			return rulesRepo.Get(ctx)
		},
	}
	for collection, list := range listers {
		go watcher.Watch(watchCtx, collection, list)
	}

	// --- 4. HTTP server ---

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.RateLimit())
	r.Use(func(c *gin.Context) {
		// Websocket connections are long-lived and manage their own deadlines.
		if c.FullPath() == "/ws" {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterRoutes(r, ctrls, hub, cfg.JWTSecret)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Admin backend starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// --- 5. Graceful shutdown ---

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down admin backend...")

	stopWatchers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		zap.L().Error("Failed to close Redis", zap.Error(err))
	}
	if err := database.CloseMongo(mongoClient); err != nil {
		zap.L().Error("Failed to close MongoDB", zap.Error(err))
	}

	zap.L().Info("Admin backend stopped gracefully")
}
