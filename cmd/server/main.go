package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vinayyy19/Furnista/common/auth"
	apperrors "github.com/Vinayyy19/Furnista/common/errors"
	"github.com/Vinayyy19/Furnista/common/logger"
	"github.com/Vinayyy19/Furnista/common/middleware"
	"github.com/Vinayyy19/Furnista/config"
	"github.com/Vinayyy19/Furnista/controllers"
	"github.com/Vinayyy19/Furnista/database"
	"github.com/Vinayyy19/Furnista/events"
	"github.com/Vinayyy19/Furnista/media"
	"github.com/Vinayyy19/Furnista/payment"
	awspkg "github.com/Vinayyy19/Furnista/pkg/aws"
	"github.com/Vinayyy19/Furnista/repository"
	"github.com/Vinayyy19/Furnista/routes"
	"github.com/Vinayyy19/Furnista/services"
	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const serviceName = "furnista-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Initialize("development").Fatal("Config load failed", zap.Error(err))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// --- AWS setup ---
	var awsCfg *sdkaws.Config
	if cfg.NeedsAWS() {
		loaded, err := awspkg.LoadAWSConfig(ctx)
		if err != nil {
			logger.Initialize(cfg.Env).Fatal("Failed to load AWS config", zap.Error(err))
		}
		awsCfg = &loaded
	}

	// --- Logging ---
	log := logger.Initialize(cfg.Env)
	if cfg.CloudWatchEnabled && awsCfg != nil {
		cwLogs, err := awspkg.NewCloudWatchLogsClient(ctx, *awsCfg, cfg.CloudWatchLogGroup, serviceName)
		if err != nil {
			log.Warn("CloudWatch logs init failed (non-fatal)", zap.Error(err))
		} else {
			log = logger.InitializeWithWriter(cfg.Env, cwLogs)
		}
	}
	defer log.Sync()

	var metricsClient *awspkg.MetricsClient
	var metrics services.MetricsRecorder
	if cfg.CloudWatchEnabled && awsCfg != nil {
		metricsClient = awspkg.NewMetricsClient(*awsCfg, cfg.CloudWatchNamespace, true)
		metrics = metricsClient
	}

	// --- Databases ---
	mongoDB, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB, log)
	if err != nil {
		log.Fatal("MongoDB connection failed", zap.Error(err))
	}
	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("Redis connection failed", zap.Error(err))
	}

	productRepo := repository.NewProductRepository(mongoDB.DB)
	categoryRepo := repository.NewCategoryRepository(mongoDB.DB)
	variantRepo := repository.NewVariantRepository(mongoDB.DB)
	orderRepo := repository.NewOrderRepository(mongoDB.DB)
	contactRepo := repository.NewContactRepository(mongoDB.DB)
	cartRepo := repository.NewCartRepository(redisClient, cfg.CartTTL)
	idemRepo := repository.NewIdempotencyRepository(redisClient, "checkout")

	indexCtx, cancelIndexes := context.WithTimeout(ctx, 30*time.Second)
	for name, ensure := range map[string]func(context.Context) error{
		"products":   productRepo.EnsureIndexes,
		"categories": categoryRepo.EnsureIndexes,
		"variants":   variantRepo.EnsureIndexes,
		"orders":     orderRepo.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			log.Fatal("Index creation failed", zap.String("collection", name), zap.Error(err))
		}
	}
	cancelIndexes()

	var inventory repository.InventoryLedger
	switch cfg.InventoryBackend {
	case config.InventoryDynamo:
		inventory = repository.NewDynamoInventory(awspkg.NewDynamoDBClient(*awsCfg), cfg.DDBTable)
	default:
		inventory = repository.NewMongoInventory(mongoDB.DB)
	}
	log.Info("Inventory ledger selected", zap.String("backend", cfg.InventoryBackend))

	// --- Media ---
	var uploader media.Uploader
	var presigner media.Presigner
	switch cfg.MediaBackend {
	case config.MediaS3:
		s3Uploader := media.NewS3Uploader(awspkg.NewS3Store(*awsCfg, cfg.S3Bucket))
		uploader, presigner = s3Uploader, s3Uploader
	default:
		cld, err := media.NewCloudinaryUploader(cfg.CloudinaryURL)
		if err != nil {
			log.Warn("Cloudinary not configured, media uploads disabled", zap.Error(err))
		} else {
			uploader = cld
		}
	}

	// --- Events ---
	publisher, err := events.New(cfg.EventsBackend, cfg, awsCfg)
	if err != nil {
		log.Fatal("Event publisher init failed", zap.Error(err))
	}

	// --- Payments ---
	var bridge payment.Bridge = payment.LocalBridge{}
	if cfg.StripeSecretKey != "" {
		bridge = payment.NewStripeService(cfg.StripeSecretKey)
	} else {
		log.Warn("STRIPE_SECRET_KEY not set, using local payment intents")
	}
	signer := payment.NewSigner(cfg.PaymentSigningSecret)
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	// --- Dependency injection ---
	cartService := services.NewCartService(cartRepo, productRepo, variantRepo, log)
	checkoutService := services.NewCheckoutService(
		cartRepo, productRepo, variantRepo, inventory, orderRepo, idemRepo,
		bridge, signer, publisher, metrics,
		services.CheckoutOptions{
			ShippingFee:    cfg.ShippingFee,
			Currency:       cfg.Currency,
			IdempotencyTTL: cfg.IdempotencyTTL,
		},
		log,
	)
	orderService := services.NewOrderService(orderRepo, publisher, metrics, cfg.StatusForwardOnly, log)
	contactService := services.NewContactService(contactRepo, publisher, log)

	if err := controllers.RegisterValidators(); err != nil {
		log.Fatal("Validator registration failed", zap.Error(err))
	}

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.MetricsMiddleware(metricsClient, serviceName),
		middleware.SecurityHeaders(),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
		middleware.RateLimitMiddleware(middleware.NewRateLimiter(
			ctx,
			rate.Limit(float64(cfg.RateLimitPerMinute)/60),
			cfg.RateLimitPerMinute,
			10*time.Minute,
		)),
		middleware.Timeout(30*time.Second),
		apperrors.ErrorMiddleware(),
	)

	routes.RegisterRoutes(r, routes.Handlers{
		Cart:    controllers.NewCartController(cartService),
		Orders:  controllers.NewOrderController(checkoutService, orderService),
		Admin:   controllers.NewAdminController(orderService, contactService),
		Contact: controllers.NewContactController(contactService),
		Media:   controllers.NewMediaController(uploader, presigner),
	}, tokens)

	// --- HTTP server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("Furnista API started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	stop()

	if err := publisher.Close(); err != nil {
		log.Error("Event publisher close error", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Redis close error", zap.Error(err))
	}
	if err := mongoDB.Close(); err != nil {
		log.Error("MongoDB close error", zap.Error(err))
	}
	log.Info("Server exited")
}
