package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"sitecms/config"
	"sitecms/cron"
	"sitecms/database"
	contentRepo "sitecms/database/repository/content"
	userRepo "sitecms/database/repository/user"
	"sitecms/handlers"
	"sitecms/middleware"
	"sitecms/models"
	"sitecms/routes"
	"sitecms/server"
	"sitecms/services/content"
	"sitecms/services/storage"
	"sitecms/services/user"
	"sitecms/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger, err := utils.NewLogger(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	db := mongoClient.Database(cfg.DatabaseName)
	logger.Info("Connected to MongoDB", zap.String("database", cfg.DatabaseName))

	media, err := newMediaStore(ctx, cfg)
	if err != nil {
		logger.Fatal("main: failed to initialize media store", zap.String("backend", cfg.MediaBackend), zap.Error(err))
	}

	// The ledger and sweeper need Redis; without it failed compensations are only logged.
	var ledger storage.UploadLedger = storage.NoopLedger{}
	rdb, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("Redis unavailable, orphaned uploads will not be swept", zap.Error(err))
	} else {
		ledger = storage.NewRedisLedger(rdb, storage.DefaultLedgerKey)
	}

	// repositories and services.
	newContent := func(res models.Resource) *content.DefaultContentService {
		repo := contentRepo.NewMongoContentRepo(db, res.Collection)
		return content.NewContentService(res, repo, media, ledger, logger)
	}
	servicesSvc := newContent(models.ServiceResource)
	bannersSvc := newContent(models.BannerResource)
	faqsSvc := newContent(models.FAQResource)
	galleriesSvc := newContent(models.GalleryResource)

	users, err := userRepo.NewMongoUserRepo(ctx, db)
	if err != nil {
		logger.Fatal("main: failed to initialize user repository", zap.Error(err))
	}
	userService := user.NewUserService(users, utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL))

	created, err := userService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logger.Error("main: failed to seed admin user", zap.Error(err))
	} else if created {
		logger.Info("Admin user created", zap.String("email", cfg.AdminEmail))
	}

	utils.RegisterCollectors(prometheus.DefaultRegisterer)

	health := utils.NewHealthMonitor(healthChecks(mongoClient, rdb))
	health.Start(ctx, 30*time.Second)

	if rdb != nil {
		limit := rate.Limit(cfg.SweepDeletesPerSec)
		if limit <= 0 {
			limit = rate.Inf
		}
		stopSweeper, err := cron.StartUploadSweeper(asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, &cron.Sweeper{
			Ledger:     ledger,
			Media:      media,
			StaleAfter: cfg.UploadStaleAfter,
			Limiter:    rate.NewLimiter(limit, 1),
			Logger:     logger,
		}, cfg.UploadSweepInterval)
		if err != nil {
			logger.Error("main: failed to start upload sweeper", zap.Error(err))
		} else {
			defer stopSweeper()
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler(logger))
	router.Use(gin.Logger())

	handlerBundle := &handlers.HandlerBundle{
		Services:  handlers.NewContentHandler(servicesSvc, logger),
		Banners:   handlers.NewContentHandler(bannersSvc, logger),
		FAQs:      handlers.NewContentHandler(faqsSvc, logger),
		Galleries: handlers.NewContentHandler(galleriesSvc, logger),
		Dashboard: &handlers.DashboardHandler{
			Services:  servicesSvc,
			Banners:   bannersSvc,
			FAQs:      faqsSvc,
			Galleries: galleriesSvc,
			Logger:    logger,
		},
		Auth:   &handlers.AuthHandler{UserService: userService, Logger: logger},
		Health: health,
		ImageUpload: func(folder string) gin.HandlerFunc {
			return middleware.ImageUpload(media, ledger, middleware.UploadOptions{
				Field:    "image",
				MaxBytes: cfg.MaxUploadBytes,
				Folder:   path.Join(cfg.MediaFolder, folder),
			}, logger)
		},
	}
	routes.RegisterRoutes(router, handlerBundle, cfg.CORSOrigins, prometheus.DefaultGatherer)

	ln, err := server.Listen(cfg.AppHost, cfg.AppPort, cfg.PortRetryLimit, logger)
	if err != nil {
		logger.Fatal("main: failed to bind", zap.Error(err))
	}
	srv := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}

	serveErr := server.Serve(ctx, srv, ln, cfg.ShutdownTimeout, logger)

	disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mongoClient.Disconnect(disconnectCtx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	if serveErr != nil {
		if errors.Is(serveErr, server.ErrForcedShutdown) {
			logger.Error("main: forced shutdown, in-flight requests were dropped")
		} else {
			logger.Error("main: server failed", zap.Error(serveErr))
		}
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newMediaStore(ctx context.Context, cfg *config.Config) (storage.MediaStore, error) {
	if cfg.MediaBackend == "minio" {
		return storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			PublicURL: cfg.MinioPublicURL,
		})
	}
	return storage.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
}

func healthChecks(mongoClient *mongo.Client, rdb *redis.Client) map[string]utils.HealthCheck {
	checks := map[string]utils.HealthCheck{
		"mongo": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return checks
}
