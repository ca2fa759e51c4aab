package main

import (
	"context"
	"log"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/ykovtun/avtosos/internal/pkg/config"
	"github.com/ykovtun/avtosos/internal/pkg/database"
	"github.com/ykovtun/avtosos/internal/pkg/health"
	"github.com/ykovtun/avtosos/internal/pkg/logger"
	"github.com/ykovtun/avtosos/internal/pkg/middleware"
	natspkg "github.com/ykovtun/avtosos/internal/pkg/nats"
	"github.com/ykovtun/avtosos/internal/pkg/platelookup"
	"github.com/ykovtun/avtosos/internal/pkg/server"
	"github.com/ykovtun/avtosos/internal/pkg/storage"
	"github.com/ykovtun/avtosos/internal/pkg/validation"
	wspkg "github.com/ykovtun/avtosos/internal/pkg/websocket"
	"github.com/ykovtun/avtosos/services/repair/gateway"
	"github.com/ykovtun/avtosos/services/repair/handler"
	httpHandler "github.com/ykovtun/avtosos/services/repair/handler/http"
	natsHandler "github.com/ykovtun/avtosos/services/repair/handler/nats"
	wsHandler "github.com/ykovtun/avtosos/services/repair/handler/websocket"
	"github.com/ykovtun/avtosos/services/repair/repository"
	"github.com/ykovtun/avtosos/services/repair/usecase"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.NewZapLogger(configs.Logger)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", configs.App.Name),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment))

	// PostgreSQL
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	if err := database.RunMigrations(postgresClient.GetDB().DB, configs.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run migrations", logger.Err(err))
	}

	// Redis
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// NATS
	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	// Object storage
	minioClient, err := storage.NewMinioClient(configs.Storage)
	if err != nil {
		logger.Fatal("Failed to connect to object storage", logger.Err(err))
	}

	// Repositories
	db := postgresClient.GetDB()
	userRepo := repository.NewUserRepository(db)
	carRepo := repository.NewCarRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	stationRepo := repository.NewStationRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	geoRepo := repository.NewGeoRepository(redisClient)

	// Gateway
	notifyGW := gateway.NewNotificationGW(natsClient)

	// Usecases
	plateClient := platelookup.NewClient(configs.Lookup)
	authUC := usecase.NewAuthUC(configs, userRepo)
	carUC := usecase.NewCarUC(carRepo, plateClient)
	categoryUC := usecase.NewCategoryUC(categoryRepo)
	stationUC := usecase.NewStationUC(configs, stationRepo, userRepo, reviewRepo, geoRepo, minioClient)
	requestUC := usecase.NewRequestUC(configs, requestRepo, carRepo, categoryRepo, stationRepo, offerRepo, geoRepo, notifyGW, minioClient)
	offerUC := usecase.NewOfferUC(offerRepo, requestRepo, userRepo, stationRepo, geoRepo, notifyGW)
	reviewUC := usecase.NewReviewUC(reviewRepo, requestRepo, offerRepo, userRepo, stationRepo)

	// Handlers
	authH := httpHandler.NewAuthHandler(authUC)
	carH := httpHandler.NewCarHandler(carUC)
	categoryH := httpHandler.NewCategoryHandler(categoryUC)
	stationH := httpHandler.NewStationHandler(stationUC)
	requestH := httpHandler.NewRequestHandler(requestUC, offerUC)
	offerH := httpHandler.NewOfferHandler(offerUC)
	reviewH := httpHandler.NewReviewHandler(reviewUC)

	wsManager := wspkg.NewManager(configs.JWT)
	wsH := wsHandler.NewHandler(wsManager, stationUC)
	natsH := natsHandler.NewHandler(natsClient, wsManager)

	h := handler.NewHandler(authH, carH, categoryH, stationH, requestH, offerH, reviewH, wsH, natsH, configs)

	if err := h.InitSubscribers(); err != nil {
		logger.Fatal("Failed to initialize NATS subscribers", logger.Err(err))
	}

	// Echo router
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()
	e.Use(middleware.PanicRecoveryMiddleware())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.NewHandler(configs.App.Version, postgresClient, redisClient, natsClient).RegisterRoutes(e)
	h.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, configs.Server.Port)
	srv.OnShutdown(func(ctx context.Context) error {
		natsH.Close()
		return nil
	})

	if err := srv.Start(); err != nil {
		logger.Fatal("Server exited with error", logger.Err(err))
	}
}
