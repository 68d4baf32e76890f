package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/dhia-elwidad/spmb-api/internal/config"
	"github.com/dhia-elwidad/spmb-api/internal/database"
	"github.com/dhia-elwidad/spmb-api/internal/handler"
	"github.com/dhia-elwidad/spmb-api/internal/middleware"
	"github.com/dhia-elwidad/spmb-api/internal/models"
	"github.com/dhia-elwidad/spmb-api/internal/repository"
	"github.com/dhia-elwidad/spmb-api/internal/router"
	"github.com/dhia-elwidad/spmb-api/internal/service"
	"github.com/dhia-elwidad/spmb-api/pkg/ai"
	"github.com/dhia-elwidad/spmb-api/pkg/cloudinary"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "spmb-api").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.AppEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	if err := db.AutoMigrate(
		&models.Student{},
		&models.AdminUser{},
		&models.AppSettings{},
		&models.UploadRecord{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, caching disabled")
		redisClient = nil
	}

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		logger.Warn().Err(err).Msg("nats unavailable, events disabled")
		natsConn = nil
	}

	var storage service.FileStorage
	cloudinarySvc, err := cloudinary.New(cloudinary.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("cloudinary unavailable, berkas uploads disabled")
	} else {
		storage = cloudinarySvc
	}

	var summarizer ai.Summarizer
	if cfg.OpenAIAPIKey != "" {
		openaiSvc, err := ai.NewOpenAISummarizer(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("openai unavailable, summaries degrade to fallback")
		} else {
			summarizer = openaiSvc
		}
	}

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	uploadRepo := repository.NewUploadRepository(db)

	settingsSvc := service.NewSettingsService(settingsRepo, redisClient, cfg.DashboardCacheTTL, cfg.AdminWhatsApp, logger)
	registrationSvc := service.NewRegistrationService(settingsSvc, validate, natsConn, logger)
	studentSvc := service.NewStudentService(studentRepo, validate, natsConn, logger)
	documentSvc := service.NewDocumentService(studentRepo, uploadRepo, storage, cfg.UploadMaxSizeMB, logger)
	importSvc := service.NewImportService(studentSvc, logger)
	accountSvc := service.NewAccountService(adminRepo, validate, cfg.JWTSecret, cfg.JWTExpiry, logger)
	dashboardSvc := service.NewDashboardService(studentRepo, redisClient, cfg.DashboardCacheTTL, logger)
	summarySvc := service.NewSummaryService(studentRepo, summarizer, redisClient, cfg.SummaryCacheTTL, cfg.FoundationName, logger)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := accountSvc.SeedBootstrap(seedCtx, cfg.BootstrapPassword); err != nil {
		cancelSeed()
		logger.Fatal().Err(err).Msg("failed to seed bootstrap account")
	}
	cancelSeed()

	app := fiber.New(fiber.Config{
		AppName:   cfg.AppName,
		BodyLimit: (cfg.UploadMaxSizeMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})

	router.Register(app, router.Handlers{
		Health:       handler.NewHealthHandler(),
		Registration: handler.NewRegistrationHandler(registrationSvc, logger),
		Auth:         handler.NewAuthHandler(accountSvc, logger),
		Student:      handler.NewAdminStudentHandler(studentSvc, documentSvc, importSvc, logger),
		Account:      handler.NewAccountHandler(accountSvc, logger),
		Settings:     handler.NewSettingsHandler(settingsSvc, logger),
		Dashboard:    handler.NewDashboardHandler(dashboardSvc, summarySvc, logger),
	}, cfg.JWTSecret)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	logger.Info().Str("address", cfg.HTTPAddress()).Msg("spmb api started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	if natsConn != nil {
		natsConn.Drain()
	}
	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info().Msg("shutdown complete")
}
