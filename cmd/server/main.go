package main

import (
	"context"
	stderrors "errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "uav-detector/docs"
	_ "uav-detector/migrations"

	"uav-detector/internal/delivery/http/routers"
	"uav-detector/internal/domain/dto"
	"uav-detector/internal/domain/repositories"
	"uav-detector/internal/infrastructure/db"
	"uav-detector/internal/infrastructure/detector"
	"uav-detector/internal/infrastructure/processor"
	infra_repo "uav-detector/internal/infrastructure/repositories"
	"uav-detector/internal/infrastructure/storage"
	"uav-detector/internal/usecases"
	"uav-detector/pkg/config"
	consts "uav-detector/pkg/constants"
	apperrors "uav-detector/pkg/errors"
	"uav-detector/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// @title        UAV Detection Service
// @version      1.0
// @description  Upload an image or video, run it through a pretrained UAV detection model and retrieve the annotated result.
// @BasePath     /
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg := config.LoadConfig()

	zlog, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer zlog.Sync()

	if err := cfg.EnsureDirs(); err != nil {
		zlog.Fatal("could not create media directories", zap.Error(err))
	}

	database, err := db.NewPostgresDB(cfg.Database)
	if err != nil {
		zlog.Fatal("DB connection failed", zap.Error(err))
	}

	if os.Getenv("RUN_AUTO_MIGRATION") == "true" {
		sqlDB, err := database.DB()
		if err != nil {
			zlog.Fatal("could not get sql.DB", zap.Error(err))
		}
		goose.SetBaseFS(nil)
		if err := goose.SetDialect("postgres"); err != nil {
			zlog.Fatal("goose dialect", zap.Error(err))
		}
		if err := goose.Up(sqlDB, "."); err != nil {
			zlog.Fatal("failed to apply migrations", zap.Error(err))
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    int(cfg.Upload.MaxFileSize),
		ErrorHandler: jsonErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	// Swagger UI + Prometheus
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Dependencies, wired explicitly: the detector handle is created once at
	// startup and injected everywhere it is read.
	uavDetector := detector.NewHTTPDetector(cfg.Detector.BaseURL, cfg.Detector.Timeout, zlog)
	annotator := processor.NewImageAnnotator(cfg.Upload.WorkDir, zlog)
	videoPipeline := processor.NewVideoPipeline(uavDetector, cfg.Upload.WorkDir, zlog)

	var resultStorage repositories.StorageStrategy
	if cfg.Storage.Driver == "s3" {
		s3Storage, err := storage.NewS3Storage(context.Background(), cfg.Storage.S3Bucket, cfg.Storage.S3Region)
		if err != nil {
			zlog.Fatal("S3 storage init failed", zap.Error(err))
		}
		resultStorage = s3Storage
	} else {
		resultStorage = storage.NewLocalStorage(cfg.Upload.ResultsDir)
	}

	recordRepo := infra_repo.NewProcessingRepository(database)
	detectionService := usecases.NewDetectionService(
		uavDetector,
		annotator,
		videoPipeline,
		resultStorage,
		recordRepo,
		cfg.Upload.UploadsDir,
		zlog,
	)

	routers.SetupRoutes(app, cfg, detectionService)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": consts.StatusOK,
			"model":  uavDetector.Available(),
		})
	})

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	zlog.Info("server starting", zap.String("addr", addr))

	// Graceful shutdown
	go func() {
		if err := app.Listen(addr); err != nil {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutdown signal received")

	ctxShut, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		zlog.Fatal("server shutdown failed", zap.Error(err))
	}
	zlog.Info("server stopped")
}

// jsonErrorHandler keeps every error the framework raises in the same JSON
// shape the pipeline uses, notably 413 for oversized payloads and 404.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if stderrors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusRequestEntityTooLarge:
			return apperrors.HandleError(c, apperrors.ErrPayloadTooLarge())
		case fiber.StatusNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Not found"})
		default:
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: fe.Message})
		}
	}
	return apperrors.HandleError(c, err)
}
