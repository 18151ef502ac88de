package routers

import (
	"github.com/gofiber/fiber/v2"

	"uav-detector/internal/delivery/http/handlers"
	"uav-detector/internal/usecases"
	"uav-detector/pkg/config"
)

func SetupRoutes(app *fiber.App, cfg *config.Config, detectionService usecases.DetectionService) {
	uploadHandler := handlers.NewUploadHandler(detectionService)
	resultHandler := handlers.NewResultHandler(cfg.Upload.ResultsDir, detectionService)

	app.Post("/upload", uploadHandler.Upload)
	app.Get("/results/:filename", resultHandler.GetResult)

	api := app.Group("/api/v1")
	api.Get("/records", resultHandler.ListRecords)
}
