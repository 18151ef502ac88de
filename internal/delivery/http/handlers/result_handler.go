package handlers

import (
	"mime"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"uav-detector/internal/domain/dto"
	"uav-detector/internal/pkg/fileutils"
	"uav-detector/internal/usecases"
	"uav-detector/pkg/file"
)

type ResultHandler struct {
	resultsDir       string
	detectionService usecases.DetectionService
}

func NewResultHandler(resultsDir string, detectionService usecases.DetectionService) *ResultHandler {
	return &ResultHandler{resultsDir: resultsDir, detectionService: detectionService}
}

// GetResult
//
// @Summary      Retrieve a processed artifact
// @Description  Serves an annotated image or transcoded video by its stored name
// @Tags         Detection
// @Produce      octet-stream
// @Param        filename  path  string  true  "Artifact filename"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /results/{filename} [get]
func (h *ResultHandler) GetResult(c *fiber.Ctx) error {
	// Base() strips any traversal components from the request.
	filename := filepath.Base(c.Params("filename"))
	fullPath := filepath.Join(h.resultsDir, filename)

	if !fileutils.FileExists(fullPath) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Result not found"})
	}

	if err := c.SendFile(fullPath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Could not read result"})
	}

	// Videos must carry an explicit video MIME type, not the generic
	// static-file default.
	if file.IsVideoFile(filename) {
		contentType := mime.TypeByExtension(filepath.Ext(filename))
		if contentType == "" {
			contentType = "video/mp4"
		}
		c.Set(fiber.HeaderContentType, contentType)
	}
	return nil
}

// ListRecords
//
// @Summary      List processing records
// @Description  Returns recent processing outcomes, newest first
// @Tags         Detection
// @Produce      json
// @Param        limit  query  int  false  "Maximum number of records (default 50)"
// @Success      200  {array}   entities.ProcessingRecord
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/records [get]
func (h *ResultHandler) ListRecords(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	records, err := h.detectionService.ListRecords(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Could not list records"})
	}
	return c.JSON(records)
}
