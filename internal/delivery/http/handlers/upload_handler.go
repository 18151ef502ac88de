package handlers

import (
	"github.com/gofiber/fiber/v2"

	"uav-detector/internal/usecases"
	"uav-detector/pkg/errors"
)

type UploadHandler struct {
	detectionService usecases.DetectionService
}

func NewUploadHandler(detectionService usecases.DetectionService) *UploadHandler {
	return &UploadHandler{detectionService: detectionService}
}

// Upload
//
// @Summary      Upload media for UAV detection
// @Description  Accepts an image (png, jpg, jpeg, gif) or video (mp4, avi, mov, wmv), runs detection and returns the annotated artifact reference
// @Tags         Detection
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image or video file, max 50MB"
// @Success      200   {object}  dto.UploadResponse
// @Failure      400   {object}  dto.ErrorResponse "Validation failure"
// @Failure      413   {object}  dto.ErrorResponse "File too large"
// @Failure      500   {object}  dto.ErrorResponse "Model unavailable or processing error"
// @Router       /upload [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errors.HandleError(c, errors.ErrNoFilePart())
	}
	if fileHeader.Filename == "" {
		return errors.HandleError(c, errors.ErrNoFileSelected())
	}

	response, err := h.detectionService.ProcessUpload(c.UserContext(), fileHeader)
	if err != nil {
		return errors.HandleError(c, err)
	}

	return c.JSON(response)
}
