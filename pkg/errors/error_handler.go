package errors

import (
	stderrors "errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// HandleError maps an error to a JSON response. Validation errors become 400s,
// oversized payloads 413, everything after the upload was persisted a 500.
// Only the short message (plus an optional detail string) reaches the client.
func HandleError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var ue *UploadError
	if stderrors.As(err, &ue) {
		if ue.Err != nil {
			log.Printf("Upload error [%s]: %v", ue.Code, ue.Err)
		}

		var status int
		switch ue.Code {
		case "no_file_part", "no_file_selected", "no_extension", "unsupported_format":
			status = fiber.StatusBadRequest
		case "payload_too_large":
			status = fiber.StatusRequestEntityTooLarge
		default:
			status = fiber.StatusInternalServerError
		}

		body := fiber.Map{"error": ue.Message}
		if status == fiber.StatusInternalServerError && ue.Err != nil {
			body["details"] = ue.Err.Error()
		}
		return c.Status(status).JSON(body)
	}

	log.Printf("Unexpected error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Error processing file",
		"details": err.Error(),
	})
}
