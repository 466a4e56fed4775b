package controllers

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/lykr/lykr_backend/models"
	"github.com/lykr/lykr_backend/services"
)

// maxAudioUploadSize caps answer recordings; three minutes of compressed
// audio stays well under this.
const maxAudioUploadSize = 25 * 1024 * 1024

// TranscriptionController exposes the speech-to-text endpoint.
type TranscriptionController struct {
	service *services.TranscriptionService
	logger  *log.Logger
}

func NewTranscriptionController(service *services.TranscriptionService) *TranscriptionController {
	return &TranscriptionController{
		service: service,
		logger:  log.New(os.Stdout, "[TRANSCRIBE] ", log.LstdFlags),
	}
}

// Transcribe accepts a multipart "audio" field and returns the transcript as
// a flat JSON payload.
func (tc *TranscriptionController) Transcribe(c echo.Context) error {
	file, err := c.FormFile("audio")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Audio file is required",
		})
	}

	if file.Size > maxAudioUploadSize {
		return c.JSON(http.StatusRequestEntityTooLarge, models.Response{
			Status:  http.StatusRequestEntityTooLarge,
			Message: "Audio file too large",
		})
	}

	src, err := file.Open()
	if err != nil {
		tc.logger.Printf("failed to open upload: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to read audio file",
		})
	}
	defer src.Close()

	result, err := tc.service.Transcribe(c.Request().Context(), file.Filename, src)
	if err != nil {
		tc.logger.Printf("transcription failed: %v", err)
		return c.JSON(http.StatusBadGateway, models.Response{
			Status:  http.StatusBadGateway,
			Message: "Transcription failed",
		})
	}

	return c.JSON(http.StatusOK, result)
}
