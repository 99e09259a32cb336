package http

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appDocument "github.com/arbetsytan/arbetsytan/pkg/app/document"
	"github.com/arbetsytan/arbetsytan/pkg/middleware"
)

const maxUploadBytes = 8 * 1024 * 1024

type uploadDocumentHandler struct {
	logger   *logrus.Logger
	ingestor appDocument.Ingestor
}

func NewUploadDocumentHandler(logger *logrus.Logger, ingestor appDocument.Ingestor) Handler {
	return &uploadDocumentHandler{
		logger:   logger,
		ingestor: ingestor,
	}
}

// Handle accepts a multipart upload under the "file" field. The raw
// bytes live only for the duration of this request; the stored document
// holds masked text.
func (h *uploadDocumentHandler) Handle(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project id"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file field is required"})
	}
	if fileHeader.Size > maxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "file too large"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.WithError(err).Error("failed to open uploaded file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		h.logger.WithError(err).Error("failed to read uploaded file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	if len(content) > maxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "file too large"})
	}

	entity, err := h.ingestor.Ingest(c.Context(), projectID, fileHeader.Filename, content, middleware.Actor(c))
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
