package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appTranscript "github.com/arbetsytan/arbetsytan/pkg/app/transcript"
	"github.com/arbetsytan/arbetsytan/pkg/handlers/http/request"
	"github.com/arbetsytan/arbetsytan/pkg/middleware"
)

type createTranscriptHandler struct {
	logger   *logrus.Logger
	ingestor appTranscript.Ingestor
}

func NewCreateTranscriptHandler(logger *logrus.Logger, ingestor appTranscript.Ingestor) Handler {
	return &createTranscriptHandler{
		logger:   logger,
		ingestor: ingestor,
	}
}

func (h *createTranscriptHandler) Handle(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project id"})
	}

	var req request.CreateTranscriptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if req.Actor == "" {
		req.Actor = middleware.Actor(c)
	}

	entity, err := h.ingestor.Ingest(c.Context(), projectID, &req)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
