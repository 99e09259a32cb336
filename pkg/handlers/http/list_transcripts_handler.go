package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	domainTranscript "github.com/arbetsytan/arbetsytan/pkg/domain/transcript"
)

type listTranscriptsHandler struct {
	logger *logrus.Logger
	repo   domainTranscript.Repository
}

func NewListTranscriptsHandler(logger *logrus.Logger, repo domainTranscript.Repository) Handler {
	return &listTranscriptsHandler{
		logger: logger,
		repo:   repo,
	}
}

func (h *listTranscriptsHandler) Handle(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project id"})
	}
	offset, limit := pagination(c)

	transcripts, err := h.repo.ListByProject(c.Context(), projectID, offset, limit)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusOK).JSON(transcripts)
}
