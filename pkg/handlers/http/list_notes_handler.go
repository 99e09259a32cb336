package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	domainNote "github.com/arbetsytan/arbetsytan/pkg/domain/note"
)

type listNotesHandler struct {
	logger *logrus.Logger
	repo   domainNote.Repository
}

func NewListNotesHandler(logger *logrus.Logger, repo domainNote.Repository) Handler {
	return &listNotesHandler{
		logger: logger,
		repo:   repo,
	}
}

func (h *listNotesHandler) Handle(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project id"})
	}
	offset, limit := pagination(c)

	notes, err := h.repo.ListByProject(c.Context(), projectID, offset, limit)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusOK).JSON(notes)
}
