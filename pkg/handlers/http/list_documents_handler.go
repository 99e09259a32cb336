package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	domainDocument "github.com/arbetsytan/arbetsytan/pkg/domain/document"
)

type listDocumentsHandler struct {
	logger *logrus.Logger
	repo   domainDocument.Repository
}

func NewListDocumentsHandler(logger *logrus.Logger, repo domainDocument.Repository) Handler {
	return &listDocumentsHandler{
		logger: logger,
		repo:   repo,
	}
}

func (h *listDocumentsHandler) Handle(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project id"})
	}
	offset, limit := pagination(c)

	documents, err := h.repo.ListByProject(c.Context(), projectID, offset, limit)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusOK).JSON(documents)
}
