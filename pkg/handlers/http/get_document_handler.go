package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	domainDocument "github.com/arbetsytan/arbetsytan/pkg/domain/document"
)

type getDocumentHandler struct {
	logger *logrus.Logger
	repo   domainDocument.Repository
}

func NewGetDocumentHandler(logger *logrus.Logger, repo domainDocument.Repository) Handler {
	return &getDocumentHandler{
		logger: logger,
		repo:   repo,
	}
}

func (h *getDocumentHandler) Handle(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project id"})
	}
	documentID, err := uuid.Parse(c.Params("document_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid document id"})
	}

	entity, err := h.repo.Get(c.Context(), documentID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if entity.ProjectID != projectID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}

	return c.Status(fiber.StatusOK).JSON(entity)
}
