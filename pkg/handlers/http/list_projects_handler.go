package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	domainProject "github.com/arbetsytan/arbetsytan/pkg/domain/project"
)

type listProjectsHandler struct {
	logger *logrus.Logger
	repo   domainProject.Repository
}

func NewListProjectsHandler(logger *logrus.Logger, repo domainProject.Repository) Handler {
	return &listProjectsHandler{
		logger: logger,
		repo:   repo,
	}
}

func (h *listProjectsHandler) Handle(c *fiber.Ctx) error {
	offset, limit := pagination(c)

	projects, err := h.repo.List(c.Context(), offset, limit)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusOK).JSON(projects)
}
