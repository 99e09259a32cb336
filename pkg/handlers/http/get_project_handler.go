package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appProject "github.com/arbetsytan/arbetsytan/pkg/app/project"
)

type getProjectHandler struct {
	logger *logrus.Logger
	finder appProject.Finder
}

func NewGetProjectHandler(logger *logrus.Logger, finder appProject.Finder) Handler {
	return &getProjectHandler{
		logger: logger,
		finder: finder,
	}
}

func (h *getProjectHandler) Handle(c *fiber.Ctx) error {
	id, err := parseProjectID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project id"})
	}

	entity, err := h.finder.Find(c.Context(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusOK).JSON(entity)
}
