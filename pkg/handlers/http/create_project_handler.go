package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appProject "github.com/arbetsytan/arbetsytan/pkg/app/project"
	"github.com/arbetsytan/arbetsytan/pkg/handlers/http/request"
)

type createProjectHandler struct {
	logger  *logrus.Logger
	creator appProject.Creator
}

func NewCreateProjectHandler(logger *logrus.Logger, creator appProject.Creator) Handler {
	return &createProjectHandler{
		logger:  logger,
		creator: creator,
	}
}

func (h *createProjectHandler) Handle(c *fiber.Ctx) error {
	var req request.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	entity, err := h.creator.Create(c.Context(), &req)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
