package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appNote "github.com/arbetsytan/arbetsytan/pkg/app/note"
	"github.com/arbetsytan/arbetsytan/pkg/handlers/http/request"
	"github.com/arbetsytan/arbetsytan/pkg/middleware"
)

type createNoteHandler struct {
	logger  *logrus.Logger
	creator appNote.Creator
}

func NewCreateNoteHandler(logger *logrus.Logger, creator appNote.Creator) Handler {
	return &createNoteHandler{
		logger:  logger,
		creator: creator,
	}
}

func (h *createNoteHandler) Handle(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project id"})
	}

	var req request.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if req.Actor == "" {
		req.Actor = middleware.Actor(c)
	}

	entity, err := h.creator.Create(c.Context(), projectID, &req)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
