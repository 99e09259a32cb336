package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appScout "github.com/arbetsytan/arbetsytan/pkg/app/scout"
	"github.com/arbetsytan/arbetsytan/pkg/handlers/http/request"
)

type createFeedHandler struct {
	logger  *logrus.Logger
	creator appScout.FeedCreator
}

func NewCreateFeedHandler(logger *logrus.Logger, creator appScout.FeedCreator) Handler {
	return &createFeedHandler{
		logger:  logger,
		creator: creator,
	}
}

func (h *createFeedHandler) Handle(c *fiber.Ctx) error {
	var req request.CreateFeedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if req.Name == "" || req.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and url are required"})
	}

	entity, err := h.creator.Create(c.Context(), &req)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
