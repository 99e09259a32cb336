package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	domainScout "github.com/arbetsytan/arbetsytan/pkg/domain/scout"
)

type listFeedItemsHandler struct {
	logger *logrus.Logger
	items  domainScout.ItemRepository
}

func NewListFeedItemsHandler(logger *logrus.Logger, items domainScout.ItemRepository) Handler {
	return &listFeedItemsHandler{
		logger: logger,
		items:  items,
	}
}

func (h *listFeedItemsHandler) Handle(c *fiber.Ctx) error {
	feedID, err := uuid.Parse(c.Params("feed_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid feed id"})
	}
	offset, limit := pagination(c)

	items, err := h.items.ListByFeed(c.Context(), feedID, offset, limit)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusOK).JSON(items)
}
