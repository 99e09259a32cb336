package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	domainScout "github.com/arbetsytan/arbetsytan/pkg/domain/scout"
)

type listFeedsHandler struct {
	logger *logrus.Logger
	feeds  domainScout.FeedRepository
}

func NewListFeedsHandler(logger *logrus.Logger, feeds domainScout.FeedRepository) Handler {
	return &listFeedsHandler{
		logger: logger,
		feeds:  feeds,
	}
}

func (h *listFeedsHandler) Handle(c *fiber.Ctx) error {
	offset, limit := pagination(c)

	feeds, err := h.feeds.List(c.Context(), offset, limit)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusOK).JSON(feeds)
}
