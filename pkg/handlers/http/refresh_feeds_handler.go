package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appScout "github.com/arbetsytan/arbetsytan/pkg/app/scout"
)

type refreshFeedsHandler struct {
	logger    *logrus.Logger
	refresher appScout.Refresher
}

func NewRefreshFeedsHandler(logger *logrus.Logger, refresher appScout.Refresher) Handler {
	return &refreshFeedsHandler{
		logger:    logger,
		refresher: refresher,
	}
}

func (h *refreshFeedsHandler) Handle(c *fiber.Ctx) error {
	results, err := h.refresher.RefreshAll(c.Context())
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"feeds": results})
}
