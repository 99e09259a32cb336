package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	domainProject "github.com/arbetsytan/arbetsytan/pkg/domain/project"
)

type listEventsHandler struct {
	logger *logrus.Logger
	events domainProject.EventRepository
}

func NewListEventsHandler(logger *logrus.Logger, events domainProject.EventRepository) Handler {
	return &listEventsHandler{
		logger: logger,
		events: events,
	}
}

func (h *listEventsHandler) Handle(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project id"})
	}
	offset, limit := pagination(c)

	events, err := h.events.ListByProject(c.Context(), projectID, offset, limit)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusOK).JSON(events)
}
