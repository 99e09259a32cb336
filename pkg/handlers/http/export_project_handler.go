package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appExport "github.com/arbetsytan/arbetsytan/pkg/app/export"
	"github.com/arbetsytan/arbetsytan/pkg/middleware"
)

type exportProjectHandler struct {
	logger   *logrus.Logger
	exporter appExport.Exporter
}

func NewExportProjectHandler(logger *logrus.Logger, exporter appExport.Exporter) Handler {
	return &exportProjectHandler{
		logger:   logger,
		exporter: exporter,
	}
}

func (h *exportProjectHandler) Handle(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project id"})
	}

	result, err := h.exporter.Export(c.Context(), projectID, middleware.Actor(c))
	if err != nil {
		return writeError(c, h.logger, err)
	}

	if c.Accepts(fiber.MIMEApplicationJSON, "text/markdown") == "text/markdown" {
		c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
		return c.Status(fiber.StatusOK).SendString(result.Markdown)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
