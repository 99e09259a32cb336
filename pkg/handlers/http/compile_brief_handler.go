package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appBrief "github.com/arbetsytan/arbetsytan/pkg/app/brief"
	"github.com/arbetsytan/arbetsytan/pkg/handlers/http/request"
)

type compileBriefHandler struct {
	logger   *logrus.Logger
	compiler appBrief.Compiler
}

func NewCompileBriefHandler(logger *logrus.Logger, compiler appBrief.Compiler) Handler {
	return &compileBriefHandler{
		logger:   logger,
		compiler: compiler,
	}
}

func (h *compileBriefHandler) Handle(c *fiber.Ctx) error {
	projectID, err := parseProjectID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project id"})
	}

	var req request.CompileBriefRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
		}
	}

	result, err := h.compiler.Compile(c.Context(), projectID, req.Instructions)
	if err != nil {
		if errors.Is(err, appBrief.ErrNoMaterial) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
