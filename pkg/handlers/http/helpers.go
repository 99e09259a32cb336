package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	appDocument "github.com/arbetsytan/arbetsytan/pkg/app/document"
	"github.com/arbetsytan/arbetsytan/pkg/app/ingest"
	appNote "github.com/arbetsytan/arbetsytan/pkg/app/note"
	appTranscript "github.com/arbetsytan/arbetsytan/pkg/app/transcript"
	"github.com/arbetsytan/arbetsytan/pkg/domain"
	"github.com/arbetsytan/arbetsytan/pkg/sanitize"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

func parseProjectID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func pagination(c *fiber.Ctx) (int, int) {
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	limit := c.QueryInt("limit", defaultPageLimit)
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	return offset, limit
}

// writeError maps application errors to responses. A rejected ingestion
// deliberately maps to an opaque 500: the gate's reason codes and the
// offending text never reach the client.
func writeError(c *fiber.Ctx, logger *logrus.Logger, err error) error {
	var invalidLevel *sanitize.ErrInvalidLevel

	switch {
	case domain.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, ingest.ErrIngestionRejected):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	case errors.Is(err, appDocument.ErrUnsupportedFileType):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &invalidLevel):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, appNote.ErrEmptyNote),
		errors.Is(err, appTranscript.ErrMissingSource),
		errors.Is(err, appTranscript.ErrAmbiguousSource):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithError(err).Error("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
