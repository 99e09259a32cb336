package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/arbetsytan/arbetsytan/pkg/infra/prometheus"
)

type metricsMiddleware struct {
	logger *logrus.Logger
}

// NewMetricsMiddleware counts requests by method and status class. Paths
// are not used as labels; they may carry ids.
func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	return &metricsMiddleware{logger: logger}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		prometheus.RequestTotal.WithLabelValues(c.Method(), statusClass(status)).Inc()

		return err
	}
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "5xx"
	}
	return fmt.Sprintf("%dxx", status/100)
}
