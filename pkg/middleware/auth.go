package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/arbetsytan/arbetsytan/pkg/config"
)

const actorLocalKey = "actor"

// Actor returns the authenticated user name stored by the auth
// middleware, or an empty string.
func Actor(c *fiber.Ctx) string {
	actor, ok := c.Locals(actorLocalKey).(string)
	if !ok {
		return ""
	}
	return actor
}

type authMiddleware struct {
	logger *logrus.Logger
	cfg    config.AuthConfig
}

// NewAuthMiddleware guards the API with the configured scheme: "basic"
// compares credentials in constant time, "jwt" verifies an HS256 bearer
// token. Unknown modes reject every request rather than fail open.
func NewAuthMiddleware(logger *logrus.Logger, cfg config.AuthConfig) Middleware {
	return &authMiddleware{
		logger: logger,
		cfg:    cfg,
	}
}

func (m *authMiddleware) Middleware() fiber.Handler {
	switch m.cfg.Mode {
	case "basic":
		return m.basicHandler()
	case "jwt":
		return m.jwtHandler()
	default:
		m.logger.WithField("mode", m.cfg.Mode).Error("unknown auth mode, refusing all requests")
		return func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
	}
}

func (m *authMiddleware) basicHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, password, ok := parseBasicAuth(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthorized(c)
		}

		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(m.cfg.BasicUser))
		passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(m.cfg.BasicPassword))
		if userMatch != 1 || passwordMatch != 1 {
			return unauthorized(c)
		}

		c.Locals(actorLocalKey, user)
		return c.Next()
	}
}

func (m *authMiddleware) jwtHandler() fiber.Handler {
	secret := []byte(m.cfg.JWTSecret)
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			return unauthorized(c)
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			m.logger.WithError(err).Debug("jwt validation failed")
			return unauthorized(c)
		}

		if subject, err := token.Claims.GetSubject(); err == nil {
			c.Locals(actorLocalKey, subject)
		}
		return c.Next()
	}
}

func parseBasicAuth(header string) (string, string, bool) {
	encoded, found := strings.CutPrefix(header, "Basic ")
	if !found {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", false
	}
	user, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return "", "", false
	}
	return user, password, true
}

func unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="arbetsytan"`)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
}
