package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/albaranes-api/pkg/logger"
)

// LocalRequestID clave en c.Locals del identificador de petición.
const (
	LocalRequestID  = "request_id"
	HeaderRequestID = "X-Request-ID"
)

// RequestID reutiliza X-Request-ID si el consumidor lo envía; si no, genera un UUID.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalRequestID, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// GetRequestID devuelve el identificador asignado por RequestID.
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}

// RequestLogger registra una línea por petición con zerolog.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusFor(err)
		}
		log.Info().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Str("consumer", GetConsumer(c)).
			Msg("petición HTTP")
		return err
	}
}
