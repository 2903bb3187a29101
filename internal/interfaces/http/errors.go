package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/albaranes-api/internal/application/dto"
	"github.com/jhoicas/albaranes-api/internal/domain"
	"github.com/jhoicas/albaranes-api/pkg/logger"
)

// statusFor traduce el tipo de error de dominio a código HTTP. Es el único punto
// donde se decide: 400 para errores del consumidor, 500 para el resto.
func statusFor(err error) int {
	if domain.KindOf(err).IsClientError() {
		return fiber.StatusBadRequest
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// respondError escribe el sobre {"detail": ...} con el código correspondiente.
func respondError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(dto.ErrorResponse{Detail: err.Error()})
}

// ErrorHandler captura lo que no gestionan los handlers (pánicos recuperados,
// rutas inexistentes) y responde con el mismo sobre de error.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := statusFor(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("kind", domain.KindOf(err).String()).
				Msg("error no controlado")
		}
		return c.Status(status).JSON(dto.ErrorResponse{Detail: err.Error()})
	}
}
