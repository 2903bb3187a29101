package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/albaranes-api/internal/application/dto"
	"github.com/jhoicas/albaranes-api/internal/application/usecase"
)

// HealthHandler liveness y readiness.
type HealthHandler struct {
	uc      *usecase.AlbaranUseCase
	service string
}

// NewHealthHandler construye el handler.
func NewHealthHandler(uc *usecase.AlbaranUseCase, service string) *HealthHandler {
	return &HealthHandler{uc: uc, service: service}
}

// Health GET /health: el proceso responde.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok", Service: h.service})
}

// Ready GET /ready: la base de datos acepta conexiones.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if err := h.uc.Ready(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Detail: err.Error()})
	}
	return c.JSON(dto.HealthResponse{Status: "ready", Service: h.service})
}
