package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/albaranes-api/internal/application/dto"
	"github.com/jhoicas/albaranes-api/pkg/jwt"
)

// LocalConsumer clave en c.Locals del consumidor autenticado.
const LocalConsumer = "consumer"

// AuthMiddleware valida el Bearer Token JWT de servicio y guarda el consumidor en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Detail: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Detail: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Detail: "token vacío"})
		}
		consumer, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Detail: "token inválido o expirado"})
		}
		c.Locals(LocalConsumer, consumer)
		return c.Next()
	}
}

// GetConsumer devuelve el consumidor autenticado (vacío si la autenticación está desactivada).
func GetConsumer(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalConsumer).(string)
	return s
}
