package http

import (
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/albaranes-api/internal/application/usecase"
	"github.com/jhoicas/albaranes-api/internal/infrastructure/metrics"
	"github.com/jhoicas/albaranes-api/pkg/config"
	"github.com/jhoicas/albaranes-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AlbaranUC   *usecase.AlbaranUseCase
	AppName     string
	JWTSecret   string // vacío: /api sin autenticación
	RateLimit   config.RateLimitConfig
	SwaggerFile string // vacío: sin /docs
	Log         *logger.Logger
}

// NewApp crea la aplicación Fiber con middlewares globales y todas las rutas.
func NewApp(deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:               deps.AppName,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 60,
		IdleTimeout:           time.Second * 60,
		ErrorHandler:          ErrorHandler(deps.Log),
		DisableStartupMessage: true,
	})
	app.Use(RequestID())
	app.Use(RequestLogger(deps.Log))
	app.Use(metrics.Middleware())
	app.Use(recover.New())

	if deps.SwaggerFile != "" {
		// Swagger UI: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: deps.SwaggerFile,
			Path:     "docs",
			Title:    "Albaranes API",
		}))
	}

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	health := NewHealthHandler(deps.AlbaranUC, deps.AppName)
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)
	app.Get("/metrics", metrics.Handler())

	albaranes := NewAlbaranHandler(deps.AlbaranUC, deps.Log)

	// Consulta de diagnóstico, fuera de /api
	app.Get("/test", albaranes.Diagnostic)

	var guards []fiber.Handler
	if deps.JWTSecret != "" {
		guards = append(guards, AuthMiddleware(deps.JWTSecret))
	}
	if deps.RateLimit.RPS > 0 {
		guards = append(guards, NewRateLimiter(deps.RateLimit.RPS, deps.RateLimit.Burst).Handler())
	}
	api := app.Group("/api", guards...)

	// Clientes (pub.gvalcab)
	clientes := api.Group("/albaranes/clientes")
	clientes.Get("/cabeceras", albaranes.CustomerHeaders)
	clientes.Get("/cabeceras/:year/:month/:day", albaranes.CustomerHeadersByDate)

	// Proveedores (pub.gcalcab). StrictRouting desactivado: acepta la barra final.
	proveedores := api.Group("/albaranes/proveedores")
	proveedores.Get("/cabeceras", albaranes.SupplierHeaders)
}
