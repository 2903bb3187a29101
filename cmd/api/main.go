package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/alexbrainman/odbc"

	"github.com/jhoicas/albaranes-api/internal/application/usecase"
	"github.com/jhoicas/albaranes-api/internal/domain"
	"github.com/jhoicas/albaranes-api/internal/infrastructure/odbc"
	httpRouter "github.com/jhoicas/albaranes-api/internal/interfaces/http"
	"github.com/jhoicas/albaranes-api/pkg/config"
	"github.com/jhoicas/albaranes-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(domain.WrapError(domain.KindConfiguration, err, "cargar configuración").Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Object("odbc", cfg.ODBC).
		Bool("auth", cfg.JWT.Enabled()).
		Float64("rate_limit_rps", cfg.RateLimit.RPS).
		Msg("iniciando aplicación")

	db, err := odbc.Open(cfg.ODBC)
	if err != nil {
		log.Fatal().Err(err).Msg("driver ODBC")
	}
	defer db.Close()

	connector := odbc.NewConnector(db,
		odbc.WithQueryTimeout(time.Duration(cfg.ODBC.QueryTimeout)*time.Second),
		odbc.WithLogger(log),
	)
	albaranUC := usecase.NewAlbaranUseCase(connector, log)

	// Sin conexión inicial: la base de datos puede arrancar después que el servicio.
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := albaranUC.Ready(pingCtx); err != nil {
		log.Warn().Err(err).Msg("base de datos no disponible al arrancar")
	}
	cancelPing()

	swaggerFile := "./docs/swagger.json"
	if _, err := os.Stat(swaggerFile); err != nil {
		swaggerFile = ""
	}

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AlbaranUC:   albaranUC,
		AppName:     cfg.App.Name,
		JWTSecret:   cfg.JWT.Secret,
		RateLimit:   cfg.RateLimit,
		SwaggerFile: swaggerFile,
		Log:         log,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
