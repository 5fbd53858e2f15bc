package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/polimarket-client/internal/app"
	infrapdf "github.com/jhoicas/polimarket-client/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/polimarket-client/internal/interfaces/http"
	"github.com/jhoicas/polimarket-client/pkg/config"
	"github.com/jhoicas/polimarket-client/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	svc, err := app.Build(ctx, cfg, log, app.Options{})
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar servicios")
	}
	defer func() {
		if err := svc.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar servicios")
		}
	}()

	// Verificación de salud en segundo plano; solo deja rastro en el log.
	go func() {
		healthCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		svc.Bootstrapper.CheckHealth(healthCtx)
	}()

	tmpl, err := httpRouter.NewTemplates()
	if err != nil {
		log.Fatal().Err(err).Msg("plantillas HTML")
	}

	web := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	web.Use(recover.New())

	web.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(web, httpRouter.RouterDeps{
		AppName:      cfg.App.Name,
		Renderer:     svc.Renderer,
		Session:      svc.Session,
		Bootstrapper: svc.Bootstrapper,
		Debug:        svc.Debug,
		PDF:          infrapdf.NewMarotoExporter(),
		Templates:    tmpl,
		Log:          log,
	})

	go func() {
		if err := web.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := web.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
