package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/jhoicas/scheduler-admin/internal/chrome"
	"github.com/jhoicas/scheduler-admin/internal/infrastructure/upstream"
	"github.com/jhoicas/scheduler-admin/internal/interfaces/web"
	"github.com/jhoicas/scheduler-admin/internal/session"
	"github.com/jhoicas/scheduler-admin/pkg/config"
	"github.com/jhoicas/scheduler-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	authClient := upstream.NewAuthClient(cfg.Upstream.AuthBaseURL, log.Component("auth"))
	inventoryClient := upstream.NewInventoryClient(cfg.Upstream.InventoryBaseURL, log.Component("inventory"))
	requisitionClient := upstream.NewRequisitionClient(cfg.Upstream.RequisitionsBaseURL, log.Component("requisitions"))

	sessions := session.NewStore(cfg.Session.File, authClient, log.Component("sessions"))
	defer sessions.Close()

	// Rehidratación en segundo plano: los guards responden 204 hasta que
	// termine, para no redirigir a login con sesiones aún sin cargar.
	rehydrateCtx, cancelRehydrate := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelRehydrate()
	go sessions.Rehydrate(rehydrateCtx)

	engine := html.New("./web/templates", ".html")
	engine.AddFunc("fmtDate", func(t time.Time) string {
		if t.IsZero() {
			return "—"
		}
		return t.Format("02/01/2006")
	})
	engine.AddFunc("hasPrefix", strings.HasPrefix)
	engine.AddFunc("add", func(a, b int) int { return a + b })
	engine.AddFunc("sub", func(a, b int) int { return a - b })

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        engine,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Static("/static", "./web/static")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	web.Router(app, web.RouterDeps{
		Sessions:     sessions,
		Chrome:       chrome.NewStore(),
		Cookie:       cfg.Session,
		Auth:         authClient,
		Inventory:    inventoryClient,
		Requisitions: requisitionClient,
		Log:          log.Component("web"),
	})

	go func() {
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
