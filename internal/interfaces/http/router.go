package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/polimarket-client/internal/application/session"
	"github.com/jhoicas/polimarket-client/internal/application/view"
	"github.com/jhoicas/polimarket-client/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName      string
	Renderer     *view.Renderer
	Session      *session.Session
	Bootstrapper *session.Bootstrapper
	Debug        DebugSource
	PDF          PDFExporter
	Templates    *Templates
	Log          *logger.Logger
}

// Router registra la página, los fragmentos de vistas y las rutas de sesión.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestID(), propagateRequestID, RequestLogger(deps.Log))

	pageHandler := NewPageHandler(deps.AppName, deps.Bootstrapper, deps.Renderer.Catalog(), deps.Templates)
	app.Get("/", pageHandler.Index)

	// Fragmentos HTML de resultados
	views := app.Group("/views")
	viewHandler := NewViewHandler(deps.Renderer, deps.Templates, deps.PDF, deps.Log)
	views.Post("/login", viewHandler.Login)
	views.Post("/ventas", viewHandler.CreateSale)
	views.Get("/:key/pdf", viewHandler.PDF)
	views.Get("/:key", viewHandler.Show)

	// Sesión y panel de depuración
	sessionHandler := NewSessionHandler(deps.Session, deps.Debug)
	app.Get("/session", sessionHandler.Status)
	app.Post("/session/logout", sessionHandler.Logout)
	app.Get("/debug", sessionHandler.Debug)
}
