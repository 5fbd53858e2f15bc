package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/polimarket-client/internal/application/session"
	"github.com/jhoicas/polimarket-client/internal/application/view"
)

// PageHandler sirve la página principal del back-office.
type PageHandler struct {
	appName string
	boot    *session.Bootstrapper
	catalog view.Catalog
	tmpl    *Templates
}

// NewPageHandler construye el handler.
func NewPageHandler(appName string, boot *session.Bootstrapper, catalog view.Catalog, tmpl *Templates) *PageHandler {
	return &PageHandler{appName: appName, boot: boot, catalog: catalog, tmpl: tmpl}
}

// healthTimeout límite de la verificación de salud al cargar la página.
const healthTimeout = 3 * time.Second

// Index verifica la salud del backend (solo registra el resultado y deja la
// respuesta en el panel de depuración) y dibuja la página.
// GET /
func (h *PageHandler) Index(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	h.boot.CheckHealth(ctx)
	cancel()

	body, err := h.tmpl.Page(h.appName, h.boot.DefaultDate(), h.catalog)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(body)
}
