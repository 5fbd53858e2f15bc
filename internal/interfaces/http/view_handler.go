package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/polimarket-client/internal/application/view"
	"github.com/jhoicas/polimarket-client/internal/domain"
	"github.com/jhoicas/polimarket-client/internal/infrastructure/pdf"
	"github.com/jhoicas/polimarket-client/pkg/logger"
)

// PDFExporter convierte el resultado de una vista en un documento PDF.
type PDFExporter interface {
	Export(ctx context.Context, title string, res view.Result) ([]byte, error)
}

// ViewHandler expone las vistas del back-office como fragmentos HTML.
type ViewHandler struct {
	renderer *view.Renderer
	tmpl     *Templates
	pdf      PDFExporter
	log      *logger.Logger
}

// NewViewHandler construye el handler.
func NewViewHandler(renderer *view.Renderer, tmpl *Templates, exporter PDFExporter, log *logger.Logger) *ViewHandler {
	return &ViewHandler{renderer: renderer, tmpl: tmpl, pdf: exporter, log: log.Component("http")}
}

// Show ejecuta una vista del catálogo con los parámetros de la query.
// GET /views/:key
func (h *ViewHandler) Show(c *fiber.Ctx) error {
	res, err := h.renderer.Run(c.UserContext(), c.Params("key"), view.Params(c.Queries()))
	if err != nil {
		return h.unknownView(c, err)
	}
	return h.fragment(c, fiber.StatusOK, res)
}

// Login autentica al vendedor.
// POST /views/login
func (h *ViewHandler) Login(c *fiber.Ctx) error {
	res := h.renderer.Login(c.UserContext(), view.LoginForm{
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	})
	return h.fragment(c, fiber.StatusOK, res)
}

// CreateSale registra una venta; detalles llega como "producto:cantidad, ...".
// POST /views/ventas
func (h *ViewHandler) CreateSale(c *fiber.Ctx) error {
	res := h.renderer.CreateSaleFromInput(c.UserContext(),
		c.FormValue("vendedor_id"), c.FormValue("cliente_id"), c.FormValue("detalles"))
	return h.fragment(c, fiber.StatusOK, res)
}

// PDF exporta la vista como documento A4. Si no hay datos devuelve el fragmento.
// GET /views/:key/pdf
func (h *ViewHandler) PDF(c *fiber.Ctx) error {
	key := c.Params("key")
	res, err := h.renderer.Run(c.UserContext(), key, view.Params(c.Queries()))
	if err != nil {
		return h.unknownView(c, err)
	}
	spec, _ := h.renderer.Catalog().Get(key)

	doc, err := h.pdf.Export(c.UserContext(), spec.Title, res)
	if errors.Is(err, pdf.ErrNothingToExport) {
		return h.fragment(c, fiber.StatusOK, res)
	}
	if err != nil {
		h.log.Error().Err(err).Str("view", key).Msg("exportar PDF")
		return h.fragment(c, fiber.StatusInternalServerError, view.Result{View: key, Kind: view.KindError, Message: "no se pudo generar el PDF"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+key+`.pdf"`)
	return c.Send(doc)
}

func (h *ViewHandler) unknownView(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	if errors.Is(err, domain.ErrUnknownView) {
		status = fiber.StatusNotFound
	}
	return h.fragment(c, status, view.Result{View: c.Params("key"), Kind: view.KindError, Message: err.Error()})
}

func (h *ViewHandler) fragment(c *fiber.Ctx, status int, res view.Result) error {
	body, err := h.tmpl.Fragment(res)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(body)
}
