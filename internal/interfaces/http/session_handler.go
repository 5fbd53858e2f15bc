package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/polimarket-client/internal/application/dto"
	"github.com/jhoicas/polimarket-client/internal/application/session"
)

// DebugSource último payload publicado en el debug sink.
type DebugSource interface {
	Last() []byte
}

// SessionHandler estado de sesión y panel de depuración.
type SessionHandler struct {
	session *session.Session
	debug   DebugSource
	now     func() time.Time
}

// NewSessionHandler construye el handler.
func NewSessionHandler(sess *session.Session, debug DebugSource) *SessionHandler {
	return &SessionHandler{session: sess, debug: debug, now: time.Now}
}

// Status GET /session
func (h *SessionHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.session.Status(c.UserContext(), h.now()))
}

// Logout borra el token guardado.
// POST /session/logout
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if err := h.session.Logout(c.UserContext()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SESSION", Message: err.Error()})
	}
	return c.JSON(h.session.Status(c.UserContext(), h.now()))
}

// Debug devuelve el JSON de la última respuesta (o error) de la API.
// GET /debug
func (h *SessionHandler) Debug(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(h.debug.Last())
}
