package session

import (
	"context"
	"time"

	"github.com/jhoicas/polimarket-client/internal/application/ports"
	"github.com/jhoicas/polimarket-client/pkg/logger"
)

// DateLayout formato de fecha que espera /entregas/fecha/{fecha}.
const DateLayout = "2006-01-02"

// Bootstrapper prepara la página al arrancar: fecha por defecto y verificación de salud.
type Bootstrapper struct {
	gw  ports.Gateway
	log *logger.Logger
	now func() time.Time
}

// NewBootstrapper construye el bootstrapper. now nil usa time.Now.
func NewBootstrapper(gw ports.Gateway, log *logger.Logger, now func() time.Time) *Bootstrapper {
	if now == nil {
		now = time.Now
	}
	return &Bootstrapper{gw: gw, log: log.Component("bootstrap"), now: now}
}

// DefaultDate fecha de hoy para precargar el formulario de entregas por fecha.
func (b *Bootstrapper) DefaultDate() string {
	return b.now().Format(DateLayout)
}

// CheckHealth consulta /health y solo registra el resultado; nunca falla.
func (b *Bootstrapper) CheckHealth(ctx context.Context) bool {
	payload, err := b.gw.Call(ctx, "/health", ports.RequestOptions{})
	if err != nil {
		b.log.Warn().Err(err).Msg("error conectando al servidor PoliMarket")
		return false
	}
	m, _ := payload.(map[string]any)
	if status, _ := m["status"].(string); status == "healthy" {
		b.log.Info().Msg("conectado al servidor PoliMarket")
		return true
	}
	b.log.Warn().Interface("respuesta", payload).Msg("respuesta inesperada de /health")
	return false
}
