// Package session mantiene el estado de autenticación del cliente como un
// objeto explícito en lugar de una variable global.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/polimarket-client/internal/application/ports"
	"github.com/jhoicas/polimarket-client/pkg/jwt"
	"github.com/jhoicas/polimarket-client/pkg/logger"
)

// Session representa el ciclo no autenticado → autenticado.
// El token siempre se lee del TokenStore para que varias réplicas vean el mismo valor.
type Session struct {
	store ports.TokenStore
	log   *logger.Logger
}

// Status resumen de la sesión para la interfaz.
type Status struct {
	Authenticated bool       `json:"authenticated"`
	Subject       string     `json:"subject,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	Expired       bool       `json:"expired"`
}

// New construye la sesión sobre el almacén indicado.
func New(store ports.TokenStore, log *logger.Logger) *Session {
	return &Session{store: store, log: log.Component("session")}
}

// Token devuelve el token vigente o "" si no hay sesión o el almacén falla.
func (s *Session) Token(ctx context.Context) string {
	tok, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo leer el token de sesión")
		return ""
	}
	return tok
}

// SetToken guarda el token recibido en el login.
func (s *Session) SetToken(ctx context.Context, token string) error {
	return s.store.Save(ctx, token)
}

// Logout borra el token persistido.
func (s *Session) Logout(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Authenticated indica si hay un token guardado.
func (s *Session) Authenticated(ctx context.Context) bool {
	return s.Token(ctx) != ""
}

// Status decodifica los claims del token si es un JWT; un token opaco
// sigue contando como sesión iniciada.
func (s *Session) Status(ctx context.Context, now time.Time) Status {
	tok := s.Token(ctx)
	if tok == "" {
		return Status{}
	}
	st := Status{Authenticated: true}
	claims, err := jwt.Inspect(tok)
	if err != nil {
		if !errors.Is(err, jwt.ErrOpaqueToken) {
			s.log.Debug().Err(err).Msg("token sin claims legibles")
		}
		return st
	}
	st.Subject = claims.Subject
	if !claims.ExpiresAt.IsZero() {
		exp := claims.ExpiresAt
		st.ExpiresAt = &exp
		st.Expired = claims.Expired(now)
	}
	return st
}
