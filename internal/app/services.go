// Package app arma los servicios compartidos por el servidor web y la consola
// a partir de la configuración.
package app

import (
	"context"
	"fmt"

	"github.com/jhoicas/polimarket-client/internal/application/ports"
	"github.com/jhoicas/polimarket-client/internal/application/session"
	"github.com/jhoicas/polimarket-client/internal/application/view"
	"github.com/jhoicas/polimarket-client/internal/infrastructure/debugsink"
	"github.com/jhoicas/polimarket-client/internal/infrastructure/polimarket"
	infrasession "github.com/jhoicas/polimarket-client/internal/infrastructure/session"
	"github.com/jhoicas/polimarket-client/pkg/config"
	"github.com/jhoicas/polimarket-client/pkg/logger"
)

// Services dependencias ya conectadas entre sí.
type Services struct {
	Gateway      *polimarket.Client
	Session      *session.Session
	Renderer     *view.Renderer
	Bootstrapper *session.Bootstrapper
	Debug        *debugsink.MemorySink

	closers []func() error
}

// Options ajustes que cada ejecutable puede forzar sobre la configuración.
type Options struct {
	AttachToken bool // adjunta el token aunque API_ATTACH_TOKEN sea false
}

// Build conecta almacén de sesión, gateway, renderer y bootstrapper.
// El debug sink publica en memoria (panel /debug) y en el log a nivel debug.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger, opts Options) (*Services, error) {
	s := &Services{Debug: debugsink.NewMemorySink()}

	store, err := s.tokenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.Session = session.New(store, log)

	gwOpts := []polimarket.Option{polimarket.WithLogger(log)}
	if cfg.API.AttachToken || opts.AttachToken {
		gwOpts = append(gwOpts, polimarket.WithTokenSource(s.Session.Token))
	}
	sink := debugsink.Tee{s.Debug, debugsink.NewLogSink(log)}
	s.Gateway = polimarket.NewClient(cfg.API.BaseURL, sink, cfg.API.Timeout(), gwOpts...)

	s.Renderer = view.NewRenderer(s.Gateway, s.Session, log)
	s.Bootstrapper = session.NewBootstrapper(s.Gateway, log, nil)

	log.Info().
		Str("api", s.Gateway.BaseURL()).
		Str("session_driver", cfg.Session.Driver).
		Bool("attach_token", cfg.API.AttachToken || opts.AttachToken).
		Msg("servicios inicializados")
	return s, nil
}

func (s *Services) tokenStore(ctx context.Context, cfg *config.Config) (ports.TokenStore, error) {
	switch cfg.Session.Driver {
	case "redis":
		store, err := infrasession.NewRedisTokenStore(ctx, infrasession.RedisConfig{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, store.Close)
		return store, nil
	case "file", "":
		return infrasession.NewFileTokenStore(cfg.Session.File), nil
	default:
		return nil, fmt.Errorf("app: driver de sesión desconocido %q", cfg.Session.Driver)
	}
}

// Close libera conexiones abiertas (Redis).
func (s *Services) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
