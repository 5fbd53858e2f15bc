// Package polimarket implementa el gateway HTTP hacia la API REST de PoliMarket.
//
// Cada llamada sigue el mismo ciclo: petición → decodificación JSON → publicación
// del payload en el debug sink → error si el estado HTTP no es 2xx.
// No hay reintentos ni caché.
package polimarket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/polimarket-client/internal/application/ports"
	"github.com/jhoicas/polimarket-client/internal/domain"
	"github.com/jhoicas/polimarket-client/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa Gateway.
var _ ports.Gateway = (*Client)(nil)

const (
	headerContentType = "Content-Type"
	headerRequestID   = "X-Request-ID"
	contentTypeJSON   = "application/json"
)

// TokenSource entrega el token de sesión vigente ("" si no hay).
type TokenSource func(ctx context.Context) string

// Client adaptador que implementa ports.Gateway con net/http.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sink       ports.DebugSink
	log        *logger.Logger
	token      TokenSource
	newID      func() string
}

// Option personaliza el Client.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests, transporte propio).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource activa el envío de Authorization: Bearer <token>.
// Sin esta opción el token de sesión nunca sale del cliente.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// WithLogger registra cada petición en el logger indicado.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l.Component("polimarket-gateway") }
}

// NewClient construye el gateway. timeout cero significa sin límite de tiempo;
// la cancelación queda a cargo del contexto de cada llamada.
func NewClient(baseURL string, sink ports.DebugSink, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		sink:       sink,
		log:        logger.Nop(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL devuelve la URL base configurada.
func (c *Client) BaseURL() string { return c.baseURL }

// Call ejecuta la petición contra baseURL+path. Todo fallo se publica en el
// debug sink como {"error": mensaje} y se devuelve como *domain.RequestError.
func (c *Client) Call(ctx context.Context, path string, opts ports.RequestOptions) (any, error) {
	payload, err := c.do(ctx, path, opts)
	if err != nil {
		c.sink.Publish(map[string]any{"error": err.Error()})
		return nil, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, path string, opts ports.RequestOptions) (any, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body, err := encodeBody(opts.Body)
	if err != nil {
		return nil, &domain.RequestError{Kind: domain.KindRequest, Message: fmt.Sprintf("serializar cuerpo: %v", err), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &domain.RequestError{Kind: domain.KindRequest, Message: fmt.Sprintf("crear petición: %v", err), Err: err}
	}
	c.applyHeaders(ctx, req, opts.Headers)

	reqID := req.Header.Get(headerRequestID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		c.log.Warn().Err(err).Str("request_id", reqID).Str("method", method).Str("path", path).Msg("petición fallida")
		return nil, domain.NewNetworkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewNetworkError(fmt.Errorf("leer respuesta: %w", err))
	}

	c.log.Debug().
		Str("request_id", reqID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("petición completada")

	payload, err := decodeJSON(raw)
	if err != nil {
		return nil, domain.NewDecodeError(resp.StatusCode, err)
	}
	c.sink.Publish(payload)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewStatusError(resp.StatusCode, detailOf(payload))
	}
	return payload, nil
}

// applyHeaders fusiona los encabezados por defecto con los del llamador; en
// colisión gana el llamador.
func (c *Client) applyHeaders(ctx context.Context, req *http.Request, extra map[string]string) {
	req.Header.Set(headerContentType, contentTypeJSON)
	id := ports.RequestIDFrom(ctx)
	if id == "" {
		id = c.newID()
	}
	req.Header.Set(headerRequestID, id)
	if c.token != nil {
		if tok := c.token(ctx); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case string:
		return strings.NewReader(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
}

// decodeJSON interpreta el cuerpo completo; los números se conservan como json.Number.
func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("cuerpo vacío")
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("datos adicionales después del JSON")
	}
	return v, nil
}

// detailOf extrae el campo detail de los errores FastAPI cuando es texto.
func detailOf(payload any) string {
	m, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m["detail"].(string)
	return s
}
