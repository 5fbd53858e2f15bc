package ports

import "context"

// RequestOptions opciones de una llamada al backend PoliMarket.
// Method vacío equivale a GET. Body se serializa a JSON salvo que ya sea []byte.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	Body    any
}

// Gateway define el puerto de salida hacia la API REST de PoliMarket.
// Call devuelve el cuerpo JSON ya decodificado o un *domain.RequestError.
type Gateway interface {
	Call(ctx context.Context, path string, opts RequestOptions) (any, error)
}

// DebugSink recibe el JSON crudo de la última llamada para inspección del desarrollador.
type DebugSink interface {
	Publish(payload any)
}

// TokenStore persiste el último token de autenticación entre reinicios.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type requestIDKey struct{}

// WithRequestID asocia al contexto el ID de la petición entrante para que el
// gateway lo reenvíe como X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom devuelve el ID asociado o "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
