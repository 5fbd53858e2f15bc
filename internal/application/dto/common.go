package dto

// ErrorResponse cuerpo de error HTTP de las rutas JSON del servidor web.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
