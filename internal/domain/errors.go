package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthenticated = errors.New("Debe hacer login primero")
	ErrUnknownView     = errors.New("vista desconocida")
)

// DefaultRequestMessage mensaje genérico cuando el backend no envía detail.
const DefaultRequestMessage = "Error en la petición"

// RequestKind clasifica el origen de un RequestError.
type RequestKind string

const (
	KindNetwork RequestKind = "network" // no hubo respuesta HTTP
	KindStatus  RequestKind = "status"  // respuesta no 2xx
	KindDecode  RequestKind = "decode"  // cuerpo no es JSON
	KindRequest RequestKind = "request" // no se pudo construir la petición
)

// RequestError es la única taxonomía de error del gateway hacia PoliMarket.
// Message es lo que se muestra al usuario; Err conserva la causa original.
type RequestError struct {
	Kind    RequestKind
	Status  int // 0 si no hubo respuesta
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewStatusError construye el error de una respuesta no 2xx.
func NewStatusError(status int, detail string) *RequestError {
	msg := detail
	if msg == "" {
		msg = DefaultRequestMessage
	}
	return &RequestError{Kind: KindStatus, Status: status, Message: msg}
}

// NewNetworkError envuelve un fallo de transporte.
func NewNetworkError(err error) *RequestError {
	return &RequestError{Kind: KindNetwork, Message: err.Error(), Err: err}
}

// NewDecodeError envuelve un cuerpo que no se pudo interpretar como JSON.
func NewDecodeError(status int, err error) *RequestError {
	return &RequestError{
		Kind:    KindDecode,
		Status:  status,
		Message: fmt.Sprintf("respuesta no es JSON válido: %v", err),
		Err:     err,
	}
}
