package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken indica que el token almacenado no es un JWT decodificable.
var ErrOpaqueToken = errors.New("jwt: token opaco")

// Claims datos legibles del token emitido por PoliMarket (sub = id del vendedor, exp = vencimiento).
// El cliente no conoce el secreto del backend: solo decodifica, nunca valida la firma.
type Claims struct {
	Subject   string
	ExpiresAt time.Time // cero si el token no trae exp
}

// Expired indica si el token ya venció respecto a now. Un token sin exp nunca vence.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Inspect decodifica los claims registrados sin verificar la firma.
func Inspect(tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, fmt.Errorf("jwt: token vacío")
	}
	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &rc); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrOpaqueToken, err)
	}
	out := Claims{Subject: rc.Subject}
	if rc.ExpiresAt != nil {
		out.ExpiresAt = rc.ExpiresAt.Time
	}
	return out, nil
}
