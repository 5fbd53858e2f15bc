package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/polimarket-client/internal/domain"
)

// LoginForm credenciales del vendedor.
type LoginForm struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SaleLine producto y cantidad de una venta.
type SaleLine struct {
	ProductoID int `json:"producto_id" validate:"gt=0"`
	Cantidad   int `json:"cantidad" validate:"gt=0"`
}

// SaleForm datos para registrar una venta.
type SaleForm struct {
	VendedorID int        `json:"vendedor_id" validate:"gt=0"`
	ClienteID  int        `json:"cliente_id" validate:"gt=0"`
	Detalles   []SaleLine `json:"detalles" validate:"required,min=1,dive"`
}

// ParseSaleLines interpreta "producto:cantidad" separados por coma o espacio.
// Ej: "1:2, 5:1".
func ParseSaleLines(s string) ([]SaleLine, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' || r == ' ' || r == '\n' })
	out := make([]SaleLine, 0, len(fields))
	for _, f := range fields {
		prod, qty, ok := strings.Cut(f, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q (formato producto:cantidad)", domain.ErrInvalidInput, f)
		}
		p, err := strconv.Atoi(strings.TrimSpace(prod))
		if err != nil {
			return nil, fmt.Errorf("%w: producto %q", domain.ErrInvalidInput, prod)
		}
		q, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil {
			return nil, fmt.Errorf("%w: cantidad %q", domain.ErrInvalidInput, qty)
		}
		out = append(out, SaleLine{ProductoID: p, Cantidad: q})
	}
	return out, nil
}

// saleMessage traduce el primer error de validación a un mensaje para el usuario.
func saleMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	switch verrs[0].StructField() {
	case "VendedorID":
		return "ID de vendedor inválido"
	case "ClienteID":
		return "ID de cliente inválido"
	case "Detalles":
		return "No se especificaron productos"
	case "ProductoID", "Cantidad":
		return "Valores inválidos en los productos"
	default:
		return "Datos de la venta inválidos"
	}
}
