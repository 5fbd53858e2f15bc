package view

import (
	"github.com/jhoicas/polimarket-client/internal/domain/entity"
)

// CellFormat convierte un valor en texto de celda. Recibe nil si el campo falta
// en una columna obligatoria.
type CellFormat func(v any) string

// Column mapea un campo del objeto a una celda de la tabla.
type Column struct {
	Header   string
	Field    string
	Optional bool       // sin dato → Placeholder
	Format   CellFormat // nil → texto plano
	Computed func(entity.Record) string
}

// Cell calcula el texto de la celda para el registro.
// Un campo obligatorio ausente queda vacío salvo que Format defina otro valor.
func (c Column) Cell(r entity.Record) string {
	if c.Computed != nil {
		return c.Computed(r)
	}
	v, ok := r.Value(c.Field)
	if !ok || v == "" {
		if c.Optional {
			return Placeholder
		}
		if c.Format != nil {
			return c.Format(nil)
		}
		return ""
	}
	if c.Format != nil {
		return c.Format(v)
	}
	return stringify(v)
}

// Money formatea importes: $1,000.
func Money(v any) string {
	d, ok := toDecimal(v)
	if !ok {
		return stringify(v)
	}
	return FormatMoney(d)
}

// YesNo muestra booleanos como Sí/No; ausente o nulo es No.
func YesNo(v any) string {
	if b, ok := v.(bool); ok && b {
		return "Sí"
	}
	return "No"
}

// StockStatus CRÍTICO si la cantidad disponible no supera la mínima, BAJO en otro caso.
func StockStatus(r entity.Record) string {
	disp, ok1 := toDecimal(r["cantidad_disponible"])
	minimo, ok2 := toDecimal(r["cantidad_minima"])
	if ok1 && ok2 && disp.LessThanOrEqual(minimo) {
		return "CRÍTICO"
	}
	return "BAJO"
}

// Col columna de texto plano.
func Col(header, field string) Column {
	return Column{Header: header, Field: field}
}

// OptCol columna que muestra N/A cuando falta el dato.
func OptCol(header, field string) Column {
	return Column{Header: header, Field: field, Optional: true}
}

// MoneyCol columna de importe.
func MoneyCol(header, field string) Column {
	return Column{Header: header, Field: field, Format: Money}
}
