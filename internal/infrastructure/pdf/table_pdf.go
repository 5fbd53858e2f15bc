// Package pdf exporta los resultados de las vistas del back-office a PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: PoliMarket + título de la vista  │  Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: cabeceras sobre fondo azul, filas alternadas        │
//	│     (o bloque etiqueta/valor en vistas de registro único)   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: cantidad de filas                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/polimarket-client/internal/application/view"
)

// ErrNothingToExport el resultado es un error o un mensaje sin datos.
var ErrNothingToExport = errors.New("pdf: el resultado no tiene datos para exportar")

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

const gridSize = 12

// ── Exporter ──────────────────────────────────────────────────────────────────

// MarotoExporter genera PDFs de tablas con Maroto v2.
type MarotoExporter struct {
	now func() time.Time
}

// NewMarotoExporter construye el exportador.
func NewMarotoExporter() *MarotoExporter { return &MarotoExporter{now: time.Now} }

// Export dibuja el resultado de una vista y devuelve los bytes del PDF.
func (e *MarotoExporter) Export(_ context.Context, title string, res view.Result) ([]byte, error) {
	if res.IsError() || (res.Table == nil && len(res.Lines) == 0) {
		return nil, ErrNothingToExport
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor("PoliMarket", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(title, e.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	count := 0
	if res.Table != nil {
		m.AddRows(tableHeaderRow(res.Table.Headers))
		m.AddRows(tableBodyRows(res.Table)...)
		count = len(res.Table.Rows)
	} else {
		m.AddRows(recordRows(res.Heading, res.Lines)...)
		count = 1
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(count))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, now time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("PoliMarket", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{Size: 10, Top: 8}),
		),
		col.New(4).Add(
			text.New("Generado: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(headers []string) core.Row {
	widths := columnWidths(len(headers))
	cols := make([]core.Col, len(headers))
	for i, h := range headers {
		cols[i] = col.New(widths[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableBodyRows(t *view.Table) []core.Row {
	widths := columnWidths(len(t.Headers))
	rows := make([]core.Row, 0, len(t.Rows))
	for i, r := range t.Rows {
		cols := make([]core.Col, len(widths))
		for j := range widths {
			cell := ""
			if j < len(r) {
				cell = r[j]
			}
			cols[j] = col.New(widths[j]).Add(text.New(cell, props.Text{Size: 8, Top: 1, Left: 1, Right: 1}))
		}
		rw := row.New(7).Add(cols...)
		if i%2 == 1 {
			rw = rw.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, rw)
	}
	return rows
}

func recordRows(heading string, lines []view.Line) []core.Row {
	rows := make([]core.Row, 0, len(lines)+1)
	if heading != "" {
		rows = append(rows, row.New(8).Add(col.New(gridSize).Add(
			text.New(heading, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
		)))
	}
	for _, l := range lines {
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(l.Label+":", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(8).Add(text.New(l.Value, props.Text{Size: 8, Top: 1})),
		))
	}
	return rows
}

func footerRow(count int) core.Row {
	return row.New(8).Add(col.New(gridSize).Add(
		text.New("Registros: "+strconv.Itoa(count), props.Text{
			Size: 7, Align: align.Right, Top: 2, Color: colorGray,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnWidths reparte la grilla de 12 entre n columnas; el sobrante va a las primeras.
// Con más de 12 columnas cada una ocupa 1.
func columnWidths(n int) []int {
	if n <= 0 {
		return nil
	}
	widths := make([]int, n)
	if n >= gridSize {
		for i := range widths {
			widths[i] = 1
		}
		return widths
	}
	base, extra := gridSize/n, gridSize%n
	for i := range widths {
		widths[i] = base
		if i < extra {
			widths[i]++
		}
	}
	return widths
}
