// Package console dibuja los resultados de las vistas como texto y expone el
// cliente de línea de comandos.
package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jhoicas/polimarket-client/internal/application/view"
)

const ruleWidth = 80

// Render escribe el resultado: tabla alineada, bloque etiqueta/valor o mensaje.
func Render(w io.Writer, title string, res view.Result) error {
	switch {
	case res.IsError():
		_, err := fmt.Fprintf(w, "❌ %s\n", res.Message)
		return err
	case res.Table != nil:
		return renderTable(w, title, res.Table)
	case len(res.Lines) > 0:
		return renderLines(w, res.Heading, res.Lines)
	default:
		_, err := fmt.Fprintf(w, "%s\n", res.Message)
		return err
	}
}

func renderTable(w io.Writer, title string, t *view.Table) error {
	if title != "" {
		fmt.Fprintf(w, "\n%s\n", strings.ToUpper(title))
	}
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "(%d registros)\n", len(t.Rows))
	return err
}

func renderLines(w io.Writer, heading string, lines []view.Line) error {
	if heading != "" {
		fmt.Fprintf(w, "\n%s\n", heading)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, l := range lines {
		fmt.Fprintf(tw, "%s:\t%s\n", l.Label, l.Value)
	}
	return tw.Flush()
}
