package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"regexp"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	minjs "github.com/tdewolff/minify/v2/js"

	"github.com/jhoicas/polimarket-client/internal/application/view"
)

//go:embed templates/*.html
var templateFS embed.FS

// sectionIDs id del elemento HTML de cada pestaña.
var sectionIDs = map[string]string{
	view.SectionAuth:      "auth",
	view.SectionSales:     "ventas",
	view.SectionInventory: "inventario",
	view.SectionDelivery:  "entregas",
	view.SectionSuppliers: "proveedores",
}

type pageData struct {
	AppName     string
	DefaultDate string
	Sections    []sectionData
}

type sectionData struct {
	ID      string
	Name    string
	Active  bool
	Views   []view.Spec
	Targets []string
}

// Templates dibuja la página completa (minificada) y los fragmentos de resultado.
type Templates struct {
	tmpl *template.Template
	min  *minify.M
}

// NewTemplates parsea las plantillas embebidas.
func NewTemplates() (*Templates, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsear plantillas: %w", err)
	}
	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	m.AddFunc("text/html", minhtml.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), minjs.Minify)
	return &Templates{tmpl: tmpl, min: m}, nil
}

// Page dibuja la página con un formulario por vista del catálogo.
func (t *Templates) Page(appName, defaultDate string, catalog view.Catalog) ([]byte, error) {
	data := pageData{AppName: appName, DefaultDate: defaultDate}
	for i, name := range view.Sections {
		specs := catalog.InSection(name)
		data.Sections = append(data.Sections, sectionData{
			ID:      sectionIDs[name],
			Name:    name,
			Active:  i == 0,
			Views:   specs,
			Targets: targetsOf(specs),
		})
	}

	var buf bytes.Buffer
	if err := t.tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return nil, fmt.Errorf("dibujar página: %w", err)
	}
	out, err := t.min.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("minificar página: %w", err)
	}
	return out, nil
}

// Fragment dibuja el bloque de resultado de una vista.
func (t *Templates) Fragment(res view.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.tmpl.ExecuteTemplate(&buf, "fragment", res); err != nil {
		return nil, fmt.Errorf("dibujar fragmento: %w", err)
	}
	return buf.Bytes(), nil
}

// targetsOf contenedores de resultado sin repetir, en orden de aparición.
func targetsOf(specs []view.Spec) []string {
	seen := make(map[string]bool, len(specs))
	var out []string
	for _, s := range specs {
		if !seen[s.Target] {
			seen[s.Target] = true
			out = append(out, s.Target)
		}
	}
	return out
}
