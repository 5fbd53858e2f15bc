package view

// Kind tipo de resultado que produce una vista.
type Kind int

const (
	KindTable Kind = iota
	KindText
	KindError
)

// Table cabeceras y filas ya formateadas.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Line par etiqueta/valor de un bloque de texto.
type Line struct {
	Label string
	Value string
}

// Result fragmento listo para dibujar en el elemento Target.
// Es independiente del formato: HTML, texto o PDF lo dibujan a su manera.
type Result struct {
	View    string
	Target  string
	Kind    Kind
	Table   *Table
	Heading string
	Lines   []Line
	Message string
}

// IsError indica si el resultado es un bloque de error.
func (r Result) IsError() bool { return r.Kind == KindError }

func errorResult(spec Spec, msg string) Result {
	return Result{View: spec.Key, Target: spec.Target, Kind: KindError, Message: msg}
}

func textResult(spec Spec, msg string) Result {
	return Result{View: spec.Key, Target: spec.Target, Kind: KindText, Message: msg}
}
