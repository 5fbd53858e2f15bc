package entity

// Record es un objeto JSON opaco del backend (vendedor, venta, producto...).
// El cliente solo lee campos por nombre para llenar celdas.
type Record map[string]any

// Value devuelve el campo y si estaba presente con un valor no nulo.
func (r Record) Value(field string) (any, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Object devuelve un campo que es a su vez un objeto.
func (r Record) Object(field string) (Record, bool) {
	v, ok := r.Value(field)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return Record(m), ok
}

// List devuelve un campo lista de objetos. Elementos que no son objetos se ignoran.
func (r Record) List(field string) ([]Record, bool) {
	v, ok := r.Value(field)
	if !ok {
		return nil, false
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]Record, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out, true
}

// String devuelve el campo si es un string.
func (r Record) String(field string) (string, bool) {
	v, ok := r.Value(field)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Envelope convención {success, message, data} de las respuestas PoliMarket.
type Envelope struct {
	Success bool
	Message string
	Data    Record
}

// ParseEnvelope interpreta el payload ya decodificado. ok=false si no es un objeto.
// Success solo es true cuando el backend envía el booleano true.
func ParseEnvelope(payload any) (Envelope, bool) {
	m, ok := payload.(map[string]any)
	if !ok {
		return Envelope{}, false
	}
	root := Record(m)
	env := Envelope{}
	if b, ok := root["success"].(bool); ok {
		env.Success = b
	}
	env.Message, _ = root.String("message")
	env.Data, _ = root.Object("data")
	return env, true
}
