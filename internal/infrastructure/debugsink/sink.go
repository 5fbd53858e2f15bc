// Package debugsink guarda el JSON crudo de la última llamada a la API para
// que el desarrollador lo inspeccione.
package debugsink

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/jhoicas/polimarket-client/internal/application/ports"
	"github.com/jhoicas/polimarket-client/pkg/logger"
)

var (
	_ ports.DebugSink = (*MemorySink)(nil)
	_ ports.DebugSink = (*LogSink)(nil)
	_ ports.DebugSink = Tee(nil)
)

// Marshal serializa payload con sangría. Si no es serializable devuelve
// {"error": "..."} para que el sink nunca contenga JSON inválido.
func Marshal(payload any) []byte {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		data, _ = json.MarshalIndent(map[string]string{"error": err.Error()}, "", "  ")
	}
	return data
}

// MemorySink conserva solo la última publicación (el último escritor gana).
type MemorySink struct {
	mu   sync.RWMutex
	last []byte
}

// NewMemorySink construye un sink vacío; Last devuelve "{}" hasta la primera publicación.
func NewMemorySink() *MemorySink {
	return &MemorySink{last: []byte("{}")}
}

// Publish reemplaza el contenido completo.
func (s *MemorySink) Publish(payload any) {
	data := Marshal(payload)
	s.mu.Lock()
	s.last = data
	s.mu.Unlock()
}

// Last devuelve una copia del último JSON publicado.
func (s *MemorySink) Last() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]byte, len(s.last))
	copy(out, s.last)
	return out
}

// LogSink escribe cada payload en el log a nivel debug.
type LogSink struct {
	log *logger.Logger
}

// NewLogSink construye el sink sobre el logger indicado.
func NewLogSink(l *logger.Logger) *LogSink {
	return &LogSink{log: l.Component("debug-sink")}
}

// Publish registra el JSON compacto como campo raw.
func (s *LogSink) Publish(payload any) {
	var buf bytes.Buffer
	_ = json.Compact(&buf, Marshal(payload))
	s.log.Debug().RawJSON("payload", buf.Bytes()).Msg("respuesta de la API")
}

// Tee reparte cada publicación entre varios sinks.
type Tee []ports.DebugSink

// Publish delega en cada sink, en orden.
func (t Tee) Publish(payload any) {
	for _, s := range t {
		s.Publish(payload)
	}
}
