package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/polimarket-client/internal/application/ports"
)

// TokenKey clave bajo la que se guarda el token (equivalente al localStorage del navegador).
const TokenKey = "authToken"

var _ ports.TokenStore = (*FileTokenStore)(nil)

// FileTokenStore guarda pares clave/valor en un archivo JSON local.
// Otras claves presentes en el archivo se conservan al escribir.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

// NewFileTokenStore construye el almacén; el archivo se crea en el primer Save.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load devuelve el token guardado o "" si no hay.
func (s *FileTokenStore) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, err := s.read()
	if err != nil {
		return "", err
	}
	return kv[TokenKey], nil
}

// Save reemplaza el token guardado.
func (s *FileTokenStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, err := s.read()
	if err != nil {
		return err
	}
	kv[TokenKey] = token
	return s.write(kv)
}

// Clear elimina el token (cierre de sesión).
func (s *FileTokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := kv[TokenKey]; !ok {
		return nil
	}
	delete(kv, TokenKey)
	return s.write(kv)
}

func (s *FileTokenStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: leer %s: %w", s.path, err)
	}
	kv := map[string]string{}
	if len(data) == 0 {
		return kv, nil
	}
	if err := json.Unmarshal(data, &kv); err != nil {
		return nil, fmt.Errorf("session: archivo %s corrupto: %w", s.path, err)
	}
	return kv, nil
}

// write escribe en un temporal y renombra para no dejar el archivo a medias.
func (s *FileTokenStore) write(kv map[string]string) error {
	data, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return fmt.Errorf("session: serializar: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".polimarket-session-*")
	if err != nil {
		return fmt.Errorf("session: crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("session: escribir: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("session: permisos: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session: cerrar temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("session: reemplazar %s: %w", s.path, err)
	}
	return nil
}
