package console

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/polimarket-client/internal/app"
	"github.com/jhoicas/polimarket-client/pkg/config"
	"github.com/jhoicas/polimarket-client/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type recorded struct {
	path string
	auth string
	body []byte
}

type fakeAPI struct {
	mu   sync.Mutex
	reqs []recorded
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.reqs = append(f.reqs, recorded{path: r.URL.Path, auth: r.Header.Get("Authorization"), body: body})
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/health":
		_, _ = io.WriteString(w, `{"status":"healthy"}`)
	case r.URL.Path == "/inventario/productos":
		_, _ = io.WriteString(w, `{"success":true,"data":{"productos":[{"id":1,"nombre":"Arroz","precio":3500,"categoria":"Granos"}]}}`)
	case r.URL.Path == "/auth/vendedores":
		_, _ = io.WriteString(w, `{"success":true,"data":{"vendedores":[{"id":1,"nombre":"Ana","email":"ana@polimarket.co","estado_autorizacion":true}]}}`)
	case strings.HasPrefix(r.URL.Path, "/inventario/stock/"):
		_, _ = io.WriteString(w, `{"success":true,"data":{"producto_id":3,"cantidad_disponible":10,"cantidad_minima":2}}`)
	case r.URL.Path == "/auth/login":
		_, _ = io.WriteString(w, `{"success":true,"data":{"access_token":"tok123","vendedor":{"nombre":"Ana"}}}`)
	case r.URL.Path == "/ventas/":
		_, _ = io.WriteString(w, `{"success":true,"data":{"venta_id":15,"total":7000,"fecha":"2026-10-19"}}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"No encontrado"}`)
	}
}

func (f *fakeAPI) requests() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recorded(nil), f.reqs...)
}

type harness struct {
	api   *fakeAPI
	build Builder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		App:     config.AppConfig{Env: "test", Name: "polimarket-test"},
		API:     config.APIConfig{BaseURL: srv.URL},
		Session: config.SessionConfig{Driver: "file", File: filepath.Join(t.TempDir(), "session.json")},
	}
	return &harness{api: api, build: func(ctx context.Context, attach bool) (*app.Services, error) {
		return app.Build(ctx, cfg, logger.Nop(), app.Options{AttachToken: attach})
	}}
}

func (h *harness) run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cliApp := NewApp(h.build, strings.NewReader(input), &out)
	err := cliApp.Run(append([]string{"polimarket"}, args...))
	return out.String(), err
}

// ──────────────────────────────────────────────────────────────────────────────
// Subcomandos de vistas
// ──────────────────────────────────────────────────────────────────────────────

func TestCLI_ListarProductos(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "productos")
	require.NoError(t, err)
	assert.Contains(t, out, "LISTAR PRODUCTOS")
	assert.Contains(t, out, "Arroz")
	assert.Contains(t, out, "$3,500")
	assert.Contains(t, out, "N/A", "descripción ausente")
}

func TestCLI_ParametroPorOpcionYPosicional(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "inventario", "--id", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Información del Inventario:")

	_, err = h.run(t, "", "inventario", "7")
	require.NoError(t, err)

	reqs := h.api.requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "/inventario/stock/3", reqs[0].path)
	assert.Equal(t, "/inventario/stock/7", reqs[1].path)
}

func TestCLI_FechaRequerida(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "entregas-fecha")
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.Contains(t, out, "Por favor seleccione una fecha")
	assert.Empty(t, h.api.requests())
}

func TestCLI_ErrorDelBackendConDebug(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "--debug", "compras-pendientes")
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.Contains(t, out, "❌ No encontrado")
	assert.Contains(t, out, "respuesta de la API")
	assert.Contains(t, out, `"error": "No encontrado"`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login y venta
// ──────────────────────────────────────────────────────────────────────────────

func TestCLI_LoginYVenta(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "venta", "--vendedor", "1", "--cliente", "2", "--detalles", "3:2")
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.Contains(t, out, "Debe hacer login primero")

	out, err = h.run(t, "", "login", "-e", "ana@polimarket.co", "-p", "secreta")
	require.NoError(t, err)
	assert.Contains(t, out, "Login exitoso para: Ana")

	out, err = h.run(t, "", "venta", "--vendedor", "1", "--cliente", "2", "--detalles", "3:2")
	require.NoError(t, err)
	assert.Contains(t, out, "Venta creada exitosamente")
	assert.Contains(t, out, "$7,000")

	reqs := h.api.requests()
	last := reqs[len(reqs)-1]
	assert.Equal(t, "/ventas/", last.path)
	assert.Equal(t, "Bearer tok123", last.auth, "la consola adjunta el token por defecto")

	var body map[string]any
	require.NoError(t, json.Unmarshal(last.body, &body))
	assert.EqualValues(t, 1, body["vendedor_id"])

	out, err = h.run(t, "", "session")
	require.NoError(t, err)
	assert.Contains(t, out, "Sesión iniciada")

	_, err = h.run(t, "", "logout")
	require.NoError(t, err)
	out, _ = h.run(t, "", "session")
	assert.Contains(t, out, "Sin sesión iniciada")
}

func TestCLI_Health(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "health")
	require.NoError(t, err)
	assert.Contains(t, out, "Conectado al servidor PoliMarket")
}

// ──────────────────────────────────────────────────────────────────────────────
// Menú interactivo
// ──────────────────────────────────────────────────────────────────────────────

func TestCLI_Menu(t *testing.T) {
	h := newHarness(t)

	// 2 = Listar vendedores; "abc" es inválida; 18 = Salir (1 login + 14 vistas + venta + logout).
	out, err := h.run(t, "2\nabc\n18\n", "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "POLIMARKET - CLIENTE DE CONSOLA")
	assert.Contains(t, out, "2. Listar vendedores")
	assert.Contains(t, out, "ana@polimarket.co")
	assert.Contains(t, out, "❌ Opción inválida")
	assert.Contains(t, out, "¡Hasta luego!")
}

func TestCLI_MenuVentaSinLoginYFinDeEntrada(t *testing.T) {
	h := newHarness(t)

	// 16 = Crear Venta; luego la entrada se agota y el menú termina.
	out, err := h.run(t, "16\n", "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "❌ Debe hacer login primero")
	assert.Empty(t, h.api.requests())
}
