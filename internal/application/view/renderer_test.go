package view

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/polimarket-client/internal/application/session"
	"github.com/jhoicas/polimarket-client/internal/domain"
	"github.com/jhoicas/polimarket-client/internal/infrastructure/debugsink"
	"github.com/jhoicas/polimarket-client/internal/infrastructure/polimarket"
	infrasession "github.com/jhoicas/polimarket-client/internal/infrastructure/session"
	"github.com/jhoicas/polimarket-client/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	renderer *Renderer
	sink     *debugsink.MemorySink
	store    *infrasession.FileTokenStore
	hits     *atomic.Int32
	lastReq  *http.Request
	lastBody []byte
}

// newFixture levanta un backend PoliMarket falso que responde con status/body fijos.
func newFixture(t *testing.T, status int, body string) *fixture {
	t.Helper()
	f := &fixture{hits: &atomic.Int32{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		f.lastReq = r
		f.lastBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	f.sink = debugsink.NewMemorySink()
	f.store = infrasession.NewFileTokenStore(filepath.Join(t.TempDir(), "session.json"))
	sess := session.New(f.store, logger.Nop())
	gw := polimarket.NewClient(srv.URL, f.sink, 0)
	f.renderer = NewRenderer(gw, sess, logger.Nop())
	return f
}

func (f *fixture) run(t *testing.T, key string, params Params) Result {
	t.Helper()
	res, err := f.renderer.Run(context.Background(), key, params)
	require.NoError(t, err)
	return res
}

// ──────────────────────────────────────────────────────────────────────────────
// Tablas
// ──────────────────────────────────────────────────────────────────────────────

func TestProductos_OpcionalesYPrecio(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"success":true,"data":{"productos":[{"id":1,"nombre":"A","precio":1000}]}}`)

	res := f.run(t, "productos", nil)
	require.Equal(t, KindTable, res.Kind)
	assert.Equal(t, "productosResult", res.Target)
	assert.Equal(t, []string{"ID", "Nombre", "Descripción", "Precio", "Categoría"}, res.Table.Headers)
	require.Len(t, res.Table.Rows, 1)
	assert.Equal(t, []string{"1", "A", "N/A", "$1,000", "N/A"}, res.Table.Rows[0])
	assert.Equal(t, "/inventario/productos", f.lastReq.URL.Path)
}

func TestProductos_CatalogoAleatorio(t *testing.T) {
	faker := gofakeit.New(42)
	items := make([]map[string]any, 25)
	for i := range items {
		items[i] = map[string]any{
			"id":        i + 1,
			"nombre":    faker.ProductName(),
			"precio":    faker.Price(100, 250000),
			"categoria": faker.ProductCategory(),
		}
	}
	body, err := json.Marshal(map[string]any{"success": true, "data": map[string]any{"productos": items}})
	require.NoError(t, err)
	f := newFixture(t, http.StatusOK, string(body))

	res := f.run(t, "productos", nil)
	require.Len(t, res.Table.Rows, len(items))
	for i, row := range res.Table.Rows {
		assert.Equal(t, items[i]["nombre"], row[1])
		assert.Equal(t, Placeholder, row[2], "sin descripción")
		assert.True(t, strings.HasPrefix(row[3], "$"), row[3])
		assert.Equal(t, items[i]["categoria"], row[4])
	}
}

func TestListaVacia_TablaSinFilas(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"success":true,"data":{"proveedores":[]}}`)

	res := f.run(t, "proveedores", nil)
	require.Equal(t, KindTable, res.Kind)
	assert.Len(t, res.Table.Headers, 5)
	assert.Empty(t, res.Table.Rows)
}

func TestVendedores_Autorizado(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"success":true,"data":{"vendedores":[
		{"id":1,"nombre":"Ana","email":"ana@polimarket.co","estado_autorizacion":true},
		{"id":2,"nombre":"Luis","email":"luis@polimarket.co","estado_autorizacion":false}]}}`)

	res := f.run(t, "vendedores", nil)
	require.Len(t, res.Table.Rows, 2)
	assert.Equal(t, "Sí", res.Table.Rows[0][3])
	assert.Equal(t, "No", res.Table.Rows[1][3])
}

func TestBajoStock_EstadoCalculado(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"success":true,"data":{"productos_bajo_stock":[
		{"producto_id":1,"cantidad_disponible":5,"cantidad_minima":10},
		{"producto_id":2,"cantidad_disponible":10,"cantidad_minima":10},
		{"producto_id":3,"cantidad_disponible":12,"cantidad_minima":10}]}}`)

	res := f.run(t, "bajo-stock", nil)
	require.Len(t, res.Table.Rows, 3)
	assert.Equal(t, "CRÍTICO", res.Table.Rows[0][3])
	assert.Equal(t, "CRÍTICO", res.Table.Rows[1][3])
	assert.Equal(t, "BAJO", res.Table.Rows[2][3])
}

func TestVentasVendedor_InterpolaRutaYTotal(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"success":true,"data":{"ventas":[
		{"id":9,"cliente_id":4,"fecha":"2026-10-01","total":2500000.5,"estado":"PENDIENTE"}]}}`)

	res := f.run(t, "ventas-vendedor", Params{"vendedor_id": "7"})
	assert.Equal(t, "/ventas/vendedor/7", f.lastReq.URL.Path)
	assert.Equal(t, []string{"9", "4", "2026-10-01", "$2,500,000.5", "PENDIENTE"}, res.Table.Rows[0])
}

func TestSinLista_MensajeInformativo(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"success":false,"message":"sin datos"}`)

	res := f.run(t, "entregas-fecha", Params{"fecha": "2026-10-19"})
	assert.Equal(t, KindText, res.Kind)
	assert.Equal(t, "No hay entregas programadas para esta fecha", res.Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas obligatorias
// ──────────────────────────────────────────────────────────────────────────────

func TestEntregasPorFecha_SinFechaNoLlamaAPI(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"success":true,"data":{"entregas":[]}}`)

	res := f.run(t, "entregas-fecha", Params{"fecha": ""})
	assert.True(t, res.IsError())
	assert.Equal(t, "Por favor seleccione una fecha", res.Message)
	assert.Equal(t, "entregasFechaResult", res.Target)
	assert.Zero(t, f.hits.Load(), "no debe emitirse ninguna petición")
}

func TestBuscarProveedores_EscapaNombre(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"success":true,"data":{"proveedores":[]}}`)

	res := f.run(t, "proveedores-buscar", Params{"nombre": "  "})
	assert.Equal(t, "Por favor ingrese un nombre para buscar", res.Message)
	assert.Zero(t, f.hits.Load())

	f.run(t, "proveedores-buscar", Params{"nombre": "Lácteos del Valle"})
	assert.Equal(t, "/proveedores/buscar/Lácteos del Valle", f.lastReq.URL.Path)
	assert.Equal(t, "/proveedores/buscar/L%C3%A1cteos%20del%20Valle", f.lastReq.URL.EscapedPath())
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores del gateway
// ──────────────────────────────────────────────────────────────────────────────

func TestErrorDelGateway_DetailEnSinkYVista(t *testing.T) {
	f := newFixture(t, http.StatusNotFound, `{"detail":"X"}`)

	res := f.run(t, "inventario", Params{"producto_id": "99"})
	assert.True(t, res.IsError())
	assert.Equal(t, "X", res.Message)
	assert.Equal(t, "inventarioResult", res.Target)

	var last map[string]any
	require.NoError(t, json.Unmarshal(f.sink.Last(), &last))
	assert.Equal(t, "X", last["error"])
}

func TestVistaDesconocida(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{}`)
	_, err := f.renderer.Run(context.Background(), "facturas", nil)
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro único
// ──────────────────────────────────────────────────────────────────────────────

func TestInventario_BloqueDeTexto(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"success":true,"data":{"producto_id":3,"cantidad_disponible":40,"cantidad_minima":10,"ubicacion":null}}`)

	res := f.run(t, "inventario", Params{"producto_id": "3"})
	require.Equal(t, KindText, res.Kind)
	assert.Equal(t, "Información del Inventario:", res.Heading)
	assert.Equal(t, []Line{
		{Label: "Producto ID", Value: "3"},
		{Label: "Cantidad Disponible", Value: "40"},
		{Label: "Cantidad Mínima", Value: "10"},
		{Label: "Ubicación", Value: "N/A"},
	}, res.Lines)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login y ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_PersisteToken(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"success":true,"message":"Login exitoso","data":{"access_token":"tok123","token_type":"bearer","vendedor":{"id":1,"nombre":"Ana Gómez"}}}`)

	res := f.renderer.Login(context.Background(), LoginForm{Email: "ana@polimarket.co", Password: "secreta"})
	assert.Equal(t, KindText, res.Kind)
	assert.Equal(t, "Login exitoso para: Ana Gómez", res.Message)
	assert.Equal(t, http.MethodPost, f.lastReq.Method)
	assert.JSONEq(t, `{"email":"ana@polimarket.co","password":"secreta"}`, string(f.lastBody))

	tok, err := f.store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok123", tok)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	f := newFixture(t, http.StatusUnauthorized, `{"detail":"Credenciales inválidas o vendedor no autorizado"}`)

	res := f.renderer.Login(context.Background(), LoginForm{Email: "ana@polimarket.co", Password: "mal"})
	assert.True(t, res.IsError())
	assert.Equal(t, "Credenciales inválidas o vendedor no autorizado", res.Message)

	tok, _ := f.store.Load(context.Background())
	assert.Empty(t, tok)
}

func TestLogin_CamposVacios(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{}`)
	res := f.renderer.Login(context.Background(), LoginForm{Email: " "})
	assert.True(t, res.IsError())
	assert.Zero(t, f.hits.Load())
}

func TestCrearVenta_RequiereLogin(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{}`)
	res := f.renderer.CreateSale(context.Background(), SaleForm{VendedorID: 1, ClienteID: 2, Detalles: []SaleLine{{1, 1}}})
	assert.Equal(t, "Debe hacer login primero", res.Message)
	assert.Equal(t, domain.ErrUnauthenticated.Error(), res.Message)
	assert.Zero(t, f.hits.Load())
}

func TestCrearVenta_Exito(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"success":true,"data":{"venta_id":15,"total":45000,"fecha":"2026-10-19"}}`)
	require.NoError(t, f.store.Save(context.Background(), "tok123"))
	f.renderer.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local) }

	res := f.renderer.CreateSale(context.Background(), SaleForm{
		VendedorID: 1, ClienteID: 2,
		Detalles: []SaleLine{{ProductoID: 3, Cantidad: 2}},
	})
	require.Equal(t, KindText, res.Kind, res.Message)
	assert.Equal(t, "/ventas/", f.lastReq.URL.Path)
	assert.JSONEq(t, `{"vendedor_id":1,"cliente_id":2,"fecha":"2026-10-19","detalles":[{"producto_id":3,"cantidad":2}]}`, string(f.lastBody))
	assert.Equal(t, Line{Label: "Total", Value: "$45,000"}, res.Lines[1])
}

func TestCrearVenta_SinProductos(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{}`)
	require.NoError(t, f.store.Save(context.Background(), "tok123"))

	res := f.renderer.CreateSale(context.Background(), SaleForm{VendedorID: 1, ClienteID: 2})
	assert.Equal(t, "No se especificaron productos", res.Message)
	assert.Zero(t, f.hits.Load())
}

func TestCrearVentaDesdeTexto(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"success":true,"data":{"venta_id":16,"total":3500,"fecha":"2026-10-19"}}`)

	res := f.renderer.CreateSaleFromInput(context.Background(), "1", "2", "3:1")
	assert.Equal(t, "Debe hacer login primero", res.Message)

	require.NoError(t, f.store.Save(context.Background(), "tok123"))

	res = f.renderer.CreateSaleFromInput(context.Background(), "1", "2", "3-1")
	assert.True(t, res.IsError())
	assert.Contains(t, res.Message, "producto:cantidad")

	res = f.renderer.CreateSaleFromInput(context.Background(), "abc", "2", "3:1")
	assert.Equal(t, "ID de vendedor inválido", res.Message)
	assert.Zero(t, f.hits.Load())

	res = f.renderer.CreateSaleFromInput(context.Background(), " 1 ", "2", "3:1, 4:2")
	require.False(t, res.IsError(), res.Message)
	assert.Equal(t, TargetSale, res.Target)
	assert.Equal(t, "16", res.Lines[0].Value)
}

func TestVendedores_AutorizadoAusenteEsNo(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"success":true,"data":{"vendedores":[{"id":4,"nombre":"Luis","email":"luis@polimarket.co","estado_autorizacion":null},{"id":5,"nombre":"Eva","email":"eva@polimarket.co"}]}}`)

	res := f.run(t, "vendedores", nil)
	require.Len(t, res.Table.Rows, 2)
	assert.Equal(t, "No", res.Table.Rows[0][3])
	assert.Equal(t, "No", res.Table.Rows[1][3])
}

func TestBajoStock_FlotantesSinDecimalCero(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"success":true,"data":{"productos_bajo_stock":[{"producto_id":2,"cantidad_disponible":5.0,"cantidad_minima":10.0}]}}`)

	res := f.run(t, "bajo-stock", nil)
	require.Len(t, res.Table.Rows, 1)
	assert.Equal(t, []string{"2", "5", "10", "CRÍTICO"}, res.Table.Rows[0])
}
