package view

import (
	"net/url"
	"sort"
	"strings"
)

// Param entrada de formulario que alimenta la vista.
// Si Required y llega vacía se muestra Message y no se llama a la API.
type Param struct {
	Name     string
	Label    string
	Required bool
	Message  string
	Date     bool // el formulario usa <input type="date">
}

// Spec define una vista: endpoint, campo de la lista y columnas.
// ListField vacío indica una vista de registro único (bloque de texto).
type Spec struct {
	Key          string
	Section      string
	Title        string
	Target       string
	Path         string // admite {param}
	ListField    string
	Heading      string // solo vistas de registro
	Params       []Param
	Columns      []Column
	EmptyMessage string
}

// IsRecord indica si la vista muestra un único objeto.
func (s Spec) IsRecord() bool { return s.ListField == "" }

// Headers cabeceras de la tabla en orden.
func (s Spec) Headers() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Header
	}
	return out
}

// BuildPath reemplaza {param} por el valor escapado.
func (s Spec) BuildPath(params map[string]string) string {
	path := s.Path
	for _, p := range s.Params {
		path = strings.ReplaceAll(path, "{"+p.Name+"}", url.PathEscape(strings.TrimSpace(params[p.Name])))
	}
	return path
}

// Secciones de la página en el orden de las pestañas.
const (
	SectionAuth      = "Autenticación"
	SectionSales     = "Ventas"
	SectionInventory = "Inventario"
	SectionDelivery  = "Entregas"
	SectionSuppliers = "Proveedores"
)

// Sections orden de las pestañas.
var Sections = []string{SectionAuth, SectionSales, SectionInventory, SectionDelivery, SectionSuppliers}

// Catalog vistas disponibles indexadas por clave.
type Catalog map[string]Spec

// Get devuelve la vista por clave.
func (c Catalog) Get(key string) (Spec, bool) {
	s, ok := c[key]
	return s, ok
}

// InSection vistas de una sección ordenadas por clave de catálogo estable.
func (c Catalog) InSection(section string) []Spec {
	var out []Spec
	for _, s := range c {
		if s.Section == section {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].order() < out[j].order() })
	return out
}

func (s Spec) order() int {
	for i, k := range keyOrder {
		if k == s.Key {
			return i
		}
	}
	return len(keyOrder)
}

// keyOrder orden de aparición en la página y en el menú de consola.
var keyOrder = []string{
	"vendedores", "vendedores-no-autorizados",
	"ventas-vendedor", "clientes",
	"productos", "productos-categoria", "inventario", "bajo-stock",
	"entregas-pendientes", "entregas-fecha",
	"proveedores", "proveedores-buscar", "compras-pendientes", "compras-proveedor",
}

// Keys claves en orden de presentación.
func (c Catalog) Keys() []string {
	out := make([]string, 0, len(keyOrder))
	for _, k := range keyOrder {
		if _, ok := c[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// DefaultCatalog vistas del back-office PoliMarket.
func DefaultCatalog() Catalog {
	specs := []Spec{
		{
			Key: "vendedores", Section: SectionAuth, Title: "Listar vendedores",
			Target: "vendedoresResult", Path: "/auth/vendedores", ListField: "vendedores",
			Columns: []Column{
				Col("ID", "id"), Col("Nombre", "nombre"), Col("Email", "email"),
				{Header: "Autorizado", Field: "estado_autorizacion", Format: YesNo},
			},
			EmptyMessage: "No hay vendedores registrados",
		},
		{
			Key: "vendedores-no-autorizados", Section: SectionAuth, Title: "Vendedores no autorizados",
			Target: "vendedoresResult", Path: "/auth/vendedores/no-autorizados", ListField: "vendedores",
			Columns: []Column{
				Col("ID", "id"), Col("Nombre", "nombre"), Col("Email", "email"), Col("Documento", "documento"),
			},
			EmptyMessage: "No hay vendedores pendientes de autorización",
		},
		{
			Key: "ventas-vendedor", Section: SectionSales, Title: "Ventas por vendedor",
			Target: "ventasResult", Path: "/ventas/vendedor/{vendedor_id}", ListField: "ventas",
			Params: []Param{{Name: "vendedor_id", Label: "ID del vendedor"}},
			Columns: []Column{
				Col("ID", "id"), Col("Cliente ID", "cliente_id"), Col("Fecha", "fecha"),
				MoneyCol("Total", "total"), Col("Estado", "estado"),
			},
			EmptyMessage: "No hay ventas registradas para este vendedor",
		},
		{
			Key: "clientes", Section: SectionSales, Title: "Listar clientes",
			Target: "clientesResult", Path: "/ventas/clientes", ListField: "clientes",
			Columns: []Column{
				Col("ID", "id"), Col("Nombre", "nombre"), Col("Email", "email"), Col("Tipo", "tipo_cliente"),
			},
			EmptyMessage: "No hay clientes registrados",
		},
		{
			Key: "productos", Section: SectionInventory, Title: "Listar productos",
			Target: "productosResult", Path: "/inventario/productos", ListField: "productos",
			Columns: []Column{
				Col("ID", "id"), Col("Nombre", "nombre"), OptCol("Descripción", "descripcion"),
				MoneyCol("Precio", "precio"), OptCol("Categoría", "categoria"),
			},
			EmptyMessage: "No hay productos disponibles",
		},
		{
			Key: "productos-categoria", Section: SectionInventory, Title: "Productos por categoría",
			Target: "productosResult", Path: "/inventario/productos/categoria/{categoria}", ListField: "productos",
			Params: []Param{{Name: "categoria", Label: "Categoría", Required: true, Message: "Por favor ingrese una categoría"}},
			Columns: []Column{
				Col("ID", "id"), Col("Nombre", "nombre"), MoneyCol("Precio", "precio"), OptCol("Categoría", "categoria"),
			},
			EmptyMessage: "No hay productos en esta categoría",
		},
		{
			Key: "inventario", Section: SectionInventory, Title: "Consultar inventario",
			Target: "inventarioResult", Path: "/inventario/stock/{producto_id}",
			Heading: "Información del Inventario:",
			Params:  []Param{{Name: "producto_id", Label: "ID del producto"}},
			Columns: []Column{
				Col("Producto ID", "producto_id"), Col("Cantidad Disponible", "cantidad_disponible"),
				Col("Cantidad Mínima", "cantidad_minima"), OptCol("Ubicación", "ubicacion"),
			},
			EmptyMessage: "Inventario no disponible",
		},
		{
			Key: "bajo-stock", Section: SectionInventory, Title: "Productos bajo stock",
			Target: "inventarioResult", Path: "/inventario/bajo-stock", ListField: "productos_bajo_stock",
			Columns: []Column{
				Col("Producto ID", "producto_id"), Col("Cantidad Disponible", "cantidad_disponible"),
				Col("Cantidad Mínima", "cantidad_minima"), {Header: "Estado", Computed: StockStatus},
			},
			EmptyMessage: "No hay productos con stock bajo",
		},
		{
			Key: "entregas-pendientes", Section: SectionDelivery, Title: "Entregas pendientes",
			Target: "entregasResult", Path: "/entregas/pendientes", ListField: "entregas",
			Columns: []Column{
				Col("ID", "id"), Col("Venta ID", "venta_id"), Col("Fecha Entrega", "fecha_entrega"),
				Col("Dirección", "direccion"), Col("Estado", "estado"),
			},
			EmptyMessage: "No hay entregas pendientes",
		},
		{
			Key: "entregas-fecha", Section: SectionDelivery, Title: "Entregas por fecha",
			Target: "entregasFechaResult", Path: "/entregas/fecha/{fecha}", ListField: "entregas",
			Params: []Param{{Name: "fecha", Label: "Fecha", Required: true, Date: true, Message: "Por favor seleccione una fecha"}},
			Columns: []Column{
				Col("ID", "id"), Col("Venta ID", "venta_id"), Col("Fecha Entrega", "fecha_entrega"), Col("Estado", "estado"),
			},
			EmptyMessage: "No hay entregas programadas para esta fecha",
		},
		{
			Key: "proveedores", Section: SectionSuppliers, Title: "Listar proveedores",
			Target: "proveedoresResult", Path: "/proveedores/", ListField: "proveedores",
			Columns: []Column{
				Col("ID", "id"), Col("Nombre", "nombre"), Col("Documento", "documento"),
				OptCol("Email", "email"), OptCol("Teléfono", "telefono"),
			},
			EmptyMessage: "No hay proveedores registrados",
		},
		{
			Key: "proveedores-buscar", Section: SectionSuppliers, Title: "Buscar proveedores",
			Target: "proveedoresResult", Path: "/proveedores/buscar/{nombre}", ListField: "proveedores",
			Params: []Param{{Name: "nombre", Label: "Nombre del proveedor", Required: true, Message: "Por favor ingrese un nombre para buscar"}},
			Columns: []Column{
				Col("ID", "id"), Col("Nombre", "nombre"), Col("Documento", "documento"), OptCol("Email", "email"),
			},
			EmptyMessage: "No se encontraron proveedores con ese nombre",
		},
		{
			Key: "compras-pendientes", Section: SectionSuppliers, Title: "Compras pendientes",
			Target: "comprasResult", Path: "/proveedores/compras/pendientes", ListField: "compras",
			Columns: []Column{
				Col("ID", "id"), Col("Proveedor ID", "proveedor_id"), Col("Fecha Compra", "fecha_compra"),
				Col("Fecha Entrega", "fecha_entrega"), MoneyCol("Total", "total"), Col("Número Orden", "numero_orden"),
			},
			EmptyMessage: "No hay compras pendientes",
		},
		{
			Key: "compras-proveedor", Section: SectionSuppliers, Title: "Compras por proveedor",
			Target: "comprasResult", Path: "/proveedores/compras/proveedor/{proveedor_id}", ListField: "compras",
			Params: []Param{{Name: "proveedor_id", Label: "ID del proveedor"}},
			Columns: []Column{
				Col("ID", "id"), Col("Fecha Compra", "fecha_compra"), Col("Fecha Entrega", "fecha_entrega"),
				MoneyCol("Total", "total"), Col("Estado", "estado"), Col("Número Orden", "numero_orden"),
			},
			EmptyMessage: "No hay compras registradas para este proveedor",
		},
	}

	c := make(Catalog, len(specs))
	for _, s := range specs {
		c[s.Key] = s
	}
	return c
}
