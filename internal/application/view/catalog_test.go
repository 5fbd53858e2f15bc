package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCatalog_Completo(t *testing.T) {
	c := DefaultCatalog()
	keys := c.Keys()
	assert.Len(t, keys, len(c), "toda vista del catálogo tiene orden de presentación")

	for _, k := range keys {
		s, _ := c.Get(k)
		assert.NotEmpty(t, s.Target, k)
		assert.NotEmpty(t, s.Columns, k)
		assert.NotEmpty(t, s.EmptyMessage, k)
		for _, p := range s.Params {
			assert.Contains(t, s.Path, "{"+p.Name+"}", "el parámetro %s de %s debe aparecer en la ruta", p.Name, k)
		}
	}

	total := 0
	for _, sec := range Sections {
		total += len(c.InSection(sec))
	}
	assert.Equal(t, len(c), total, "toda vista pertenece a una sección")
}

func TestSpec_BuildPath(t *testing.T) {
	s, ok := DefaultCatalog().Get("entregas-fecha")
	assert.True(t, ok)
	assert.Equal(t, "/entregas/fecha/2026-10-19", s.BuildPath(map[string]string{"fecha": " 2026-10-19 "}))

	s, _ = DefaultCatalog().Get("compras-proveedor")
	assert.Equal(t, "/proveedores/compras/proveedor/a%2Fb", s.BuildPath(map[string]string{"proveedor_id": "a/b"}))
}

func TestInSection_Ordenado(t *testing.T) {
	specs := DefaultCatalog().InSection(SectionInventory)
	var keys []string
	for _, s := range specs {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"productos", "productos-categoria", "inventario", "bajo-stock"}, keys)
}
