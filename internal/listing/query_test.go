package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests Query — normalización del estado de listado
// ──────────────────────────────────────────────────────────────────────────────

func TestNewQuery_NormalizaValoresCrudos(t *testing.T) {
	q := NewQuery("evento", "", 0, 99, 10)

	assert.Equal(t, 1, q.Page, "página < 1 debe normalizarse a 1")
	assert.Equal(t, 10, q.Limit, "límite fuera del selector debe caer al default")
	assert.Equal(t, FilterAll, q.Filter, "filtro vacío equivale a Todos")
	assert.Equal(t, "evento", q.Search)
}

func TestNewQuery_RespetaLimitesDelSelector(t *testing.T) {
	for _, l := range Limits {
		q := NewQuery("", "", 1, l, 10)
		assert.Equal(t, l, q.Limit, "los límites del selector deben respetarse tal cual")
	}
}

func TestClampPage_AjustaAlRango(t *testing.T) {
	q := Query{Page: 7, Limit: 10}

	assert.Equal(t, 3, q.ClampPage(3).Page, "página por encima del total debe bajar al total")
	assert.Equal(t, 7, q.ClampPage(10).Page, "página dentro del rango no cambia")
	assert.Equal(t, 1, q.ClampPage(0).Page, "total 0 se trata como 1 página")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests FilterSet
// ──────────────────────────────────────────────────────────────────────────────

func TestFilterSet_TodosSiemprePrimeroYSinValor(t *testing.T) {
	fs := NewFilterSet([2]string{"Gestor", "manager"}, [2]string{"Administrador", "admin"})

	assert.Equal(t, FilterAll, fs.Labels[0], "Todos debe ir siempre en primera posición")
	assert.Equal(t, "", fs.Value(FilterAll), "Todos no envía valor al servidor")
	assert.Equal(t, "manager", fs.Value("Gestor"))
	assert.Equal(t, "", fs.Value("desconocido"), "etiqueta desconocida mapea a valor vacío")
	assert.True(t, fs.Contains("Administrador"))
	assert.False(t, fs.Contains("Inventado"))
}

func TestNewSortedFilterSet_OrdenaConColacionPortuguesa(t *testing.T) {
	fs := NewSortedFilterSet(
		[2]string{"Évora", "3"},
		[2]string{"Braga", "1"},
		[2]string{"Aveiro", "2"},
	)

	// Évora debe ordenarse junto a la E, no al final como haría un sort por bytes.
	assert.Equal(t, []string{FilterAll, "Aveiro", "Braga", "Évora"}, fs.Labels)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Pagination
// ──────────────────────────────────────────────────────────────────────────────

func TestNewPagination_FlechasYPaginas(t *testing.T) {
	p := NewPagination(Query{Page: 2, Limit: 10}, 4)

	assert.Equal(t, []int{1, 2, 3, 4}, p.Pages)
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())

	first := NewPagination(Query{Page: 1, Limit: 10}, 4)
	assert.False(t, first.HasPrev())

	last := NewPagination(Query{Page: 4, Limit: 10}, 4)
	assert.False(t, last.HasNext())
}

func TestNewPagination_TotalCeroSeTrataComoUnaPagina(t *testing.T) {
	p := NewPagination(Query{Page: 1, Limit: 10}, 0)
	assert.Equal(t, []int{1}, p.Pages)
}
