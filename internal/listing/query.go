// Package listing implementa el estado de consulta compartido por todas las
// pantallas de listado: paginación 1-based, filtros por etiqueta, búsqueda
// con debounce y caché de datos de referencia.
package listing

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterAll etiqueta distinguida de "sin filtro": no viaja ningún valor al
// servidor cuando está activa.
const FilterAll = "Todos"

// Limits tamaños de página que ofrece el selector.
var Limits = []int{5, 10, 25, 50}

// Query estado de consulta de una pantalla de listado.
type Query struct {
	Search string
	Filter string // etiqueta activa; FilterAll si no hay filtro
	Page   int    // 1-based
	Limit  int
}

// NewQuery normaliza los valores crudos de la URL: página mínima 1, límite
// restringido al selector (o el default de la página) y filtro vacío
// equivalente a FilterAll.
func NewQuery(search, filter string, page, limit, defaultLimit int) Query {
	if page < 1 {
		page = 1
	}
	if !validLimit(limit) {
		limit = defaultLimit
	}
	if filter == "" {
		filter = FilterAll
	}
	return Query{Search: search, Filter: filter, Page: page, Limit: limit}
}

func validLimit(limit int) bool {
	for _, l := range Limits {
		if limit == l {
			return true
		}
	}
	return false
}

// ClampPage ajusta la página al rango [1, totalPages] una vez conocido el
// total. Evita pedir páginas fuera de rango al cambiar el tamaño de página.
func (q Query) ClampPage(totalPages int) Query {
	if totalPages < 1 {
		totalPages = 1
	}
	if q.Page > totalPages {
		q.Page = totalPages
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// Pagination datos que consume la parcial de paginación.
type Pagination struct {
	Current int
	Total   int
	Limit   int
	Pages   []int
	Limits  []int
}

// NewPagination construye la paginación a partir de la query y el total
// devuelto por el servidor.
func NewPagination(q Query, totalPages int) Pagination {
	if totalPages < 1 {
		totalPages = 1
	}
	pages := make([]int, totalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return Pagination{Current: q.Page, Total: totalPages, Limit: q.Limit, Pages: pages, Limits: Limits}
}

// HasPrev / HasNext para las flechas de la parcial.
func (p Pagination) HasPrev() bool { return p.Current > 1 }
func (p Pagination) HasNext() bool { return p.Current < p.Total }

// FilterSet conjunto fijo de etiquetas de filtro de una pantalla, con el
// mapeo etiqueta -> valor upstream. FilterAll siempre va primero y mapea a
// valor vacío.
type FilterSet struct {
	Labels  []string
	byLabel map[string]string
}

// NewFilterSet construye el conjunto con las parejas etiqueta/valor dadas,
// en el orden recibido. FilterAll se antepone si no está.
func NewFilterSet(pairs ...[2]string) FilterSet {
	fs := FilterSet{byLabel: map[string]string{FilterAll: ""}}
	fs.Labels = append(fs.Labels, FilterAll)
	for _, p := range pairs {
		if p[0] == FilterAll {
			continue
		}
		fs.Labels = append(fs.Labels, p[0])
		fs.byLabel[p[0]] = p[1]
	}
	return fs
}

// NewSortedFilterSet igual que NewFilterSet pero ordena las etiquetas (sin
// contar FilterAll) con colación portuguesa, para que los nombres de
// almacenes y tipos salgan en orden natural.
func NewSortedFilterSet(pairs ...[2]string) FilterSet {
	cl := collate.New(language.Portuguese)
	sort.SliceStable(pairs, func(i, j int) bool {
		return cl.CompareString(pairs[i][0], pairs[j][0]) < 0
	})
	return NewFilterSet(pairs...)
}

// Value devuelve el valor upstream de la etiqueta activa; vacío para
// FilterAll o etiquetas desconocidas.
func (fs FilterSet) Value(label string) string {
	return fs.byLabel[label]
}

// Contains indica si la etiqueta pertenece al conjunto.
func (fs FilterSet) Contains(label string) bool {
	_, ok := fs.byLabel[label]
	return ok
}
