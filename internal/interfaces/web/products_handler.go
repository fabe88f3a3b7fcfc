package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/scheduler-admin/internal/application/dto"
	"github.com/jhoicas/scheduler-admin/internal/chrome"
	"github.com/jhoicas/scheduler-admin/internal/domain/entity"
	"github.com/jhoicas/scheduler-admin/internal/infrastructure/upstream"
	"github.com/jhoicas/scheduler-admin/internal/listing"
)

// ProductsHandler listado de productos del inventario con filtro por tipo.
type ProductsHandler struct {
	*Base
	inventory *upstream.InventoryClient
	types     *listing.Ref[entity.ProductType]
}

// NewProductsHandler construye el handler. types alimenta el filtro y la
// columna "Tipo".
func NewProductsHandler(base *Base, inventory *upstream.InventoryClient, types *listing.Ref[entity.ProductType]) *ProductsHandler {
	return &ProductsHandler{Base: base, inventory: inventory, types: types}
}

// Index GET /inventory/products.
func (h *ProductsHandler) Index(c *fiber.Ctx) error {
	sess, _ := currentSession(c)
	q := queryFrom(c, 10)

	// El filtro de tipo se construye con los tipos vigentes; si el refresh
	// falla se reutiliza el último bueno en vez de dejar el filtro vacío.
	types, terr := h.types.Get(c.Context(), sess.Token)
	if terr != nil && isUnauthorized(terr) {
		return h.expireSession(c)
	}
	filters := productTypeFilters(types)
	if !filters.Contains(q.Filter) {
		q.Filter = listing.FilterAll
	}

	extra := fiber.Map{}
	products, totalPages, err := h.inventory.Products(c.Context(), sess.Token,
		dto.PageQuery{Page: q.Page, Limit: q.Limit}, q.Search, filters.Value(q.Filter))
	if err != nil {
		if isUnauthorized(err) {
			return h.expireSession(c)
		}
		h.Log.Error().Err(err).Msg("cargar productos")
		extra["Error"] = upstreamMessage(err, "Erro ao carregar produtos.")
		totalPages = 1
	}
	if clamped := q.ClampPage(totalPages); clamped.Page != q.Page {
		q = clamped
		products, totalPages, err = h.inventory.Products(c.Context(), sess.Token,
			dto.PageQuery{Page: q.Page, Limit: q.Limit}, q.Search, filters.Value(q.Filter))
		if err != nil && isUnauthorized(err) {
			return h.expireSession(c)
		}
	}

	h.setChrome(c, chrome.Descriptor{
		Title:             "Produtos",
		BasePath:          "/inventory/products",
		Search:            true,
		SearchPlaceholder: "Pesquisar produto...",
		Filters:           filters.Labels,
		ActiveFilter:      q.Filter,
	})

	data := fiber.Map{
		"Products":   products,
		"TypeNames":  productTypeNames(types),
		"Query":      q,
		"Pagination": listing.NewPagination(q, totalPages),
	}
	for k, v := range extra {
		data[k] = v
	}
	return h.render(c, "products", data)
}

// productTypeFilters filtro por tipo, ordenado con colación portuguesa.
func productTypeFilters(types []entity.ProductType) listing.FilterSet {
	pairs := make([][2]string, 0, len(types))
	for _, t := range types {
		pairs = append(pairs, [2]string{t.Name, t.ID})
	}
	return listing.NewSortedFilterSet(pairs...)
}

// productTypeNames índice ID -> nombre para la columna "Tipo".
func productTypeNames(types []entity.ProductType) map[string]string {
	names := make(map[string]string, len(types))
	for _, t := range types {
		names[t.ID] = t.Name
	}
	return names
}
