package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/scheduler-admin/internal/chrome"
	"github.com/jhoicas/scheduler-admin/internal/domain/entity"
	"github.com/jhoicas/scheduler-admin/internal/listing"
)

// ProductTypesHandler listado de tipos de producto. El backend devuelve la
// colección completa, así que la búsqueda se aplica aquí.
type ProductTypesHandler struct {
	*Base
	types *listing.Ref[entity.ProductType]
}

// NewProductTypesHandler construye el handler.
func NewProductTypesHandler(base *Base, types *listing.Ref[entity.ProductType]) *ProductTypesHandler {
	return &ProductTypesHandler{Base: base, types: types}
}

// Index GET /inventory/product_types.
func (h *ProductTypesHandler) Index(c *fiber.Ctx) error {
	sess, _ := currentSession(c)
	q := queryFrom(c, 10)

	extra := fiber.Map{}
	types, err := h.types.Get(c.Context(), sess.Token)
	if err != nil {
		if isUnauthorized(err) {
			return h.expireSession(c)
		}
		h.Log.Error().Err(err).Msg("cargar tipos de producto")
		extra["Error"] = upstreamMessage(err, "Erro ao carregar tipos de produto.")
	}

	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		filtered := types[:0:0]
		for _, t := range types {
			if strings.Contains(strings.ToLower(t.Name), needle) {
				filtered = append(filtered, t)
			}
		}
		types = filtered
	}

	h.setChrome(c, chrome.Descriptor{
		Title:             "Tipos de produto",
		BasePath:          "/inventory/product_types",
		Search:            true,
		SearchPlaceholder: "Pesquisar tipo...",
	})

	data := fiber.Map{
		"Types": types,
		"Query": q,
	}
	for k, v := range extra {
		data[k] = v
	}
	return h.render(c, "product_types", data)
}
