package web

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/scheduler-admin/internal/application/dto"
	"github.com/jhoicas/scheduler-admin/internal/chrome"
	"github.com/jhoicas/scheduler-admin/internal/domain/entity"
	"github.com/jhoicas/scheduler-admin/internal/infrastructure/upstream"
	"github.com/jhoicas/scheduler-admin/internal/listing"
)

// StocksHandler pantalla de contagens: existencias por producto y almacén,
// con alta, edición de cantidad y borrado.
type StocksHandler struct {
	*Base
	inventory  *upstream.InventoryClient
	warehouses *listing.Ref[entity.Warehouse]
	products   *listing.Ref[entity.Product]
}

// NewStocksHandler construye el handler.
func NewStocksHandler(base *Base, inventory *upstream.InventoryClient, warehouses *listing.Ref[entity.Warehouse], products *listing.Ref[entity.Product]) *StocksHandler {
	return &StocksHandler{Base: base, inventory: inventory, warehouses: warehouses, products: products}
}

// Index GET /inventory/stocks.
func (h *StocksHandler) Index(c *fiber.Ctx) error {
	return h.renderIndex(c, fiber.Map{})
}

func (h *StocksHandler) renderIndex(c *fiber.Ctx, extra fiber.Map) error {
	sess, _ := currentSession(c)
	q := queryFrom(c, 10)

	warehouses, werr := h.warehouses.Get(c.Context(), sess.Token)
	if werr != nil && isUnauthorized(werr) {
		return h.expireSession(c)
	}
	filters := warehouseFilters(warehouses)
	if !filters.Contains(q.Filter) {
		q.Filter = listing.FilterAll
	}

	stocks, err := h.inventory.Stocks(c.Context(), sess.Token, filters.Value(q.Filter))
	if err != nil {
		if isUnauthorized(err) {
			return h.expireSession(c)
		}
		h.Log.Error().Err(err).Msg("cargar contagens")
		extra["Error"] = upstreamMessage(err, "Erro ao carregar contagens.")
	}

	products, perr := h.products.Get(c.Context(), sess.Token)
	if perr != nil && isUnauthorized(perr) {
		return h.expireSession(c)
	}
	names := productNames(products)

	// El backend no pagina las contagens; la búsqueda por código o
	// descripción del producto se resuelve aquí.
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		filtered := stocks[:0:0]
		for _, s := range stocks {
			if strings.Contains(strings.ToLower(names[s.ProductID]), needle) {
				filtered = append(filtered, s)
			}
		}
		stocks = filtered
	}

	h.setChrome(c, chrome.Descriptor{
		Title:             "Contagens",
		BasePath:          "/inventory/stocks",
		Search:            true,
		SearchPlaceholder: "Pesquisar produto...",
		Filters:           filters.Labels,
		ActiveFilter:      q.Filter,
		Buttons: []chrome.Button{
			{Label: "Nova contagem", Variant: "primary", Action: "#modal-create"},
		},
	})

	data := fiber.Map{
		"Stocks":         stocks,
		"Products":       products,
		"ProductNames":   names,
		"Warehouses":     warehouses,
		"WarehouseNames": warehouseNames(warehouses),
		"Query":          q,
	}
	for k, v := range extra {
		data[k] = v
	}
	return h.render(c, "stocks", data)
}

// stockForm valores crudos del formulario de contagem; viajan de vuelta a la
// vista cuando la mutación falla, para que el operador corrija y reintente.
type stockForm struct {
	ProductID   string
	WarehouseID string
	Quantity    string
}

// Create POST /inventory/stocks.
func (h *StocksHandler) Create(c *fiber.Ctx) error {
	return h.upsert(c, false, h.inventory.CreateStock,
		"Contagem criada com sucesso!", "Erro ao criar contagem")
}

// Update POST /inventory/stocks/update: cambia la cantidad de la pareja
// producto+almacén.
func (h *StocksHandler) Update(c *fiber.Ctx) error {
	return h.upsert(c, true, h.inventory.UpdateStock,
		"Contagem atualizada com sucesso!", "Erro ao atualizar contagem")
}

// upsert lógica común de alta y edición: valida la cantidad localmente y, si
// el upstream rechaza, re-renderiza con el modal abierto y los valores
// intactos.
func (h *StocksHandler) upsert(c *fiber.Ctx, edit bool,
	call func(ctx context.Context, token string, in dto.UpsertStockRequest) error,
	okMsg, failMsg string) error {
	sess, _ := currentSession(c)

	form := stockForm{
		ProductID:   c.FormValue("product_id"),
		WarehouseID: c.FormValue("warehouse_id"),
		Quantity:    c.FormValue("quantity"),
	}
	// El modal de edición sólo existe para parejas producto+almacén reales;
	// sin ids completos, el único hueco garantizado para el mensaje es el
	// modal de alta.
	modal := "create"
	if edit && form.ProductID != "" && form.WarehouseID != "" {
		modal = "edit-" + form.ProductID + "-" + form.WarehouseID
	}
	reRender := func(msg string) error {
		return h.renderIndex(c, fiber.Map{
			"OpenModal":  modal,
			"ModalError": msg,
			"ModalForm":  form,
		})
	}

	if form.ProductID == "" || form.WarehouseID == "" {
		return reRender("Selecione o produto e o armazém.")
	}
	qty, err := decimal.NewFromString(form.Quantity)
	if err != nil || qty.IsNegative() {
		return reRender("Quantidade inválida.")
	}
	in := dto.UpsertStockRequest{
		ProductID:   form.ProductID,
		WarehouseID: form.WarehouseID,
		Quantity:    qty,
	}

	if err := call(c.Context(), sess.Token, in); err != nil {
		if isUnauthorized(err) {
			return h.expireSession(c)
		}
		return reRender(upstreamMessage(err, failMsg))
	}

	setFlash(c, okMsg)
	return c.Redirect(withQuery("/inventory/stocks", c), fiber.StatusSeeOther)
}

// Delete POST /inventory/stocks/delete.
func (h *StocksHandler) Delete(c *fiber.Ctx) error {
	sess, _ := currentSession(c)
	in := dto.DeleteStockRequest{
		ProductID:   c.FormValue("product_id"),
		WarehouseID: c.FormValue("warehouse_id"),
	}
	if err := h.inventory.DeleteStock(c.Context(), sess.Token, in); err != nil {
		if isUnauthorized(err) {
			return h.expireSession(c)
		}
		return h.renderIndex(c, fiber.Map{
			"OpenModal":  "delete-" + in.ProductID + "-" + in.WarehouseID,
			"ModalError": upstreamMessage(err, "Erro ao remover contagem"),
		})
	}
	setFlash(c, "Contagem removida com sucesso!")
	return c.Redirect(withQuery("/inventory/stocks", c), fiber.StatusSeeOther)
}

func warehouseFilters(warehouses []entity.Warehouse) listing.FilterSet {
	pairs := make([][2]string, 0, len(warehouses))
	for _, w := range warehouses {
		pairs = append(pairs, [2]string{w.Name, w.ID})
	}
	return listing.NewSortedFilterSet(pairs...)
}

func warehouseNames(warehouses []entity.Warehouse) map[string]string {
	names := make(map[string]string, len(warehouses))
	for _, w := range warehouses {
		names[w.ID] = w.Name
	}
	return names
}

func productNames(products []entity.Product) map[string]string {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Code + " " + p.Description
	}
	return names
}
