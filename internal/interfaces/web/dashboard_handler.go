package web

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/scheduler-admin/internal/application/dto"
	"github.com/jhoicas/scheduler-admin/internal/chrome"
	"github.com/jhoicas/scheduler-admin/internal/domain/entity"
	"github.com/jhoicas/scheduler-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/scheduler-admin/internal/infrastructure/upstream"
	"github.com/jhoicas/scheduler-admin/internal/listing"
)

// Coordenadas iniciales del mapa del formulario de requisición (Barcelos).
const (
	MapDefaultLat = 41.5381
	MapDefaultLng = -8.6156
)

// Etiquetas del filtro de estado de revisión del dashboard.
var requisitionFilterLabels = []string{listing.FilterAll, "Pendentes", "Aprovadas", "Rejeitadas"}

// approvedParam traduce la etiqueta del filtro al parámetro approved del
// backend. "Todos" omite el parámetro; "Pendentes" lo envía vacío, que el
// backend distingue de la ausencia.
func approvedParam(label string) *string {
	var v string
	switch label {
	case "Pendentes":
		v = upstream.ApprovedPending
	case "Aprovadas":
		v = upstream.ApprovedYes
	case "Rejeitadas":
		v = upstream.ApprovedNo
	default:
		return nil
	}
	return &v
}

// DashboardHandler pantalla principal: requisiciones de eventos con filtro
// de estado, detalle, alta con mapa y exportación a PDF.
type DashboardHandler struct {
	*Base
	requisitions *upstream.RequisitionClient
	products     *listing.Ref[entity.Product]
	pdfGen       *pdf.RequisitionListGenerator
}

// NewDashboardHandler construye el handler. products alimenta el select de
// productos del modal de alta.
func NewDashboardHandler(base *Base, requisitions *upstream.RequisitionClient, products *listing.Ref[entity.Product]) *DashboardHandler {
	return &DashboardHandler{
		Base:         base,
		requisitions: requisitions,
		products:     products,
		pdfGen:       pdf.NewRequisitionListGenerator(),
	}
}

// Index GET /dashboard.
func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	return h.renderIndex(c, fiber.Map{})
}

func (h *DashboardHandler) renderIndex(c *fiber.Ctx, extra fiber.Map) error {
	sess, _ := currentSession(c)
	q := queryFrom(c, 10)
	if !containsLabel(requisitionFilterLabels, q.Filter) {
		q.Filter = listing.FilterAll
	}

	reqs, totalPages, err := h.requisitions.Requisitions(c.Context(), sess.Token,
		dto.PageQuery{Page: q.Page, Limit: q.Limit}, q.Search, approvedParam(q.Filter))
	if err != nil {
		if isUnauthorized(err) {
			return h.expireSession(c)
		}
		h.Log.Error().Err(err).Msg("cargar requisiciones")
		extra["Error"] = upstreamMessage(err, "Erro ao carregar requisições.")
		totalPages = 1
	}
	if clamped := q.ClampPage(totalPages); clamped.Page != q.Page {
		q = clamped
		reqs, totalPages, err = h.requisitions.Requisitions(c.Context(), sess.Token,
			dto.PageQuery{Page: q.Page, Limit: q.Limit}, q.Search, approvedParam(q.Filter))
		if err != nil && isUnauthorized(err) {
			return h.expireSession(c)
		}
	}

	// El select de productos del modal sobrevive a fallos de refresh gracias
	// a la caché de referencia.
	products, perr := h.products.Get(c.Context(), sess.Token)
	if perr != nil && isUnauthorized(perr) {
		return h.expireSession(c)
	}

	h.setChrome(c, chrome.Descriptor{
		Title:             "Requisições",
		BasePath:          "/dashboard",
		Search:            true,
		SearchPlaceholder: "Pesquisar evento...",
		Filters:           requisitionFilterLabels,
		ActiveFilter:      q.Filter,
		Buttons: []chrome.Button{
			{Label: "Nova requisição", Variant: "primary", Action: "#modal-create"},
			{Label: "Exportar PDF", Variant: "secondary", Action: withQuery("/dashboard/export.pdf", c)},
		},
	})

	data := fiber.Map{
		"Requisitions": reqs,
		"Products":     products,
		"Query":        q,
		"Pagination":   listing.NewPagination(q, totalPages),
		"MapLat":       MapDefaultLat,
		"MapLng":       MapDefaultLng,
	}
	for k, v := range extra {
		data[k] = v
	}
	return h.render(c, "dashboard", data)
}

// Create POST /dashboard/requisitions: alta de requisición desde el modal
// con el mapa. Los productos llegan como pares paralelos product_id[] /
// quantity[].
func (h *DashboardHandler) Create(c *fiber.Ctx) error {
	sess, _ := currentSession(c)

	in := dto.CreateRequisitionRequest{
		EventName: c.FormValue("event_name"),
		StartDate: c.FormValue("start_date"),
		EndDate:   c.FormValue("end_date"),
		Address: dto.AddressDTO{
			Street:       c.FormValue("street"),
			District:     c.FormValue("district"),
			Municipality: c.FormValue("municipality"),
			Locality:     c.FormValue("locality"),
			PostalCode:   c.FormValue("postal_code"),
			Country:      c.FormValue("country"),
		},
	}
	in.Address.Latitude, _ = strconv.ParseFloat(c.FormValue("latitude"), 64)
	in.Address.Longitude, _ = strconv.ParseFloat(c.FormValue("longitude"), 64)

	reRender := func(msg string) error {
		return h.renderIndex(c, fiber.Map{
			"OpenModal":   "create",
			"CreateError": msg,
			"CreateForm":  in,
		})
	}

	if in.EventName == "" || in.StartDate == "" || in.EndDate == "" {
		return reRender("Preencha o nome do evento e as datas.")
	}

	ids := formValues(c, "product_id")
	quantities := formValues(c, "quantity")
	for i, id := range ids {
		if id == "" || i >= len(quantities) {
			continue
		}
		qty, err := decimal.NewFromString(quantities[i])
		if err != nil || qty.LessThanOrEqual(decimal.Zero) {
			return reRender("Quantidade inválida para um dos produtos.")
		}
		in.RequiredProducts = append(in.RequiredProducts, dto.RequiredProductDTO{ID: id, Quantity: qty})
	}
	if len(in.RequiredProducts) == 0 {
		return reRender("Adicione pelo menos um produto.")
	}

	if err := h.requisitions.CreateRequisition(c.Context(), sess.Token, in); err != nil {
		if isUnauthorized(err) {
			return h.expireSession(c)
		}
		return reRender(upstreamMessage(err, "Erro ao criar requisição"))
	}

	setFlash(c, "Requisição criada com sucesso!")
	return c.Redirect(withQuery("/dashboard", c), fiber.StatusSeeOther)
}

// ExportPDF GET /dashboard/export.pdf: exporta el listado visible (mismo
// filtro, búsqueda y página) como documento A4.
func (h *DashboardHandler) ExportPDF(c *fiber.Ctx) error {
	sess, _ := currentSession(c)
	q := queryFrom(c, 10)
	if !containsLabel(requisitionFilterLabels, q.Filter) {
		q.Filter = listing.FilterAll
	}

	reqs, _, err := h.requisitions.Requisitions(c.Context(), sess.Token,
		dto.PageQuery{Page: q.Page, Limit: q.Limit}, q.Search, approvedParam(q.Filter))
	if err != nil {
		if isUnauthorized(err) {
			return h.expireSession(c)
		}
		setFlash(c, upstreamMessage(err, "Erro ao exportar requisições."))
		return c.Redirect(withQuery("/dashboard", c), fiber.StatusSeeOther)
	}

	doc, err := h.pdfGen.Generate(q.Filter, reqs)
	if err != nil {
		h.Log.Error().Err(err).Msg("generar PDF de requisiciones")
		setFlash(c, "Erro ao gerar o PDF.")
		return c.Redirect(withQuery("/dashboard", c), fiber.StatusSeeOther)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="requisicoes.pdf"`)
	return c.Send(doc)
}

// formValues lee todos los valores repetidos de un campo multipart o
// urlencoded (inputs con el mismo name).
func formValues(c *fiber.Ctx, key string) []string {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if vs, ok := form.Value[key]; ok {
			return vs
		}
	}
	var out []string
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		if string(k) == key {
			out = append(out, string(v))
		}
	})
	return out
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
