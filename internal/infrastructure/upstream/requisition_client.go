package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/scheduler-admin/internal/application/dto"
	"github.com/jhoicas/scheduler-admin/internal/domain/entity"
	"github.com/jhoicas/scheduler-admin/pkg/logger"
)

// Valores del filtro approved de GET requisitions. El backend distingue
// entre el parámetro presente-pero-vacío (pendientes) y ausente (todas).
const (
	ApprovedPending = ""      // approved= (vacío): sin revisar
	ApprovedYes     = "true"  // aprobadas
	ApprovedNo      = "false" // rechazadas
)

// RequisitionClient cliente de la API de requisiciones de eventos.
type RequisitionClient struct {
	*Client
}

// NewRequisitionClient construye el cliente de requisiciones.
func NewRequisitionClient(baseURL string, log *logger.Logger) *RequisitionClient {
	return &RequisitionClient{Client: NewClient(baseURL, log)}
}

// Requisitions lista requisiciones paginadas. approved nil omite el
// parámetro (todas); no-nil lo envía con el valor indicado, incluido vacío.
func (c *RequisitionClient) Requisitions(ctx context.Context, token string, page dto.PageQuery, search string, approved *string) ([]entity.Requisition, int, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page.Page))
	q.Set("limit", strconv.Itoa(page.Limit))
	if search != "" {
		q.Set("search", search)
	}
	if approved != nil {
		q.Set("approved", *approved)
	}

	var out dto.RequisitionListResponse
	if err := c.doJSON(ctx, http.MethodGet, "requisitions", token, q, nil, &out); err != nil {
		return nil, 0, err
	}
	reqs := make([]entity.Requisition, 0, len(out.Data))
	for _, r := range out.Data {
		reqs = append(reqs, r.ToEntity())
	}
	return reqs, out.TotalPages, nil
}

// CreateRequisition registra una nueva requisición de evento.
func (c *RequisitionClient) CreateRequisition(ctx context.Context, token string, in dto.CreateRequisitionRequest) error {
	return c.doJSON(ctx, http.MethodPost, "requisitions", token, nil, in, nil)
}
