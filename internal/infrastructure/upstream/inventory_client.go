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

// InventoryClient cliente de la API de inventario: productos, tipos,
// almacenes y contagens de stock.
type InventoryClient struct {
	*Client
}

// NewInventoryClient construye el cliente de inventario.
func NewInventoryClient(baseURL string, log *logger.Logger) *InventoryClient {
	return &InventoryClient{Client: NewClient(baseURL, log)}
}

// Products lista productos paginados. search y productTypeID vacíos se
// omiten de la query.
func (c *InventoryClient) Products(ctx context.Context, token string, page dto.PageQuery, search, productTypeID string) ([]entity.Product, int, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page.Page))
	q.Set("limit", strconv.Itoa(page.Limit))
	if search != "" {
		q.Set("search", search)
	}
	if productTypeID != "" {
		q.Set("product_type_id", productTypeID)
	}

	var out dto.ProductListResponse
	if err := c.doJSON(ctx, http.MethodGet, "products", token, q, nil, &out); err != nil {
		return nil, 0, err
	}
	products := make([]entity.Product, 0, len(out.Data))
	for _, p := range out.Data {
		products = append(products, p.ToEntity())
	}
	return products, out.TotalPages, nil
}

// AllProducts lista productos sin paginación (selects de los modales).
func (c *InventoryClient) AllProducts(ctx context.Context, token string) ([]entity.Product, error) {
	var out dto.ProductListResponse
	if err := c.doJSON(ctx, http.MethodGet, "products", token, nil, nil, &out); err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(out.Data))
	for _, p := range out.Data {
		products = append(products, p.ToEntity())
	}
	return products, nil
}

// ProductTypes lista los tipos de producto.
func (c *InventoryClient) ProductTypes(ctx context.Context, token string) ([]entity.ProductType, error) {
	var out dto.ProductTypesResponse
	if err := c.doJSON(ctx, http.MethodGet, "productTypes", token, nil, nil, &out); err != nil {
		return nil, err
	}
	types := make([]entity.ProductType, 0, len(out.Data))
	for _, t := range out.Data {
		types = append(types, t.ToEntity())
	}
	return types, nil
}

// Warehouses lista los almacenes.
func (c *InventoryClient) Warehouses(ctx context.Context, token string) ([]entity.Warehouse, error) {
	var out dto.WarehousesResponse
	if err := c.doJSON(ctx, http.MethodGet, "warehouses", token, nil, nil, &out); err != nil {
		return nil, err
	}
	warehouses := make([]entity.Warehouse, 0, len(out.Data))
	for _, w := range out.Data {
		warehouses = append(warehouses, w.ToEntity())
	}
	return warehouses, nil
}

// Stocks lista contagens, opcionalmente filtradas por almacén.
func (c *InventoryClient) Stocks(ctx context.Context, token, warehouseID string) ([]entity.Stock, error) {
	q := url.Values{}
	if warehouseID != "" {
		q.Set("warehouse_id", warehouseID)
	}
	var out dto.StocksResponse
	if err := c.doJSON(ctx, http.MethodGet, "stocks", token, q, nil, &out); err != nil {
		return nil, err
	}
	stocks := make([]entity.Stock, 0, len(out.Data))
	for _, s := range out.Data {
		stocks = append(stocks, s.ToEntity())
	}
	return stocks, nil
}

// CreateStock crea una contagem.
func (c *InventoryClient) CreateStock(ctx context.Context, token string, in dto.UpsertStockRequest) error {
	return c.doJSON(ctx, http.MethodPost, "stocks", token, nil, in, nil)
}

// UpdateStock actualiza la cantidad de una contagem existente.
func (c *InventoryClient) UpdateStock(ctx context.Context, token string, in dto.UpsertStockRequest) error {
	return c.doJSON(ctx, http.MethodPut, "stocks", token, nil, in, nil)
}

// DeleteStock elimina la contagem identificada por producto+almacén.
func (c *InventoryClient) DeleteStock(ctx context.Context, token string, in dto.DeleteStockRequest) error {
	return c.doJSON(ctx, http.MethodPatch, "stocks/delete", token, nil, in, nil)
}
