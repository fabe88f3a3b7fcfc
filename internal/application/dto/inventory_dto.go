package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/scheduler-admin/internal/domain/entity"
)

// ProductDTO producto del inventario.
type ProductDTO struct {
	ID            string `json:"_id"`
	Code          string `json:"code"`
	Description   string `json:"description"`
	ProductTypeID string `json:"product_type_id"`
}

// ToEntity mapeo directo.
func (d ProductDTO) ToEntity() entity.Product {
	return entity.Product{
		ID:            d.ID,
		Code:          d.Code,
		Description:   d.Description,
		ProductTypeID: d.ProductTypeID,
	}
}

// ProductListResponse respuesta paginada de GET products.
type ProductListResponse struct {
	Data       []ProductDTO `json:"data"`
	TotalPages int          `json:"totalPages"`
}

// ProductTypeDTO tipo de producto.
type ProductTypeDTO struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// ToEntity mapeo directo.
func (d ProductTypeDTO) ToEntity() entity.ProductType {
	return entity.ProductType{ID: d.ID, Name: d.Name, Active: d.Active}
}

// ProductTypesResponse respuesta de GET productTypes.
type ProductTypesResponse struct {
	Data []ProductTypeDTO `json:"data"`
}

// WarehouseDTO almacén.
type WarehouseDTO struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// ToEntity mapeo directo.
func (d WarehouseDTO) ToEntity() entity.Warehouse {
	return entity.Warehouse{ID: d.ID, Name: d.Name}
}

// WarehousesResponse respuesta de GET warehouses.
type WarehousesResponse struct {
	Data []WarehouseDTO `json:"data"`
}

// StockDTO contagem de un producto en un almacén.
type StockDTO struct {
	ID          string          `json:"_id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ToEntity mapeo directo.
func (d StockDTO) ToEntity() entity.Stock {
	return entity.Stock{
		ID:          d.ID,
		ProductID:   d.ProductID,
		WarehouseID: d.WarehouseID,
		Quantity:    d.Quantity,
	}
}

// StocksResponse respuesta de GET stocks.
type StocksResponse struct {
	Data []StockDTO `json:"data"`
}

// UpsertStockRequest cuerpo de POST stocks (crear) y PUT stocks (editar).
type UpsertStockRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// DeleteStockRequest cuerpo de PATCH stocks/delete: la pareja
// producto+almacén identifica la contagem a eliminar.
type DeleteStockRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
}
