package entity

import "github.com/shopspring/decimal"

// Warehouse almacén donde se cuentan existencias.
type Warehouse struct {
	ID   string
	Name string
}

// Stock es la contagem de un producto en un almacén. La pareja
// (ProductID, WarehouseID) identifica el registro en las mutaciones.
type Stock struct {
	ID          string
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
}
