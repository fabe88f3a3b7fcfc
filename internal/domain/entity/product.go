package entity

// Product representa un producto del inventario (recurso upstream).
type Product struct {
	ID            string
	Code          string
	Description   string
	ProductTypeID string
}

// ProductType tipo/categoría de producto.
type ProductType struct {
	ID     string
	Name   string
	Active bool
}
