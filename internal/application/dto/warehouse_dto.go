package dto

import "time"

// AddProductRequest body para POST /api/warehouses/products.
// CreatedAt es la fecha de referencia: la orden debe haberse creado antes.
type AddProductRequest struct {
	ProductID   int64     `json:"id_product"`
	WarehouseID int64     `json:"id_warehouse"`
	Amount      int       `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// AddProductResponse salida del ingreso a bodega: ID del registro en product_warehouse.
type AddProductResponse struct {
	ID int64 `json:"id"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}
