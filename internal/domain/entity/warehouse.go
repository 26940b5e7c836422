package entity

// Warehouse representa una bodega donde se almacena inventario.
type Warehouse struct {
	ID      int64
	Name    string
	Address string
}
