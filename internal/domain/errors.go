package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")

	// Resultados esperados del flujo de ingreso a bodega (se devuelven, no son fallas).
	ErrProductNotFound   = errors.New("el producto con el id indicado no existe")
	ErrWarehouseNotFound = errors.New("la bodega con el id indicado no existe")
	ErrNoEligibleOrder   = errors.New("no existe una orden para el producto que cumpla las condiciones")
	ErrAlreadyFulfilled  = errors.New("la orden ya fue completada")

	// Fallas inesperadas: se registran con detalle y se exponen con mensaje genérico.
	ErrInconsistentState = errors.New("estado inconsistente de los datos")
	ErrStoreUnavailable  = errors.New("almacenamiento no disponible")
)

var businessErrors = []error{
	ErrInvalidInput,
	ErrProductNotFound,
	ErrWarehouseNotFound,
	ErrNoEligibleOrder,
	ErrAlreadyFulfilled,
}

// IsBusinessError indica si err es un resultado de negocio esperado (error del cliente)
// y no una falla de infraestructura o de integridad.
func IsBusinessError(err error) bool {
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
