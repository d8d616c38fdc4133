package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa una entrada del catálogo de productos que se pueden
// pedir. Los pedidos guardan el nombre como texto, no una referencia: editar
// el catálogo nunca afecta pedidos ya creados.
type Producto struct {
	ID                 string
	Nombre             string
	Descripcion        string
	Precio             decimal.Decimal // opcional, cero si no se define
	Unidad             string          // ej: "kg", "unidad", "litro"
	Disponible         bool
	StockMinimo        int // para alertas de stock
	FechaCreacion      time.Time
	FechaActualizacion time.Time
}
