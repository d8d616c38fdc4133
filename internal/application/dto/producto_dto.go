package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GuardarProductoRequest crea o edita una entrada del catálogo.
type GuardarProductoRequest struct {
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Unidad      string          `json:"unidad"`
	Disponible  *bool           `json:"disponible"`
	StockMinimo int             `json:"stock_minimo"`
}

// ProductoResponse producto serializado.
type ProductoResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	Descripcion   string          `json:"descripcion,omitempty"`
	Precio        decimal.Decimal `json:"precio"`
	Unidad        string          `json:"unidad,omitempty"`
	Disponible    bool            `json:"disponible"`
	StockMinimo   int             `json:"stock_minimo"`
	FechaCreacion time.Time       `json:"fecha_creacion"`
}
