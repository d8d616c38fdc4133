package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrearPedidoRequest alta de pedido por el vendedor.
type CrearPedidoRequest struct {
	ClienteID      string          `json:"cliente_id"`
	ProductoNombre string          `json:"producto_nombre"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Unidad         string          `json:"unidad"`
	NotasVendedor  string          `json:"notas_vendedor"`
}

// EditarPedidoRequest edición de pedido por el vendedor.
type EditarPedidoRequest struct {
	ProductoNombre string          `json:"producto_nombre"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Unidad         string          `json:"unidad"`
	NotasVendedor  string          `json:"notas_vendedor"`
}

// ActualizarPedidoFabricaRequest actualización de estado por la fábrica.
// OperarioID nil deja la asignación como está; apuntando a cadena vacía la
// limpia. ObservacionesFabrica nil no toca las observaciones.
type ActualizarPedidoFabricaRequest struct {
	Estado               string  `json:"estado"`
	OperarioID           *string `json:"operario_id"`
	ObservacionesFabrica *string `json:"observaciones_fabrica"`
}

// AsignarOperarioRequest asignación directa de operario responsable.
type AsignarOperarioRequest struct {
	OperarioID *string `json:"operario_id"`
}

// PedidoResponse snapshot serializado de un pedido. Es también el payload de
// los eventos de difusión: siempre refleja el estado ya commiteado.
type PedidoResponse struct {
	ID                    string          `json:"id"`
	ClienteID             string          `json:"cliente_id"`
	ClienteNombre         string          `json:"cliente_nombre,omitempty"`
	ProductoNombre        string          `json:"producto_nombre"`
	Cantidad              decimal.Decimal `json:"cantidad"`
	Unidad                string          `json:"unidad,omitempty"`
	Estado                string          `json:"estado"`
	OperarioID            *string         `json:"operario_id"`
	OperarioNombre        string          `json:"operario_nombre,omitempty"`
	ObservacionesFabrica  string          `json:"observaciones_fabrica,omitempty"`
	NotasVendedor         string          `json:"notas_vendedor,omitempty"`
	Modificado            bool            `json:"modificado"`
	VistoPorFabrica       bool            `json:"visto_por_fabrica"`
	VistoPorVendedor      bool            `json:"visto_por_vendedor"`
	EsperandoContestacion bool            `json:"esperando_contestacion"`
	Archivado             bool            `json:"archivado"`
	FechaArchivado        *time.Time      `json:"fecha_archivado"`
	SemanaArchivado       string          `json:"semana_archivado,omitempty"`
	FechaCreacion         time.Time       `json:"fecha_creacion"`
	FechaActualizacion    time.Time       `json:"fecha_actualizacion"`
	FechaCompletado       *time.Time      `json:"fecha_completado"`
}

// PedidoEvent payload de los eventos que llevan el snapshot completo.
type PedidoEvent struct {
	Pedido PedidoResponse `json:"pedido"`
}

// PedidoVistoEvent payload de pedido_visto_por_fabrica.
type PedidoVistoEvent struct {
	PedidoID string         `json:"pedido_id"`
	Pedido   PedidoResponse `json:"pedido"`
}

// PedidoEliminadoEvent payload del evento de borrado: el pedido ya no existe,
// solo viajan los identificadores.
type PedidoEliminadoEvent struct {
	PedidoID  string `json:"pedido_id"`
	ClienteID string `json:"cliente_id"`
}

// SemanaCerradaEvent payload del cierre de semana.
type SemanaCerradaEvent struct {
	Semana          string `json:"semana"`
	TotalArchivados int64  `json:"total_archivados"`
	Mensaje         string `json:"mensaje"`
}

// CierreSemanaResponse resultado del cierre de semana para el llamador.
type CierreSemanaResponse struct {
	Semana          string `json:"semana"`
	TotalArchivados int64  `json:"total_archivados"`
}

// LimpiezaResponse resultado de la limpieza de pedidos antiguos.
type LimpiezaResponse struct {
	TotalEliminados int64  `json:"total_eliminados"`
	Mensaje         string `json:"mensaje"`
}

// SemanaResumenResponse una semana cerrada en el historial.
type SemanaResumenResponse struct {
	Semana         string    `json:"semana"`
	TotalPedidos   int       `json:"total_pedidos"`
	FechaArchivado time.Time `json:"fecha_archivado"`
}

// PanelVentasResponse datos del panel del vendedor.
type PanelVentasResponse struct {
	ClientesPorRuta map[string][]ClientePanelResponse `json:"clientes_por_ruta"`
	TotalClientes   int                               `json:"total_clientes"`
	TotalPedidos    int                               `json:"total_pedidos"`
	Pendientes      int                               `json:"pedidos_pendientes"`
	Completados     int                               `json:"pedidos_completados"`
	SinLeer         int                               `json:"pedidos_no_leidos"`
}

// PanelFabricaResponse datos del panel de fábrica.
type PanelFabricaResponse struct {
	ClientesPorRuta       map[string][]ClientePanelResponse `json:"clientes_por_ruta"`
	NotificacionesPorRuta map[string]int                    `json:"notificaciones_por_ruta"`
	Pendientes            int                               `json:"total_pendientes"`
	Completados           int                               `json:"total_completados"`
	Cancelados            int                               `json:"total_cancelados"`
	Modificados           int                               `json:"pedidos_modificados"`
	Operarios             []UsuarioResponse                 `json:"operarios"`
}
