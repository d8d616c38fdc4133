package repository

import (
	"context"
	"time"

	"github.com/Sandeje96/gestion-pedidos/internal/domain/entity"
)

// PedidoFiltro filtros opcionales para listados de pedidos. Campo vacío = sin
// filtro. Archivado nil lista archivados y activos por igual.
type PedidoFiltro struct {
	Estado    string
	ClienteID string
	Archivado *bool
	Semana    string // semana_archivado exacta
}

// ResumenSemana resultado crudo del group-by por semana archivada.
// Lo produce la DB; el caso de uso lo convierte en DTO.
type ResumenSemana struct {
	Semana         string
	TotalPedidos   int
	FechaArchivado time.Time // mínima fecha_archivado de la semana
}

// ContadoresPedidos contadores agregados para los paneles.
type ContadoresPedidos struct {
	TotalActivos         int
	Pendientes           int
	EnProceso            int
	Completados          int
	Cancelados           int
	ModificadosSinVer    int // modificado=true y visto_por_fabrica=false
	ObservacionesSinLeer int // observaciones_fabrica no vacía y visto_por_vendedor=false
}

// PedidoRepository define el puerto de persistencia para Pedido.
type PedidoRepository interface {
	Create(ctx context.Context, p *entity.Pedido) error
	GetByID(ctx context.Context, id string) (*entity.Pedido, error)
	Update(ctx context.Context, p *entity.Pedido) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filtro PedidoFiltro) ([]*entity.Pedido, error)
	ListByCliente(ctx context.Context, clienteID string) ([]*entity.Pedido, error)

	// ArchivarActivos marca todos los pedidos no archivados con la semana y
	// fecha dadas, en una sola sentencia, y devuelve cuántos archivó. Debe
	// ejecutarse dentro de una transacción para que un CrearPedido concurrente
	// quede entero antes o entero después del corte.
	ArchivarActivos(ctx context.Context, semana string, fecha time.Time) (int64, error)

	// ResumenArchivadosAntesDe agrupa por semana los pedidos archivados con
	// fecha_archivado estrictamente anterior al corte.
	ResumenArchivadosAntesDe(ctx context.Context, corte time.Time) ([]ResumenSemana, error)

	// EliminarArchivadosAntesDe borra en una sola sentencia los pedidos
	// archivados con fecha_archivado estrictamente anterior al corte.
	// Nunca toca pedidos no archivados.
	EliminarArchivadosAntesDe(ctx context.Context, corte time.Time) (int64, error)

	// ResumenSemanas lista las semanas cerradas, más reciente primero.
	ResumenSemanas(ctx context.Context) ([]ResumenSemana, error)

	Contadores(ctx context.Context) (*ContadoresPedidos, error)

	// NotificacionesPorRuta cuenta, por ruta de cliente, los pedidos activos
	// modificados que la fábrica aún no vio.
	NotificacionesPorRuta(ctx context.Context) (map[string]int, error)
}
