package pedidos

import (
	"context"

	"github.com/Sandeje96/gestion-pedidos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de pedidos:
// o se persiste todo lo que hizo fn, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		pedidoRepo repository.PedidoRepository,
		clienteRepo repository.ClienteRepository,
		usuarioRepo repository.UsuarioRepository,
	) error) error
}

// Broadcaster publica un evento a todas las sesiones conectadas. La entrega es
// best-effort y sin ack: una sesión desconectada en el momento de emitir no
// recibe nada y debe refrescar su estado al reconectar. Un fallo de entrega
// jamás revierte el cambio ya commiteado.
type Broadcaster interface {
	Publish(evento string, data any)
}

// Eventos emitidos por el motor. Los nombres forman parte del contrato con los
// paneles conectados por WebSocket.
const (
	EventoNuevoPedido           = "nuevo_pedido"
	EventoPedidoModificado      = "pedido_modificado"
	EventoPedidoActualizado     = "pedido_actualizado"
	EventoPedidoVistoPorFabrica = "pedido_visto_por_fabrica"
	EventoPedidoAsignado        = "pedido_asignado"
	EventoPedidoEliminado       = "pedido_eliminado"
	EventoSemanaCerrada         = "semana_cerrada"
)
