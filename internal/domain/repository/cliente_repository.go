package repository

import (
	"context"

	"github.com/Sandeje96/gestion-pedidos/internal/domain/entity"
)

// ClienteRepository define el puerto de persistencia para Cliente.
// Delete borra también los pedidos del cliente (cascada): el cliente es dueño
// de sus pedidos y nunca quedan pedidos colgando de un cliente inexistente.
type ClienteRepository interface {
	Create(ctx context.Context, c *entity.Cliente) error
	GetByID(ctx context.Context, id string) (*entity.Cliente, error)
	Update(ctx context.Context, c *entity.Cliente) error
	Delete(ctx context.Context, id string) error

	// ListActivos lista los clientes activos ordenados por nombre (para el
	// selector de cliente al crear pedidos).
	ListActivos(ctx context.Context) ([]*entity.Cliente, error)

	// ListConPedidosActivos lista los clientes activos que tienen al menos un
	// pedido no archivado, ordenados por ruta y nombre. Es la consulta base de
	// los dos paneles; la agrupación por ruta es del lado de presentación.
	ListConPedidosActivos(ctx context.Context) ([]*entity.Cliente, error)

	// ListPorSemana lista los clientes con pedidos archivados en la semana
	// dada, ordenados por ruta y nombre.
	ListPorSemana(ctx context.Context, semana string) ([]*entity.Cliente, error)
}
