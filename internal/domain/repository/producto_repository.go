package repository

import (
	"context"

	"github.com/Sandeje96/gestion-pedidos/internal/domain/entity"
)

// ProductoRepository define el puerto de persistencia para el catálogo de productos.
type ProductoRepository interface {
	Create(ctx context.Context, p *entity.Producto) error
	GetByID(ctx context.Context, id string) (*entity.Producto, error)
	GetByNombre(ctx context.Context, nombre string) (*entity.Producto, error)
	Update(ctx context.Context, p *entity.Producto) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, soloDisponibles bool) ([]*entity.Producto, error)
}
