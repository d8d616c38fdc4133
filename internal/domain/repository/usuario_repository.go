package repository

import (
	"context"

	"github.com/Sandeje96/gestion-pedidos/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario.
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	GetByUsername(ctx context.Context, username string) (*entity.Usuario, error)
	Update(ctx context.Context, u *entity.Usuario) error

	// ListOperariosActivos lista los operarios activos ordenados por nombre
	// (para el selector de asignación de pedidos).
	ListOperariosActivos(ctx context.Context) ([]*entity.Usuario, error)
}
