package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sandeje96/gestion-pedidos/internal/application/dto"
	"github.com/Sandeje96/gestion-pedidos/internal/domain"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/entity"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/repository"
)

// ProductoUseCase mantiene el catálogo de productos. El catálogo alimenta el
// autocompletado al crear pedidos; los pedidos guardan el nombre como texto,
// así que editar el catálogo jamás afecta pedidos existentes.
type ProductoUseCase struct {
	repo repository.ProductoRepository
}

// NewProductoUseCase construye el caso de uso con el puerto de persistencia.
func NewProductoUseCase(repo repository.ProductoRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo}
}

// Crear da de alta un producto. Devuelve domain.ErrDuplicate si el nombre ya existe.
func (uc *ProductoUseCase) Crear(ctx context.Context, in dto.GuardarProductoRequest) (*dto.ProductoResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	existente, err := uc.repo.GetByNombre(ctx, nombre)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}
	disponible := true
	if in.Disponible != nil {
		disponible = *in.Disponible
	}
	now := time.Now()
	p := &entity.Producto{
		ID:                 uuid.New().String(),
		Nombre:             nombre,
		Descripcion:        in.Descripcion,
		Precio:             in.Precio,
		Unidad:             in.Unidad,
		Disponible:         disponible,
		StockMinimo:        in.StockMinimo,
		FechaCreacion:      now,
		FechaActualizacion: now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductoResponse(p), nil
}

// Editar actualiza una entrada del catálogo.
func (uc *ProductoUseCase) Editar(ctx context.Context, id string, in dto.GuardarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if nombre := strings.TrimSpace(in.Nombre); nombre != "" {
		p.Nombre = nombre
	}
	p.Descripcion = in.Descripcion
	p.Precio = in.Precio
	p.Unidad = in.Unidad
	if in.Disponible != nil {
		p.Disponible = *in.Disponible
	}
	p.StockMinimo = in.StockMinimo
	p.FechaActualizacion = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductoResponse(p), nil
}

// Eliminar borra un producto del catálogo.
func (uc *ProductoUseCase) Eliminar(ctx context.Context, id string) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// Listar devuelve el catálogo; con soloDisponibles filtra los no disponibles.
func (uc *ProductoUseCase) Listar(ctx context.Context, soloDisponibles bool) ([]dto.ProductoResponse, error) {
	lista, err := uc.repo.List(ctx, soloDisponibles)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(lista))
	for _, p := range lista {
		out = append(out, *toProductoResponse(p))
	}
	return out, nil
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductoResponse{
		ID:            p.ID,
		Nombre:        p.Nombre,
		Descripcion:   p.Descripcion,
		Precio:        p.Precio,
		Unidad:        p.Unidad,
		Disponible:    p.Disponible,
		StockMinimo:   p.StockMinimo,
		FechaCreacion: p.FechaCreacion,
	}
}
