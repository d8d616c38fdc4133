package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Sandeje96/gestion-pedidos/internal/domain"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/entity"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepository)(nil)

const productoColumns = `id, nombre, descripcion, precio, unidad, disponible,
	stock_minimo, fecha_creacion, fecha_actualizacion`

// ProductoRepository implementación PostgreSQL del catálogo de productos.
type ProductoRepository struct {
	db Querier
}

// NewProductoRepository crea el repositorio atado a un pool o a una transacción.
func NewProductoRepository(db Querier) *ProductoRepository {
	return &ProductoRepository{db: db}
}

func (r *ProductoRepository) Create(ctx context.Context, p *entity.Producto) error {
	query := `
		INSERT INTO productos (` + productoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.Nombre, p.Descripcion, p.Precio, p.Unidad, p.Disponible,
		p.StockMinimo, p.FechaCreacion, p.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar producto: %w", err)
	}
	return nil
}

func (r *ProductoRepository) GetByID(ctx context.Context, id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1`

	p, err := scanProducto(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	return p, nil
}

func (r *ProductoRepository) GetByNombre(ctx context.Context, nombre string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE LOWER(nombre) = LOWER($1)`

	p, err := scanProducto(r.db.QueryRow(ctx, query, nombre))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener producto por nombre: %w", err)
	}
	return p, nil
}

func (r *ProductoRepository) Update(ctx context.Context, p *entity.Producto) error {
	query := `
		UPDATE productos SET
			nombre = $2, descripcion = $3, precio = $4, unidad = $5,
			disponible = $6, stock_minimo = $7, fecha_actualizacion = $8
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		p.ID, p.Nombre, p.Descripcion, p.Precio, p.Unidad,
		p.Disponible, p.StockMinimo, p.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("actualizar producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ProductoRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ProductoRepository) List(ctx context.Context, soloDisponibles bool) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos`
	if soloDisponibles {
		query += ` WHERE disponible = TRUE`
	}
	query += ` ORDER BY nombre`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar productos: %w", err)
	}
	return out, nil
}

func scanProducto(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	err := row.Scan(
		&p.ID, &p.Nombre, &p.Descripcion, &p.Precio, &p.Unidad, &p.Disponible,
		&p.StockMinimo, &p.FechaCreacion, &p.FechaActualizacion,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
