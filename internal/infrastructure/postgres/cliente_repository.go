package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Sandeje96/gestion-pedidos/internal/domain/entity"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepository)(nil)

const clienteColumns = `id, nombre, telefono, direccion, ruta, notas, activo,
	creado_por_id, fecha_creacion, fecha_actualizacion`

// ClienteRepository implementación PostgreSQL del puerto de clientes.
type ClienteRepository struct {
	db Querier
}

// NewClienteRepository crea el repositorio atado a un pool o a una transacción.
func NewClienteRepository(db Querier) *ClienteRepository {
	return &ClienteRepository{db: db}
}

func (r *ClienteRepository) Create(ctx context.Context, c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (` + clienteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		c.ID, c.Nombre, c.Telefono, c.Direccion, c.Ruta, c.Notas, c.Activo,
		c.CreadoPorID, c.FechaCreacion, c.FechaActualizacion,
	)
	if err != nil {
		return fmt.Errorf("insertar cliente: %w", err)
	}
	return nil
}

func (r *ClienteRepository) GetByID(ctx context.Context, id string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE id = $1`

	c, err := scanCliente(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	return c, nil
}

func (r *ClienteRepository) Update(ctx context.Context, c *entity.Cliente) error {
	query := `
		UPDATE clientes SET
			nombre = $2, telefono = $3, direccion = $4, ruta = $5, notas = $6,
			activo = $7, fecha_actualizacion = $8
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		c.ID, c.Nombre, c.Telefono, c.Direccion, c.Ruta, c.Notas,
		c.Activo, c.FechaActualizacion,
	)
	if err != nil {
		return fmt.Errorf("actualizar cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete borra el cliente; sus pedidos caen por la FK con ON DELETE CASCADE.
func (r *ClienteRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ClienteRepository) ListActivos(ctx context.Context) ([]*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes
		WHERE activo = TRUE ORDER BY nombre`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar clientes activos: %w", err)
	}
	defer rows.Close()

	return scanClientes(rows)
}

func (r *ClienteRepository) ListConPedidosActivos(ctx context.Context) ([]*entity.Cliente, error) {
	query := `
		SELECT DISTINCT c.id, c.nombre, c.telefono, c.direccion, c.ruta, c.notas,
			c.activo, c.creado_por_id, c.fecha_creacion, c.fecha_actualizacion
		FROM clientes c
		JOIN pedidos p ON p.cliente_id = c.id
		WHERE c.activo = TRUE AND p.archivado = FALSE
		ORDER BY c.ruta, c.nombre`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar clientes con pedidos activos: %w", err)
	}
	defer rows.Close()

	return scanClientes(rows)
}

func (r *ClienteRepository) ListPorSemana(ctx context.Context, semana string) ([]*entity.Cliente, error) {
	query := `
		SELECT DISTINCT c.id, c.nombre, c.telefono, c.direccion, c.ruta, c.notas,
			c.activo, c.creado_por_id, c.fecha_creacion, c.fecha_actualizacion
		FROM clientes c
		JOIN pedidos p ON p.cliente_id = c.id
		WHERE p.archivado = TRUE AND p.semana_archivado = $1
		ORDER BY c.ruta, c.nombre`

	rows, err := r.db.Query(ctx, query, semana)
	if err != nil {
		return nil, fmt.Errorf("listar clientes de la semana: %w", err)
	}
	defer rows.Close()

	return scanClientes(rows)
}

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(
		&c.ID, &c.Nombre, &c.Telefono, &c.Direccion, &c.Ruta, &c.Notas, &c.Activo,
		&c.CreadoPorID, &c.FechaCreacion, &c.FechaActualizacion,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanClientes(rows pgx.Rows) ([]*entity.Cliente, error) {
	var out []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar clientes: %w", err)
	}
	return out, nil
}
