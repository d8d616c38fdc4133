package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Sandeje96/gestion-pedidos/internal/domain/entity"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/repository"
)

var _ repository.PedidoRepository = (*PedidoRepository)(nil)

// Columnas de la tabla pedidos, en el orden que esperan los scans.
const pedidoColumns = `id, cliente_id, producto_nombre, cantidad, unidad, estado, operario_id,
	observaciones_fabrica, notas_vendedor, modificado, visto_por_fabrica, visto_por_vendedor,
	esperando_contestacion, archivado, fecha_archivado, semana_archivado,
	fecha_creacion, fecha_actualizacion, fecha_completado`

// PedidoRepository implementación PostgreSQL del puerto de pedidos.
type PedidoRepository struct {
	db Querier
}

// NewPedidoRepository crea el repositorio atado a un pool o a una transacción.
func NewPedidoRepository(db Querier) *PedidoRepository {
	return &PedidoRepository{db: db}
}

func (r *PedidoRepository) Create(ctx context.Context, p *entity.Pedido) error {
	query := `
		INSERT INTO pedidos (` + pedidoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.ClienteID, p.ProductoNombre, p.Cantidad, p.Unidad, p.Estado, p.OperarioID,
		p.ObservacionesFabrica, p.NotasVendedor, p.Modificado, p.VistoPorFabrica, p.VistoPorVendedor,
		p.EsperandoContestacion, p.Archivado, p.FechaArchivado, p.SemanaArchivado,
		p.FechaCreacion, p.FechaActualizacion, p.FechaCompletado,
	)
	if err != nil {
		return fmt.Errorf("insertar pedido: %w", err)
	}
	return nil
}

func (r *PedidoRepository) GetByID(ctx context.Context, id string) (*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumns + ` FROM pedidos WHERE id = $1`

	p, err := scanPedido(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}
	return p, nil
}

func (r *PedidoRepository) Update(ctx context.Context, p *entity.Pedido) error {
	query := `
		UPDATE pedidos SET
			cliente_id = $2, producto_nombre = $3, cantidad = $4, unidad = $5,
			estado = $6, operario_id = $7, observaciones_fabrica = $8, notas_vendedor = $9,
			modificado = $10, visto_por_fabrica = $11, visto_por_vendedor = $12,
			esperando_contestacion = $13, archivado = $14, fecha_archivado = $15,
			semana_archivado = $16, fecha_actualizacion = $17, fecha_completado = $18
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		p.ID, p.ClienteID, p.ProductoNombre, p.Cantidad, p.Unidad,
		p.Estado, p.OperarioID, p.ObservacionesFabrica, p.NotasVendedor,
		p.Modificado, p.VistoPorFabrica, p.VistoPorVendedor,
		p.EsperandoContestacion, p.Archivado, p.FechaArchivado,
		p.SemanaArchivado, p.FechaActualizacion, p.FechaCompletado,
	)
	if err != nil {
		return fmt.Errorf("actualizar pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PedidoRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM pedidos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PedidoRepository) List(ctx context.Context, filtro repository.PedidoFiltro) ([]*entity.Pedido, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filtro.Estado != "" {
		add("estado = $%d", filtro.Estado)
	}
	if filtro.ClienteID != "" {
		add("cliente_id = $%d", filtro.ClienteID)
	}
	if filtro.Archivado != nil {
		add("archivado = $%d", *filtro.Archivado)
	}
	if filtro.Semana != "" {
		add("semana_archivado = $%d", filtro.Semana)
	}

	query := `SELECT ` + pedidoColumns + ` FROM pedidos`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY fecha_creacion DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}
	defer rows.Close()

	return scanPedidos(rows)
}

func (r *PedidoRepository) ListByCliente(ctx context.Context, clienteID string) ([]*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumns + ` FROM pedidos
		WHERE cliente_id = $1 AND archivado = FALSE
		ORDER BY fecha_creacion DESC`

	rows, err := r.db.Query(ctx, query, clienteID)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos del cliente: %w", err)
	}
	defer rows.Close()

	return scanPedidos(rows)
}

func (r *PedidoRepository) ArchivarActivos(ctx context.Context, semana string, fecha time.Time) (int64, error) {
	query := `
		UPDATE pedidos SET
			archivado = TRUE,
			semana_archivado = $1,
			fecha_archivado = $2,
			fecha_actualizacion = $2
		WHERE archivado = FALSE`

	tag, err := r.db.Exec(ctx, query, semana, fecha)
	if err != nil {
		return 0, fmt.Errorf("archivar pedidos activos: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PedidoRepository) ResumenArchivadosAntesDe(ctx context.Context, corte time.Time) ([]repository.ResumenSemana, error) {
	query := `
		SELECT semana_archivado, COUNT(*), MIN(fecha_archivado)
		FROM pedidos
		WHERE archivado = TRUE AND fecha_archivado < $1
		GROUP BY semana_archivado
		ORDER BY MIN(fecha_archivado) DESC`

	rows, err := r.db.Query(ctx, query, corte)
	if err != nil {
		return nil, fmt.Errorf("resumen de archivados: %w", err)
	}
	defer rows.Close()

	return scanResumenes(rows)
}

func (r *PedidoRepository) EliminarArchivadosAntesDe(ctx context.Context, corte time.Time) (int64, error) {
	query := `DELETE FROM pedidos WHERE archivado = TRUE AND fecha_archivado < $1`

	tag, err := r.db.Exec(ctx, query, corte)
	if err != nil {
		return 0, fmt.Errorf("eliminar archivados antiguos: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PedidoRepository) ResumenSemanas(ctx context.Context) ([]repository.ResumenSemana, error) {
	query := `
		SELECT semana_archivado, COUNT(*), MIN(fecha_archivado)
		FROM pedidos
		WHERE archivado = TRUE
		GROUP BY semana_archivado
		ORDER BY MIN(fecha_archivado) DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("resumen de semanas: %w", err)
	}
	defer rows.Close()

	return scanResumenes(rows)
}

func (r *PedidoRepository) Contadores(ctx context.Context) (*repository.ContadoresPedidos, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE NOT archivado),
			COUNT(*) FILTER (WHERE NOT archivado AND estado = 'pendiente'),
			COUNT(*) FILTER (WHERE NOT archivado AND estado = 'en_proceso'),
			COUNT(*) FILTER (WHERE NOT archivado AND estado = 'completado'),
			COUNT(*) FILTER (WHERE NOT archivado AND estado = 'cancelado'),
			COUNT(*) FILTER (WHERE NOT archivado AND modificado AND NOT visto_por_fabrica),
			COUNT(*) FILTER (WHERE NOT archivado AND observaciones_fabrica <> '' AND NOT visto_por_vendedor)
		FROM pedidos`

	var c repository.ContadoresPedidos
	err := r.db.QueryRow(ctx, query).Scan(
		&c.TotalActivos, &c.Pendientes, &c.EnProceso, &c.Completados,
		&c.Cancelados, &c.ModificadosSinVer, &c.ObservacionesSinLeer,
	)
	if err != nil {
		return nil, fmt.Errorf("contadores de pedidos: %w", err)
	}
	return &c, nil
}

func (r *PedidoRepository) NotificacionesPorRuta(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT c.ruta, COUNT(*)
		FROM pedidos p
		JOIN clientes c ON c.id = p.cliente_id
		WHERE NOT p.archivado AND p.modificado AND NOT p.visto_por_fabrica
		GROUP BY c.ruta`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("notificaciones por ruta: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			ruta  string
			total int
		)
		if err := rows.Scan(&ruta, &total); err != nil {
			return nil, fmt.Errorf("scan notificaciones: %w", err)
		}
		out[ruta] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar notificaciones: %w", err)
	}
	return out, nil
}

func scanPedido(row pgx.Row) (*entity.Pedido, error) {
	var p entity.Pedido
	err := row.Scan(
		&p.ID, &p.ClienteID, &p.ProductoNombre, &p.Cantidad, &p.Unidad, &p.Estado, &p.OperarioID,
		&p.ObservacionesFabrica, &p.NotasVendedor, &p.Modificado, &p.VistoPorFabrica, &p.VistoPorVendedor,
		&p.EsperandoContestacion, &p.Archivado, &p.FechaArchivado, &p.SemanaArchivado,
		&p.FechaCreacion, &p.FechaActualizacion, &p.FechaCompletado,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPedidos(rows pgx.Rows) ([]*entity.Pedido, error) {
	var out []*entity.Pedido
	for rows.Next() {
		p, err := scanPedido(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar pedidos: %w", err)
	}
	return out, nil
}

func scanResumenes(rows pgx.Rows) ([]repository.ResumenSemana, error) {
	var out []repository.ResumenSemana
	for rows.Next() {
		var rs repository.ResumenSemana
		if err := rows.Scan(&rs.Semana, &rs.TotalPedidos, &rs.FechaArchivado); err != nil {
			return nil, fmt.Errorf("scan resumen de semana: %w", err)
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar resúmenes: %w", err)
	}
	return out, nil
}
