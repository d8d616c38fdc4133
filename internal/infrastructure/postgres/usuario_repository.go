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

var _ repository.UsuarioRepository = (*UsuarioRepository)(nil)

const usuarioColumns = `id, nombre, username, email, password_hash, rol, activo,
	fecha_creacion, ultima_conexion`

// UsuarioRepository implementación PostgreSQL del puerto de usuarios.
type UsuarioRepository struct {
	db Querier
}

// NewUsuarioRepository crea el repositorio atado a un pool o a una transacción.
func NewUsuarioRepository(db Querier) *UsuarioRepository {
	return &UsuarioRepository{db: db}
}

func (r *UsuarioRepository) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (` + usuarioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		u.ID, u.Nombre, u.Username, u.Email, u.PasswordHash, u.Rol, u.Activo,
		u.FechaCreacion, u.UltimaConexion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameYaExiste
		}
		return fmt.Errorf("insertar usuario: %w", err)
	}
	return nil
}

func (r *UsuarioRepository) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE id = $1`

	u, err := scanUsuario(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	return u, nil
}

func (r *UsuarioRepository) GetByUsername(ctx context.Context, username string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE username = $1`

	u, err := scanUsuario(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener usuario por username: %w", err)
	}
	return u, nil
}

func (r *UsuarioRepository) Update(ctx context.Context, u *entity.Usuario) error {
	query := `
		UPDATE usuarios SET
			nombre = $2, username = $3, email = $4, password_hash = $5,
			rol = $6, activo = $7, ultima_conexion = $8
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		u.ID, u.Nombre, u.Username, u.Email, u.PasswordHash,
		u.Rol, u.Activo, u.UltimaConexion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameYaExiste
		}
		return fmt.Errorf("actualizar usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *UsuarioRepository) ListOperariosActivos(ctx context.Context) ([]*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios
		WHERE rol = $1 AND activo = TRUE ORDER BY nombre`

	rows, err := r.db.Query(ctx, query, entity.RolOperario)
	if err != nil {
		return nil, fmt.Errorf("listar operarios: %w", err)
	}
	defer rows.Close()

	var out []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar usuarios: %w", err)
	}
	return out, nil
}

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(
		&u.ID, &u.Nombre, &u.Username, &u.Email, &u.PasswordHash, &u.Rol, &u.Activo,
		&u.FechaCreacion, &u.UltimaConexion,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
