package entity

import "time"

// Roles válidos para Usuario. El rol se fija al crear el usuario y nunca se
// infiere dinámicamente.
const (
	RolVendedor = "vendedor"
	RolOperario = "operario"
)

// EsRolValido indica si el rol es uno de los aceptados.
func EsRolValido(rol string) bool {
	return rol == RolVendedor || rol == RolOperario
}

// Usuario representa a un vendedor o un operario de fábrica.
type Usuario struct {
	ID             string
	Nombre         string
	Username       string
	Email          string
	PasswordHash   string // bcrypt hash, nunca plano en dominio después de persistir
	Rol            string // vendedor, operario
	Activo         bool
	FechaCreacion  time.Time
	UltimaConexion *time.Time
}

// EsVendedor indica si el usuario pertenece al lado de ventas.
func (u *Usuario) EsVendedor() bool { return u.Rol == RolVendedor }

// EsOperario indica si el usuario pertenece al lado de fábrica.
func (u *Usuario) EsOperario() bool { return u.Rol == RolOperario }
