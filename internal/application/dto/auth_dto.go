package dto

import "time"

// RegistroRequest alta de usuario (vendedor u operario).
type RegistroRequest struct {
	Nombre   string `json:"nombre"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol"` // "vendedor" | "operario"
}

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UsuarioResponse usuario serializado (sin contraseña).
type UsuarioResponse struct {
	ID             string     `json:"id"`
	Nombre         string     `json:"nombre"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Rol            string     `json:"rol"`
	Activo         bool       `json:"activo"`
	FechaCreacion  time.Time  `json:"fecha_creacion"`
	UltimaConexion *time.Time `json:"ultima_conexion,omitempty"`
}

// LoginResponse token JWT más el usuario autenticado.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}
