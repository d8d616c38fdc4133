package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrUsuarioNotFound  = errors.New("usuario no encontrado")
	ErrUsernameYaExiste = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrPedidoArchivado  = errors.New("el pedido está archivado y no admite cambios")
	ErrEstadoInvalido   = errors.New("estado de pedido inválido")
	ErrRutaInvalida     = errors.New("ruta de reparto inválida")
	ErrNoEsOperario     = errors.New("el usuario no es operario")
	ErrClienteInactivo  = errors.New("el cliente no existe o está inactivo")
)
