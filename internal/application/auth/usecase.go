package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sandeje96/gestion-pedidos/internal/application/dto"
	"github.com/Sandeje96/gestion-pedidos/internal/domain"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/entity"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/repository"
	"github.com/Sandeje96/gestion-pedidos/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	usuarios repository.UsuarioRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{usuarios: usuarioRepo, jwtCfg: jwtCfg}
}

// Registrar crea un usuario con rol fijo (vendedor u operario): hashea la
// contraseña con bcrypt y persiste. El rol no cambia nunca después del alta.
func (uc *UseCase) Registrar(ctx context.Context, in dto.RegistroRequest) (*dto.UsuarioResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username y password son obligatorios", domain.ErrInvalidInput)
	}
	if !entity.EsRolValido(in.Rol) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Rol)
	}
	existente, err := uc.usuarios.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrUsernameYaExiste
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		nombre = username
	}
	u := &entity.Usuario{
		ID:            uuid.New().String(),
		Nombre:        nombre,
		Username:      username,
		Email:         strings.TrimSpace(in.Email),
		PasswordHash:  string(hash),
		Rol:           in.Rol,
		Activo:        true,
		FechaCreacion: time.Now(),
	}
	if err := uc.usuarios.Create(ctx, u); err != nil {
		return nil, err
	}
	resp := toUsuarioResponse(u)
	return &resp, nil
}

// Login verifica username/password, registra la última conexión y devuelve
// token JWT más el usuario.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.usuarios.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !u.Activo {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	u.UltimaConexion = &now
	if err := uc.usuarios.Update(ctx, u); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Nombre, u.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Usuario: toUsuarioResponse(u),
	}, nil
}

func toUsuarioResponse(u *entity.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:             u.ID,
		Nombre:         u.Nombre,
		Username:       u.Username,
		Email:          u.Email,
		Rol:            u.Rol,
		Activo:         u.Activo,
		FechaCreacion:  u.FechaCreacion,
		UltimaConexion: u.UltimaConexion,
	}
}
