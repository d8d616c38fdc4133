// Package fabrica es la fachada del lado operario: actualización de estados,
// asignación de responsables y revisión de modificaciones. La separación en
// fachadas tipadas hace que un handler de fábrica no pueda, por construcción,
// invocar operaciones de ventas.
package fabrica

import (
	"context"

	"github.com/Sandeje96/gestion-pedidos/internal/application/dto"
	"github.com/Sandeje96/gestion-pedidos/internal/application/pedidos"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/entity"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/repository"
)

// UseCase operaciones permitidas al rol operario.
type UseCase struct {
	engine     *pedidos.Engine
	pedidoRepo repository.PedidoRepository
	usuarios   repository.UsuarioRepository
}

// NewUseCase construye la fachada de fábrica.
func NewUseCase(
	engine *pedidos.Engine,
	pedidoRepo repository.PedidoRepository,
	usuarioRepo repository.UsuarioRepository,
) *UseCase {
	return &UseCase{engine: engine, pedidoRepo: pedidoRepo, usuarios: usuarioRepo}
}

// Panel arma los datos del panel de fábrica: clientes con pedidos activos por
// ruta, contadores, notificaciones por ruta y operarios asignables.
func (uc *UseCase) Panel(ctx context.Context) (*dto.PanelFabricaResponse, error) {
	porRuta, err := uc.engine.ClientesPorRuta(ctx)
	if err != nil {
		return nil, err
	}
	cont, err := uc.pedidoRepo.Contadores(ctx)
	if err != nil {
		return nil, err
	}
	notif, err := uc.pedidoRepo.NotificacionesPorRuta(ctx)
	if err != nil {
		return nil, err
	}
	operarios, err := uc.Operarios(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.PanelFabricaResponse{
		ClientesPorRuta:       porRuta,
		NotificacionesPorRuta: notif,
		Pendientes:            cont.Pendientes,
		Completados:           cont.Completados,
		Cancelados:            cont.Cancelados,
		Modificados:           cont.ModificadosSinVer,
		Operarios:             operarios,
	}, nil
}

// ActualizarPedido fija estado, operario y observaciones de un pedido.
func (uc *UseCase) ActualizarPedido(ctx context.Context, pedidoID string, in dto.ActualizarPedidoFabricaRequest) (*dto.PedidoResponse, error) {
	return uc.engine.ActualizarPorFabrica(ctx, pedidoID, pedidos.ActualizarFabricaInput{
		Estado:        in.Estado,
		OperarioID:    in.OperarioID,
		Observaciones: in.ObservacionesFabrica,
	})
}

// MarcarVisto da por revisada una modificación del vendedor.
func (uc *UseCase) MarcarVisto(ctx context.Context, pedidoID string) (*dto.PedidoResponse, error) {
	return uc.engine.MarcarVistoPorFabrica(ctx, pedidoID)
}

// AsignarOperario fija o limpia el operario responsable.
func (uc *UseCase) AsignarOperario(ctx context.Context, pedidoID string, in dto.AsignarOperarioRequest) (*dto.PedidoResponse, error) {
	return uc.engine.AsignarOperario(ctx, pedidoID, in.OperarioID)
}

// ListarPedidos lista pedidos con filtros opcionales de estado y cliente.
func (uc *UseCase) ListarPedidos(ctx context.Context, estado, clienteID string) ([]dto.PedidoResponse, error) {
	return uc.engine.ListarPedidos(ctx, repository.PedidoFiltro{
		Estado:    estado,
		ClienteID: clienteID,
	})
}

// Operarios lista los operarios activos para el selector de asignación.
func (uc *UseCase) Operarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	lista, err := uc.usuarios.ListOperariosActivos(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(lista))
	for _, u := range lista {
		out = append(out, toUsuarioResponse(u))
	}
	return out, nil
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
