// Package ventas es la fachada del lado vendedor: altas y ediciones de
// clientes y pedidos, cierre de semana e historial. Un handler que recibe
// este caso de uso no puede invocar operaciones de fábrica; el reparto de
// permisos lo decide qué interfaz se le entrega, no chequeos de rol sueltos.
package ventas

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sandeje96/gestion-pedidos/internal/application/dto"
	"github.com/Sandeje96/gestion-pedidos/internal/application/pedidos"
	"github.com/Sandeje96/gestion-pedidos/internal/domain"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/entity"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/repository"
)

// UseCase operaciones permitidas al rol vendedor.
type UseCase struct {
	engine        *pedidos.Engine
	clientes      repository.ClienteRepository
	pedidoRepo    repository.PedidoRepository
	retencionDias int
}

// NewUseCase construye la fachada de ventas.
func NewUseCase(
	engine *pedidos.Engine,
	clienteRepo repository.ClienteRepository,
	pedidoRepo repository.PedidoRepository,
	retencionDias int,
) *UseCase {
	return &UseCase{
		engine:        engine,
		clientes:      clienteRepo,
		pedidoRepo:    pedidoRepo,
		retencionDias: retencionDias,
	}
}

// CrearCliente da de alta un cliente en la ruta indicada.
func (uc *UseCase) CrearCliente(ctx context.Context, creadoPorID string, in dto.GuardarClienteRequest) (*dto.ClienteResponse, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	ruta := in.Ruta
	if ruta == "" {
		ruta = entity.RutaPorDefecto
	}
	if !entity.EsRutaValida(ruta) {
		return nil, fmt.Errorf("%w: %q", domain.ErrRutaInvalida, ruta)
	}
	now := time.Now()
	c := &entity.Cliente{
		ID:                 uuid.New().String(),
		Nombre:             strings.TrimSpace(in.Nombre),
		Telefono:           in.Telefono,
		Direccion:          in.Direccion,
		Ruta:               ruta,
		Notas:              in.Notas,
		Activo:             true,
		CreadoPorID:        creadoPorID,
		FechaCreacion:      now,
		FechaActualizacion: now,
	}
	if err := uc.clientes.Create(ctx, c); err != nil {
		return nil, err
	}
	return pedidos.ToClienteResponse(c), nil
}

// EditarCliente actualiza los datos de un cliente. Cualquier vendedor puede
// editar cualquier cliente.
func (uc *UseCase) EditarCliente(ctx context.Context, clienteID string, in dto.GuardarClienteRequest) (*dto.ClienteResponse, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if !entity.EsRutaValida(in.Ruta) {
		return nil, fmt.Errorf("%w: %q", domain.ErrRutaInvalida, in.Ruta)
	}
	c, err := uc.clientes.GetByID(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Nombre = strings.TrimSpace(in.Nombre)
	c.Telefono = in.Telefono
	c.Direccion = in.Direccion
	c.Ruta = in.Ruta
	c.Notas = in.Notas
	c.FechaActualizacion = time.Now()
	if err := uc.clientes.Update(ctx, c); err != nil {
		return nil, err
	}
	return pedidos.ToClienteResponse(c), nil
}

// EliminarCliente borra el cliente y, en cascada, todos sus pedidos.
func (uc *UseCase) EliminarCliente(ctx context.Context, clienteID string) error {
	c, err := uc.clientes.GetByID(ctx, clienteID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.clientes.Delete(ctx, clienteID)
}

// Panel arma los datos del panel del vendedor: clientes agrupados por ruta y
// contadores rápidos.
func (uc *UseCase) Panel(ctx context.Context) (*dto.PanelVentasResponse, error) {
	porRuta, err := uc.engine.ClientesPorRuta(ctx)
	if err != nil {
		return nil, err
	}
	cont, err := uc.pedidoRepo.Contadores(ctx)
	if err != nil {
		return nil, err
	}
	totalClientes := 0
	for _, cs := range porRuta {
		totalClientes += len(cs)
	}
	return &dto.PanelVentasResponse{
		ClientesPorRuta: porRuta,
		TotalClientes:   totalClientes,
		TotalPedidos:    cont.TotalActivos,
		Pendientes:      cont.Pendientes,
		Completados:     cont.Completados,
		SinLeer:         cont.ObservacionesSinLeer,
	}, nil
}

// CrearPedido delega en el motor de pedidos.
func (uc *UseCase) CrearPedido(ctx context.Context, in dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	return uc.engine.CrearPedido(ctx, pedidos.CrearPedidoInput{
		ClienteID:      in.ClienteID,
		ProductoNombre: in.ProductoNombre,
		Cantidad:       in.Cantidad,
		Unidad:         in.Unidad,
		NotasVendedor:  in.NotasVendedor,
	})
}

// EditarPedido delega en el motor; la edición siempre re-marca el pedido para
// revisión de fábrica.
func (uc *UseCase) EditarPedido(ctx context.Context, pedidoID string, in dto.EditarPedidoRequest) (*dto.PedidoResponse, error) {
	return uc.engine.ActualizarPorVendedor(ctx, pedidoID, pedidos.EditarPedidoInput{
		ProductoNombre: in.ProductoNombre,
		Cantidad:       in.Cantidad,
		Unidad:         in.Unidad,
		NotasVendedor:  in.NotasVendedor,
	})
}

// EliminarPedido borra un pedido de forma definitiva.
func (uc *UseCase) EliminarPedido(ctx context.Context, pedidoID string) error {
	return uc.engine.EliminarPedido(ctx, pedidoID)
}

// MarcarLeido da por leídas las observaciones de fábrica de un pedido.
func (uc *UseCase) MarcarLeido(ctx context.Context, pedidoID string) (*dto.PedidoResponse, error) {
	return uc.engine.MarcarVistoPorVendedor(ctx, pedidoID)
}

// CerrarSemana archiva todos los pedidos activos bajo la etiqueta de la
// semana actual.
func (uc *UseCase) CerrarSemana(ctx context.Context) (*dto.CierreSemanaResponse, error) {
	return uc.engine.CerrarSemana(ctx)
}

// LimpiarAntiguos elimina los pedidos archivados más viejos que la ventana de
// retención configurada.
func (uc *UseCase) LimpiarAntiguos(ctx context.Context) (*dto.LimpiezaResponse, error) {
	return uc.engine.LimpiarAntiguos(ctx, uc.retencionDias)
}

// HistorialSemanas lista las semanas cerradas, más reciente primero.
func (uc *UseCase) HistorialSemanas(ctx context.Context) ([]dto.SemanaResumenResponse, error) {
	resumen, err := uc.pedidoRepo.ResumenSemanas(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SemanaResumenResponse, 0, len(resumen))
	for _, r := range resumen {
		out = append(out, dto.SemanaResumenResponse{
			Semana:         r.Semana,
			TotalPedidos:   r.TotalPedidos,
			FechaArchivado: r.FechaArchivado,
		})
	}
	return out, nil
}

// VerSemana devuelve los pedidos de una semana archivada, agrupados por ruta.
func (uc *UseCase) VerSemana(ctx context.Context, semana string) (map[string][]dto.ClientePanelResponse, error) {
	return uc.engine.ClientesPorRutaDeSemana(ctx, semana)
}

// PedidosDeCliente lista todos los pedidos de un cliente.
func (uc *UseCase) PedidosDeCliente(ctx context.Context, clienteID string) ([]dto.PedidoResponse, error) {
	return uc.engine.PedidosDeCliente(ctx, clienteID)
}
