package pedidos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sandeje96/gestion-pedidos/internal/application/dto"
	"github.com/Sandeje96/gestion-pedidos/internal/domain"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/entity"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/repository"
	"github.com/Sandeje96/gestion-pedidos/pkg/logger"
)

// Engine es el motor del ciclo de vida de pedidos: transiciones de estado,
// flags de notificación entre ventas y fábrica, cierre de semana y limpieza
// de archivados. Cada operación mutante es una transacción corta; el evento
// de difusión se emite estrictamente después del commit, nunca antes.
type Engine struct {
	tx       TxRunner
	pedidos  repository.PedidoRepository
	clientes repository.ClienteRepository
	usuarios repository.UsuarioRepository
	hub      Broadcaster
	log      *logger.Logger
	ahora    func() time.Time
}

// NewEngine construye el motor con sus puertos.
func NewEngine(
	tx TxRunner,
	pedidoRepo repository.PedidoRepository,
	clienteRepo repository.ClienteRepository,
	usuarioRepo repository.UsuarioRepository,
	hub Broadcaster,
	log *logger.Logger,
) *Engine {
	return &Engine{
		tx:       tx,
		pedidos:  pedidoRepo,
		clientes: clienteRepo,
		usuarios: usuarioRepo,
		hub:      hub,
		log:      log,
		ahora:    time.Now,
	}
}

// ConReloj reemplaza la fuente de tiempo. Para tests.
func (e *Engine) ConReloj(ahora func() time.Time) { e.ahora = ahora }

// CrearPedidoInput datos de alta de un pedido.
type CrearPedidoInput struct {
	ClienteID      string
	ProductoNombre string
	Cantidad       decimal.Decimal
	Unidad         string
	NotasVendedor  string
}

// EditarPedidoInput edición del lado vendedor.
type EditarPedidoInput struct {
	ProductoNombre string
	Cantidad       decimal.Decimal
	Unidad         string
	NotasVendedor  string
}

// ActualizarFabricaInput actualización del lado fábrica. OperarioID nil deja
// la asignación como está; apuntando a cadena vacía la limpia. Observaciones
// nil no toca el texto existente.
type ActualizarFabricaInput struct {
	Estado        string
	OperarioID    *string
	Observaciones *string
}

// CrearPedido da de alta un pedido en estado pendiente. Falla con
// ErrInvalidInput si la cantidad no es positiva y con ErrClienteInactivo si
// el cliente no existe o está inactivo; en ningún caso de error se persiste
// ni se emite nada.
func (e *Engine) CrearPedido(ctx context.Context, in CrearPedidoInput) (*dto.PedidoResponse, error) {
	if strings.TrimSpace(in.ProductoNombre) == "" {
		return nil, fmt.Errorf("%w: el producto es obligatorio", domain.ErrInvalidInput)
	}
	if !in.Cantidad.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}

	var resp *dto.PedidoResponse
	err := e.tx.Run(ctx, func(
		pedidoRepo repository.PedidoRepository,
		clienteRepo repository.ClienteRepository,
		_ repository.UsuarioRepository,
	) error {
		cliente, err := clienteRepo.GetByID(ctx, in.ClienteID)
		if err != nil {
			return err
		}
		if cliente == nil || !cliente.Activo {
			return domain.ErrClienteInactivo
		}
		now := e.ahora()
		p := &entity.Pedido{
			ID:                 uuid.New().String(),
			ClienteID:          cliente.ID,
			ProductoNombre:     strings.TrimSpace(in.ProductoNombre),
			Cantidad:           in.Cantidad,
			Unidad:             in.Unidad,
			Estado:             entity.EstadoPendiente,
			NotasVendedor:      in.NotasVendedor,
			FechaCreacion:      now,
			FechaActualizacion: now,
		}
		if err := pedidoRepo.Create(ctx, p); err != nil {
			return err
		}
		resp = ToResponse(p, cliente.Nombre, "")
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.hub.Publish(EventoNuevoPedido, dto.PedidoEvent{Pedido: *resp})
	e.log.Info().Str("pedido_id", resp.ID).Str("cliente_id", resp.ClienteID).Msg("pedido creado")
	return resp, nil
}

// ActualizarPorVendedor aplica una edición del vendedor. Siempre deja
// modificado=true y visto_por_fabrica=false, haya cambiado o no algo relevante
// para la fábrica. Si las notas del vendedor cambiaron respecto del valor
// anterior, el pedido deja de estar esperando contestación.
func (e *Engine) ActualizarPorVendedor(ctx context.Context, pedidoID string, in EditarPedidoInput) (*dto.PedidoResponse, error) {
	if strings.TrimSpace(in.ProductoNombre) == "" {
		return nil, fmt.Errorf("%w: el producto es obligatorio", domain.ErrInvalidInput)
	}
	if !in.Cantidad.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}

	var resp *dto.PedidoResponse
	err := e.tx.Run(ctx, func(
		pedidoRepo repository.PedidoRepository,
		clienteRepo repository.ClienteRepository,
		usuarioRepo repository.UsuarioRepository,
	) error {
		p, err := pedidoRepo.GetByID(ctx, pedidoID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.Archivado {
			return domain.ErrPedidoArchivado
		}

		notasCambiaron := p.NotasVendedor != in.NotasVendedor

		p.ProductoNombre = strings.TrimSpace(in.ProductoNombre)
		p.Cantidad = in.Cantidad
		p.Unidad = in.Unidad
		p.NotasVendedor = in.NotasVendedor
		p.Modificado = true
		p.VistoPorFabrica = false
		if notasCambiaron {
			p.EsperandoContestacion = false
		}
		p.FechaActualizacion = e.ahora()

		if err := pedidoRepo.Update(ctx, p); err != nil {
			return err
		}
		resp, err = e.armarRespuesta(ctx, p, clienteRepo, usuarioRepo)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.hub.Publish(EventoPedidoModificado, dto.PedidoEvent{Pedido: *resp})
	return resp, nil
}

// ActualizarPorFabrica fija el estado elegido por la fábrica. Cualquier estado
// puede pasar a cualquier otro. La primera vez que el pedido llega a
// "completado" se fija la fecha de completado y no vuelve a borrarse aunque el
// estado cambie después. Si el pedido tenía una modificación pendiente, el
// acto de actualizarlo la da por revisada. Observaciones no vacías siempre
// re-marcan el pedido como no visto por el vendedor, aunque el texto no haya
// cambiado.
func (e *Engine) ActualizarPorFabrica(ctx context.Context, pedidoID string, in ActualizarFabricaInput) (*dto.PedidoResponse, error) {
	if !entity.EsEstadoValido(in.Estado) {
		return nil, fmt.Errorf("%w: %q", domain.ErrEstadoInvalido, in.Estado)
	}

	var resp *dto.PedidoResponse
	err := e.tx.Run(ctx, func(
		pedidoRepo repository.PedidoRepository,
		clienteRepo repository.ClienteRepository,
		usuarioRepo repository.UsuarioRepository,
	) error {
		p, err := pedidoRepo.GetByID(ctx, pedidoID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.Archivado {
			return domain.ErrPedidoArchivado
		}

		if in.OperarioID != nil {
			if err := asignar(ctx, p, *in.OperarioID, usuarioRepo); err != nil {
				return err
			}
		}

		p.Estado = in.Estado
		if p.Estado == entity.EstadoCompletado && p.FechaCompletado == nil {
			t := e.ahora()
			p.FechaCompletado = &t
		}
		if p.Modificado {
			p.Modificado = false
			p.VistoPorFabrica = true
		}
		if in.Observaciones != nil {
			p.ObservacionesFabrica = *in.Observaciones
			if *in.Observaciones != "" {
				p.VistoPorVendedor = false
				p.EsperandoContestacion = true
			}
		}
		p.FechaActualizacion = e.ahora()

		if err := pedidoRepo.Update(ctx, p); err != nil {
			return err
		}
		resp, err = e.armarRespuesta(ctx, p, clienteRepo, usuarioRepo)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.hub.Publish(EventoPedidoActualizado, dto.PedidoEvent{Pedido: *resp})
	return resp, nil
}

// MarcarVistoPorFabrica da por revisada una modificación del vendedor sin
// tocar el estado del pedido.
func (e *Engine) MarcarVistoPorFabrica(ctx context.Context, pedidoID string) (*dto.PedidoResponse, error) {
	var resp *dto.PedidoResponse
	err := e.tx.Run(ctx, func(
		pedidoRepo repository.PedidoRepository,
		clienteRepo repository.ClienteRepository,
		usuarioRepo repository.UsuarioRepository,
	) error {
		p, err := pedidoRepo.GetByID(ctx, pedidoID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.Archivado {
			return domain.ErrPedidoArchivado
		}
		p.Modificado = false
		p.VistoPorFabrica = true
		p.FechaActualizacion = e.ahora()
		if err := pedidoRepo.Update(ctx, p); err != nil {
			return err
		}
		resp, err = e.armarRespuesta(ctx, p, clienteRepo, usuarioRepo)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.hub.Publish(EventoPedidoVistoPorFabrica, dto.PedidoVistoEvent{PedidoID: resp.ID, Pedido: *resp})
	return resp, nil
}

// MarcarVistoPorVendedor da por leída la observación de fábrica y limpia el
// flag de contestación pendiente. No emite evento: el cambio solo interesa al
// panel que lo originó.
func (e *Engine) MarcarVistoPorVendedor(ctx context.Context, pedidoID string) (*dto.PedidoResponse, error) {
	var resp *dto.PedidoResponse
	err := e.tx.Run(ctx, func(
		pedidoRepo repository.PedidoRepository,
		clienteRepo repository.ClienteRepository,
		usuarioRepo repository.UsuarioRepository,
	) error {
		p, err := pedidoRepo.GetByID(ctx, pedidoID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.Archivado {
			return domain.ErrPedidoArchivado
		}
		p.VistoPorVendedor = true
		p.EsperandoContestacion = false
		p.FechaActualizacion = e.ahora()
		if err := pedidoRepo.Update(ctx, p); err != nil {
			return err
		}
		resp, err = e.armarRespuesta(ctx, p, clienteRepo, usuarioRepo)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// AsignarOperario fija o limpia el operario responsable del pedido.
func (e *Engine) AsignarOperario(ctx context.Context, pedidoID string, operarioID *string) (*dto.PedidoResponse, error) {
	var resp *dto.PedidoResponse
	err := e.tx.Run(ctx, func(
		pedidoRepo repository.PedidoRepository,
		clienteRepo repository.ClienteRepository,
		usuarioRepo repository.UsuarioRepository,
	) error {
		p, err := pedidoRepo.GetByID(ctx, pedidoID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.Archivado {
			return domain.ErrPedidoArchivado
		}
		id := ""
		if operarioID != nil {
			id = *operarioID
		}
		if err := asignar(ctx, p, id, usuarioRepo); err != nil {
			return err
		}
		p.FechaActualizacion = e.ahora()
		if err := pedidoRepo.Update(ctx, p); err != nil {
			return err
		}
		resp, err = e.armarRespuesta(ctx, p, clienteRepo, usuarioRepo)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.hub.Publish(EventoPedidoAsignado, dto.PedidoEvent{Pedido: *resp})
	return resp, nil
}

// EliminarPedido borra el pedido de forma definitiva (sin tombstone). Es la
// única operación permitida sobre un pedido archivado.
func (e *Engine) EliminarPedido(ctx context.Context, pedidoID string) error {
	var clienteID string
	err := e.tx.Run(ctx, func(
		pedidoRepo repository.PedidoRepository,
		_ repository.ClienteRepository,
		_ repository.UsuarioRepository,
	) error {
		p, err := pedidoRepo.GetByID(ctx, pedidoID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		clienteID = p.ClienteID
		return pedidoRepo.Delete(ctx, pedidoID)
	})
	if err != nil {
		return err
	}

	e.hub.Publish(EventoPedidoEliminado, dto.PedidoEliminadoEvent{
		PedidoID:  pedidoID,
		ClienteID: clienteID,
	})
	e.log.Info().Str("pedido_id", pedidoID).Msg("pedido eliminado")
	return nil
}

// CerrarSemana archiva en una sola transacción todos los pedidos no
// archivados del sistema bajo la etiqueta de la fecha actual. Si no hay
// pedidos activos devuelve total cero sin error y no emite evento.
func (e *Engine) CerrarSemana(ctx context.Context) (*dto.CierreSemanaResponse, error) {
	now := e.ahora()
	semana := EtiquetaSemana(now)

	var total int64
	err := e.tx.Run(ctx, func(
		pedidoRepo repository.PedidoRepository,
		_ repository.ClienteRepository,
		_ repository.UsuarioRepository,
	) error {
		n, err := pedidoRepo.ArchivarActivos(ctx, semana, now)
		total = n
		return err
	})
	if err != nil {
		return nil, err
	}

	if total > 0 {
		e.hub.Publish(EventoSemanaCerrada, dto.SemanaCerradaEvent{
			Semana:          semana,
			TotalArchivados: total,
			Mensaje:         fmt.Sprintf("Se archivaron %d pedidos de %s", total, semana),
		})
	}
	e.log.Info().Str("semana", semana).Int64("total", total).Msg("semana cerrada")
	return &dto.CierreSemanaResponse{Semana: semana, TotalArchivados: total}, nil
}

// LimpiarAntiguos elimina los pedidos archivados con fecha de archivo
// estrictamente anterior a hoy menos retencionDias. Nunca toca pedidos no
// archivados, sin importar su antigüedad. El desglose por semana es solo para
// el mensaje legible.
func (e *Engine) LimpiarAntiguos(ctx context.Context, retencionDias int) (*dto.LimpiezaResponse, error) {
	if retencionDias <= 0 {
		return nil, fmt.Errorf("%w: la retención debe ser positiva", domain.ErrInvalidInput)
	}
	corte := e.ahora().AddDate(0, 0, -retencionDias)

	var resumen []repository.ResumenSemana
	var total int64
	err := e.tx.Run(ctx, func(
		pedidoRepo repository.PedidoRepository,
		_ repository.ClienteRepository,
		_ repository.UsuarioRepository,
	) error {
		var err error
		resumen, err = pedidoRepo.ResumenArchivadosAntesDe(ctx, corte)
		if err != nil {
			return err
		}
		total, err = pedidoRepo.EliminarArchivadosAntesDe(ctx, corte)
		return err
	})
	if err != nil {
		return nil, err
	}

	mensaje := "No hay pedidos antiguos para eliminar"
	if total > 0 {
		partes := make([]string, 0, len(resumen))
		for _, r := range resumen {
			semana := r.Semana
			if semana == "" {
				semana = "Sin semana"
			}
			partes = append(partes, fmt.Sprintf("%s (%d)", semana, r.TotalPedidos))
		}
		mensaje = fmt.Sprintf("Se eliminaron %d pedidos antiguos: %s", total, strings.Join(partes, ", "))
	}
	e.log.Info().Int64("total", total).Time("corte", corte).Msg("limpieza de pedidos archivados")
	return &dto.LimpiezaResponse{TotalEliminados: total, Mensaje: mensaje}, nil
}

// ObtenerPedido devuelve el snapshot de un pedido con nombres resueltos.
func (e *Engine) ObtenerPedido(ctx context.Context, pedidoID string) (*dto.PedidoResponse, error) {
	p, err := e.pedidos.GetByID(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return e.armarRespuesta(ctx, p, e.clientes, e.usuarios)
}

// ListarPedidos devuelve pedidos filtrados, más recientes primero, con
// nombres de cliente y operario resueltos.
func (e *Engine) ListarPedidos(ctx context.Context, filtro repository.PedidoFiltro) ([]dto.PedidoResponse, error) {
	lista, err := e.pedidos.List(ctx, filtro)
	if err != nil {
		return nil, err
	}
	return e.armarRespuestas(ctx, lista)
}

// PedidosDeCliente devuelve todos los pedidos de un cliente, archivados
// incluidos, más recientes primero.
func (e *Engine) PedidosDeCliente(ctx context.Context, clienteID string) ([]dto.PedidoResponse, error) {
	cliente, err := e.clientes.GetByID(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	lista, err := e.pedidos.ListByCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	return e.armarRespuestas(ctx, lista)
}

// asignar fija o limpia el operario del pedido, validando el rol del usuario.
func asignar(ctx context.Context, p *entity.Pedido, operarioID string, usuarioRepo repository.UsuarioRepository) error {
	if operarioID == "" {
		p.OperarioID = nil
		return nil
	}
	op, err := usuarioRepo.GetByID(ctx, operarioID)
	if err != nil {
		return err
	}
	if op == nil {
		return domain.ErrUsuarioNotFound
	}
	if !op.EsOperario() {
		return domain.ErrNoEsOperario
	}
	p.OperarioID = &op.ID
	return nil
}

// armarRespuesta resuelve los nombres de cliente y operario para el snapshot.
func (e *Engine) armarRespuesta(
	ctx context.Context,
	p *entity.Pedido,
	clienteRepo repository.ClienteRepository,
	usuarioRepo repository.UsuarioRepository,
) (*dto.PedidoResponse, error) {
	clienteNombre := ""
	if cliente, err := clienteRepo.GetByID(ctx, p.ClienteID); err != nil {
		return nil, err
	} else if cliente != nil {
		clienteNombre = cliente.Nombre
	}
	operarioNombre := ""
	if p.OperarioID != nil {
		if op, err := usuarioRepo.GetByID(ctx, *p.OperarioID); err != nil {
			return nil, err
		} else if op != nil {
			operarioNombre = op.Nombre
		}
	}
	return ToResponse(p, clienteNombre, operarioNombre), nil
}

// armarRespuestas resuelve nombres para un listado, cacheando las consultas
// por ID dentro de la llamada.
func (e *Engine) armarRespuestas(ctx context.Context, lista []*entity.Pedido) ([]dto.PedidoResponse, error) {
	clientes := map[string]string{}
	operarios := map[string]string{}
	out := make([]dto.PedidoResponse, 0, len(lista))
	for _, p := range lista {
		clienteNombre, ok := clientes[p.ClienteID]
		if !ok {
			cliente, err := e.clientes.GetByID(ctx, p.ClienteID)
			if err != nil {
				return nil, err
			}
			if cliente != nil {
				clienteNombre = cliente.Nombre
			}
			clientes[p.ClienteID] = clienteNombre
		}
		operarioNombre := ""
		if p.OperarioID != nil {
			operarioNombre, ok = operarios[*p.OperarioID]
			if !ok {
				op, err := e.usuarios.GetByID(ctx, *p.OperarioID)
				if err != nil {
					return nil, err
				}
				if op != nil {
					operarioNombre = op.Nombre
				}
				operarios[*p.OperarioID] = operarioNombre
			}
		}
		out = append(out, *ToResponse(p, clienteNombre, operarioNombre))
	}
	return out, nil
}

// ToResponse convierte la entidad al DTO serializable que viaja por HTTP y
// por los eventos de difusión.
func ToResponse(p *entity.Pedido, clienteNombre, operarioNombre string) *dto.PedidoResponse {
	if p == nil {
		return nil
	}
	return &dto.PedidoResponse{
		ID:                    p.ID,
		ClienteID:             p.ClienteID,
		ClienteNombre:         clienteNombre,
		ProductoNombre:        p.ProductoNombre,
		Cantidad:              p.Cantidad,
		Unidad:                p.Unidad,
		Estado:                p.Estado,
		OperarioID:            p.OperarioID,
		OperarioNombre:        operarioNombre,
		ObservacionesFabrica:  p.ObservacionesFabrica,
		NotasVendedor:         p.NotasVendedor,
		Modificado:            p.Modificado,
		VistoPorFabrica:       p.VistoPorFabrica,
		VistoPorVendedor:      p.VistoPorVendedor,
		EsperandoContestacion: p.EsperandoContestacion,
		Archivado:             p.Archivado,
		FechaArchivado:        p.FechaArchivado,
		SemanaArchivado:       p.SemanaArchivado,
		FechaCreacion:         p.FechaCreacion,
		FechaActualizacion:    p.FechaActualizacion,
		FechaCompletado:       p.FechaCompletado,
	}
}
