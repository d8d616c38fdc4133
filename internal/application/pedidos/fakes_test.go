package pedidos

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Sandeje96/gestion-pedidos/internal/domain/entity"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/repository"
)

// Repositorios en memoria y TxRunner con snapshot/restore para testear el
// motor sin base de datos. El snapshot hace que un fn que falla (o un commit
// forzado a fallar) deje el estado exactamente como estaba.

type memStore struct {
	mu       sync.Mutex
	pedidos  map[string]*entity.Pedido
	clientes map[string]*entity.Cliente
	usuarios map[string]*entity.Usuario
}

func newMemStore() *memStore {
	return &memStore{
		pedidos:  make(map[string]*entity.Pedido),
		clientes: make(map[string]*entity.Cliente),
		usuarios: make(map[string]*entity.Usuario),
	}
}

func clonePedido(p *entity.Pedido) *entity.Pedido {
	if p == nil {
		return nil
	}
	cp := *p
	if p.OperarioID != nil {
		v := *p.OperarioID
		cp.OperarioID = &v
	}
	if p.FechaArchivado != nil {
		v := *p.FechaArchivado
		cp.FechaArchivado = &v
	}
	if p.FechaCompletado != nil {
		v := *p.FechaCompletado
		cp.FechaCompletado = &v
	}
	return &cp
}

func cloneCliente(c *entity.Cliente) *entity.Cliente {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func cloneUsuario(u *entity.Usuario) *entity.Usuario {
	if u == nil {
		return nil
	}
	cp := *u
	if u.UltimaConexion != nil {
		v := *u.UltimaConexion
		cp.UltimaConexion = &v
	}
	return &cp
}

func (s *memStore) snapshot() *memStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := newMemStore()
	for id, p := range s.pedidos {
		snap.pedidos[id] = clonePedido(p)
	}
	for id, c := range s.clientes {
		snap.clientes[id] = cloneCliente(c)
	}
	for id, u := range s.usuarios {
		snap.usuarios[id] = cloneUsuario(u)
	}
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pedidos = snap.pedidos
	s.clientes = snap.clientes
	s.usuarios = snap.usuarios
}

// --- PedidoRepository ---

type memPedidoRepo struct{ s *memStore }

var _ repository.PedidoRepository = (*memPedidoRepo)(nil)

func (r *memPedidoRepo) Create(_ context.Context, p *entity.Pedido) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.pedidos[p.ID] = clonePedido(p)
	return nil
}

func (r *memPedidoRepo) GetByID(_ context.Context, id string) (*entity.Pedido, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clonePedido(r.s.pedidos[id]), nil
}

func (r *memPedidoRepo) Update(_ context.Context, p *entity.Pedido) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.pedidos[p.ID] = clonePedido(p)
	return nil
}

func (r *memPedidoRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.pedidos, id)
	return nil
}

func (r *memPedidoRepo) List(_ context.Context, filtro repository.PedidoFiltro) ([]*entity.Pedido, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Pedido
	for _, p := range r.s.pedidos {
		if filtro.Estado != "" && p.Estado != filtro.Estado {
			continue
		}
		if filtro.ClienteID != "" && p.ClienteID != filtro.ClienteID {
			continue
		}
		if filtro.Archivado != nil && p.Archivado != *filtro.Archivado {
			continue
		}
		if filtro.Semana != "" && p.SemanaArchivado != filtro.Semana {
			continue
		}
		out = append(out, clonePedido(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaCreacion.After(out[j].FechaCreacion) })
	return out, nil
}

func (r *memPedidoRepo) ListByCliente(ctx context.Context, clienteID string) ([]*entity.Pedido, error) {
	archivado := false
	return r.List(ctx, repository.PedidoFiltro{ClienteID: clienteID, Archivado: &archivado})
}

func (r *memPedidoRepo) ArchivarActivos(_ context.Context, semana string, fecha time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var total int64
	for _, p := range r.s.pedidos {
		if p.Archivado {
			continue
		}
		p.Archivado = true
		p.SemanaArchivado = semana
		f := fecha
		p.FechaArchivado = &f
		p.FechaActualizacion = fecha
		total++
	}
	return total, nil
}

func (r *memPedidoRepo) ResumenArchivadosAntesDe(_ context.Context, corte time.Time) ([]repository.ResumenSemana, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	porSemana := map[string]*repository.ResumenSemana{}
	for _, p := range r.s.pedidos {
		if !p.Archivado || p.FechaArchivado == nil || !p.FechaArchivado.Before(corte) {
			continue
		}
		rs, ok := porSemana[p.SemanaArchivado]
		if !ok {
			rs = &repository.ResumenSemana{Semana: p.SemanaArchivado, FechaArchivado: *p.FechaArchivado}
			porSemana[p.SemanaArchivado] = rs
		}
		rs.TotalPedidos++
		if p.FechaArchivado.Before(rs.FechaArchivado) {
			rs.FechaArchivado = *p.FechaArchivado
		}
	}
	var out []repository.ResumenSemana
	for _, rs := range porSemana {
		out = append(out, *rs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaArchivado.After(out[j].FechaArchivado) })
	return out, nil
}

func (r *memPedidoRepo) EliminarArchivadosAntesDe(_ context.Context, corte time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var total int64
	for id, p := range r.s.pedidos {
		if p.Archivado && p.FechaArchivado != nil && p.FechaArchivado.Before(corte) {
			delete(r.s.pedidos, id)
			total++
		}
	}
	return total, nil
}

func (r *memPedidoRepo) ResumenSemanas(ctx context.Context) ([]repository.ResumenSemana, error) {
	// corte en el futuro lejano = todas las semanas archivadas
	return r.ResumenArchivadosAntesDe(ctx, time.Now().AddDate(100, 0, 0))
}

func (r *memPedidoRepo) Contadores(_ context.Context) (*repository.ContadoresPedidos, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var c repository.ContadoresPedidos
	for _, p := range r.s.pedidos {
		if p.Archivado {
			continue
		}
		c.TotalActivos++
		switch p.Estado {
		case entity.EstadoPendiente:
			c.Pendientes++
		case entity.EstadoEnProceso:
			c.EnProceso++
		case entity.EstadoCompletado:
			c.Completados++
		case entity.EstadoCancelado:
			c.Cancelados++
		}
		if p.Modificado && !p.VistoPorFabrica {
			c.ModificadosSinVer++
		}
		if p.ObservacionesFabrica != "" && !p.VistoPorVendedor {
			c.ObservacionesSinLeer++
		}
	}
	return &c, nil
}

func (r *memPedidoRepo) NotificacionesPorRuta(_ context.Context) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]int{}
	for _, p := range r.s.pedidos {
		if p.Archivado || !p.Modificado || p.VistoPorFabrica {
			continue
		}
		if c := r.s.clientes[p.ClienteID]; c != nil {
			out[c.Ruta]++
		}
	}
	return out, nil
}

// --- ClienteRepository ---

type memClienteRepo struct{ s *memStore }

var _ repository.ClienteRepository = (*memClienteRepo)(nil)

func (r *memClienteRepo) Create(_ context.Context, c *entity.Cliente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clientes[c.ID] = cloneCliente(c)
	return nil
}

func (r *memClienteRepo) GetByID(_ context.Context, id string) (*entity.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return cloneCliente(r.s.clientes[id]), nil
}

func (r *memClienteRepo) Update(_ context.Context, c *entity.Cliente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clientes[c.ID] = cloneCliente(c)
	return nil
}

func (r *memClienteRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.clientes, id)
	for pid, p := range r.s.pedidos {
		if p.ClienteID == id {
			delete(r.s.pedidos, pid)
		}
	}
	return nil
}

func (r *memClienteRepo) ListActivos(_ context.Context) ([]*entity.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Cliente
	for _, c := range r.s.clientes {
		if c.Activo {
			out = append(out, cloneCliente(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *memClienteRepo) ListConPedidosActivos(_ context.Context) ([]*entity.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	conPedidos := map[string]bool{}
	for _, p := range r.s.pedidos {
		if !p.Archivado {
			conPedidos[p.ClienteID] = true
		}
	}
	var out []*entity.Cliente
	for id, c := range r.s.clientes {
		if c.Activo && conPedidos[id] {
			out = append(out, cloneCliente(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ruta != out[j].Ruta {
			return out[i].Ruta < out[j].Ruta
		}
		return out[i].Nombre < out[j].Nombre
	})
	return out, nil
}

func (r *memClienteRepo) ListPorSemana(_ context.Context, semana string) ([]*entity.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	deLaSemana := map[string]bool{}
	for _, p := range r.s.pedidos {
		if p.Archivado && p.SemanaArchivado == semana {
			deLaSemana[p.ClienteID] = true
		}
	}
	var out []*entity.Cliente
	for id, c := range r.s.clientes {
		if deLaSemana[id] {
			out = append(out, cloneCliente(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

// --- UsuarioRepository ---

type memUsuarioRepo struct{ s *memStore }

var _ repository.UsuarioRepository = (*memUsuarioRepo)(nil)

func (r *memUsuarioRepo) Create(_ context.Context, u *entity.Usuario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.usuarios[u.ID] = cloneUsuario(u)
	return nil
}

func (r *memUsuarioRepo) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return cloneUsuario(r.s.usuarios[id]), nil
}

func (r *memUsuarioRepo) GetByUsername(_ context.Context, username string) (*entity.Usuario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.usuarios {
		if u.Username == username {
			return cloneUsuario(u), nil
		}
	}
	return nil, nil
}

func (r *memUsuarioRepo) Update(_ context.Context, u *entity.Usuario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.usuarios[u.ID] = cloneUsuario(u)
	return nil
}

func (r *memUsuarioRepo) ListOperariosActivos(_ context.Context) ([]*entity.Usuario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Usuario
	for _, u := range r.s.usuarios {
		if u.Rol == entity.RolOperario && u.Activo {
			out = append(out, cloneUsuario(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

// --- TxRunner ---

type memTxRunner struct {
	s *memStore
	// commitErr fuerza el fallo del commit después de que fn terminó bien.
	commitErr error
}

var _ TxRunner = (*memTxRunner)(nil)

func (t *memTxRunner) Run(ctx context.Context, fn func(
	pedidoRepo repository.PedidoRepository,
	clienteRepo repository.ClienteRepository,
	usuarioRepo repository.UsuarioRepository,
) error) error {
	snap := t.s.snapshot()
	err := fn(&memPedidoRepo{s: t.s}, &memClienteRepo{s: t.s}, &memUsuarioRepo{s: t.s})
	if err == nil {
		err = t.commitErr
	}
	if err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// --- Broadcaster ---

type eventoEmitido struct {
	Evento string
	Data   any
}

type memBroadcaster struct {
	mu      sync.Mutex
	eventos []eventoEmitido
}

var _ Broadcaster = (*memBroadcaster)(nil)

func (b *memBroadcaster) Publish(evento string, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.eventos = append(b.eventos, eventoEmitido{Evento: evento, Data: data})
}

func (b *memBroadcaster) emitidos() []eventoEmitido {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]eventoEmitido(nil), b.eventos...)
}
