package pedidos

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sandeje96/gestion-pedidos/internal/application/dto"
	"github.com/Sandeje96/gestion-pedidos/internal/domain"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/entity"
	"github.com/Sandeje96/gestion-pedidos/pkg/logger"
)

func newTestEngine() (*Engine, *memStore, *memBroadcaster, *memTxRunner) {
	s := newMemStore()
	tx := &memTxRunner{s: s}
	hub := &memBroadcaster{}
	e := NewEngine(tx,
		&memPedidoRepo{s: s},
		&memClienteRepo{s: s},
		&memUsuarioRepo{s: s},
		hub,
		logger.Nop(),
	)
	return e, s, hub, tx
}

func seedCliente(s *memStore, id, nombre, ruta string, activo bool) {
	s.clientes[id] = &entity.Cliente{
		ID: id, Nombre: nombre, Ruta: ruta, Activo: activo,
		FechaCreacion: time.Now(), FechaActualizacion: time.Now(),
	}
}

func seedUsuario(s *memStore, id, nombre, rol string, activo bool) {
	s.usuarios[id] = &entity.Usuario{
		ID: id, Nombre: nombre, Username: id, Rol: rol, Activo: activo,
		FechaCreacion: time.Now(),
	}
}

func seedPedido(s *memStore, p entity.Pedido) {
	if p.Estado == "" {
		p.Estado = entity.EstadoPendiente
	}
	if p.FechaCreacion.IsZero() {
		p.FechaCreacion = time.Now()
		p.FechaActualizacion = p.FechaCreacion
	}
	s.pedidos[p.ID] = clonePedido(&p)
}

func TestCrearPedido(t *testing.T) {
	ctx := context.Background()
	e, s, hub, _ := newTestEngine()
	seedCliente(s, "c1", "Panadería López", "Ruta 14", true)

	resp, err := e.CrearPedido(ctx, CrearPedidoInput{
		ClienteID:      "c1",
		ProductoNombre: "  Harina 000  ",
		Cantidad:       decimal.NewFromInt(5),
		Unidad:         "kg",
		NotasVendedor:  "entregar temprano",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, entity.EstadoPendiente, resp.Estado)
	assert.Equal(t, "Harina 000", resp.ProductoNombre)
	assert.Equal(t, "Panadería López", resp.ClienteNombre)
	assert.False(t, resp.Modificado)
	assert.False(t, resp.Archivado)
	assert.Nil(t, resp.FechaCompletado)

	eventos := hub.emitidos()
	require.Len(t, eventos, 1)
	assert.Equal(t, EventoNuevoPedido, eventos[0].Evento)
	payload, ok := eventos[0].Data.(dto.PedidoEvent)
	require.True(t, ok)
	assert.Equal(t, resp.ID, payload.Pedido.ID)
}

func TestCrearPedidoCantidadInvalida(t *testing.T) {
	ctx := context.Background()
	e, s, hub, _ := newTestEngine()
	seedCliente(s, "c1", "Cliente", "Ruta 14", true)

	for _, cantidad := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-3)} {
		_, err := e.CrearPedido(ctx, CrearPedidoInput{
			ClienteID:      "c1",
			ProductoNombre: "Pan",
			Cantidad:       cantidad,
		})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	assert.Empty(t, s.pedidos, "un alta inválida no debe persistir nada")
	assert.Empty(t, hub.emitidos(), "un alta inválida no debe emitir eventos")
}

func TestCrearPedidoClienteInactivo(t *testing.T) {
	ctx := context.Background()
	e, s, hub, _ := newTestEngine()
	seedCliente(s, "c1", "Cliente dado de baja", "Ruta 12", false)

	_, err := e.CrearPedido(ctx, CrearPedidoInput{
		ClienteID:      "c1",
		ProductoNombre: "Pan",
		Cantidad:       decimal.NewFromInt(1),
	})
	require.ErrorIs(t, err, domain.ErrClienteInactivo)

	_, err = e.CrearPedido(ctx, CrearPedidoInput{
		ClienteID:      "no-existe",
		ProductoNombre: "Pan",
		Cantidad:       decimal.NewFromInt(1),
	})
	require.ErrorIs(t, err, domain.ErrClienteInactivo)

	assert.Empty(t, s.pedidos)
	assert.Empty(t, hub.emitidos())
}

func TestActualizarPorVendedorMarcaModificado(t *testing.T) {
	ctx := context.Background()
	e, s, hub, _ := newTestEngine()
	seedCliente(s, "c1", "Cliente", "Ruta 14", true)
	seedPedido(s, entity.Pedido{
		ID: "p1", ClienteID: "c1", ProductoNombre: "Pan",
		Cantidad: decimal.NewFromInt(2), NotasVendedor: "original",
		VistoPorFabrica: true, EsperandoContestacion: true,
	})

	// Edición sin tocar las notas: modificado y visto_por_fabrica cambian
	// igual, pero esperando_contestacion queda como estaba.
	resp, err := e.ActualizarPorVendedor(ctx, "p1", EditarPedidoInput{
		ProductoNombre: "Pan integral",
		Cantidad:       decimal.NewFromInt(3),
		NotasVendedor:  "original",
	})
	require.NoError(t, err)
	assert.True(t, resp.Modificado)
	assert.False(t, resp.VistoPorFabrica)
	assert.True(t, resp.EsperandoContestacion)

	// Cambiar las notas es contestar: se limpia el flag.
	resp, err = e.ActualizarPorVendedor(ctx, "p1", EditarPedidoInput{
		ProductoNombre: "Pan integral",
		Cantidad:       decimal.NewFromInt(3),
		NotasVendedor:  "cambiado",
	})
	require.NoError(t, err)
	assert.False(t, resp.EsperandoContestacion)

	eventos := hub.emitidos()
	require.Len(t, eventos, 2)
	assert.Equal(t, EventoPedidoModificado, eventos[0].Evento)
	assert.Equal(t, EventoPedidoModificado, eventos[1].Evento)
}

func TestActualizarPorVendedorArchivado(t *testing.T) {
	ctx := context.Background()
	e, s, hub, _ := newTestEngine()
	seedCliente(s, "c1", "Cliente", "Ruta 14", true)
	seedPedido(s, entity.Pedido{
		ID: "p1", ClienteID: "c1", ProductoNombre: "Pan",
		Cantidad: decimal.NewFromInt(1), Archivado: true,
	})

	_, err := e.ActualizarPorVendedor(ctx, "p1", EditarPedidoInput{
		ProductoNombre: "Pan",
		Cantidad:       decimal.NewFromInt(9),
	})
	require.ErrorIs(t, err, domain.ErrPedidoArchivado)
	assert.Empty(t, hub.emitidos())
	assert.Equal(t, "1", s.pedidos["p1"].Cantidad.String())
}

func TestActualizarPorFabricaLatchFechaCompletado(t *testing.T) {
	ctx := context.Background()
	e, s, _, _ := newTestEngine()
	seedCliente(s, "c1", "Cliente", "Ruta 14", true)
	seedPedido(s, entity.Pedido{
		ID: "p1", ClienteID: "c1", ProductoNombre: "Pan", Cantidad: decimal.NewFromInt(1),
	})

	t1 := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	e.ConReloj(func() time.Time { return t1 })

	resp, err := e.ActualizarPorFabrica(ctx, "p1", ActualizarFabricaInput{Estado: entity.EstadoCompletado})
	require.NoError(t, err)
	require.NotNil(t, resp.FechaCompletado)
	assert.True(t, resp.FechaCompletado.Equal(t1))

	// Reabrir el pedido no borra la fecha de completado.
	t2 := t1.Add(2 * time.Hour)
	e.ConReloj(func() time.Time { return t2 })
	resp, err = e.ActualizarPorFabrica(ctx, "p1", ActualizarFabricaInput{Estado: entity.EstadoPendiente})
	require.NoError(t, err)
	require.NotNil(t, resp.FechaCompletado)
	assert.True(t, resp.FechaCompletado.Equal(t1))

	// Completarlo de nuevo tampoco la mueve: queda la primera.
	t3 := t1.Add(4 * time.Hour)
	e.ConReloj(func() time.Time { return t3 })
	resp, err = e.ActualizarPorFabrica(ctx, "p1", ActualizarFabricaInput{Estado: entity.EstadoCompletado})
	require.NoError(t, err)
	assert.True(t, resp.FechaCompletado.Equal(t1))
}

func TestActualizarPorFabricaRevisaModificacion(t *testing.T) {
	ctx := context.Background()
	e, s, _, _ := newTestEngine()
	seedCliente(s, "c1", "Cliente", "Ruta 14", true)
	seedPedido(s, entity.Pedido{
		ID: "p1", ClienteID: "c1", ProductoNombre: "Pan",
		Cantidad: decimal.NewFromInt(1), Modificado: true,
	})

	resp, err := e.ActualizarPorFabrica(ctx, "p1", ActualizarFabricaInput{Estado: entity.EstadoEnProceso})
	require.NoError(t, err)
	assert.False(t, resp.Modificado, "tocar el pedido da la modificación por revisada")
	assert.True(t, resp.VistoPorFabrica)
}

func TestActualizarPorFabricaObservacionesReMarcan(t *testing.T) {
	ctx := context.Background()
	e, s, _, _ := newTestEngine()
	seedCliente(s, "c1", "Cliente", "Ruta 14", true)
	seedPedido(s, entity.Pedido{
		ID: "p1", ClienteID: "c1", ProductoNombre: "Pan",
		Cantidad: decimal.NewFromInt(1),
		ObservacionesFabrica: "falta stock", VistoPorVendedor: true,
	})

	// El mismo texto otra vez cuenta como nueva observación.
	obs := "falta stock"
	resp, err := e.ActualizarPorFabrica(ctx, "p1", ActualizarFabricaInput{
		Estado:        entity.EstadoParcial,
		Observaciones: &obs,
	})
	require.NoError(t, err)
	assert.False(t, resp.VistoPorVendedor)
	assert.True(t, resp.EsperandoContestacion)

	// Observaciones nil no tocan nada de eso.
	_, err = e.MarcarVistoPorVendedor(ctx, "p1")
	require.NoError(t, err)
	resp, err = e.ActualizarPorFabrica(ctx, "p1", ActualizarFabricaInput{Estado: entity.EstadoEnProceso})
	require.NoError(t, err)
	assert.True(t, resp.VistoPorVendedor)
	assert.False(t, resp.EsperandoContestacion)
	assert.Equal(t, "falta stock", resp.ObservacionesFabrica)
}

func TestActualizarPorFabricaEstadoInvalido(t *testing.T) {
	ctx := context.Background()
	e, s, hub, _ := newTestEngine()
	seedCliente(s, "c1", "Cliente", "Ruta 14", true)
	seedPedido(s, entity.Pedido{
		ID: "p1", ClienteID: "c1", ProductoNombre: "Pan", Cantidad: decimal.NewFromInt(1),
	})

	_, err := e.ActualizarPorFabrica(ctx, "p1", ActualizarFabricaInput{Estado: "terminado"})
	require.ErrorIs(t, err, domain.ErrEstadoInvalido)
	assert.Empty(t, hub.emitidos())
}

func TestMarcarVistoPorFabrica(t *testing.T) {
	ctx := context.Background()
	e, s, hub, _ := newTestEngine()
	seedCliente(s, "c1", "Cliente", "Ruta 14", true)
	seedPedido(s, entity.Pedido{
		ID: "p1", ClienteID: "c1", ProductoNombre: "Pan",
		Cantidad: decimal.NewFromInt(1), Modificado: true,
	})

	resp, err := e.MarcarVistoPorFabrica(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, resp.Modificado)
	assert.True(t, resp.VistoPorFabrica)

	eventos := hub.emitidos()
	require.Len(t, eventos, 1)
	assert.Equal(t, EventoPedidoVistoPorFabrica, eventos[0].Evento)
	payload, ok := eventos[0].Data.(dto.PedidoVistoEvent)
	require.True(t, ok)
	assert.Equal(t, "p1", payload.PedidoID)
}

func TestMarcarVistoPorVendedorNoEmiteEvento(t *testing.T) {
	ctx := context.Background()
	e, s, hub, _ := newTestEngine()
	seedCliente(s, "c1", "Cliente", "Ruta 14", true)
	seedPedido(s, entity.Pedido{
		ID: "p1", ClienteID: "c1", ProductoNombre: "Pan",
		Cantidad: decimal.NewFromInt(1),
		ObservacionesFabrica: "ojo", VistoPorVendedor: false, EsperandoContestacion: true,
	})

	resp, err := e.MarcarVistoPorVendedor(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, resp.VistoPorVendedor)
	assert.False(t, resp.EsperandoContestacion)
	assert.Empty(t, hub.emitidos(), "marcar leído es un cambio local del panel del vendedor")
}

func TestAsignarOperario(t *testing.T) {
	ctx := context.Background()
	e, s, hub, _ := newTestEngine()
	seedCliente(s, "c1", "Cliente", "Ruta 14", true)
	seedUsuario(s, "op1", "Mario", entity.RolOperario, true)
	seedUsuario(s, "v1", "Sofía", entity.RolVendedor, true)
	seedPedido(s, entity.Pedido{
		ID: "p1", ClienteID: "c1", ProductoNombre: "Pan", Cantidad: decimal.NewFromInt(1),
	})

	op := "op1"
	resp, err := e.AsignarOperario(ctx, "p1", &op)
	require.NoError(t, err)
	require.NotNil(t, resp.OperarioID)
	assert.Equal(t, "op1", *resp.OperarioID)
	assert.Equal(t, "Mario", resp.OperarioNombre)

	// Un vendedor no puede ser responsable de fábrica.
	vend := "v1"
	_, err = e.AsignarOperario(ctx, "p1", &vend)
	require.ErrorIs(t, err, domain.ErrNoEsOperario)

	// Cadena vacía limpia la asignación.
	vacio := ""
	resp, err = e.AsignarOperario(ctx, "p1", &vacio)
	require.NoError(t, err)
	assert.Nil(t, resp.OperarioID)

	eventos := hub.emitidos()
	require.Len(t, eventos, 2)
	assert.Equal(t, EventoPedidoAsignado, eventos[0].Evento)
}

func TestEliminarPedido(t *testing.T) {
	ctx := context.Background()
	e, s, hub, _ := newTestEngine()
	seedCliente(s, "c1", "Cliente", "Ruta 14", true)
	seedPedido(s, entity.Pedido{
		ID: "p1", ClienteID: "c1", ProductoNombre: "Pan", Cantidad: decimal.NewFromInt(1),
	})

	require.NoError(t, e.EliminarPedido(ctx, "p1"))
	assert.Empty(t, s.pedidos)

	eventos := hub.emitidos()
	require.Len(t, eventos, 1)
	assert.Equal(t, EventoPedidoEliminado, eventos[0].Evento)
	payload, ok := eventos[0].Data.(dto.PedidoEliminadoEvent)
	require.True(t, ok)
	assert.Equal(t, "p1", payload.PedidoID)
	assert.Equal(t, "c1", payload.ClienteID)

	err := e.EliminarPedido(ctx, "p1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCerrarSemana(t *testing.T) {
	ctx := context.Background()
	e, s, hub, _ := newTestEngine()
	seedCliente(s, "c1", "Cliente", "Ruta 14", true)
	seedPedido(s, entity.Pedido{ID: "p1", ClienteID: "c1", ProductoNombre: "Pan", Cantidad: decimal.NewFromInt(1)})
	seedPedido(s, entity.Pedido{ID: "p2", ClienteID: "c1", ProductoNombre: "Facturas", Cantidad: decimal.NewFromInt(6), Estado: entity.EstadoCompletado})
	seedPedido(s, entity.Pedido{ID: "p3", ClienteID: "c1", ProductoNombre: "Viejo", Cantidad: decimal.NewFromInt(1), Archivado: true, SemanaArchivado: "Week 2025-1E"})

	cierre := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	e.ConReloj(func() time.Time { return cierre })

	resp, err := e.CerrarSemana(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Week 2025-3E", resp.Semana)
	assert.Equal(t, int64(2), resp.TotalArchivados)

	assert.True(t, s.pedidos["p1"].Archivado)
	assert.Equal(t, "Week 2025-3E", s.pedidos["p1"].SemanaArchivado)
	assert.Equal(t, "Week 2025-1E", s.pedidos["p3"].SemanaArchivado, "un pedido ya archivado conserva su semana")

	eventos := hub.emitidos()
	require.Len(t, eventos, 1)
	assert.Equal(t, EventoSemanaCerrada, eventos[0].Evento)
	payload, ok := eventos[0].Data.(dto.SemanaCerradaEvent)
	require.True(t, ok)
	assert.Equal(t, "Se archivaron 2 pedidos de Week 2025-3E", payload.Mensaje)

	// Segundo cierre sin pedidos activos: total cero y ningún evento nuevo.
	resp, err = e.CerrarSemana(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.TotalArchivados)
	assert.Len(t, hub.emitidos(), 1)
}

func TestLimpiarAntiguos(t *testing.T) {
	ctx := context.Background()
	e, s, _, _ := newTestEngine()
	seedCliente(s, "c1", "Cliente", "Ruta 14", true)

	hoy := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	e.ConReloj(func() time.Time { return hoy })

	viejo := hoy.AddDate(0, 0, -45)
	reciente := hoy.AddDate(0, 0, -10)
	seedPedido(s, entity.Pedido{
		ID: "viejo", ClienteID: "c1", ProductoNombre: "Pan", Cantidad: decimal.NewFromInt(1),
		Archivado: true, FechaArchivado: &viejo, SemanaArchivado: "Week 2025-3A",
	})
	seedPedido(s, entity.Pedido{
		ID: "reciente", ClienteID: "c1", ProductoNombre: "Pan", Cantidad: decimal.NewFromInt(1),
		Archivado: true, FechaArchivado: &reciente, SemanaArchivado: "Week 2025-3MY",
	})
	// Activo con fecha de creación vieja: la limpieza jamás lo toca.
	seedPedido(s, entity.Pedido{
		ID: "activo", ClienteID: "c1", ProductoNombre: "Pan", Cantidad: decimal.NewFromInt(1),
		FechaCreacion: hoy.AddDate(0, -6, 0),
	})

	resp, err := e.LimpiarAntiguos(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalEliminados)
	assert.Equal(t, "Se eliminaron 1 pedidos antiguos: Week 2025-3A (1)", resp.Mensaje)

	assert.NotContains(t, s.pedidos, "viejo")
	assert.Contains(t, s.pedidos, "reciente")
	assert.Contains(t, s.pedidos, "activo")

	resp, err = e.LimpiarAntiguos(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.TotalEliminados)
	assert.Equal(t, "No hay pedidos antiguos para eliminar", resp.Mensaje)

	_, err = e.LimpiarAntiguos(ctx, 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommitFallidoNoEmiteEvento(t *testing.T) {
	ctx := context.Background()
	e, s, hub, tx := newTestEngine()
	seedCliente(s, "c1", "Cliente", "Ruta 14", true)

	tx.commitErr = assert.AnError
	_, err := e.CrearPedido(ctx, CrearPedidoInput{
		ClienteID:      "c1",
		ProductoNombre: "Pan",
		Cantidad:       decimal.NewFromInt(1),
	})
	require.Error(t, err)

	assert.Empty(t, s.pedidos, "el rollback deja el estado como estaba")
	assert.Empty(t, hub.emitidos(), "sin commit no hay difusión")
}

func TestClientesPorRuta(t *testing.T) {
	ctx := context.Background()
	e, s, _, _ := newTestEngine()
	seedCliente(s, "c1", "Almacén Ana", "Ruta 14", true)
	seedCliente(s, "c2", "Bar Braulio", "Ruta 12", true)
	seedCliente(s, "c3", "Sin pedidos", "Corrientes", true)
	seedPedido(s, entity.Pedido{ID: "p1", ClienteID: "c1", ProductoNombre: "Pan", Cantidad: decimal.NewFromInt(1)})
	seedPedido(s, entity.Pedido{ID: "p2", ClienteID: "c2", ProductoNombre: "Pan", Cantidad: decimal.NewFromInt(2)})
	seedPedido(s, entity.Pedido{ID: "p3", ClienteID: "c2", ProductoNombre: "Criollos", Cantidad: decimal.NewFromInt(3), Archivado: true, SemanaArchivado: "Week 2025-1E"})

	porRuta, err := e.ClientesPorRuta(ctx)
	require.NoError(t, err)

	require.Len(t, porRuta["Ruta 14"], 1)
	require.Len(t, porRuta["Ruta 12"], 1)
	assert.NotContains(t, porRuta, "Corrientes", "clientes sin pedidos activos no aparecen")

	// El panel solo lista pedidos no archivados.
	require.Len(t, porRuta["Ruta 12"][0].Pedidos, 1)
	assert.Equal(t, "p2", porRuta["Ruta 12"][0].Pedidos[0].ID)

	// La vista de una semana cerrada trae lo archivado bajo esa etiqueta.
	deSemana, err := e.ClientesPorRutaDeSemana(ctx, "Week 2025-1E")
	require.NoError(t, err)
	require.Len(t, deSemana["Ruta 12"], 1)
	require.Len(t, deSemana["Ruta 12"][0].Pedidos, 1)
	assert.Equal(t, "p3", deSemana["Ruta 12"][0].Pedidos[0].ID)
}
