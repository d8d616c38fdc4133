package pedidos

import (
	"context"

	"github.com/Sandeje96/gestion-pedidos/internal/application/dto"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/entity"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/repository"
)

// ClientesPorRuta arma la vista base de ambos paneles: clientes activos con
// pedidos no archivados, agrupados por su ruta de reparto. La ruta es una
// etiqueta del cliente; la agrupación se deriva aquí, no hay entidad Ruta.
func (e *Engine) ClientesPorRuta(ctx context.Context) (map[string][]dto.ClientePanelResponse, error) {
	clientes, err := e.clientes.ListConPedidosActivos(ctx)
	if err != nil {
		return nil, err
	}
	activos := false
	return e.agruparPorRuta(ctx, clientes, func(c *entity.Cliente) repository.PedidoFiltro {
		return repository.PedidoFiltro{ClienteID: c.ID, Archivado: &activos}
	})
}

// ClientesPorRutaDeSemana arma la misma vista para una semana ya archivada.
func (e *Engine) ClientesPorRutaDeSemana(ctx context.Context, semana string) (map[string][]dto.ClientePanelResponse, error) {
	clientes, err := e.clientes.ListPorSemana(ctx, semana)
	if err != nil {
		return nil, err
	}
	return e.agruparPorRuta(ctx, clientes, func(c *entity.Cliente) repository.PedidoFiltro {
		return repository.PedidoFiltro{ClienteID: c.ID, Semana: semana}
	})
}

func (e *Engine) agruparPorRuta(
	ctx context.Context,
	clientes []*entity.Cliente,
	filtroDe func(*entity.Cliente) repository.PedidoFiltro,
) (map[string][]dto.ClientePanelResponse, error) {
	porRuta := make(map[string][]dto.ClientePanelResponse)
	for _, c := range clientes {
		peds, err := e.ListarPedidos(ctx, filtroDe(c))
		if err != nil {
			return nil, err
		}
		porRuta[c.Ruta] = append(porRuta[c.Ruta], dto.ClientePanelResponse{
			Cliente: *ToClienteResponse(c),
			Pedidos: peds,
		})
	}
	return porRuta, nil
}

// ToClienteResponse convierte la entidad Cliente a su DTO.
func ToClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	if c == nil {
		return nil
	}
	return &dto.ClienteResponse{
		ID:            c.ID,
		Nombre:        c.Nombre,
		Telefono:      c.Telefono,
		Direccion:     c.Direccion,
		Ruta:          c.Ruta,
		Notas:         c.Notas,
		Activo:        c.Activo,
		FechaCreacion: c.FechaCreacion,
	}
}
