package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de un pedido. No hay orden forzado entre estados: la
// fábrica puede mover un pedido de cualquier estado a cualquier otro.
const (
	EstadoPendiente  = "pendiente"
	EstadoEnProceso  = "en_proceso"
	EstadoCompletado = "completado"
	EstadoParcial    = "parcial"
	EstadoCancelado  = "cancelado"
)

// EstadosValidos lista los estados aceptados para un pedido.
var EstadosValidos = []string{
	EstadoPendiente, EstadoEnProceso, EstadoCompletado, EstadoParcial, EstadoCancelado,
}

// EsEstadoValido indica si el estado pertenece al conjunto aceptado.
func EsEstadoValido(estado string) bool {
	for _, e := range EstadosValidos {
		if e == estado {
			return true
		}
	}
	return false
}

// Pedido conecta un cliente con un producto solicitado y lleva el estado de
// seguimiento en tiempo real entre ventas y fábrica.
//
// Invariantes:
//   - FechaCompletado se fija la primera vez que el estado llega a
//     "completado" y nunca vuelve a null, aunque el estado cambie después.
//   - Un pedido archivado es inmutable para las operaciones del ciclo de
//     vida; solo admite el borrado de la limpieza de antiguos.
type Pedido struct {
	ID        string
	ClienteID string

	// El nombre del producto se guarda como texto por si cambia el catálogo.
	ProductoNombre string
	Cantidad       decimal.Decimal
	Unidad         string

	Estado     string
	OperarioID *string

	ObservacionesFabrica string // lo que dice la fábrica
	NotasVendedor        string // notas del vendedor

	// Control de cambios entre los dos paneles.
	Modificado            bool // ediciones del vendedor pendientes de revisión
	VistoPorFabrica       bool
	VistoPorVendedor      bool
	EsperandoContestacion bool // hay una observación de fábrica sin respuesta del vendedor

	Archivado       bool
	FechaArchivado  *time.Time
	SemanaArchivado string

	FechaCreacion      time.Time
	FechaActualizacion time.Time
	FechaCompletado    *time.Time
}
