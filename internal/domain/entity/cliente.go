package entity

import "time"

// Rutas de reparto aceptadas. La ruta es una etiqueta de agrupación, no una
// entidad propia; el conjunto es pequeño y cerrado a nivel de validación.
const (
	RutaPorDefecto = "Ruta 14"
)

// RutasValidas lista las rutas de reparto aceptadas.
var RutasValidas = []string{"Ruta 14", "Ruta 12", "Corrientes"}

// EsRutaValida indica si la ruta pertenece al conjunto aceptado.
func EsRutaValida(ruta string) bool {
	for _, r := range RutasValidas {
		if r == ruta {
			return true
		}
	}
	return false
}

// Cliente representa a un cliente que realiza pedidos. Un cliente pertenece
// siempre a exactamente una ruta y es dueño de sus pedidos (borrado en cascada).
type Cliente struct {
	ID                 string
	Nombre             string
	Telefono           string
	Direccion          string
	Ruta               string
	Notas              string
	Activo             bool
	CreadoPorID        string
	FechaCreacion      time.Time
	FechaActualizacion time.Time
}
