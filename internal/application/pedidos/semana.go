package pedidos

import (
	"fmt"
	"time"
)

// letrasMes códigos fijos por mes para la etiqueta de semana.
var letrasMes = [13]string{
	"", "E", "F", "M", "A", "MY", "JN", "JL", "AG", "S", "O", "N", "D",
}

// EtiquetaSemana deriva la etiqueta del lote de archivo a partir de la fecha:
// "Week <año>-<semanaDelMes><letraMes>", donde semanaDelMes es
// ((día-1)/7)+1 con división entera. Ej: 2025-01-15 -> "Week 2025-3E".
// Es una función pura: misma fecha, misma etiqueta.
func EtiquetaSemana(fecha time.Time) string {
	semanaDelMes := ((fecha.Day() - 1) / 7) + 1
	return fmt.Sprintf("Week %d-%d%s", fecha.Year(), semanaDelMes, letrasMes[int(fecha.Month())])
}
