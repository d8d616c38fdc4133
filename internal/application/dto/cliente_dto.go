package dto

import "time"

// GuardarClienteRequest crea o edita un cliente.
type GuardarClienteRequest struct {
	Nombre    string `json:"nombre"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	Ruta      string `json:"ruta"`
	Notas     string `json:"notas"`
}

// ClienteResponse cliente serializado.
type ClienteResponse struct {
	ID            string    `json:"id"`
	Nombre        string    `json:"nombre"`
	Telefono      string    `json:"telefono,omitempty"`
	Direccion     string    `json:"direccion,omitempty"`
	Ruta          string    `json:"ruta"`
	Notas         string    `json:"notas,omitempty"`
	Activo        bool      `json:"activo"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// ClientePanelResponse cliente con sus pedidos activos, para los paneles.
type ClientePanelResponse struct {
	Cliente ClienteResponse  `json:"cliente"`
	Pedidos []PedidoResponse `json:"pedidos"`
}
