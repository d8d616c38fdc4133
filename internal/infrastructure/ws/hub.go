package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog"
)

// tamaño del buffer de envío por sesión; si se llena, el mensaje se descarta
// para esa sesión en lugar de frenar el broadcast.
const bufferEnvio = 32

// mensaje es el sobre que viaja por el socket: nombre de evento más payload.
type mensaje struct {
	Evento string `json:"evento"`
	Data   any    `json:"data"`
}

type sesion struct {
	envio chan []byte
}

// Hub mantiene las sesiones WebSocket conectadas y reparte eventos a todas.
// La entrega es al-menos-intentada: una sesión lenta pierde mensajes, nunca
// bloquea a las demás ni a la operación que publicó.
type Hub struct {
	mu       sync.RWMutex
	sesiones map[*sesion]struct{}
	log      zerolog.Logger
}

// NewHub crea un hub vacío.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		sesiones: make(map[*sesion]struct{}),
		log:      log,
	}
}

// Publish serializa el evento y lo encola en todas las sesiones conectadas.
// Nunca devuelve error: un fallo de entrega no debe afectar a la operación
// que ya hizo commit.
func (h *Hub) Publish(evento string, data any) {
	payload, err := json.Marshal(mensaje{Evento: evento, Data: data})
	if err != nil {
		h.log.Error().Err(err).Str("evento", evento).Msg("No se pudo serializar evento")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.sesiones {
		select {
		case s.envio <- payload:
		default:
			// sesión saturada: se descarta el mensaje para no frenar al resto
		}
	}
}

// Conectados devuelve la cantidad de sesiones activas.
func (h *Hub) Conectados() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sesiones)
}

func (h *Hub) registrar(s *sesion) {
	h.mu.Lock()
	h.sesiones[s] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) baja(s *sesion) {
	h.mu.Lock()
	if _, ok := h.sesiones[s]; ok {
		delete(h.sesiones, s)
		close(s.envio)
	}
	h.mu.Unlock()
}

// ManejarConexion atiende una conexión WebSocket hasta que el cliente la
// cierra. Se usa como handler de la ruta /ws con websocket.New.
func (h *Hub) ManejarConexion(c *websocket.Conn) {
	s := &sesion{envio: make(chan []byte, bufferEnvio)}
	h.registrar(s)
	defer h.baja(s)

	h.log.Debug().Int("conectados", h.Conectados()).Msg("Sesión WebSocket conectada")

	// Escritor: drena el canal de envío hacia el socket.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for payload := range s.envio {
			if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}()

	// Lector: los clientes no mandan comandos, pero hay que consumir frames
	// de control para detectar el cierre.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}

	h.baja(s)
	<-done
	h.log.Debug().Int("conectados", h.Conectados()).Msg("Sesión WebSocket desconectada")
}
