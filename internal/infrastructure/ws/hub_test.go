package ws

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(zerolog.Nop())
}

func TestPublishSinSesiones(t *testing.T) {
	hub := newTestHub()
	// No debe fallar ni bloquear sin nadie conectado.
	hub.Publish("nuevo_pedido", map[string]string{"id": "p1"})
	assert.Equal(t, 0, hub.Conectados())
}

func TestPublishEntregaATodasLasSesiones(t *testing.T) {
	hub := newTestHub()
	s1 := &sesion{envio: make(chan []byte, bufferEnvio)}
	s2 := &sesion{envio: make(chan []byte, bufferEnvio)}
	hub.registrar(s1)
	hub.registrar(s2)
	assert.Equal(t, 2, hub.Conectados())

	hub.Publish("pedido_actualizado", map[string]string{"id": "p9"})

	for _, s := range []*sesion{s1, s2} {
		select {
		case payload := <-s.envio:
			var m struct {
				Evento string          `json:"evento"`
				Data   json.RawMessage `json:"data"`
			}
			require.NoError(t, json.Unmarshal(payload, &m))
			assert.Equal(t, "pedido_actualizado", m.Evento)
			assert.JSONEq(t, `{"id":"p9"}`, string(m.Data))
		default:
			t.Fatal("la sesión no recibió el evento")
		}
	}
}

func TestPublishDescartaConBufferLleno(t *testing.T) {
	hub := newTestHub()
	lenta := &sesion{envio: make(chan []byte, 1)}
	sana := &sesion{envio: make(chan []byte, bufferEnvio)}
	hub.registrar(lenta)
	hub.registrar(sana)

	hub.Publish("semana_cerrada", map[string]int{"n": 1})
	hub.Publish("semana_cerrada", map[string]int{"n": 2})

	// La sesión saturada pierde el segundo mensaje; la sana recibe ambos.
	assert.Len(t, lenta.envio, 1)
	assert.Len(t, sana.envio, 2)
}

func TestBajaEsIdempotente(t *testing.T) {
	hub := newTestHub()
	s := &sesion{envio: make(chan []byte, bufferEnvio)}
	hub.registrar(s)
	require.Equal(t, 1, hub.Conectados())

	hub.baja(s)
	hub.baja(s) // segunda baja no debe hacer panic por canal ya cerrado
	assert.Equal(t, 0, hub.Conectados())

	// Publicar después de la baja no llega a la sesión dada de baja.
	hub.Publish("nuevo_pedido", nil)
	_, abierto := <-s.envio
	assert.False(t, abierto, "el canal quedó cerrado tras la baja")
}
