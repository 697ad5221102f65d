package ws

import (
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
	"github.com/antonyto02/nexsoft-inventory/internal/infrastructure/bus"
	"github.com/antonyto02/nexsoft-inventory/pkg/logger"
)

const writeTimeout = 5 * time.Second

// envelope formato de los eventos enviados a los clientes.
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub mantiene el registro de clientes WebSocket del dashboard y les reenvía
// los eventos del bus de inventario. El envío es best-effort: un cliente cuyo
// write falla o excede el timeout se desconecta y se elimina del registro,
// sin afectar al resto ni al flujo que originó el evento.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	log     *logger.Logger
}

// NewHub construye el hub y lo suscribe a los eventos de inventario del bus.
func NewHub(eventBus EventBus.Bus, log *logger.Logger) (*Hub, error) {
	h := &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		log:     log,
	}
	if err := eventBus.SubscribeAsync(bus.TopicInventoryUpdate, h.onInventoryUpdate, false); err != nil {
		return nil, err
	}
	if err := eventBus.SubscribeAsync(bus.TopicTagDetected, h.onTagDetected, false); err != nil {
		return nil, err
	}
	return h, nil
}

// Handler devuelve el handler de Fiber para la ruta del WebSocket.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		h.register(c)
		defer h.unregister(c)
		// Solo se lee para detectar el cierre; los clientes no envían datos.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	})
}

// Upgrade middleware que rechaza peticiones que no son upgrade de WebSocket.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *Hub) register(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()
	h.log.Debug().Int("clients", count).Msg("cliente WebSocket conectado")
}

func (h *Hub) unregister(c *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		_ = c.Close()
	}
	count := len(h.clients)
	h.mu.Unlock()
	h.log.Debug().Int("clients", count).Msg("cliente WebSocket desconectado")
}

func (h *Hub) onInventoryUpdate(update *dto.InventoryUpdate) {
	h.broadcast(envelope{Event: bus.TopicInventoryUpdate, Data: update})
}

func (h *Hub) onTagDetected(tag string) {
	h.broadcast(envelope{Event: bus.TopicTagDetected, Data: dto.TagDetected{RfidTag: tag}})
}

// broadcast envía el evento a todos los clientes conectados. Los que fallan
// se eliminan sobre la marcha.
func (h *Hub) broadcast(msg envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.WriteJSON(msg); err != nil {
			h.log.Warn().Err(err).Msg("cliente WebSocket lento o caído, desconectando")
			delete(h.clients, c)
			_ = c.Close()
		}
	}
}
