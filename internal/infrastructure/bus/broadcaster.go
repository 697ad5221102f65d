package bus

import (
	"github.com/asaskevich/EventBus"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
	"github.com/antonyto02/nexsoft-inventory/internal/application/inventory"
)

// Topics internos del bus de eventos. Coinciden con los nombres de evento que
// reciben los clientes WebSocket.
const (
	TopicInventoryUpdate = "inventory:update"
	TopicTagDetected     = "rfid:tag-detected"
)

var _ inventory.Broadcaster = (*Broadcaster)(nil)

// Broadcaster publica las actualizaciones de inventario en un bus de eventos
// en memoria. Los suscriptores (el hub WebSocket) se registran de forma
// asíncrona, así que publicar nunca bloquea al flujo que mutó el stock.
type Broadcaster struct {
	bus EventBus.Bus
}

// NewBroadcaster construye el adaptador sobre un bus nuevo.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{bus: EventBus.New()}
}

// Bus expone el bus para que los suscriptores se registren.
func (b *Broadcaster) Bus() EventBus.Bus {
	return b.bus
}

// EmitInventoryUpdate publica el estado consolidado de un producto tras un movimiento.
func (b *Broadcaster) EmitInventoryUpdate(update *dto.InventoryUpdate) {
	b.bus.Publish(TopicInventoryUpdate, update)
}

// EmitTagDetected publica un tag RFID escaneado sin entrada abierta asociada.
func (b *Broadcaster) EmitTagDetected(tag string) {
	b.bus.Publish(TopicTagDetected, tag)
}
