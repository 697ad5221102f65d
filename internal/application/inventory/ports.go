package inventory

import (
	"context"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la actualización de stock y el
// registro del movimiento se confirman o revierten como unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		entryRepo repository.StockEntryRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Broadcaster puerto de salida hacia los suscriptores en vivo. Las emisiones
// son best-effort: un suscriptor lento o caído nunca retrasa ni revierte la
// mutación de stock ya confirmada.
type Broadcaster interface {
	EmitInventoryUpdate(update *dto.InventoryUpdate)
	EmitTagDetected(tag string)
}
