package repository

import (
	"context"

	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
)

// MovementRepository puerto del libro de movimientos. Append-only: no hay
// update ni delete en el flujo normal.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) (int64, error)
	ListByProduct(ctx context.Context, productID int64) ([]*entity.Movement, error)
}
