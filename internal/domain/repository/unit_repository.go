package repository

import (
	"context"

	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
)

// UnitRepository catálogo de unidades de medida. GetByID devuelve (nil, nil) si no existe.
type UnitRepository interface {
	GetByID(ctx context.Context, id int) (*entity.Unit, error)
}
