package repository

import (
	"context"

	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
)

// CategoryRepository catálogo de categorías. GetByID devuelve (nil, nil) si no existe.
type CategoryRepository interface {
	GetByID(ctx context.Context, id int) (*entity.Category, error)
}
