package repository

import (
	"context"
	"time"

	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
)

// ExpiringEntry resultado del join entrada+producto para el resumen de caducidades.
type ExpiringEntry struct {
	Entry   entity.StockEntry
	Product entity.Product
}

// StockEntryRepository puerto de persistencia de entradas RFID abiertas.
// "Abierta" significa no soft-eliminada; GetOpenByTag devuelve (nil, nil)
// cuando no hay entrada abierta con ese tag.
type StockEntryRepository interface {
	Create(ctx context.Context, e *entity.StockEntry) (int64, error)
	GetOpenByTag(ctx context.Context, tag string) (*entity.StockEntry, error)
	// GetOpenByTagForUpdate bloquea la entrada para su consumo atómico.
	GetOpenByTagForUpdate(ctx context.Context, tag string) (*entity.StockEntry, error)
	SoftDelete(ctx context.Context, id int64) error

	// NextExpiration devuelve la caducidad más próxima entre las entradas
	// abiertas del producto, o nil si ninguna tiene fecha.
	NextExpiration(ctx context.Context, productID int64) (*time.Time, error)
	CountExpiring(ctx context.Context, productID int64, before time.Time) (int, error)
	ListExpiring(ctx context.Context, companyID string, before time.Time, limit int) ([]*ExpiringEntry, error)
}
