package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
)

// ProductFilter filtros de listado general de productos.
type ProductFilter struct {
	CategoryID *int
	Limit      int
	Offset     int
}

// ProductRepository puerto de persistencia de productos. Los métodos Get
// devuelven (nil, nil) cuando el producto no existe; todas las consultas
// excluyen productos soft-eliminados.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE) para
	// serializar las operaciones concurrentes sobre el mismo producto.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	UpdateStock(ctx context.Context, id int64, stock decimal.Decimal) error
	Update(ctx context.Context, p *entity.Product) error
	SoftDelete(ctx context.Context, id int64) error

	List(ctx context.Context, companyID string, f ProductFilter) ([]*entity.Product, error)
	SearchByName(ctx context.Context, companyID, name string, limit, offset int) ([]*entity.Product, error)

	// Consultas del resumen de inicio (limit elementos cada una).
	ListOutOfStock(ctx context.Context, companyID string, limit int) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, companyID string, limit int) ([]*entity.Product, error)
	ListNearMinimum(ctx context.Context, companyID string, limit int) ([]*entity.Product, error)
	ListOverstock(ctx context.Context, companyID string, limit int) ([]*entity.Product, error)
	ListAlphabetical(ctx context.Context, companyID string, limit int) ([]*entity.Product, error)
}
