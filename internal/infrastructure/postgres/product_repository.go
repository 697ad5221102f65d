package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/antonyto02/nexsoft-inventory/internal/domain"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productColumns columnas del producto con su unidad y categoría. Todas las
// consultas parten de aquí para mantener el shape de scanProduct.
const productColumns = `
	p.id, p.company_id, p.name, p.brand, p.description, p.stock, p.min_stock, p.max_stock,
	p.sensor_type, p.is_active, p.image_url,
	u.id, u.name, u.allows_decimals,
	c.id, c.name,
	p.created_at, p.updated_at
	FROM products p
	JOIN units u ON u.id = p.unit_id
	JOIN categories c ON c.id = p.category_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y devuelve su ID.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) (int64, error) {
	query := `
		INSERT INTO products (company_id, name, brand, description, stock, min_stock, max_stock, sensor_type, is_active, image_url, unit_id, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		p.CompanyID, p.Name, p.Brand, p.Description, p.Stock, p.MinStock, p.MaxStock,
		string(p.SensorType), p.IsActive, p.ImageURL, p.Unit.ID, p.Category.ID,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return id, nil
}

// GetByID obtiene un producto por ID. Los soft-eliminados no se devuelven.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT` + productColumns + ` WHERE p.id = $1 AND p.deleted_at IS NULL`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto bloqueando su fila hasta el fin de la
// transacción. Serializa las operaciones concurrentes sobre el mismo producto.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT` + productColumns + ` WHERE p.id = $1 AND p.deleted_at IS NULL FOR UPDATE OF p`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// UpdateStock escribe el stock desnormalizado. Solo los flujos de movimientos
// pasan por aquí, siempre dentro de la misma tx que inserta el movimiento.
func (r *ProductRepo) UpdateStock(ctx context.Context, id int64, stock decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// Update actualiza los campos editables del producto. No toca stock ni sensor_type.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, brand = $3, description = $4, min_stock = $5, max_stock = $6, image_url = $7, category_id = $8, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Brand, p.Description, p.MinStock, p.MaxStock, p.ImageURL, p.Category.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SoftDelete marca el producto como eliminado e inactivo. El historial de
// movimientos queda intacto.
func (r *ProductRepo) SoftDelete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET deleted_at = now(), is_active = false, updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	return nil
}

// List lista productos de la empresa con filtro opcional de categoría.
func (r *ProductRepo) List(ctx context.Context, companyID string, f repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT` + productColumns + ` WHERE p.company_id = $1 AND p.deleted_at IS NULL`
	args := []any{companyID}
	pos := 2
	if f.CategoryID != nil {
		query += fmt.Sprintf(" AND p.category_id = $%d", pos)
		args = append(args, *f.CategoryID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY p.name ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)
	return r.queryProducts(ctx, query, args...)
}

// SearchByName busca por coincidencia parcial de nombre, sin distinguir mayúsculas.
func (r *ProductRepo) SearchByName(ctx context.Context, companyID, name string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT` + productColumns + `
		WHERE p.company_id = $1 AND p.deleted_at IS NULL AND p.name ILIKE '%' || $2 || '%'
		ORDER BY p.name ASC LIMIT $3 OFFSET $4`
	return r.queryProducts(ctx, query, companyID, name, limit, offset)
}

// ListOutOfStock productos con stock en cero.
func (r *ProductRepo) ListOutOfStock(ctx context.Context, companyID string, limit int) ([]*entity.Product, error) {
	query := `SELECT` + productColumns + `
		WHERE p.company_id = $1 AND p.deleted_at IS NULL AND p.stock = 0
		ORDER BY p.name ASC LIMIT $2`
	return r.queryProducts(ctx, query, companyID, limit)
}

// ListLowStock productos por debajo del mínimo (pero no agotados).
func (r *ProductRepo) ListLowStock(ctx context.Context, companyID string, limit int) ([]*entity.Product, error) {
	query := `SELECT` + productColumns + `
		WHERE p.company_id = $1 AND p.deleted_at IS NULL AND p.stock > 0 AND p.stock < p.min_stock
		ORDER BY p.stock ASC LIMIT $2`
	return r.queryProducts(ctx, query, companyID, limit)
}

// ListNearMinimum productos en la franja [mínimo, mínimo + 1].
func (r *ProductRepo) ListNearMinimum(ctx context.Context, companyID string, limit int) ([]*entity.Product, error) {
	query := `SELECT` + productColumns + `
		WHERE p.company_id = $1 AND p.deleted_at IS NULL AND p.stock >= p.min_stock AND p.stock <= p.min_stock + 1
		ORDER BY p.stock ASC LIMIT $2`
	return r.queryProducts(ctx, query, companyID, limit)
}

// ListOverstock productos por encima del máximo configurado.
func (r *ProductRepo) ListOverstock(ctx context.Context, companyID string, limit int) ([]*entity.Product, error) {
	query := `SELECT` + productColumns + `
		WHERE p.company_id = $1 AND p.deleted_at IS NULL AND p.max_stock IS NOT NULL AND p.stock > p.max_stock
		ORDER BY p.stock DESC LIMIT $2`
	return r.queryProducts(ctx, query, companyID, limit)
}

// ListAlphabetical listado general ordenado por nombre.
func (r *ProductRepo) ListAlphabetical(ctx context.Context, companyID string, limit int) ([]*entity.Product, error) {
	query := `SELECT` + productColumns + `
		WHERE p.company_id = $1 AND p.deleted_at IS NULL
		ORDER BY p.name ASC LIMIT $2`
	return r.queryProducts(ctx, query, companyID, limit)
}

func (r *ProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// scanProduct mapea una fila con el shape de productColumns.
func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var sensorType string
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Brand, &p.Description, &p.Stock, &p.MinStock, &p.MaxStock,
		&sensorType, &p.IsActive, &p.ImageURL,
		&p.Unit.ID, &p.Unit.Name, &p.Unit.AllowsDecimals,
		&p.Category.ID, &p.Category.Name,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.SensorType = entity.SensorType(sensorType)
	return &p, nil
}
