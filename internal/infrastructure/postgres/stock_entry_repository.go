package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/antonyto02/nexsoft-inventory/internal/domain"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo implementación sobre PostgreSQL (usable con pool o tx).
// La unicidad del tag entre entradas abiertas se apoya en un índice único
// parcial (rfid_tag WHERE deleted_at IS NULL).
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

// Create persiste una entrada RFID y devuelve su ID. Tag repetido entre
// entradas abiertas devuelve domain.ErrDuplicate.
func (r *StockEntryRepo) Create(ctx context.Context, e *entity.StockEntry) (int64, error) {
	query := `
		INSERT INTO stock_entries (product_id, rfid_tag, expiration_date, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query, e.ProductID, e.RfidTag, e.ExpirationDate).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert stock entry: %w", err)
	}
	return id, nil
}

// GetOpenByTag busca la entrada abierta (no eliminada) con ese tag.
func (r *StockEntryRepo) GetOpenByTag(ctx context.Context, tag string) (*entity.StockEntry, error) {
	query := `
		SELECT id, product_id, rfid_tag, expiration_date, created_at
		FROM stock_entries WHERE rfid_tag = $1 AND deleted_at IS NULL`
	return r.scanEntry(r.q.QueryRow(ctx, query, tag), "get stock entry by tag")
}

// GetOpenByTagForUpdate igual que GetOpenByTag pero bloqueando la fila, para
// que dos escaneos simultáneos del mismo tag no consuman la entrada dos veces.
func (r *StockEntryRepo) GetOpenByTagForUpdate(ctx context.Context, tag string) (*entity.StockEntry, error) {
	query := `
		SELECT id, product_id, rfid_tag, expiration_date, created_at
		FROM stock_entries WHERE rfid_tag = $1 AND deleted_at IS NULL FOR UPDATE`
	return r.scanEntry(r.q.QueryRow(ctx, query, tag), "get stock entry for update")
}

// SoftDelete marca la entrada como consumida.
func (r *StockEntryRepo) SoftDelete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `UPDATE stock_entries SET deleted_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete stock entry: %w", err)
	}
	return nil
}

// NextExpiration devuelve la caducidad más próxima entre las entradas abiertas
// del producto, o nil si ninguna tiene fecha.
func (r *StockEntryRepo) NextExpiration(ctx context.Context, productID int64) (*time.Time, error) {
	query := `
		SELECT MIN(expiration_date)
		FROM stock_entries
		WHERE product_id = $1 AND deleted_at IS NULL AND expiration_date IS NOT NULL`
	var next *time.Time
	if err := r.q.QueryRow(ctx, query, productID).Scan(&next); err != nil {
		return nil, fmt.Errorf("next expiration: %w", err)
	}
	return next, nil
}

// CountExpiring cuenta las entradas abiertas del producto que caducan antes del límite.
func (r *StockEntryRepo) CountExpiring(ctx context.Context, productID int64, before time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM stock_entries
		WHERE product_id = $1 AND deleted_at IS NULL AND expiration_date IS NOT NULL AND expiration_date <= $2`
	var count int
	if err := r.q.QueryRow(ctx, query, productID, before).Scan(&count); err != nil {
		return 0, fmt.Errorf("count expiring: %w", err)
	}
	return count, nil
}

// ListExpiring lista las entradas abiertas del tenant que caducan antes del
// límite, con su producto, ordenadas por caducidad ascendente.
func (r *StockEntryRepo) ListExpiring(ctx context.Context, companyID string, before time.Time, limit int) ([]*repository.ExpiringEntry, error) {
	query := `
		SELECT e.id, e.product_id, e.rfid_tag, e.expiration_date, e.created_at,
		       p.id, p.name, p.stock, p.image_url, p.sensor_type
		FROM stock_entries e
		JOIN products p ON p.id = e.product_id
		WHERE p.company_id = $1 AND p.deleted_at IS NULL
		  AND e.deleted_at IS NULL AND e.expiration_date IS NOT NULL AND e.expiration_date <= $2
		ORDER BY e.expiration_date ASC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, companyID, before, limit)
	if err != nil {
		return nil, fmt.Errorf("list expiring: %w", err)
	}
	defer rows.Close()
	var list []*repository.ExpiringEntry
	for rows.Next() {
		var item repository.ExpiringEntry
		var sensorType string
		if err := rows.Scan(
			&item.Entry.ID, &item.Entry.ProductID, &item.Entry.RfidTag, &item.Entry.ExpirationDate, &item.Entry.CreatedAt,
			&item.Product.ID, &item.Product.Name, &item.Product.Stock, &item.Product.ImageURL, &sensorType,
		); err != nil {
			return nil, fmt.Errorf("scan expiring entry: %w", err)
		}
		item.Product.SensorType = entity.SensorType(sensorType)
		item.Product.CompanyID = companyID
		list = append(list, &item)
	}
	return list, rows.Err()
}

func (r *StockEntryRepo) scanEntry(row pgx.Row, op string) (*entity.StockEntry, error) {
	var e entity.StockEntry
	err := row.Scan(&e.ID, &e.ProductID, &e.RfidTag, &e.ExpirationDate, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &e, nil
}
