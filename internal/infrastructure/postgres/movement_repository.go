package postgres

import (
	"context"
	"fmt"

	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento y devuelve su ID.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) (int64, error) {
	query := `
		INSERT INTO movements (product_id, movement_type_id, quantity, previous_quantity, final_quantity, comment, movement_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		m.ProductID, m.TypeID, m.Quantity, m.PreviousQuantity, m.FinalQuantity, m.Comment, m.MovementDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert movement: %w", err)
	}
	return id, nil
}

// ListByProduct lista los movimientos del producto, del más reciente al más antiguo.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.Movement, error) {
	query := `
		SELECT id, product_id, movement_type_id, quantity, previous_quantity, final_quantity, comment, movement_date
		FROM movements
		WHERE product_id = $1 AND deleted_at IS NULL
		ORDER BY movement_date DESC, id DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.TypeID, &m.Quantity, &m.PreviousQuantity, &m.FinalQuantity, &m.Comment, &m.MovementDate); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
